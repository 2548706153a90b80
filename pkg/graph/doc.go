// Package graph defines the scene graph for Enclose.
// The scene graph is an immutable, content-addressed DAG of primitives,
// transforms and boolean operations. Named solids are its roots; probe
// points ride alongside and are classified against every solid.
package graph
