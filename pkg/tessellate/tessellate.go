// Package tessellate walks a scene graph and produces polygon meshes using
// a geometry kernel. One mesh is produced per declared solid.
package tessellate

import (
	"fmt"

	"github.com/chazu/enclose/pkg/graph"
	"github.com/chazu/enclose/pkg/kernel"
)

// Tessellate builds every root solid of g with k and meshes it. Meshes are
// returned in root order and named after their solid. The tessellator is
// read-only and never mutates the graph.
func Tessellate(g *graph.SceneGraph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	b := &builder{g: g, k: k, cache: make(map[graph.NodeID]kernel.Solid)}
	meshes := make([]*kernel.Mesh, 0, len(g.Roots))
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			return nil, fmt.Errorf("tessellate: root %s does not exist", rootID.Short())
		}
		solid, err := b.build(root)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error building root %s: %w", partName(root), err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", partName(root), err)
		}
		mesh.PartName = partName(root)
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// partName prefers the node's Name and falls back to its short ID.
func partName(n *graph.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}

// builder turns graph nodes into kernel solids. Shared subtrees are built
// once; kernel solids are immutable so reuse is safe.
type builder struct {
	g     *graph.SceneGraph
	k     kernel.Kernel
	cache map[graph.NodeID]kernel.Solid
	depth int
}

// maxDepth bounds recursion on graphs that skipped validation.
const maxDepth = 10000

func (b *builder) build(n *graph.Node) (kernel.Solid, error) {
	if s, ok := b.cache[n.ID]; ok {
		return s, nil
	}
	b.depth++
	defer func() { b.depth-- }()
	if b.depth > maxDepth {
		return nil, fmt.Errorf("node %s: graph nested deeper than %d (cycle?)", n.ID.Short(), maxDepth)
	}

	var (
		s   kernel.Solid
		err error
	)
	switch n.Kind {
	case graph.NodePrimitive:
		s, err = b.primitive(n)
	case graph.NodeTransform:
		s, err = b.transform(n)
	case graph.NodeBoolean:
		s, err = b.boolean(n)
	case graph.NodeSolid:
		s, err = b.only(n)
	default:
		err = fmt.Errorf("unknown node kind: %v", n.Kind)
	}
	if err != nil {
		return nil, err
	}
	b.cache[n.ID] = s
	return s, nil
}

// primitive creates geometry for a primitive node.
func (b *builder) primitive(n *graph.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case graph.BoxData:
		return b.k.Box(data.Size.X, data.Size.Y, data.Size.Z), nil
	case graph.CylinderData:
		return b.k.Cylinder(data.Height, data.Radius, data.Segments), nil
	case graph.SphereData:
		return b.k.Sphere(data.Radius, data.Segments), nil
	}
	return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
}

// transform rotates, then translates, the single child.
func (b *builder) transform(n *graph.Node) (kernel.Solid, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	s, err := b.only(n)
	if err != nil {
		return nil, err
	}
	if r := td.Rotation; r != nil && (r.X != 0 || r.Y != 0 || r.Z != 0) {
		s = b.k.Rotate(s, r.X, r.Y, r.Z)
	}
	if t := td.Translation; t != nil && (t.X != 0 || t.Y != 0 || t.Z != 0) {
		s = b.k.Translate(s, t.X, t.Y, t.Z)
	}
	return s, nil
}

// boolean folds the children left to right with the node's operation.
func (b *builder) boolean(n *graph.Node) (kernel.Solid, error) {
	bd, ok := n.Data.(graph.BooleanData)
	if !ok {
		return nil, fmt.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	children := b.g.Children(n)
	if len(children) < 2 || len(children) != len(n.Children) {
		return nil, fmt.Errorf("%s node %s needs at least 2 existing operands", bd.Op, n.ID.Short())
	}

	acc, err := b.build(children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range children[1:] {
		s, err := b.build(c)
		if err != nil {
			return nil, err
		}
		switch bd.Op {
		case graph.OpUnion:
			acc = b.k.Union(acc, s)
		case graph.OpDifference:
			acc = b.k.Difference(acc, s)
		case graph.OpIntersection:
			acc = b.k.Intersection(acc, s)
		default:
			return nil, fmt.Errorf("boolean node %s has unknown op %v", n.ID.Short(), bd.Op)
		}
	}
	return acc, nil
}

// only builds the single child of a transform or solid node.
func (b *builder) only(n *graph.Node) (kernel.Solid, error) {
	children := b.g.Children(n)
	if len(children) != 1 || len(n.Children) != 1 {
		return nil, fmt.Errorf("%s node %s must have exactly one existing child, has %d",
			n.Kind, n.ID.Short(), len(n.Children))
	}
	return b.build(children[0])
}
