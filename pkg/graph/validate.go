package graph

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ValidationSeverity indicates whether a validation finding blocks evaluation
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate runs all structural and geometric checks on the scene graph and
// returns the findings. An empty slice means the graph is valid. This
// function is read-only and never mutates the graph.
func Validate(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateRoots(g)...)
	errs = append(errs, validateArity(g)...)
	errs = append(errs, validateDimensions(g)...)
	errs = append(errs, validateProbes(g)...)
	return errs
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
func validateDAG(g *SceneGraph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		node, ok := g.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}
		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for id := range g.Nodes {
		if color[id] == white {
			if visit(id) {
				// One cycle error is sufficient.
				break
			}
		}
	}

	return errs
}

// validateReferences checks that every child ID points to an existing node.
func validateReferences(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	for _, node := range g.Nodes {
		for _, childID := range node.Children {
			if _, ok := g.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateNames checks that every NameIndex entry points to an existing node
// and that no two nodes share a name.
func validateNames(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for name, id := range g.NameIndex {
		if _, ok := g.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	nameToNodes := make(map[string]int)
	for _, node := range g.Nodes {
		if node.Name != "" {
			nameToNodes[node.Name]++
		}
	}
	for name, n := range nameToNodes {
		if n > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, n),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateRoots checks that every root exists and is a solid, that no solid
// is declared twice, and warns about nodes unreachable from any root.
func validateRoots(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	seen := make(map[NodeID]bool)
	for _, rid := range g.Roots {
		node, ok := g.Nodes[rid]
		if !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
			continue
		}
		if node.Kind != NodeSolid {
			errs = append(errs, ValidationError{
				NodeID:   rid,
				Message:  fmt.Sprintf("root is a %s node, not a solid", node.Kind),
				Severity: SeverityError,
			})
		}
		if seen[rid] {
			errs = append(errs, ValidationError{
				NodeID:   rid,
				Message:  fmt.Sprintf("solid %q declared more than once", node.Name),
				Severity: SeverityError,
			})
		}
		seen[rid] = true
	}

	if len(g.Nodes) == 0 {
		return errs
	}

	// Orphan detection: BFS from all roots through Children edges.
	reachable := make(map[NodeID]bool)
	var queue []NodeID
	for rid := range seen {
		reachable[rid] = true
		queue = append(queue, rid)
	}
	for len(queue) > 0 {
		node := g.Nodes[queue[0]]
		queue = queue[1:]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for id, node := range g.Nodes {
		if !reachable[id] {
			name := node.Name
			if name == "" {
				name = id.Short()
			}
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("%s node %q is not reachable from any solid (orphan)", node.Kind, name),
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}

// validateArity checks child counts per node kind.
func validateArity(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	for _, node := range g.Nodes {
		n := len(node.Children)
		var msg string
		switch node.Kind {
		case NodePrimitive:
			if n != 0 {
				msg = fmt.Sprintf("primitive has %d children, want 0", n)
			}
		case NodeTransform, NodeSolid:
			if n != 1 {
				msg = fmt.Sprintf("%s has %d children, want 1", node.Kind, n)
			}
		case NodeBoolean:
			if n < 2 {
				op := "boolean"
				if bd, ok := node.Data.(BooleanData); ok {
					op = bd.Op.String()
				}
				msg = fmt.Sprintf("%s has %d operands, want at least 2", op, n)
			}
		}
		if msg != "" {
			errs = append(errs, ValidationError{NodeID: node.ID, Message: msg, Severity: SeverityError})
		}
	}
	return errs
}

// validateDimensions checks that every primitive has positive, finite sizes
// and that transforms are finite.
func validateDimensions(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	bad := func(id NodeID, format string, args ...any) {
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}
	positive := func(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case BoxData:
			if !positive(d.Size.X) || !positive(d.Size.Y) || !positive(d.Size.Z) {
				bad(node.ID, "box size (%.4f, %.4f, %.4f) must be positive", d.Size.X, d.Size.Y, d.Size.Z)
			}
		case CylinderData:
			if !positive(d.Height) || !positive(d.Radius) {
				bad(node.ID, "cylinder height %.4f and radius %.4f must be positive", d.Height, d.Radius)
			}
			if d.Segments != 0 && d.Segments < 3 {
				bad(node.ID, "cylinder needs at least 3 segments, got %d", d.Segments)
			}
		case SphereData:
			if !positive(d.Radius) {
				bad(node.ID, "sphere radius %.4f must be positive", d.Radius)
			}
			if d.Segments != 0 && d.Segments < 3 {
				bad(node.ID, "sphere needs at least 3 segments, got %d", d.Segments)
			}
		case TransformData:
			if d.Translation != nil && !finite(*d.Translation) {
				bad(node.ID, "translation %v is not finite", *d.Translation)
			}
			if d.Rotation != nil && !finite(*d.Rotation) {
				bad(node.ID, "rotation %v is not finite", *d.Rotation)
			}
		}
	}
	return errs
}

// validateProbes checks that probe labels are unique and points finite.
func validateProbes(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, p := range g.Probes {
		if seen[p.Label] {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("probe %d: duplicate label %q", i, p.Label),
				Severity: SeverityError,
			})
		}
		seen[p.Label] = true
		if !finite(p.Point) {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("probe %q: point %v is not finite", p.Label, p.Point),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func finite(v v3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
