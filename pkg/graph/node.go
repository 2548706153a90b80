package graph

// NodeKind enumerates the types of nodes in the scene graph.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // box, cylinder, sphere
	NodeTransform                 // translate/rotate (place)
	NodeBoolean                   // union, difference, intersection
	NodeSolid                     // named root (defsolid)
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeTransform:
		return "transform"
	case NodeBoolean:
		return "boolean"
	case NodeSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the scene graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// NewNode builds a node whose ID is derived from its content.
func NewNode(kind NodeKind, name string, data NodeData, children ...NodeID) *Node {
	return &Node{
		ID:       contentID(kind, name, data, children),
		Kind:     kind,
		Name:     name,
		Children: children,
		Data:     data,
	}
}
