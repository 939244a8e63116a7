package preview

import "github.com/secmon-lab/tailorkit/pkg/domain/types"

// NodeKind names the role of a node in a render description
type NodeKind string

const (
	NodeField       NodeKind = "field"
	NodeLabel       NodeKind = "label"
	NodeInput       NodeKind = "input"
	NodeSelect      NodeKind = "select"
	NodeChoiceGroup NodeKind = "choice-group"
	NodeOption      NodeKind = "option"
	NodePrice       NodeKind = "price"
	NodeImage       NodeKind = "image"
	NodeDescription NodeKind = "description"
	NodeIcon        NodeKind = "icon"
	NodeHelp        NodeKind = "help"
	NodeButton      NodeKind = "button"
	NodeHeading     NodeKind = "heading"
	NodeDivider     NodeKind = "divider"
	NodeSpacer      NodeKind = "spacer"
	NodeLink        NodeKind = "link"
	NodeUnsupported NodeKind = "unsupported"
)

// Node is one toolkit independent display unit
type Node struct {
	Kind     NodeKind          `json:"kind"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]any    `json:"attrs,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Description is what a renderer needs to display one element
type Description struct {
	ElementID string            `json:"elementId"`
	Type      types.ElementType `json:"type"`
	Supported bool              `json:"supported"`
	// Width is the resolved CSS width such as "100%" or "240px"; empty for layout-only elements
	Width string `json:"width,omitempty"`
	Root  *Node  `json:"root"`
}

// Find returns the first node of kind in depth first order, or nil
func (n *Node) Find(kind NodeKind) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node of kind in depth first order
func (n *Node) FindAll(kind NodeKind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	if n.Kind == kind {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAll(kind)...)
	}
	return out
}

func (n *Node) add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}
