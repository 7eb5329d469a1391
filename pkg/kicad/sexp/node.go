package sexp

import (
	"strings"
)

// LineWidth is the widest inline rendering a node may have before it is
// broken into a block.
const LineWidth = 80

// Node is one parenthesised list in an output tree. Items holds nested
// *Node values and scalars (string, Quoted, Symbol, bool, integer and
// floating point types) in emission order.
type Node struct {
	Name  string
	Items []any
}

// Quoted is a string that is always written between double quotes.
type Quoted string

// NewNode creates a node with initial items.
func NewNode(name string, items ...any) *Node {
	return &Node{Name: name, Items: items}
}

// Add appends items and returns the node for chaining.
func (n *Node) Add(items ...any) *Node {
	n.Items = append(n.Items, items...)
	return n
}

// Append creates a child node, adds it, and returns the child.
func (n *Node) Append(name string, items ...any) *Node {
	child := NewNode(name, items...)
	n.Items = append(n.Items, child)
	return child
}

// Child returns the first direct child node with the given name.
func (n *Node) Child(name string) *Node {
	for _, item := range n.Items {
		if c, ok := item.(*Node); ok && c.Name == name {
			return c
		}
	}
	return nil
}

// Children returns every direct child node with the given name.
func (n *Node) Children(name string) []*Node {
	var out []*Node
	for _, item := range n.Items {
		if c, ok := item.(*Node); ok && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Render returns the node as text, choosing inline or block layout per node.
func (n *Node) Render() string {
	var b strings.Builder
	n.render(&b, 0)
	return b.String()
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return n.Render()
}

func (n *Node) render(b *strings.Builder, indent int) {
	parts := make([]string, len(n.Items))
	block := false
	for i, item := range n.Items {
		if c, ok := item.(*Node); ok {
			var cb strings.Builder
			c.render(&cb, indent+1)
			parts[i] = cb.String()
		} else {
			parts[i] = FormatScalar(item)
		}
		if strings.Contains(parts[i], "\n") {
			block = true
		}
	}

	if !block {
		inline := 2 + len(n.Name)
		for _, p := range parts {
			inline += 1 + len(p)
		}
		block = inline > LineWidth
	}

	b.WriteByte('(')
	b.WriteString(n.Name)
	if !block {
		for _, p := range parts {
			b.WriteByte(' ')
			b.WriteString(p)
		}
		b.WriteByte(')')
		return
	}

	// Leading scalars stay on the header line.
	i := 0
	for ; i < len(n.Items); i++ {
		if _, ok := n.Items[i].(*Node); ok {
			break
		}
		b.WriteByte(' ')
		b.WriteString(parts[i])
	}
	b.WriteByte('\n')
	prefix := strings.Repeat("  ", indent+1)
	for ; i < len(parts); i++ {
		b.WriteString(prefix)
		b.WriteString(parts[i])
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteByte(')')
}
