package sexp

import (
	"strconv"

	"github.com/google/uuid"
)

// uuidSpace scopes generated item identifiers.
var uuidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/OpenTraceLab/jlcimport"))

// UUIDGen hands out stable item UUIDs derived from a seed, so writing the
// same part twice yields byte-identical files.
type UUIDGen struct {
	seed    string
	n       int
	enabled bool
}

// NewUUIDGen returns a generator. A disabled generator returns nil nodes.
func NewUUIDGen(seed string, enabled bool) *UUIDGen {
	return &UUIDGen{seed: seed, enabled: enabled}
}

// Next returns the next (uuid "...") node, or nil when disabled.
func (g *UUIDGen) Next() *Node {
	if g == nil || !g.enabled {
		return nil
	}
	g.n++
	id := uuid.NewSHA1(uuidSpace, []byte(g.seed+"/"+strconv.Itoa(g.n)))
	return NewNode("uuid", UUID(id.String()))
}

// AddOpt appends items that are non-nil nodes or non-node values.
func (n *Node) AddOpt(items ...any) *Node {
	for _, it := range items {
		if c, ok := it.(*Node); ok && c == nil {
			continue
		}
		n.Items = append(n.Items, it)
	}
	return n
}
