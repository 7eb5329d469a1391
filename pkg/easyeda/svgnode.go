package easyeda

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

type svgNodeDoc struct {
	Attrs map[string]any `json:"attrs"`
}

// decodeSVGNode reads the JSON payload of an SVGNODE record. Any decoding
// problem yields an empty reference rather than an error.
func decodeSVGNode(payload string) SVGNode {
	var doc svgNodeDoc
	if err := json.Unmarshal([]byte(payload), &doc); err != nil || doc.Attrs == nil {
		return SVGNode{}
	}
	a := doc.Attrs

	node := SVGNode{
		UUID:   attrString(a, "uuid"),
		Title:  attrString(a, "title"),
		Z:      attrFloat(a, "z"),
		Width:  attrFloat(a, "c_width"),
		Height: attrFloat(a, "c_height"),
	}
	if xy := attrFloats(a, "c_origin"); len(xy) >= 2 {
		node.Origin = Point{X: xy[0], Y: xy[1]}
	}
	if rot := attrFloats(a, "c_rotation"); len(rot) >= 3 {
		copy(node.Rotation[:], rot[:3])
		node.HasRotation = true
	}
	return node
}

func attrString(a map[string]any, key string) string {
	switch v := a[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func attrFloat(a map[string]any, key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	default:
		return 0
	}
}

// attrFloats reads a comma separated list such as "4000,3000".
func attrFloats(a map[string]any, key string) []float64 {
	s := attrString(a, key)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil
		}
		out = append(out, f)
	}
	return out
}
