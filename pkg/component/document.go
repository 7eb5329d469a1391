// Package component holds the vendor documents that describe one part and
// the metadata derived from them.
package component

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Document is one footprint or symbol document.
type Document struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DataStr     DataStr `json:"dataStr"`
}

// DataStr is the drawing payload of a document. Some sources ship it as a
// JSON-encoded string rather than an object; both forms decode.
type DataStr struct {
	Head  Head     `json:"head"`
	Shape []string `json:"shape"`
}

// Head carries the drawing origin and the part attributes.
type Head struct {
	X     Number            `json:"x"`
	Y     Number            `json:"y"`
	CPara map[string]string `json:"-"`
}

// Number accepts both JSON numbers and numeric strings.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Head) UnmarshalJSON(b []byte) error {
	var raw struct {
		X     Number         `json:"x"`
		Y     Number         `json:"y"`
		CPara map[string]any `json:"c_para"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	h.X, h.Y = raw.X, raw.Y
	h.CPara = make(map[string]string, len(raw.CPara))
	for k, v := range raw.CPara {
		switch x := v.(type) {
		case string:
			h.CPara[k] = strings.TrimSpace(x)
		case nil:
		default:
			h.CPara[k] = fmt.Sprint(x)
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DataStr) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	type plain DataStr
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("failed to decode dataStr: %w", err)
	}
	*d = DataStr(p)
	return nil
}

// Param returns a part attribute, or "" when absent.
func (d *Document) Param(key string) string {
	if d == nil {
		return ""
	}
	return d.DataStr.Head.CPara[key]
}

// Origin returns the drawing origin in vendor units.
func (d *Document) Origin() (x, y float64) {
	if d == nil {
		return 0, 0
	}
	return float64(d.DataStr.Head.X), float64(d.DataStr.Head.Y)
}

// Shapes returns the raw shape strings.
func (d *Document) Shapes() []string {
	if d == nil {
		return nil
	}
	return d.DataStr.Shape
}

// ReadDocument decodes one document.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}
