package easyeda

import (
	"strings"
)

// Result is the outcome of decoding one shape list.
type Result struct {
	Records []Record
	// Dropped counts inputs that produced no record.
	Dropped int
	// DroppedTags counts dropped inputs by leading token ("" for blanks).
	DroppedTags map[string]int
}

// ParseFootprint decodes the shape list of a footprint document.
func ParseFootprint(shapes []string) Result {
	return parse(shapes, footprintSchemas)
}

// ParseSymbol decodes the shape list of a symbol document.
func ParseSymbol(shapes []string) Result {
	return parse(shapes, symbolSchemas)
}

func parse(shapes []string, schemas map[string]schema) Result {
	res := Result{Records: make([]Record, 0, len(shapes))}
	drop := func(tag string) {
		res.Dropped++
		if res.DroppedTags == nil {
			res.DroppedTags = make(map[string]int)
		}
		res.DroppedTags[tag]++
	}

	for _, raw := range shapes {
		recs, tag, ok := decode(raw, schemas)
		if !ok {
			drop(tag)
			continue
		}
		res.Records = append(res.Records, recs...)
	}
	return res
}

// decode maps one shape string to records. ok is false when the string was
// dropped.
func decode(raw string, schemas map[string]schema) (recs []Record, tag string, ok bool) {
	raw = strings.TrimSpace(raw)
	tag, _, _ = strings.Cut(raw, "~")
	sc, known := schemas[tag]
	if !known {
		return nil, tag, false
	}

	r := rawRecord{raw: raw}
	switch {
	case sc.payload:
		r.f = fields{tag, ""}
		if _, rest, found := strings.Cut(raw, "~"); found {
			r.f[1] = rest
		}
	case sc.segmented:
		r.segs = strings.Split(raw, "^^")
		r.f = splitFields(r.segs[0])
	default:
		r.f = splitFields(raw)
	}
	if len(r.f) < sc.minFields {
		return nil, tag, false
	}

	recs, err := sc.decode(r)
	if err != nil || len(recs) == 0 {
		return nil, tag, false
	}
	return recs, tag, true
}

// Pads returns the pad records in encounter order.
func (r Result) Pads() []Pad {
	var out []Pad
	for _, rec := range r.Records {
		if p, ok := rec.(Pad); ok {
			out = append(out, p)
		}
	}
	return out
}

// Pins returns the pin records in encounter order.
func (r Result) Pins() []Pin {
	var out []Pin
	for _, rec := range r.Records {
		if p, ok := rec.(Pin); ok {
			out = append(out, p)
		}
	}
	return out
}

// Model returns the first 3D model reference, if any.
func (r Result) Model() (SVGNode, bool) {
	for _, rec := range r.Records {
		if n, ok := rec.(SVGNode); ok {
			return n, true
		}
	}
	return SVGNode{}, false
}
