package easyeda

import (
	"fmt"
	"strconv"
	"strings"
)

// fields is a split shape string; index 0 is the tag.
type fields []string

func splitFields(s string) fields {
	return strings.Split(s, "~")
}

func (f fields) str(i int) string {
	if i < 0 || i >= len(f) {
		return ""
	}
	return strings.TrimSpace(f[i])
}

// num parses a required number.
func (f fields) num(i int) (float64, error) {
	s := f.str(i)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %d: %q is not a number", i, s)
	}
	return v, nil
}

// opt parses an optional number; empty or malformed values read as zero.
func (f fields) opt(i int) float64 {
	v, err := strconv.ParseFloat(f.str(i), 64)
	if err != nil {
		return 0
	}
	return v
}

// layer parses a layer id; malformed values read as zero (unknown layer).
func (f fields) layer(i int) int {
	return int(f.opt(i))
}

// nums decodes each index into dst, stopping at the first failure.
func (f fields) nums(idx []int, dst ...*float64) error {
	for k, i := range idx {
		v, err := f.num(i)
		if err != nil {
			return err
		}
		*dst[k] = v
	}
	return nil
}

// parsePoints reads a flat "x1 y1 x2 y2 ..." list. Commas are accepted as
// separators too.
func parsePoints(s string) ([]Point, error) {
	toks := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(toks)%2 != 0 {
		return nil, fmt.Errorf("odd coordinate count %d", len(toks))
	}
	pts := make([]Point, 0, len(toks)/2)
	for i := 0; i < len(toks); i += 2 {
		x, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(toks[i+1], 64)
		if err != nil {
			return nil, err
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// isFilled interprets vendor fill colours; "none" and empty mean unfilled.
func isFilled(fill string) bool {
	fill = strings.ToLower(strings.TrimSpace(fill))
	return fill != "" && fill != "none" && fill != "transparent"
}

func isShown(s string) bool {
	s = strings.TrimSpace(s)
	return s != "0" && s != "none" && s != ""
}
