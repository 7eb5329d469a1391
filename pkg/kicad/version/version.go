// Package version is the table of KiCad file-format differences the
// footprint and symbol writers honour.
package version

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	vlib "github.com/mcuadros/go-version"
)

// ErrUnsupported is returned for KiCad versions outside the table.
var ErrUnsupported = errors.New("unsupported KiCad version")

// Generator is written into every emitted file header.
const Generator = "JLCImport"

// Format describes one target KiCad major version.
type Format struct {
	Major            int
	FootprintVersion int    // (version N) of .kicad_mod
	SymbolVersion    int    // (version N) of .kicad_sym
	GeneratorVersion string // empty: header has no generator_version field
	HideAsNode       bool   // (hide yes) instead of a bare hide token
	ItemUUIDs        bool   // graphic items and pads carry (uuid ...)
	EmbeddedFonts    bool   // (embedded_fonts no) closes footprints and symbols
}

var formats = map[int]Format{
	8: {
		Major:            8,
		FootprintVersion: 20240108,
		SymbolVersion:    20231120,
	},
	9: {
		Major:            9,
		FootprintVersion: 20241229,
		SymbolVersion:    20241209,
		GeneratorVersion: "1.0",
		HideAsNode:       true,
		ItemUUIDs:        true,
		EmbeddedFonts:    true,
	},
}

// DefaultMajor is used when no version is configured.
const DefaultMajor = 9

// Default returns the format for DefaultMajor.
func Default() Format {
	return formats[DefaultMajor]
}

// Supported lists the supported majors in ascending order.
func Supported() []int {
	majors := make([]int, 0, len(formats))
	for m := range formats {
		majors = append(majors, m)
	}
	sort.Ints(majors)
	return majors
}

// Lookup returns the format for a major version.
func Lookup(major int) (Format, error) {
	f, ok := formats[major]
	if !ok {
		return Format{}, fmt.Errorf("%w: %d (supported: %v)", ErrUnsupported, major, Supported())
	}
	return f, nil
}

// Resolve maps a version string such as "9", "8.0.4" or "v9.0" to a format.
// An empty string or "latest" resolves to the default.
func Resolve(s string) (Format, error) {
	s = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(s)), "v")
	if s == "" || s == "latest" {
		return Default(), nil
	}

	normalized := vlib.Normalize(s)
	head, _, _ := strings.Cut(normalized, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return Format{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}

	lower := fmt.Sprintf("%d.0.0.0", major)
	upper := fmt.Sprintf("%d.0.0.0", major+1)
	if vlib.CompareSimple(normalized, lower) < 0 || vlib.CompareSimple(normalized, upper) >= 0 {
		return Format{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	return Lookup(major)
}

// HasGeneratorVersion reports whether headers carry generator_version.
func (f Format) HasGeneratorVersion() bool {
	return f.GeneratorVersion != ""
}

func (f Format) String() string {
	return fmt.Sprintf("KiCad %d", f.Major)
}
