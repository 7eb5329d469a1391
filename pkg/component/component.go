package component

import (
	"errors"
	"sort"
	"strings"
	"unicode"
)

// ErrNoFootprint is returned when a part has no footprint document.
var ErrNoFootprint = errors.New("component has no footprint")

// c_para keys
const (
	paramPrefix       = "pre"
	paramManufacturer = "Manufacturer"
	paramMPN          = "Manufacturer Part"
	paramPackage      = "package"
	paramDatasheet    = "link"
	paramSupplierPart = "Supplier Part"
)

// Component is a part with its documents and descriptive metadata.
type Component struct {
	LCSC         string
	Title        string
	Prefix       string
	Manufacturer string
	MPN          string
	Package      string
	Datasheet    string

	// VendorDescription is the description shipped with the part.
	VendorDescription string

	Footprint *Document
	Symbol    *Document // nil when the part has no symbol
}

// New assembles a component from its documents. The symbol may be nil.
func New(lcsc string, fp, sym *Document) (*Component, error) {
	if fp == nil {
		return nil, ErrNoFootprint
	}
	c := &Component{
		LCSC:         lcsc,
		Footprint:    fp,
		Symbol:       sym,
		Prefix:       firstNonEmpty(sym.Param(paramPrefix), "U"),
		Manufacturer: firstNonEmpty(sym.Param(paramManufacturer), fp.Param(paramManufacturer)),
		MPN:          firstNonEmpty(sym.Param(paramMPN), fp.Param(paramMPN)),
		Package:      firstNonEmpty(fp.Param(paramPackage), sym.Param(paramPackage)),
		Datasheet:    firstNonEmpty(sym.Param(paramDatasheet), fp.Param(paramDatasheet)),
	}
	if c.LCSC == "" {
		c.LCSC = firstNonEmpty(sym.Param(paramSupplierPart), fp.Param(paramSupplierPart))
	}
	if sym != nil {
		c.Title = sym.Title
		c.VendorDescription = sym.Description
	}
	c.Title = firstNonEmpty(c.Title, fp.Title, c.MPN, c.LCSC)
	c.VendorDescription = firstNonEmpty(c.VendorDescription, fp.Description)
	return c, nil
}

// Name is the sanitised title used for file and library entry names.
func (c *Component) Name() string {
	return SanitizeName(c.Title)
}

// Description returns the vendor description, or one assembled from the
// part number, package and manufacturer when the vendor text is empty or
// only repeats the title.
func (c *Component) Description() string {
	desc := strings.TrimSpace(c.VendorDescription)
	if desc != "" && desc != c.Title {
		return desc
	}
	var parts []string
	for _, p := range []string{c.MPN, c.Package, c.Manufacturer} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "; "))
}

// Keywords returns the sorted unique search terms of the part.
func (c *Component) Keywords() string {
	seen := map[string]bool{}
	var terms []string
	for _, t := range []string{c.LCSC, c.MPN, c.Manufacturer, c.Package} {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return strings.Join(terms, " ")
}

// SanitizeName maps a title to an identifier that is safe both as a file
// name and inside a library. Runs of unsafe characters collapse to one
// underscore.
func SanitizeName(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(title) {
		if unsafeRune(r) {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	name := strings.Trim(b.String(), "._")
	if name == "" {
		return "unnamed"
	}
	return name
}

func unsafeRune(r rune) bool {
	if unicode.IsSpace(r) || unicode.IsControl(r) {
		return true
	}
	return strings.ContainsRune(`/\:*?"<>|(){}`, r)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
