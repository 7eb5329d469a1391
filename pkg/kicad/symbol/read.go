package symbol

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp/kicadsexp"
)

// Library is a parsed .kicad_sym document.
type Library struct {
	Version          int
	Generator        string
	GeneratorVersion string
	Symbols          []*Symbol
}

// Symbol returns the entry with the given name.
func (l *Library) Symbol(name string) (*Symbol, bool) {
	for _, s := range l.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ReadLibrary parses a .kicad_sym document.
func ReadLibrary(r io.Reader) (*Library, error) {
	exprs, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse symbol library: %w", err)
	}
	if len(exprs) != 1 {
		return nil, fmt.Errorf("expected one top-level expression, got %d", len(exprs))
	}
	root := exprs[0]
	if name, err := sexp.GetNodeName(root); err != nil || name != "kicad_symbol_lib" {
		return nil, fmt.Errorf("expected (kicad_symbol_lib ...), got %q", name)
	}

	lib := &Library{}
	if v, ok := sexp.FindNode(root, "version"); ok {
		lib.Version, _ = sexp.GetInt(v, 1)
	}
	if g, ok := sexp.FindNode(root, "generator"); ok {
		lib.Generator, _ = sexp.GetString(g, 1)
	}
	if g, ok := sexp.FindNode(root, "generator_version"); ok {
		lib.GeneratorVersion, _ = sexp.GetString(g, 1)
	}

	for _, node := range sexp.FindAllNodes(root, "symbol") {
		sym, err := parseLibSymbol(node)
		if err != nil {
			return nil, err
		}
		lib.Symbols = append(lib.Symbols, sym)
	}
	return lib, nil
}

// ReadLibraryString parses a .kicad_sym document held in memory.
func ReadLibraryString(s string) (*Library, error) {
	return ReadLibrary(strings.NewReader(s))
}

// parseLibSymbol extracts one library symbol and the units nested in it.
// Expected format: (symbol "name" (property ...) (symbol "name_U_S" ...) ...)
func parseLibSymbol(node kicadsexp.Sexp) (*Symbol, error) {
	name, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse symbol name: %w", err)
	}
	sym := &Symbol{Name: name}

	for _, propNode := range sexp.FindAllNodes(node, "property") {
		prop, err := sexp.GetProperty(propNode)
		if err != nil {
			continue
		}
		sym.Properties = append(sym.Properties, prop)
		switch prop.Key {
		case "Reference":
			sym.Meta.Reference = prop.Value
		case "Footprint":
			sym.Meta.Footprint = prop.Value
		case "Datasheet":
			sym.Meta.Datasheet = prop.Value
		case "Description":
			sym.Meta.Description = prop.Value
		case "LCSC":
			sym.Meta.LCSC = prop.Value
		case "Manufacturer":
			sym.Meta.Manufacturer = prop.Value
		case "MPN":
			sym.Meta.MPN = prop.Value
		case "ki_keywords":
			sym.Meta.Keywords = prop.Value
		}
	}

	for _, unit := range sexp.FindAllNodes(node, "symbol") {
		if err := parseSymbolUnit(unit, sym); err != nil {
			return nil, fmt.Errorf("symbol %q: %w", name, err)
		}
	}
	return sym, nil
}

// parseSymbolUnit appends the graphics and pins of one unit to sym.
func parseSymbolUnit(node kicadsexp.Sexp, sym *Symbol) error {
	for _, item := range sexp.GetListItems(node) {
		kind, err := sexp.GetNodeName(item)
		if err != nil || item.IsLeaf() {
			continue
		}
		switch kind {
		case "rectangle":
			start, end := point(item, "start"), point(item, "end")
			w, f := style(item)
			sym.Rectangles = append(sym.Rectangles, Rectangle{Start: start, End: end, Width: w, Fill: f})
		case "circle":
			c := Circle{Center: point(item, "center")}
			if r, ok := sexp.FindNode(item, "radius"); ok {
				c.Radius, _ = sexp.GetFloat(r, 1)
			}
			c.Width, c.Fill = style(item)
			sym.Circles = append(sym.Circles, c)
		case "arc":
			a := Arc{Start: point(item, "start"), Mid: point(item, "mid"), End: point(item, "end")}
			a.Width, a.Fill = style(item)
			sym.Arcs = append(sym.Arcs, a)
		case "polyline":
			p := Polyline{}
			if pts, ok := sexp.FindNode(item, "pts"); ok {
				p.Points = sexp.GetPoints(pts)
			}
			p.Width, p.Fill = style(item)
			sym.Polylines = append(sym.Polylines, p)
		case "text":
			t, err := parseText(item)
			if err != nil {
				return err
			}
			sym.Texts = append(sym.Texts, t)
		case "pin":
			pin, err := parsePin(item)
			if err != nil {
				return err
			}
			sym.Pins = append(sym.Pins, pin)
		}
	}
	return nil
}

// parsePin extracts a pin definition
// Format: (pin TYPE STYLE (at X Y ANGLE) (length L) [hide] (name "N" ...) (number "1" ...))
func parsePin(node kicadsexp.Sexp) (Pin, error) {
	pin := Pin{}

	var err error
	if pin.Type, err = sexp.GetString(node, 1); err != nil {
		return pin, fmt.Errorf("failed to parse pin type: %w", err)
	}
	pin.Style, _ = sexp.GetString(node, 2)

	if atNode, ok := sexp.FindNode(node, "at"); ok {
		pos, err := sexp.GetPosition(atNode)
		if err != nil {
			return pin, fmt.Errorf("failed to parse pin position: %w", err)
		}
		pin.Position = pos.Position
		pin.Angle = pos.Angle
	}
	if l, ok := sexp.FindNode(node, "length"); ok {
		pin.Length, _ = sexp.GetFloat(l, 1)
	}
	pin.Hidden = sexp.GetFlag(node, "hide")

	if n, ok := sexp.FindNode(node, "name"); ok {
		pin.Name, _ = sexp.GetString(n, 1)
		pin.NameHidden = hiddenEffects(n)
	}
	if n, ok := sexp.FindNode(node, "number"); ok {
		pin.Number, _ = sexp.GetString(n, 1)
		pin.NumHidden = hiddenEffects(n)
	}
	return pin, nil
}

func parseText(node kicadsexp.Sexp) (Text, error) {
	t := Text{}
	var err error
	if t.Text, err = sexp.GetString(node, 1); err != nil {
		return t, fmt.Errorf("failed to parse text: %w", err)
	}
	if atNode, ok := sexp.FindNode(node, "at"); ok {
		if pos, err := sexp.GetPosition(atNode); err == nil {
			t.Position = pos.Position
			t.Angle = Angle(float64(pos.Angle) * sexp.DecidegreesToDegrees)
		}
	}
	if e, ok := sexp.FindNode(node, "effects"); ok {
		if effects, err := sexp.GetEffects(e); err == nil {
			t.Size = effects.Font.Size.Height
			t.Hidden = effects.Hide
		}
	}
	return t, nil
}

func hiddenEffects(node kicadsexp.Sexp) bool {
	e, ok := sexp.FindNode(node, "effects")
	if !ok {
		return false
	}
	return sexp.GetFlag(e, "hide")
}

func point(node kicadsexp.Sexp, key string) Position {
	n, ok := sexp.FindNode(node, key)
	if !ok {
		return Position{}
	}
	p, _ := sexp.GetPositionXY(n)
	return p
}

func style(node kicadsexp.Sexp) (float64, string) {
	var width float64
	fill := FillNone
	if s, ok := sexp.FindNode(node, "stroke"); ok {
		if st, err := sexp.GetStroke(s); err == nil {
			width = st.Width
		}
	}
	if f, ok := sexp.FindNode(node, "fill"); ok {
		if fl, err := sexp.GetFill(f); err == nil {
			fill = fl.Type
		}
	}
	return width, fill
}
