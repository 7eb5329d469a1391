// Package importer runs the conversion pipeline for one part: parse the
// vendor shapes, normalise them, build the KiCad models, place the 3D model
// and render the library text.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/OpenTraceLab/jlcimport/pkg/component"
	"github.com/OpenTraceLab/jlcimport/pkg/convert"
	"github.com/OpenTraceLab/jlcimport/pkg/coord"
	"github.com/OpenTraceLab/jlcimport/pkg/easyeda"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/footprint"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/symbol"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/version"
	"github.com/OpenTraceLab/jlcimport/pkg/model3d"
)

// DefaultLibName is the library the footprint reference points into.
const DefaultLibName = "JLCImport"

// DefaultModelDir is the directory of the model path written into footprints.
const DefaultModelDir = "3dmodels"

// Options configures a conversion.
type Options struct {
	Format   version.Format
	LibName  string
	ModelDir string
	// NoModel skips model retrieval; placement falls back to the declared
	// offset.
	NoModel bool
	Logger  *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Format.Major == 0 {
		o.Format = version.Default()
	}
	if o.LibName == "" {
		o.LibName = DefaultLibName
	}
	if o.ModelDir == "" {
		o.ModelDir = DefaultModelDir
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Result is the output of one conversion.
type Result struct {
	Component *component.Component
	Name      string

	Footprint     *footprint.Footprint
	FootprintText string

	// Symbol, SymbolNode and SymbolText are empty when the part has no symbol.
	Symbol     *symbol.Symbol
	SymbolNode *sexp.Node
	SymbolText string

	// Placement is set when the footprint declares a model.
	Placement *model3d.Transform
	Branch    model3d.Branch

	// Dropped counts shape records that could not be decoded.
	Dropped int
}

// HasSymbol reports whether a symbol was produced.
func (r *Result) HasSymbol() bool {
	return r.Symbol != nil
}

// stage holds the parts of a conversion built before the model is placed.
type stage struct {
	opts      Options
	comp      *component.Component
	name      string
	footprint *footprint.Footprint
	symbol    *symbol.Symbol
	dropped   int
}

func build(c *component.Component, opts Options) (*stage, error) {
	if c == nil || c.Footprint == nil {
		return nil, component.ErrNoFootprint
	}
	log := opts.Logger.With("part", c.LCSC)
	s := &stage{opts: opts, comp: c, name: c.Name()}

	fpShapes := easyeda.ParseFootprint(c.Footprint.Shapes())
	if fpShapes.Dropped > 0 {
		log.Debug("dropped footprint records", "count", fpShapes.Dropped, "tags", fpShapes.DroppedTags)
	}
	s.dropped += fpShapes.Dropped
	ox, oy := c.Footprint.Origin()
	s.footprint = convert.BuildFootprint(coord.ForFootprint(ox, oy).Records(fpShapes.Records), convert.Options{Logger: log})

	if c.Symbol != nil {
		symShapes := easyeda.ParseSymbol(c.Symbol.Shapes())
		if symShapes.Dropped > 0 {
			log.Debug("dropped symbol records", "count", symShapes.Dropped, "tags", symShapes.DroppedTags)
		}
		s.dropped += symShapes.Dropped
		ox, oy := c.Symbol.Origin()
		s.symbol = convert.BuildSymbol(coord.ForSymbol(ox, oy).Records(symShapes.Records), convert.Options{Logger: log})
	}
	return s, nil
}

func (s *stage) modelUUID() string {
	if s.footprint.ModelRef == nil {
		return ""
	}
	return s.footprint.ModelRef.UUID
}

func (s *stage) finish(vertices []model3d.Vec3) *Result {
	c := s.comp
	format := s.opts.Format
	res := &Result{Component: c, Name: s.name, Dropped: s.dropped}

	description, keywords := c.Description(), c.Keywords()

	var model *footprint.Model
	if ref := s.footprint.ModelRef; ref != nil {
		t, branch := model3d.ComputeTransform(*ref, vertices)
		res.Placement, res.Branch = &t, branch
		s.opts.Logger.Debug("placed model", "part", c.LCSC, "branch", branch, "z", t.Offset.Z)
		if ref.UUID != "" {
			model = &footprint.Model{
				Path:      path.Join(s.opts.ModelDir, s.name+".wrl"),
				Transform: t,
			}
		}
	}

	res.Footprint = s.footprint.With(footprint.Metadata{
		Description: description,
		Keywords:    keywords,
		Datasheet:   c.Datasheet,
		LCSC:        c.LCSC,
	}, model)
	res.FootprintText = footprint.Write(res.Footprint, s.name, footprint.Options{Format: format})

	if s.symbol != nil {
		res.Symbol = s.symbol.With(symbol.Metadata{
			Reference:    c.Prefix,
			Footprint:    s.opts.LibName + ":" + s.name,
			Datasheet:    c.Datasheet,
			Description:  description,
			LCSC:         c.LCSC,
			Manufacturer: c.Manufacturer,
			MPN:          c.MPN,
			Keywords:     keywords,
		})
		res.SymbolNode = symbol.Write(res.Symbol, s.name, symbol.Options{Format: format})
		res.SymbolText = symbol.WriteLibrary(format, res.SymbolNode)
	}
	return res
}

// Convert runs the pipeline on a component that is already in memory.
// obj is the model's OBJ source and may be nil. A model that cannot be read
// falls back to the declared placement.
func Convert(c *component.Component, obj []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	s, err := build(c, opts)
	if err != nil {
		return nil, err
	}
	return s.finish(readVertices(opts.Logger, obj)), nil
}

// Import fetches a part and converts it. The model is fetched only when the
// footprint references one.
func Import(ctx context.Context, f Fetcher, id string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	c, err := f.FetchComponent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", id, err)
	}
	s, err := build(c, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	var obj []byte
	if uuid := s.modelUUID(); uuid != "" && !opts.NoModel {
		obj, err = f.FetchModel(ctx, id, uuid)
		switch {
		case errors.Is(err, ErrNotFound):
			opts.Logger.Debug("no model geometry", "part", id, "uuid", uuid)
		case err != nil:
			return nil, fmt.Errorf("failed to fetch model for %s: %w", id, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.finish(readVertices(opts.Logger, obj)), nil
}

func readVertices(log *slog.Logger, obj []byte) []model3d.Vec3 {
	if len(obj) == 0 {
		return nil
	}
	verts, err := model3d.ParseOBJ(bytes.NewReader(obj))
	if err != nil {
		log.Warn("unreadable model geometry, using declared placement", "error", err)
		return nil
	}
	return verts
}
