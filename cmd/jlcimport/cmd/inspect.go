package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	chewsexp "github.com/chewxy/sexp"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/footprint"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp/kicadsexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/symbol"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarise a .kicad_mod or .kicad_sym file",
	Long: `Parse a footprint or symbol library file and print what it contains.
The file is also checked with an independent S-expression parser.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	out := cmd.OutOrStdout()

	// The second parser catches text our own reader is lenient about.
	exprs, err := chewsexp.ParseString(string(data))
	if err != nil {
		return fmt.Errorf("%s is not a valid S-expression: %w", args[0], err)
	}
	fmt.Fprintf(out, "File: %s (%d bytes, %d top-level expressions)\n", args[0], len(data), len(exprs))

	kind, err := documentKind(data)
	if err != nil {
		return err
	}
	switch kind {
	case "footprint":
		fp, err := footprint.Read(bytes.NewReader(data))
		if err != nil {
			return err
		}
		printFootprint(out, fp)
	case "kicad_symbol_lib":
		lib, err := symbol.ReadLibrary(bytes.NewReader(data))
		if err != nil {
			return err
		}
		printLibrary(out, lib)
	default:
		return fmt.Errorf("unsupported document type %q", kind)
	}
	return nil
}

func documentKind(data []byte) (string, error) {
	exprs, err := kicadsexp.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if len(exprs) == 0 {
		return "", fmt.Errorf("empty document")
	}
	return sexp.GetNodeName(exprs[0])
}

func printFootprint(w io.Writer, fp *footprint.Footprint) {
	fmt.Fprintf(w, "Footprint: %s (version %d, %s)\n", fp.Name, fp.Version, fp.Attr)
	if fp.Meta.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", fp.Meta.Description)
	}
	fmt.Fprintf(w, "  Pads: %d\n", len(fp.Pads))

	byType := map[string]int{}
	for _, p := range fp.Pads {
		byType[p.Type]++
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "    %-14s %d\n", t, byType[t])
	}

	fmt.Fprintf(w, "  Graphics: %d\n", len(fp.Graphics))
	bbox := fp.GetBoundingBox()
	if !bbox.IsEmpty() {
		fmt.Fprintf(w, "  Size: %.2f x %.2f mm\n", bbox.Width(), bbox.Height())
	}
	if fp.Model != nil {
		off := fp.Model.Transform.Offset
		fmt.Fprintf(w, "  Model: %s offset (%g, %g, %g)\n", fp.Model.Path, off.X, off.Y, off.Z)
	}
}

func printLibrary(w io.Writer, lib *symbol.Library) {
	fmt.Fprintf(w, "Symbol library: version %d, generator %s", lib.Version, lib.Generator)
	if lib.GeneratorVersion != "" {
		fmt.Fprintf(w, " %s", lib.GeneratorVersion)
	}
	fmt.Fprintln(w)

	for _, s := range lib.Symbols {
		fmt.Fprintf(w, "  %s: %d pins, %d rectangles, %d polylines\n", s.Name, len(s.Pins), len(s.Rectangles), len(s.Polylines))
		if s.Meta.Footprint != "" {
			fmt.Fprintf(w, "    Footprint: %s\n", s.Meta.Footprint)
		}
		for _, p := range s.Pins {
			fmt.Fprintf(w, "    pin %-4s %-12s %-14s at (%g, %g) %g°\n", p.Number, p.Name, p.Type, p.Position.X, p.Position.Y, float64(p.Angle))
		}
	}
}
