package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/jlcimport/internal/report"
	"github.com/OpenTraceLab/jlcimport/pkg/importer"
)

var convertCmd = &cobra.Command{
	Use:   "convert [id...]",
	Short: "Convert parts into .kicad_mod and .kicad_sym files",
	Long: `Convert parts from the data directory. With no ids, every part in the
directory is converted, optionally filtered by --include.

For each part <name>.kicad_mod is written to the output directory, and
<name>.kicad_sym when the part has a symbol.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher := importer.NewDirFetcher(cfg.DataDir)
	ids, err := selectIDs(fetcher, cfg, args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no parts to convert in %s", cfg.DataDir)
	}
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rows := convertAll(cmd.Context(), fetcher, cfg, ids)
	fmt.Fprint(cmd.OutOrStdout(), report.Summary(rows))

	if failed := report.Failed(rows); failed > 0 {
		return fmt.Errorf("%d of %d parts failed", failed, len(rows))
	}
	return nil
}

func selectIDs(f *importer.DirFetcher, cfg *config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	all, err := f.IDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", cfg.DataDir, err)
	}
	if cfg.Include == nil {
		return all, nil
	}
	var ids []string
	for _, id := range all {
		if cfg.Include.Match(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// convertAll converts parts concurrently. A failing part does not stop the
// others; its error is kept in its row.
func convertAll(ctx context.Context, f importer.Fetcher, cfg *config, ids []string) []report.Row {
	if ctx == nil {
		ctx = context.Background()
	}
	rows := make([]report.Row, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			rows[i] = convertOne(ctx, f, cfg, id)
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

func convertOne(ctx context.Context, f importer.Fetcher, cfg *config, id string) report.Row {
	row := report.Row{ID: id}

	res, err := importer.Import(ctx, f, id, cfg.importOptions())
	if err != nil {
		row.Err = err
		return row
	}
	row.Name = res.Name
	row.Pads = len(res.Footprint.Pads)
	row.Dropped = res.Dropped
	row.Branch = string(res.Branch)

	fpPath := filepath.Join(cfg.Output, res.Name+".kicad_mod")
	if err := os.WriteFile(fpPath, []byte(res.FootprintText), 0o644); err != nil {
		row.Err = fmt.Errorf("failed to write footprint: %w", err)
		return row
	}
	cfg.Logger.Debug("saved", "path", fpPath)

	if res.HasSymbol() {
		row.HasSym = true
		row.Pins = len(res.Symbol.Pins)
		symPath := filepath.Join(cfg.Output, res.Name+".kicad_sym")
		if err := os.WriteFile(symPath, []byte(res.SymbolText), 0o644); err != nil {
			row.Err = fmt.Errorf("failed to write symbol: %w", err)
			return row
		}
		cfg.Logger.Debug("saved", "path", symPath)
	}
	return row
}
