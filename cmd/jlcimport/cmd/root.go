package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenTraceLab/jlcimport/pkg/importer"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/version"
)

// Version of the jlcimport tool.
const Version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "jlcimport",
	Short: "Convert EasyEDA/LCSC parts into KiCad libraries",
	Long: `Convert EasyEDA component data into KiCad footprints, symbols and
3D model placements.

Parts are read from a data directory holding <id>_footprint.json,
<id>_symbol.json and <id>_model.obj files.

Examples:
  jlcimport convert C6186 C5213 --data-dir testdata -o out
  jlcimport convert --data-dir testdata --include 'C5*' --kicad-version 8
  jlcimport inspect out/AMS1117-3.3.kicad_mod`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("kicad-version", "", "target KiCad version (8 or 9, default 9)")
	flags.String("lib-name", importer.DefaultLibName, "library name used in symbol footprint references")
	flags.StringP("output", "o", ".", "output directory")
	flags.String("data-dir", "testdata", "directory holding part data files")
	flags.Int("concurrency", runtime.NumCPU(), "parts converted in parallel")
	flags.String("include", "", "glob selecting part ids when none are given")
	flags.Bool("no-model", false, "ignore model geometry and use declared placement")
	flags.BoolP("verbose", "v", false, "verbose output")

	for _, key := range []string{"kicad-version", "lib-name", "output", "data-dir", "concurrency", "include", "no-model", "verbose"} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	// Env vars: JLCIMPORT_KICAD_VERSION, JLCIMPORT_DATA_DIR, etc.
	viper.SetEnvPrefix("JLCIMPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(readConfigFile)
}

func readConfigFile() {
	viper.SetConfigName(".jlcimport")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	_ = viper.ReadInConfig() // Config file is optional.
}

// config is the resolved configuration shared by all commands.
type config struct {
	Format      version.Format
	LibName     string
	Output      string
	DataDir     string
	Concurrency int
	Include     glob.Glob // nil matches everything
	NoModel     bool
	Logger      *slog.Logger
}

func loadConfig() (*config, error) {
	format, err := version.Resolve(viper.GetString("kicad-version"))
	if err != nil {
		return nil, err
	}

	cfg := &config{
		Format:      format,
		LibName:     viper.GetString("lib-name"),
		Output:      viper.GetString("output"),
		DataDir:     viper.GetString("data-dir"),
		Concurrency: viper.GetInt("concurrency"),
		NoModel:     viper.GetBool("no-model"),
		Logger:      newLogger(viper.GetBool("verbose")),
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if pattern := viper.GetString("include"); pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		cfg.Include = g
	}
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (c *config) importOptions() importer.Options {
	return importer.Options{
		Format:  c.Format,
		LibName: c.LibName,
		NoModel: c.NoModel,
		Logger:  c.Logger,
	}
}
