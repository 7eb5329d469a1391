package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tool version and supported KiCad formats",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "jlcimport %s\n", Version)
		for _, major := range version.Supported() {
			f, err := version.Lookup(major)
			if err != nil {
				continue
			}
			marker := ""
			if major == version.DefaultMajor {
				marker = " (default)"
			}
			fmt.Fprintf(out, "  %s: footprint %d, symbol %d%s\n", f, f.FootprintVersion, f.SymbolVersion, marker)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
