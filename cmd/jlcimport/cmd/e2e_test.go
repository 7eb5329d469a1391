package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	for _, dir := range []string{"../../../testdata", "../../testdata"} {
		if _, err := os.Stat(filepath.Join(dir, "C6186_footprint.json")); err == nil {
			return dir
		}
	}
	t.Skip("testdata not found")
	return ""
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestConvertE2E(t *testing.T) {
	data := testdataDir(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantVersion string
	}{
		{
			name:        "kicad 9",
			args:        []string{"C6186", "--kicad-version", "9"},
			wantContain: []string{"Converted parts (1)", "AMS1117-3.3", "4 pads, 4 pins, model: top", "1 ok, 0 failed"},
			wantVersion: "(version 20241229)",
		},
		{
			name:        "kicad 8 by full version",
			args:        []string{"C6186", "--kicad-version", "8.0.4"},
			wantContain: []string{"1 ok, 0 failed"},
			wantVersion: "(version 20240108)",
		},
		{
			name:        "all parts matching include",
			args:        []string{"--include", "C6*", "--kicad-version", "9"},
			wantContain: []string{"Converted parts (1)"},
			wantVersion: "(version 20241229)",
		},
		{
			name:    "missing part",
			args:    []string{"C999999", "--kicad-version", "9"},
			wantErr: true,
		},
		{
			name:    "unsupported version",
			args:    []string{"C6186", "--kicad-version", "7"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			args := append([]string{"convert", "--data-dir", data, "-o", out, "--include", ""}, tt.args...)
			output, err := execute(t, args...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err, output)
			for _, want := range tt.wantContain {
				assert.Contains(t, output, want)
			}

			fp, err := os.ReadFile(filepath.Join(out, "AMS1117-3.3.kicad_mod"))
			require.NoError(t, err)
			assert.Contains(t, string(fp), tt.wantVersion)
			assert.Contains(t, string(fp), `(model "3dmodels/AMS1117-3.3.wrl"`)

			sym, err := os.ReadFile(filepath.Join(out, "AMS1117-3.3.kicad_sym"))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(sym), "(kicad_symbol_lib"))
		})
	}
}

func TestInspectE2E(t *testing.T) {
	data := testdataDir(t)
	out := t.TempDir()
	_, err := execute(t, "convert", "C6186", "--data-dir", data, "-o", out, "--include", "", "--kicad-version", "9")
	require.NoError(t, err)

	tests := []struct {
		name        string
		file        string
		wantContain []string
	}{
		{
			name:        "footprint",
			file:        "AMS1117-3.3.kicad_mod",
			wantContain: []string{"Footprint: AMS1117-3.3 (version 20241229, smd)", "Pads: 4", "smd", "Model: 3dmodels/AMS1117-3.3.wrl offset (0, 0, 1.6)"},
		},
		{
			name:        "symbol library",
			file:        "AMS1117-3.3.kicad_sym",
			wantContain: []string{"generator JLCImport 1.0", "AMS1117-3.3: 4 pins", "Footprint: JLCImport:AMS1117-3.3", "power_in"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, "inspect", filepath.Join(out, tt.file))
			require.NoError(t, err, output)
			for _, want := range tt.wantContain {
				assert.Contains(t, output, want)
			}
		})
	}

	bad := filepath.Join(out, "bad.kicad_mod")
	require.NoError(t, os.WriteFile(bad, []byte("(footprint \"x\""), 0o644))
	_, err = execute(t, "inspect", bad)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "jlcimport "+Version)
	assert.Contains(t, output, "KiCad 8: footprint 20240108, symbol 20231120")
	assert.Contains(t, output, "KiCad 9: footprint 20241229, symbol 20241209 (default)")
}
