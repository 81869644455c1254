package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/codepage"
	"github.com/joshuapare/dwgkit/dwg/diag"
	"github.com/joshuapare/dwgkit/dwg/version"
	"github.com/joshuapare/dwgkit/internal/mmfile"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	outFormat  string
	traceLevel string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "dwgbits",
	Short: "Inspect the bit-level encoding of DWG drawing files",
	Long: `dwgbits decodes the primitive bit fields, checksums, sentinels,
file header and object map of DWG drawings. It is a low-level tool for
debugging readers and writers of the format.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().
		StringVarP(&outFormat, "format", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().
		StringVar(&traceLevel, "trace", "silent", "Decoder trace level (silent..insane or 0..5)")
	rootCmd.PersistentFlags().
		StringVar(&logFile, "log-file", "", "Write trace output to this file instead of stderr")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// structured reports whether output goes through printStructured.
func structured() bool {
	return outFormat == "json" || outFormat == "yaml"
}

// printStructured writes v as JSON or YAML depending on --format.
func printStructured(v any) error {
	switch outFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", outFormat)
}

func checkFormat() error {
	switch outFormat {
	case "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", outFormat)
}

// newLogger builds the decoder trace logger from --trace and --log-file.
// The returned close function is never nil.
func newLogger() (*diag.Logger, func() error, error) {
	lvl, err := diag.ParseLevel(traceLevel)
	if err != nil {
		return nil, nil, err
	}
	if lvl == diag.Silent {
		return nil, func() error { return nil }, nil
	}
	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	return diag.NewText(lvl, w), closeFn, nil
}

// codecFlags are shared by commands that decode fields.
type codecFlags struct {
	version  string
	codepage string
	strict   bool
	imports  bool
}

func (f *codecFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.version, "dwg-version", "r2000", "Format version of the data (r2000, AC1015, ...)")
	cmd.Flags().StringVar(&f.codepage, "codepage", "ANSI_1252", "Codepage of narrow text")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject undefined handle codes and unterminated text")
	cmd.Flags().BoolVar(&f.imports, "import", false, "Read T fields in their RL-length import form")
}

func (f *codecFlags) options(log *diag.Logger) (bits.Options, error) {
	v, err := version.Parse(f.version)
	if err != nil {
		return bits.Options{}, err
	}
	cp, err := codepage.Parse(f.codepage)
	if err != nil {
		return bits.Options{}, err
	}
	opts := bits.Options{Version: v, Codepage: cp, Log: log}
	if f.strict {
		opts.Flags |= bits.Strict
	}
	if f.imports {
		opts.Flags |= bits.Import
	}
	return opts, nil
}

// loadFile maps path and reports its size in verbose mode.
func loadFile(path string) ([]byte, mmfile.Release, error) {
	printVerbose("Opening drawing: %s\n", path)
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, release, fmt.Errorf("failed to open %s: %w", path, err)
	}
	printVerbose("  %d bytes\n", len(data))
	return data, release, nil
}
