package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/internal/format"
)

func init() {
	rootCmd.AddCommand(newHeaderCmd())
}

func newHeaderCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "header <file>",
		Short: "Print the file header and section locators",
		Long: `The header command decodes the fixed file header of an R13 to R2000
drawing: version, codepage and the locator records of its sections.

Example:
  dwgbits header drawing.dwg
  dwgbits header drawing.dwg --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeader(args, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on a checksum mismatch")
	return cmd
}

func runHeader(args []string, strict bool) error {
	if err := checkFormat(); err != nil {
		return err
	}
	log, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	data, release, err := loadFile(args[0])
	if err != nil {
		return err
	}
	defer release()

	opts := bits.Options{Log: log}
	if strict {
		opts.Flags = bits.Strict
	}
	h, err := format.ParseHeader(bits.FromBytes(data, opts))
	if err != nil {
		return err
	}
	if structured() {
		return printStructured(h)
	}
	printInfo("version      %s (%s)\n", h.Version, h.Version.Magic())
	printInfo("maintenance  %d\n", h.Maintenance)
	printInfo("codepage     %s\n", h.Codepage)
	printInfo("image        %#x\n", h.ImageAddress)
	printInfo("crc          %s\n", map[bool]string{true: "ok", false: "MISMATCH"}[h.CRCValid])
	printInfo("sections:\n")
	for _, r := range h.Records {
		printInfo("  %-10s %#08x  %d bytes\n", r.Number, r.Address, r.Size)
	}
	return nil
}
