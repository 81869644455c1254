package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/dwgkit/dwg/version"
)

var (
	toolVersion = "dev"
	commit      = "none"
	date        = "unknown"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	var formats bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information or the DWG format table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if formats {
				return runFormats()
			}
			fmt.Printf("dwgbits %s\n", toolVersion)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			return nil
		},
	}
	cmd.Flags().BoolVar(&formats, "formats", false, "List known DWG format versions")
	return cmd
}

type formatView struct {
	Release          string `json:"release" yaml:"release"`
	Magic            string `json:"magic" yaml:"magic"`
	RelativeHandles  bool   `json:"relative_handles" yaml:"relative_handles"`
	WideStrings      bool   `json:"wide_strings" yaml:"wide_strings"`
	PackedObjectType bool   `json:"packed_object_type" yaml:"packed_object_type"`
}

func runFormats() error {
	if err := checkFormat(); err != nil {
		return err
	}
	var views []formatView
	for v := version.R1_1; v < version.After; v++ {
		views = append(views, formatView{
			Release:          v.String(),
			Magic:            v.Magic(),
			RelativeHandles:  v.RelativeHandles(),
			WideStrings:      v.WideStrings(),
			PackedObjectType: v.PackedObjectType(),
		})
	}
	if structured() {
		return printStructured(views)
	}
	yesNo := map[bool]string{true: "yes", false: "-"}
	printInfo("%-8s %-7s %-9s %-5s %s\n", "RELEASE", "MAGIC", "RELATIVE", "WIDE", "PACKED")
	for _, f := range views {
		printInfo("%-8s %-7s %-9s %-5s %s\n", f.Release, f.Magic,
			yesNo[f.RelativeHandles], yesNo[f.WideStrings], yesNo[f.PackedObjectType])
	}
	return nil
}
