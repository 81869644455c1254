package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/dwgkit/dwg/bits"
)

var knownSentinels = []struct {
	name string
	s    bits.Sentinel
}{
	{"header-end", bits.SentinelHeaderEnd},
	{"picture-begin", bits.SentinelPictureBegin},
	{"picture-end", bits.SentinelPictureEnd},
	{"variables-begin", bits.SentinelVariablesBegin},
	{"variables-end", bits.SentinelVariablesEnd},
	{"classes-begin", bits.SentinelClassesBegin},
	{"classes-end", bits.SentinelClassesEnd},
	{"second-header-begin", bits.SentinelSecondHeaderBegin},
	{"second-header-end", bits.SentinelSecondHeaderEnd},
}

func init() {
	rootCmd.AddCommand(newSentinelsCmd())
}

func newSentinelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sentinels <file>",
		Short: "Locate the section sentinels in a file",
		Long: `The sentinels command searches a file for every known 16-byte section
marker and prints the byte offset of the first occurrence of each.

Example:
  dwgbits sentinels drawing.dwg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSentinels(args)
		},
	}
}

type sentinelView struct {
	Name   string `json:"name" yaml:"name"`
	Offset int64  `json:"offset" yaml:"offset"`
}

func runSentinels(args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	data, release, err := loadFile(args[0])
	if err != nil {
		return err
	}
	defer release()

	c := bits.FromBytes(data, bits.Options{})
	found := []sentinelView{}
	for _, k := range knownSentinels {
		if c.SearchSentinel(k.s) {
			found = append(found, sentinelView{Name: k.name, Offset: c.Byte() - int64(len(k.s))})
		}
	}
	if structured() {
		return printStructured(found)
	}
	if len(found) == 0 {
		printInfo("no sentinels found\n")
	}
	for _, f := range found {
		printInfo("%#08x  %s\n", f.Offset, f.Name)
	}
	return nil
}
