package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

var offsetsCmd = &cobra.Command{
	Use:   "offsets [field...]",
	Short: "Print the region's field offsets",
	Long: `Print the byte offset and width of every field in the shared region, in
address order. Hosts that cannot link against this module build their views
from this table. Naming fields limits the table to those fields.

Examples:
  monkey offsets > offsets.yaml
  monkey offsets control.seed commands_seq`,
	Run: runOffsets,
}

func runOffsets(_ *cobra.Command, args []string) {
	fields, err := selectOffsets(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	table := struct {
		Size   int                  `yaml:"size"`
		Align  int                  `yaml:"align"`
		Fields []layout.FieldOffset `yaml:"fields"`
	}{
		Size:   layout.Size,
		Align:  layout.Align,
		Fields: fields,
	}

	out, err := yaml.Marshal(table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding offsets: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

// selectOffsets returns the full table for no names, else the named entries
// in argument order.
func selectOffsets(names []string) ([]layout.FieldOffset, error) {
	if len(names) == 0 {
		return layout.Offsets(), nil
	}
	out := make([]layout.FieldOffset, 0, len(names))
	for _, name := range names {
		f, ok := layout.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		out = append(out, f)
	}
	return out, nil
}
