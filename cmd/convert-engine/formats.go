package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/convert-engine/pkg/types"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and conversion pairs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "%-8s %-22s %s\n", "FORMAT", "EXTENSIONS", "CONVERTS TO")
		for _, f := range types.Formats() {
			targets := make([]string, 0, len(f.Targets()))
			for _, t := range f.Targets() {
				targets = append(targets, string(t))
			}
			fmt.Fprintf(os.Stdout, "%-8s %-22s %s\n",
				f, strings.Join(f.Extensions(), ", "), strings.Join(targets, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
