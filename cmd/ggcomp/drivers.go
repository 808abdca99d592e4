package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/ggcomp/backend"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List registered compositor drivers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def := ""
		if d := backend.Default(); d != nil {
			def = d.Name()
		}
		for _, name := range backend.Available() {
			mark := " "
			if name == def {
				mark = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(driversCmd)
}
