package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"postgen/pkg/config"
	"postgen/pkg/license"
)

var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "List supported license identifiers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "📄 Supported licenses:")
		for _, id := range license.Identifiers() {
			fmt.Fprintf(out, "  %s\n", id)
		}
		fmt.Fprintf(out, "  %s (no LICENSE file)\n", config.NoLicense)
	},
}

func init() {
	rootCmd.AddCommand(licensesCmd)
}
