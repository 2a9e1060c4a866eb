// Package cmd implements the command-line interface for slideplay.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/slideplay/slideplay/scenario"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd generates the JSON schema of the scenario file format.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the scenario file format",
	Long:  "Generate the JSON schema of the scenario file format, for editor integration and external validation.",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(scenario.Schema()))
	},
}
