// Package cmd implements the command-line interface for slideplay.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/slideplay/slideplay/color"
	"github.com/slideplay/slideplay/history"
	"github.com/slideplay/slideplay/icon"
	"github.com/slideplay/slideplay/style"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringP("filter", "f", "", "Fuzzily filter replays by scenario name")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	historyCmd.Flags().BoolP("triggers", "t", false, "Include the trigger transcript of each replay")

	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists the saved scenario replay summaries.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved scenario replay summaries",
	Run: func(cmd *cobra.Command, args []string) {
		runs, err := history.Search(lo.Must(cmd.Flags().GetString("filter")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(runs))
			return
		}

		if len(runs) == 0 {
			cmd.Println("No saved replays")
			return
		}

		withTriggers := lo.Must(cmd.Flags().GetBool("triggers"))
		for _, run := range runs {
			cmd.Printf(
				"%s %s  %s\n",
				icon.Get(icon.Scene),
				style.Fg(color.Purple)(run.String()),
				style.Faint(run.RanAt.Format("2006-01-02 15:04")),
			)

			if withTriggers {
				for _, entry := range run.Triggers {
					cmd.Println(style.Faint(fmt.Sprintf("  %6dms  %s", entry.AtMs, entry.Name)))
				}
			}
		}
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

// historyClearCmd drops every saved replay summary.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved replay summaries",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(history.Clear())
		fmt.Printf(
			"%s history cleared\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}
