// Package cmd implements the command-line interface for slideplay.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/slideplay/slideplay/filesystem"
	"github.com/slideplay/slideplay/history"
	"github.com/slideplay/slideplay/key"
	"github.com/slideplay/slideplay/scenario"
	"github.com/slideplay/slideplay/settings"
	"github.com/slideplay/slideplay/sim"
	"github.com/slideplay/slideplay/where"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("json", "j", false, "Format the replay output as a JSON object")
	runCmd.Flags().StringP("until", "u", "", "Stop the replay once a trigger with this exact name has fired")
	runCmd.Flags().IntP("max-steps", "m", 0, "Truncate the timeline after this many steps")
	runCmd.Flags().StringP("output", "o", "", "Specify a file path to write the replay output")
}

// runCmd replays a scenario file headlessly and reports the fired triggers.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Replay a scenario file without the interactive interface",
	Long: `Instantiate a scenario's document against a fresh lifecycle engine and replay
its timeline, printing every fired trigger with its simulated timestamp.
Without an argument, prompts for one of the scenarios in the scenarios directory.`,
	Args:    cobra.MaximumNArgs(1),
	Example: "  slideplay run stall.toml --json",
	Run: func(cmd *cobra.Command, args []string) {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			path = promptScenario()
		}

		s, err := scenario.Load(path)
		handleErr(err)

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		}

		maxSteps := mo.None[int]()
		if n := lo.Must(cmd.Flags().GetInt("max-steps")); n > 0 {
			maxSteps = mo.Some(n)
		}

		until := mo.None[string]()
		if u := lo.Must(cmd.Flags().GetString("until")); u != "" {
			until = mo.Some(u)
		}

		options := &sim.Options{
			Out:      writer,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Table:    settings.FromGlobal(),
			MaxSteps: maxSteps,
			Until:    until,
		}

		result, err := sim.Run(s, options)
		handleErr(err)

		if viper.GetBool(key.HistorySaveOnRun) {
			handleErr(history.Save(path, result))
		}
	},
}

func errNoScenarios() error {
	return fmt.Errorf("no scenario files found in %s", where.Scenarios())
}

// promptScenario asks the user to pick one of the scenario files in the
// scenarios directory.
func promptScenario() string {
	entries, err := filesystem.API().ReadDir(where.Scenarios())
	handleErr(err)

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".toml" {
			paths = append(paths, filepath.Join(where.Scenarios(), entry.Name()))
		}
	}

	if len(paths) == 0 {
		handleErr(errNoScenarios())
	}

	prompt := survey.Select{
		Message: "Select a scenario to replay",
		Options: paths,
	}

	var choice string
	handleErr(survey.AskOne(&prompt, &choice))
	return choice
}
