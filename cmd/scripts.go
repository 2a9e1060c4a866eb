// Package cmd implements the command-line interface for slideplay.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/slideplay/slideplay/constant"
	"github.com/slideplay/slideplay/filesystem"
	"github.com/slideplay/slideplay/icon"
	"github.com/slideplay/slideplay/script"
	"github.com/slideplay/slideplay/util"
	"github.com/slideplay/slideplay/where"
)

func init() {
	rootCmd.AddCommand(scriptsCmd)
}

// scriptsCmd serves as the parent command for Lua trigger handler scripts.
var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage Lua trigger handler scripts",
}

func init() {
	scriptsCmd.AddCommand(scriptsGenCmd)

	scriptsGenCmd.Flags().StringP("name", "n", "", "Name of the new trigger handler")
	lo.Must0(scriptsGenCmd.MarkFlagRequired("name"))
}

// scriptsGenCmd scaffolds a boilerplate Lua trigger handler script.
var scriptsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua trigger handler using a predefined template",
	Long:  `Generate a boilerplate Lua trigger handler with the required entry point and metadata.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		var author string
		usr, err := user.Current()
		if err == nil {
			author = usr.Username
		} else {
			author = "Anonymous"
		}

		s := struct {
			Name        string
			Author      string
			OnTriggerFn string
		}{
			Name:        lo.Must(cmd.Flags().GetString("name")),
			Author:      author,
			OnTriggerFn: constant.OnTriggerFn,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("script").Funcs(funcMap).Parse(constant.ScriptTemplate)
		handleErr(err)

		target := filepath.Join(where.Scenarios(), util.SanitizeFilename(s.Name)+".lua")
		f, err := filesystem.API().Create(target)
		handleErr(err)
		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Printf("%s scaffolded %s\n", icon.Get(icon.Lua), target)
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsCheckCmd)
}

// scriptsCheckCmd validates that a Lua script defines the handler entry point.
var scriptsCheckCmd = &cobra.Command{
	Use:     "check [file]",
	Short:   "Validate a Lua trigger handler script",
	Args:    cobra.ExactArgs(1),
	Example: "  slideplay scripts check triggers.lua",
	Run: func(cmd *cobra.Command, args []string) {
		handler, err := script.Load(args[0], script.NopControls{})
		handleErr(err)
		defer handler.Close()

		fmt.Printf("%s %s defines %s\n", icon.Get(icon.Success), handler.Name(), constant.OnTriggerFn)
	},
}
