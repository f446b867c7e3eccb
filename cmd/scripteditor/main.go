package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jwebster45206/script-editor/internal/config"
	"github.com/jwebster45206/script-editor/internal/logger"
	"github.com/jwebster45206/script-editor/pkg/store"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg        *config.Config
	log        *slog.Logger
	scriptPath string
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		var perr *store.ParseError
		var werr *store.WriteError
		if a.log != nil && (errors.As(err, &perr) || errors.As(err, &werr)) {
			logger.WithError(logger.WithScript(a.log, a.scriptPath), err).Error("Script I/O failed")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "scripteditor",
		Short: "Edit branching-dialogue scripts",
		Long: `Edit a branching-dialogue script stored as JSON.

A script maps scene names to scenes. Each scene has an ordered list of
dialogue lines and an ordered list of choices that lead to other scenes.
Every change is written to the file immediately.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg == nil {
				a.cfg = config.Load()
			}
			if a.log == nil {
				a.log = logger.Setup(a.cfg)
			}
			if a.scriptPath == "" {
				a.scriptPath = a.cfg.ScriptPath
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.scriptPath, "script", "s", "", "Script file (default $SCRIPT_PATH or ./vn_script.json)")

	root.AddCommand(
		newInitCmd(a),
		newScenesCmd(a),
		newDialogueCmd(a),
		newChoiceCmd(a),
		newCheckCmd(a),
		newExportCmd(a),
		newPublishCmd(a),
		newEditCmd(a),
	)
	return root
}

func (a *app) open() (*store.Store, error) {
	st, err := store.Open(a.scriptPath)
	if err != nil {
		return nil, err
	}
	a.log.Debug("Script opened", "script", st.Path(), "scenes", len(st.ListScenes()))
	return st, nil
}

// outcome converts a store result into an error for the command line.
func outcome(res store.Result, err error, subject string) error {
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%s: %s", subject, res)
	}
	return nil
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty script file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Create(a.scriptPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", st.Path())
			return nil
		},
	}
}
