package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jwebster45206/script-editor/pkg/script"
	"github.com/spf13/cobra"
)

func newScenesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List, view, add and delete scenes",
	}

	var asJSON bool
	view := &cobra.Command{
		Use:   "view <scene>",
		Short: "Show a scene's dialogue and choices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			scene, ok := st.ViewScene(args[0])
			if !ok {
				return fmt.Errorf("scene %q not found", args[0])
			}
			if asJSON {
				data, err := json.MarshalIndent(scene, "", "    ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			printScene(cmd.OutOrStdout(), scene)
			return nil
		},
	}
	view.Flags().BoolVar(&asJSON, "json", false, "Print the scene as JSON")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List scene names in script order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.open()
				if err != nil {
					return err
				}
				for _, name := range st.ListScenes() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		view,
		&cobra.Command{
			Use:   "add <scene>",
			Short: "Add an empty scene",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.open()
				if err != nil {
					return err
				}
				res, err := st.AddScene(args[0])
				if err := outcome(res, err, fmt.Sprintf("scene %q", args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added scene %q\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <scene>",
			Short: "Delete a scene; choices leading to it are kept",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.open()
				if err != nil {
					return err
				}
				res, err := st.DeleteScene(args[0])
				if err := outcome(res, err, fmt.Sprintf("scene %q", args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted scene %q\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

// printScene writes the scene the way the editor panel shows it.
func printScene(w io.Writer, scene script.Scene) {
	fmt.Fprintln(w, "Dialogue:")
	for i, line := range scene.Dialogue {
		fmt.Fprintf(w, "  %d. %s: %s\n", i, line.Character, line.Text)
	}
	fmt.Fprintln(w, "Choices:")
	for i, c := range scene.Choices {
		fmt.Fprintf(w, "  %d. %s %s %s\n", i, c.Text, choiceArrow, c.NextScene)
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q is not a number", s)
	}
	return i, nil
}
