package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDialogueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialogue",
		Short: "Add and delete dialogue lines",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <scene> <character> <text>",
			Short: "Append a dialogue line to a scene",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.open()
				if err != nil {
					return err
				}
				res, err := st.AddDialogue(args[0], args[1], args[2])
				if err := outcome(res, err, fmt.Sprintf("scene %q", args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added dialogue to %q\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <scene> <index>",
			Short: "Delete a dialogue line by its zero-based index",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				st, err := a.open()
				if err != nil {
					return err
				}
				res, err := st.DeleteDialogue(args[0], index)
				if err := outcome(res, err, fmt.Sprintf("scene %q dialogue %d", args[0], index)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted dialogue %d from %q\n", index, args[0])
				return nil
			},
		},
	)
	return cmd
}

func newChoiceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "choice",
		Short: "Add and delete choices",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <scene> <text> <next-scene>",
			Short: "Append a choice; the next scene does not have to exist",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.open()
				if err != nil {
					return err
				}
				res, err := st.AddChoice(args[0], args[1], args[2])
				if err := outcome(res, err, fmt.Sprintf("scene %q", args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added choice to %q\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <scene> <index>",
			Short: "Delete a choice by its zero-based index",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				st, err := a.open()
				if err != nil {
					return err
				}
				res, err := st.DeleteChoice(args[0], index)
				if err := outcome(res, err, fmt.Sprintf("scene %q choice %d", args[0], index)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted choice %d from %q\n", index, args[0])
				return nil
			},
		},
	)
	return cmd
}
