package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the terminal editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewEditorUI(st, a.log),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}
}
