package main

import (
	"fmt"
	"os"

	"github.com/jwebster45206/script-editor/pkg/script"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the script as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = script.Encode(st.Snapshot())
			case "yaml", "yml":
				data, err = script.EncodeYAML(st.Snapshot())
			default:
				return fmt.Errorf("unknown format %q (supported: json, yaml)", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.log.Info("Script exported", "script", st.Path(), "output", output, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
