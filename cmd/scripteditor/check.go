package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/script-editor/internal/watcher"
	"github.com/jwebster45206/script-editor/pkg/check"
	"github.com/jwebster45206/script-editor/pkg/store"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		strict bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report dangling choices, unreachable scenes and look-alike names",
		Long: `Check the script for constructs the format allows but that are usually
mistakes:

- choices whose next scene does not exist
- scenes no choice leads to (the first scene is the entry point)
- scene names that differ only by case or surrounding whitespace
- scenes with no dialogue and no choices

With --watch the check re-runs every time the script file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return runCheckWatch(cmd, a, asJSON)
			}
			report, err := runCheck(cmd.OutOrStdout(), a.scriptPath, asJSON)
			if err != nil {
				return err
			}
			if strict && !report.Clean() {
				return fmt.Errorf("%d issue(s) found", len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any issue is found")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run the check whenever the script changes")
	return cmd
}

func runCheck(w io.Writer, path string, asJSON bool) (check.Report, error) {
	st, err := store.Open(path)
	if err != nil {
		return check.Report{}, err
	}

	report := check.Run(st.Snapshot())
	if asJSON {
		if report.Issues == nil {
			report.Issues = []check.Issue{}
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return report, err
		}
		fmt.Fprintln(w, string(data))
		return report, nil
	}

	if report.Clean() {
		fmt.Fprintf(w, "%s: no issues\n", path)
		return report, nil
	}
	for _, issue := range report.Issues {
		fmt.Fprintln(w, issue.String())
	}
	return report, nil
}

func runCheckWatch(cmd *cobra.Command, a *app, asJSON bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(a.scriptPath, 200*time.Millisecond, a.log)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = w.Close() // Ignore error in defer
	}()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.scriptPath, err)
	}

	a.log.Info("Watching script", "script", a.scriptPath)
	checkOnce(cmd.OutOrStdout(), a, asJSON)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			checkOnce(cmd.OutOrStdout(), a, asJSON)
		}
	}
}

// checkOnce logs parse failures instead of stopping the watch loop; the
// file may be mid-edit by another program.
func checkOnce(out io.Writer, a *app, asJSON bool) {
	fmt.Fprintf(out, "--- %s\n", time.Now().Format(time.TimeOnly))
	if _, err := runCheck(out, a.scriptPath, asJSON); err != nil {
		a.log.Warn("Check failed", "script", a.scriptPath, "error", err)
	}
}

