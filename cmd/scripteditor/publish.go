package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jwebster45206/script-editor/internal/services"
	"github.com/spf13/cobra"
)

func newPublishCmd(a *app) *cobra.Command {
	var (
		name     string
		redisURL string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Push the script to Redis for a running game",
		Long: `Publish the script to Redis. The full document, the scene order, one
hash entry per scene and a revision id are written in a single
transaction under <prefix>:<name>. The prefix comes from
SCRIPT_KEY_PREFIX.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}

			if name == "" {
				base := filepath.Base(st.Path())
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			if redisURL == "" {
				redisURL = a.cfg.RedisURL
			}

			publisher, err := services.NewScriptPublisher(redisURL, a.cfg.ScriptKeyPrefix, a.log)
			if err != nil {
				return err
			}
			defer func() {
				_ = publisher.Close() // Ignore error in defer
			}()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := publisher.Ping(ctx); err != nil {
				return err
			}

			revision, err := publisher.Publish(ctx, name, st.Snapshot())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %q revision %s\n", name, revision)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Published script name (default: file name without extension)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL (default $REDIS_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for the Redis round trip")
	return cmd
}
