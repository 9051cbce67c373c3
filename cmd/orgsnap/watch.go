package main

import (
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/DevinBristol/salesforce-org-analysis/internal/mailbox"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform/sfcli"
	"github.com/DevinBristol/salesforce-org-analysis/internal/watcher"
	"github.com/DevinBristol/salesforce-org-analysis/internal/worker"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the deploy daemon: watch the drop directory, capture, deploy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, cfg, log, err := setup()
			if err != nil {
				return err
			}
			env, err := resolveEnv(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mb := mailbox.New[worker.Job]()
			adapter := sfcli.New(cfg.Salesforce, log)

			w := worker.New(eng, adapter, env, mb, log)
			go w.Start(ctx)

			watch := watcher.New(cfg.Watch, log, mb)
			watchErr := make(chan error, 1)
			go func() {
				watchErr <- watch.Start(ctx)
			}()

			// Periodic retention, independent of deploy activity.
			if cfg.Retention.Schedule != "" {
				c := cron.New()
				_, err := c.AddFunc(cfg.Retention.Schedule, func() {
					if err := eng.EnforceRetention(); err != nil {
						log.Error("scheduled retention: %v", err)
					}
				})
				if err != nil {
					return err
				}
				c.Start()
				defer c.Stop()
			}

			log.Info("watching %s for deployment bundles (environment %s)", cfg.Watch.DropDir, env)

			select {
			case <-ctx.Done():
				log.Info("shutting down")
				return nil
			case err := <-watchErr:
				return err
			}
		},
	}
}
