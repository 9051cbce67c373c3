package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevinBristol/salesforce-org-analysis/internal/bundle"
	"github.com/DevinBristol/salesforce-org-analysis/internal/config"
	"github.com/DevinBristol/salesforce-org-analysis/internal/engine"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform/sfcli"
	"github.com/DevinBristol/salesforce-org-analysis/internal/restore"
)

var (
	flagConfig  string
	flagVerbose bool
	flagEnv     string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "orgsnap",
		Short:         "Snapshot and rollback engine for Salesforce org deployments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to config file")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagEnv, "env", "", "target org alias (defaults to config)")

	root.AddCommand(
		newSnapshotCmd(),
		newRollbackCmd(),
		newListCmd(),
		newLatestCmd(),
		newPruneCmd(),
		newHistoryCmd(),
		newRollbacksCmd(),
		newWatchCmd(),
	)

	return root
}

// setup loads config and builds the engine bound to the real sf CLI.
func setup() (*engine.Engine, *config.Config, logging.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logging.StdLogger{Verbose: flagVerbose || cfg.Logging.Level == "debug"}
	adapter := sfcli.New(cfg.Salesforce, log)

	eng := engine.New(engine.Options{
		Root:      cfg.Store.Root,
		KeepCount: cfg.Retention.KeepCount,
		Provider:  adapter,
		Deployer:  adapter,
		Logger:    log,
	})

	return eng, cfg, log, nil
}

func resolveEnv(cfg *config.Config) (string, error) {
	if flagEnv != "" {
		return flagEnv, nil
	}
	if cfg.Salesforce.DefaultEnvironment != "" {
		return cfg.Salesforce.DefaultEnvironment, nil
	}
	return "", fmt.Errorf("no target environment: pass --env or set salesforce.defaultEnvironment")
}

func newSnapshotCmd() *cobra.Command {
	var dir, deploymentID string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture pre-deployment state for a bundle directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, cfg, _, err := setup()
			if err != nil {
				return err
			}
			env, err := resolveEnv(cfg)
			if err != nil {
				return err
			}

			artifacts, err := bundle.Read(dir)
			if err != nil {
				return err
			}

			snap, err := eng.Capture(cmd.Context(), artifacts, env, deploymentID)
			if err != nil {
				return err
			}
			if snap.Status != "created" {
				return fmt.Errorf("capture %s failed: %s", snap.ID, snap.Error)
			}

			fmt.Printf("captured %s: %d components for %s\n", snap.ID, len(snap.Components), env)
			for _, rec := range snap.Components {
				state := "existing"
				if !rec.HadExisting {
					state = "new"
				}
				fmt.Printf("  %s/%s (%s)\n", rec.Type, rec.Name, state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "bundle directory to capture for")
	cmd.Flags().StringVar(&deploymentID, "deployment-id", "", "deployment id (generated when empty)")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <snapshot-id>",
		Short: "Restore the captured state of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, _, err := setup()
			if err != nil {
				return err
			}
			env, err := resolveEnv(cfg)
			if err != nil {
				return err
			}

			res, err := eng.Restore(cmd.Context(), args[0], env)
			if err != nil {
				return err
			}

			printResult(res)
			if !res.Success {
				return fmt.Errorf("rollback failed: %s", res.Error)
			}
			return nil
		},
	}
}

func printResult(res restore.RollbackResult) {
	fmt.Printf("snapshot:  %s\n", res.SnapshotID)
	fmt.Printf("restored:  %v\n", res.Restored)
	fmt.Printf("marked for removal: %v\n", res.Deleted)
	if len(res.Failed) > 0 {
		fmt.Printf("failed:    %v\n", res.Failed)
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List restorable snapshots, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, _, _, err := setup()
			if err != nil {
				return err
			}

			// --env empty lists every environment.
			list, err := eng.ListSnapshots(flagEnv)
			if err != nil {
				return err
			}

			for _, s := range list {
				fmt.Printf("%s  %s  %s  %d components\n",
					s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.TargetEnvironment, s.ComponentCount)
			}
			return nil
		},
	}
}

func newLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the newest restorable snapshot for an environment",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, cfg, _, err := setup()
			if err != nil {
				return err
			}
			env, err := resolveEnv(cfg)
			if err != nil {
				return err
			}

			s, err := eng.GetLatestSnapshot(env)
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Printf("no snapshots for %s\n", env)
				return nil
			}

			fmt.Printf("%s  %s  %d components (deployment %s)\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.ComponentCount, s.DeploymentID)
			return nil
		},
	}
}

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Apply the retention policy once",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, _, _, err := setup()
			if err != nil {
				return err
			}
			return eng.EnforceRetention()
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the capture audit trail",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, _, _, err := setup()
			if err != nil {
				return err
			}

			entries, err := eng.History()
			if err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Printf("%s  %s  %s  %d components (deployment %s)\n",
					e.SnapshotID, e.CreatedAt.Format("2006-01-02 15:04:05"),
					e.TargetEnvironment, e.ComponentCount, e.DeploymentID)
			}
			return nil
		},
	}
}

func newRollbacksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollbacks",
		Short: "Show past restore attempts",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, _, _, err := setup()
			if err != nil {
				return err
			}

			attempts, err := eng.RollbackLog()
			if err != nil {
				return err
			}

			for _, a := range attempts {
				status := "ok"
				if !a.Success {
					status = "FAILED: " + a.Error
				}
				fmt.Printf("%s  %s  restored=%d marked=%d  %s\n",
					a.SnapshotID, a.Timestamp.Format("2006-01-02 15:04:05"),
					len(a.Restored), len(a.Deleted), status)
			}
			return nil
		},
	}
}
