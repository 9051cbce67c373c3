// Package engine wires the snapshot, restore, retention and history
// components into the single facade the deployment orchestrator uses.
package engine

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/fs"
	"github.com/DevinBristol/salesforce-org-analysis/internal/history"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
	"github.com/DevinBristol/salesforce-org-analysis/internal/restore"
	"github.com/DevinBristol/salesforce-org-analysis/internal/retention"
	"github.com/DevinBristol/salesforce-org-analysis/internal/snapshot"
)

const (
	historyFile     = "history.json"
	rollbackLogFile = "rollback-log.json"
)

// Options configures a new Engine. Root is the only required field;
// nil collaborators get production defaults, which tests override with
// fakes.
type Options struct {
	Root      string
	KeepCount int
	Provider  platform.MetadataProvider
	Deployer  platform.Deployer
	FS        fs.FS
	Logger    logging.Logger
}

// Engine is the orchestrator-facing surface. It holds no internal lock:
// callers must serialize capture and restore against the same target
// environment.
type Engine struct {
	store     *snapshot.Store
	capturer  *snapshot.Capturer
	restorer  *restore.Engine
	retention *retention.Manager
	ledger    *history.Ledger
	rlog      *restore.Log
	log       logging.Logger
}

func New(opts Options) *Engine {
	if opts.FS == nil {
		opts.FS = fs.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.StdLogger{}
	}

	store := snapshot.NewStore(opts.Root, opts.FS)
	ledger := history.NewLedger(filepath.Join(opts.Root, historyFile), opts.FS)
	rlog := restore.NewLog(filepath.Join(opts.Root, rollbackLogFile), opts.FS)

	return &Engine{
		store:     store,
		capturer:  snapshot.NewCapturer(store, opts.Provider, ledger, opts.Logger),
		restorer:  restore.NewEngine(store, opts.Deployer, rlog, opts.Logger),
		retention: retention.NewManager(store, opts.KeepCount, opts.Logger),
		ledger:    ledger,
		rlog:      rlog,
		log:       opts.Logger,
	}
}

// Capture validates the artifact set, then records the current remote
// state of every component it names. The returned snapshot may have
// StatusFailed; only a malformed artifact set is an error.
func (e *Engine) Capture(ctx context.Context, artifacts map[string]map[string]string, environment, deploymentID string) (*snapshot.Snapshot, error) {
	comps, err := component.ParseArtifactSet(artifacts)
	if err != nil {
		return nil, err
	}

	if deploymentID == "" {
		deploymentID = "deploy-" + uuid.NewString()
	}

	return e.capturer.Capture(ctx, comps, environment, deploymentID), nil
}

// Restore redeploys a snapshot's captured state. See restore.Engine.
func (e *Engine) Restore(ctx context.Context, snapshotID, environment string) (restore.RollbackResult, error) {
	return e.restorer.Restore(ctx, snapshotID, environment)
}

// ListSnapshots returns restorable snapshots, newest first, optionally
// filtered by environment ("" means all).
func (e *Engine) ListSnapshots(environment string) ([]snapshot.Summary, error) {
	return e.store.List(environment)
}

// GetLatestSnapshot returns the newest restorable snapshot for an
// environment, or nil.
func (e *Engine) GetLatestSnapshot(environment string) (*snapshot.Summary, error) {
	return e.store.Latest(environment)
}

// EnforceRetention applies the per-environment keep-count once.
func (e *Engine) EnforceRetention() error {
	return e.retention.Enforce()
}

// History returns the capture audit trail, newest first. Entries may
// reference snapshots retention has already evicted.
func (e *Engine) History() ([]history.Entry, error) {
	return e.ledger.List()
}

// RollbackLog returns past restore attempts, newest first.
func (e *Engine) RollbackLog() ([]restore.RollbackResult, error) {
	return e.rlog.List()
}
