// Package restore redeploys a snapshot's captured prior state to
// reverse a deployment.
package restore

import (
	"context"
	"fmt"
	"time"

	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
	"github.com/DevinBristol/salesforce-org-analysis/internal/snapshot"
)

// RollbackResult describes one restore attempt.
//
// Deleted lists components the original deployment newly introduced.
// They are marked for follow-up removal only — destructive deletes on
// the org require a separately authorized step this engine never takes.
type RollbackResult struct {
	SnapshotID string    `json:"snapshotId"`
	Timestamp  time.Time `json:"timestamp"`
	Restored   []string  `json:"restored,omitempty"`
	Deleted    []string  `json:"deleted,omitempty"`
	Failed     []string  `json:"failed,omitempty"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

// Engine performs single-level restores. It holds no lock; callers
// serialize restore against capture for the same environment.
type Engine struct {
	store    *snapshot.Store
	deployer platform.Deployer
	rlog     *Log
	log      logging.Logger
}

func NewEngine(store *snapshot.Store, deployer platform.Deployer, rlog *Log, log logging.Logger) *Engine {
	return &Engine{
		store:    store,
		deployer: deployer,
		rlog:     rlog,
		log:      log,
	}
}

// Restore redeploys the captured state of snapshotID to environment.
//
// An unknown snapshot id is a precondition violation and comes back as
// an error with no result. Everything else — environment mismatch,
// unreadable payloads, a rejected deploy — lands in the returned
// RollbackResult, and every attempt is appended to the rollback log.
func (e *Engine) Restore(ctx context.Context, snapshotID, environment string) (RollbackResult, error) {
	snap, err := e.store.Load(snapshotID)
	if err != nil {
		return RollbackResult{}, err
	}

	res := RollbackResult{
		SnapshotID: snapshotID,
		Timestamp:  time.Now().UTC(),
	}

	finish := func() RollbackResult {
		if err := e.rlog.Append(ctx, res); err != nil {
			e.log.Error("restore %s: recording rollback log: %v", snapshotID, err)
		}
		return res
	}

	if snap.Status != snapshot.StatusCreated {
		res.Error = fmt.Sprintf("snapshot %s has status %q and cannot be restored", snapshotID, snap.Status)
		return finish(), nil
	}

	// Guard against cross-environment corruption: a mismatch aborts
	// before the deployer is ever invoked.
	if snap.TargetEnvironment != environment {
		res.Error = fmt.Sprintf("snapshot %s was captured against %q, not %q",
			snapshotID, snap.TargetEnvironment, environment)
		return finish(), nil
	}

	var bundle []platform.BundleItem
	for _, rec := range snap.Components {
		if !rec.HadExisting {
			res.Deleted = append(res.Deleted, rec.Name)
			continue
		}

		payload, err := e.store.ReadPayload(snapshotID, rec.PayloadFile)
		if err != nil {
			e.log.Error("restore %s: payload for %s/%s unreadable: %v", snapshotID, rec.Type, rec.Name, err)
			res.Failed = append(res.Failed, rec.Name)
			continue
		}

		bundle = append(bundle, platform.BundleItem{
			Type:       rec.Type,
			Name:       rec.Name,
			Content:    string(payload),
			APIVersion: rec.APIVersion,
		})
		res.Restored = append(res.Restored, rec.Name)
	}

	if len(bundle) > 0 {
		outcome := e.deployer.Deploy(ctx, bundle, environment)
		if !outcome.Success {
			// Restored keeps the attempted names for diagnostics.
			res.Error = fmt.Sprintf("restore deploy failed: %s", outcome.Details)
			return finish(), nil
		}
		e.log.Info("restore %s: deployed %d components to %s (deploy id %s)",
			snapshotID, len(bundle), environment, outcome.ID)
	}

	if len(res.Failed) > 0 {
		res.Error = fmt.Sprintf("%d payloads could not be read", len(res.Failed))
		return finish(), nil
	}

	res.Success = true
	return finish(), nil
}
