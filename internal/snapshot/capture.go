package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/history"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
)

// Capturer records the pre-deployment state of every component a
// deployment is about to touch. Components are processed one at a time;
// a provider failure degrades that one component to "newly introduced"
// and the capture carries on.
type Capturer struct {
	store    *Store
	provider platform.MetadataProvider
	ledger   *history.Ledger
	log      logging.Logger
}

func NewCapturer(store *Store, provider platform.MetadataProvider, ledger *history.Ledger, log logging.Logger) *Capturer {
	return &Capturer{
		store:    store,
		provider: provider,
		ledger:   ledger,
		log:      log,
	}
}

// Capture always returns a Snapshot; callers must check Status. A
// storage or ledger failure yields StatusFailed with Error set, and a
// failed snapshot never reaches the history ledger.
func (c *Capturer) Capture(ctx context.Context, comps []component.Descriptor, environment, deploymentID string) *Snapshot {
	now := time.Now().UTC()

	snap := &Snapshot{
		ID:                c.store.NewID(now),
		DeploymentID:      deploymentID,
		TargetEnvironment: environment,
		CreatedAt:         now,
		Status:            StatusCreated,
	}

	fail := func(err error) *Snapshot {
		snap.Status = StatusFailed
		snap.Error = err.Error()
		c.log.Error("capture %s failed: %v", snap.ID, err)
		// Best effort: the failure may well be the store itself.
		_ = c.store.SaveManifest(ctx, snap)
		return snap
	}

	if err := c.store.Create(snap.ID); err != nil {
		return fail(fmt.Errorf("creating snapshot directory: %w", err))
	}

	for _, d := range comps {
		rec := ComponentRecord{Type: d.Type, Name: d.Name}

		state, err := c.provider.Fetch(ctx, d.Type, d.Name, environment)
		switch {
		case err != nil:
			// Fetch failures are absorbed: the component is treated as
			// newly introduced rather than aborting the capture.
			c.log.Warn("capture %s: fetch %s failed, treating as new: %v", snap.ID, d.Key(), err)
		case state != nil:
			payloadFile := d.Name + d.Type.Suffix()
			if err := c.store.WritePayload(ctx, snap.ID, payloadFile, []byte(state.Content)); err != nil {
				return fail(fmt.Errorf("writing payload for %s: %w", d.Key(), err))
			}
			rec.HadExisting = true
			rec.PayloadFile = payloadFile
			rec.APIVersion = state.APIVersion
		}

		snap.Components = append(snap.Components, rec)
	}

	if err := c.store.SaveManifest(ctx, snap); err != nil {
		return fail(err)
	}

	if err := c.ledger.Append(ctx, ledgerEntry(snap)); err != nil {
		return fail(fmt.Errorf("recording history: %w", err))
	}

	c.log.Info("capture %s: %d components for %s (deployment %s)",
		snap.ID, len(snap.Components), environment, deploymentID)

	return snap
}

func ledgerEntry(snap *Snapshot) history.Entry {
	refs := make([]history.ComponentRef, 0, len(snap.Components))
	for _, rec := range snap.Components {
		refs = append(refs, history.ComponentRef{
			Type:  rec.Type,
			Name:  rec.Name,
			IsNew: !rec.HadExisting,
		})
	}

	return history.Entry{
		SnapshotID:        snap.ID,
		DeploymentID:      snap.DeploymentID,
		TargetEnvironment: snap.TargetEnvironment,
		CreatedAt:         snap.CreatedAt,
		ComponentCount:    len(snap.Components),
		Components:        refs,
	}
}
