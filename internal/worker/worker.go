// Package worker drains deploy jobs from the mailbox and runs the
// capture-then-deploy sequence against the target org.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DevinBristol/salesforce-org-analysis/internal/bundle"
	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/engine"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/mailbox"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
	"github.com/DevinBristol/salesforce-org-analysis/internal/snapshot"
)

// Job is one deployment bundle ready to process.
type Job struct {
	BundleDir string
	MarkedAt  time.Time
}

// Worker owns the orchestration-layer serialization the engine itself
// does not provide: mu ensures capture, deploy and retention for the
// target environment never interleave.
type Worker struct {
	mu          sync.Mutex
	eng         *engine.Engine
	deployer    platform.Deployer
	environment string
	mb          *mailbox.Mailbox[Job]
	log         logging.Logger
}

func New(eng *engine.Engine, deployer platform.Deployer, environment string, mb *mailbox.Mailbox[Job], log logging.Logger) *Worker {
	return &Worker{
		eng:         eng,
		deployer:    deployer,
		environment: environment,
		mb:          mb,
		log:         log,
	}
}

// Start runs the worker loop until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("worker: started for environment %s", w.environment)
	for {
		job, ok := w.mb.Take(ctx)
		if !ok {
			w.log.Info("worker: stopping")
			return
		}
		if err := w.Handle(ctx, job); err != nil {
			w.log.Error("worker: %v", err)
		}
	}
}

// Handle snapshots the components the bundle touches, then deploys the
// bundle. A failed snapshot blocks the deploy: without a restore point
// the deployment is not safely reversible.
func (w *Worker) Handle(ctx context.Context, job Job) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	artifacts, err := bundle.Read(job.BundleDir)
	if err != nil {
		return fmt.Errorf("reading bundle: %w", err)
	}

	comps, err := component.ParseArtifactSet(artifacts)
	if err != nil {
		return fmt.Errorf("validating bundle: %w", err)
	}

	snap, err := w.eng.Capture(ctx, artifacts, w.environment, "")
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if snap.Status != snapshot.StatusCreated {
		return fmt.Errorf("capture %s failed, refusing to deploy: %s", snap.ID, snap.Error)
	}

	items := make([]platform.BundleItem, 0, len(comps))
	for _, d := range comps {
		items = append(items, platform.BundleItem{
			Type:    d.Type,
			Name:    d.Name,
			Content: d.Content,
		})
	}

	outcome := w.deployer.Deploy(ctx, items, w.environment)
	if !outcome.Success {
		return fmt.Errorf("deploy of %d components failed (restore point %s): %s",
			len(items), snap.ID, outcome.Details)
	}

	w.log.Info("worker: deployed %d components to %s (deploy %s, restore point %s)",
		len(items), w.environment, outcome.ID, snap.ID)

	if err := w.eng.EnforceRetention(); err != nil {
		w.log.Error("worker: retention: %v", err)
	}

	return nil
}
