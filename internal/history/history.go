// Package history keeps the audit trail of successful captures.
//
// The ledger is intentionally decoupled from the snapshot store: it is
// bounded by entry count, never by retention, so an entry may outlive
// the snapshot it describes. It answers "what was captured when", not
// "what can be restored" — the store's listing answers that.
package history

import (
	"context"
	"time"

	"github.com/DevinBristol/salesforce-org-analysis/internal/boundedlog"
	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/fs"
)

// MaxEntries caps the ledger; the oldest entries are evicted first.
const MaxEntries = 100

// ComponentRef is the ledger's view of one captured component.
type ComponentRef struct {
	Type  component.Type `json:"type"`
	Name  string         `json:"name"`
	IsNew bool           `json:"isNew"`
}

// Entry is the lightweight projection of one successful capture.
type Entry struct {
	SnapshotID        string         `json:"snapshotId"`
	DeploymentID      string         `json:"deploymentId"`
	TargetEnvironment string         `json:"targetEnvironment"`
	CreatedAt         time.Time      `json:"createdAt"`
	ComponentCount    int            `json:"componentCount"`
	Components        []ComponentRef `json:"components"`
}

type Ledger struct {
	log *boundedlog.Log[Entry]
}

func NewLedger(path string, fsys fs.FS) *Ledger {
	return &Ledger{log: boundedlog.New[Entry](path, fsys, MaxEntries)}
}

// Append records a successful capture, newest first.
func (l *Ledger) Append(ctx context.Context, e Entry) error {
	return l.log.Append(ctx, e)
}

// List returns all ledger entries, newest first. Listed snapshot ids
// are not guaranteed to still be restorable.
func (l *Ledger) List() ([]Entry, error) {
	return l.log.List()
}
