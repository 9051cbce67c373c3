// Package retention evicts old snapshots beyond a per-environment
// keep-count. Eviction deletes payloads and manifest permanently; the
// history ledger keeps its entries regardless.
package retention

import (
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/snapshot"
)

// DefaultKeepCount is the number of snapshots kept per environment.
const DefaultKeepCount = 10

type Manager struct {
	store *snapshot.Store
	keep  int
	log   logging.Logger
}

func NewManager(store *snapshot.Store, keep int, log logging.Logger) *Manager {
	if keep <= 0 {
		keep = DefaultKeepCount
	}
	return &Manager{store: store, keep: keep, log: log}
}

// Enforce applies the keep-count independently per target environment.
// Within each environment snapshots are ordered newest first and
// everything past the keep-count is deleted. Per-snapshot delete
// failures are logged and do not stop the sweep.
func (m *Manager) Enforce() error {
	all, err := m.store.List("")
	if err != nil {
		return err
	}

	// List is already newest-first; grouping preserves that order.
	byEnv := map[string][]snapshot.Summary{}
	for _, s := range all {
		byEnv[s.TargetEnvironment] = append(byEnv[s.TargetEnvironment], s)
	}

	for env, group := range byEnv {
		if len(group) <= m.keep {
			continue
		}

		for _, victim := range group[m.keep:] {
			if err := m.store.Delete(victim.ID); err != nil {
				m.log.Error("retention: deleting %s (%s): %v", victim.ID, env, err)
				continue
			}
			m.log.Info("retention: evicted %s (%s)", victim.ID, env)
		}
	}

	return nil
}
