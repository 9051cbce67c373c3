package retention

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/history"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
	"github.com/DevinBristol/salesforce-org-analysis/internal/snapshot"
)

type fixture struct {
	store    *snapshot.Store
	ledger   *history.Ledger
	capturer *snapshot.Capturer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	store := snapshot.NewStore(root, nil)
	ledger := history.NewLedger(filepath.Join(root, "history.json"), nil)
	provider := platform.NewFakeProvider()

	return &fixture{
		store:    store,
		ledger:   ledger,
		capturer: snapshot.NewCapturer(store, provider, ledger, logging.Nop{}),
	}
}

func (fx *fixture) capture(t *testing.T, env string) *snapshot.Snapshot {
	t.Helper()
	snap := fx.capturer.Capture(context.Background(),
		[]component.Descriptor{{Type: component.ApexClass, Name: "Foo"}}, env, "deploy-test")
	require.Equal(t, snapshot.StatusCreated, snap.Status, snap.Error)
	return snap
}

func TestEnforceKeepsNewestPerEnvironment(t *testing.T) {
	fx := newFixture(t)

	var ids []string
	for i := 0; i < 12; i++ {
		ids = append(ids, fx.capture(t, "dev").ID)
	}

	mgr := NewManager(fx.store, 10, logging.Nop{})
	require.NoError(t, mgr.Enforce())

	list, err := fx.store.List("dev")
	require.NoError(t, err)
	require.Len(t, list, 10)

	// The oldest two are gone, the newest ten remain.
	for _, victim := range ids[:2] {
		_, err := fx.store.Load(victim)
		assert.ErrorIs(t, err, snapshot.ErrSnapshotNotFound, victim)
	}
	for _, kept := range ids[2:] {
		_, err := fx.store.Load(kept)
		assert.NoError(t, err, kept)
	}
}

func TestEnforceIsPerEnvironment(t *testing.T) {
	fx := newFixture(t)

	for i := 0; i < 4; i++ {
		fx.capture(t, "dev")
	}
	for i := 0; i < 2; i++ {
		fx.capture(t, "qa")
	}

	mgr := NewManager(fx.store, 3, logging.Nop{})
	require.NoError(t, mgr.Enforce())

	dev, err := fx.store.List("dev")
	require.NoError(t, err)
	assert.Len(t, dev, 3)

	qa, err := fx.store.List("qa")
	require.NoError(t, err)
	assert.Len(t, qa, 2, "environments under their keep-count are untouched")
}

func TestEnforceLeavesLedgerAlone(t *testing.T) {
	fx := newFixture(t)

	for i := 0; i < 5; i++ {
		fx.capture(t, "dev")
	}

	mgr := NewManager(fx.store, 2, logging.Nop{})
	require.NoError(t, mgr.Enforce())

	// The ledger is an audit trail, distinct from restore availability:
	// every capture stays listed even after its payloads are evicted.
	entries, err := fx.ledger.List()
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestEnforceNoopUnderKeepCount(t *testing.T) {
	fx := newFixture(t)
	fx.capture(t, "dev")

	mgr := NewManager(fx.store, 10, logging.Nop{})
	require.NoError(t, mgr.Enforce())

	list, err := fx.store.List("dev")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDefaultKeepCount(t *testing.T) {
	mgr := NewManager(nil, 0, logging.Nop{})
	assert.Equal(t, DefaultKeepCount, mgr.keep)
}
