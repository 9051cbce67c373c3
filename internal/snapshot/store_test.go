package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), nil)
}

func saveSnapshot(t *testing.T, store *Store, env string, status Status, created time.Time) *Snapshot {
	t.Helper()

	snap := &Snapshot{
		ID:                store.NewID(created),
		DeploymentID:      "deploy-test",
		TargetEnvironment: env,
		CreatedAt:         created,
		Status:            status,
		Components: []ComponentRecord{
			{Type: component.ApexClass, Name: "Foo", HadExisting: false},
		},
	}
	require.NoError(t, store.Create(snap.ID))
	require.NoError(t, store.SaveManifest(context.Background(), snap))
	return snap
}

func TestNewIDAvoidsCollisions(t *testing.T) {
	store := newTestStore(t)
	at := time.Now()

	id1 := store.NewID(at)
	require.NoError(t, store.Create(id1))
	require.NoError(t, store.SaveManifest(context.Background(), &Snapshot{ID: id1, Status: StatusCreated}))

	id2 := store.NewID(at)
	assert.NotEqual(t, id1, id2)
}

func TestLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	snap := saveSnapshot(t, store, "dev-sandbox", StatusCreated, time.Now().UTC())

	got, err := store.Load(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, "dev-sandbox", got.TargetEnvironment)
	assert.Equal(t, StatusCreated, got.Status)
	require.Len(t, got.Components, 1)
	assert.False(t, got.Components[0].HadExisting)
}

func TestLoadUnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("snapshot-123")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestPayloadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	snap := saveSnapshot(t, store, "dev", StatusCreated, time.Now())

	require.NoError(t, store.WritePayload(context.Background(), snap.ID, "Foo.cls", []byte("public class Foo {}")))

	got, err := store.ReadPayload(snap.ID, "Foo.cls")
	require.NoError(t, err)
	assert.Equal(t, "public class Foo {}", string(got))
}

func TestListNewestFirstAndFiltered(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().UTC()

	older := saveSnapshot(t, store, "dev", StatusCreated, base.Add(-time.Hour))
	newer := saveSnapshot(t, store, "dev", StatusCreated, base)
	other := saveSnapshot(t, store, "qa", StatusCreated, base.Add(-time.Minute))
	saveSnapshot(t, store, "dev", StatusFailed, base.Add(-time.Second))

	all, err := store.List("")
	require.NoError(t, err)
	require.Len(t, all, 3, "failed snapshots are not restorable and not listed")
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, other.ID, all[1].ID)
	assert.Equal(t, older.ID, all[2].ID)

	dev, err := store.List("dev")
	require.NoError(t, err)
	require.Len(t, dev, 2)
	assert.Equal(t, newer.ID, dev[0].ID)
	assert.Equal(t, older.ID, dev[1].ID)
}

func TestListIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().UTC()
	for i := 0; i < 4; i++ {
		saveSnapshot(t, store, "dev", StatusCreated, base.Add(time.Duration(i)*time.Minute))
	}

	first, err := store.List("")
	require.NoError(t, err)
	second, err := store.List("")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLatest(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Latest("dev")
	require.NoError(t, err)
	assert.Nil(t, got)

	base := time.Now().UTC()
	saveSnapshot(t, store, "dev", StatusCreated, base.Add(-time.Hour))
	newest := saveSnapshot(t, store, "dev", StatusCreated, base)

	got, err = store.Latest("dev")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID, got.ID)
}

func TestDeleteRemovesEverything(t *testing.T) {
	store := newTestStore(t)
	snap := saveSnapshot(t, store, "dev", StatusCreated, time.Now())
	require.NoError(t, store.WritePayload(context.Background(), snap.ID, "Foo.cls", []byte("x")))

	require.NoError(t, store.Delete(snap.ID))

	_, err := store.Load(snap.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	_, err = store.ReadPayload(snap.ID, "Foo.cls")
	assert.Error(t, err)
}
