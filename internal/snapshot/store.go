package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/DevinBristol/salesforce-org-analysis/internal/fs"
)

// ErrSnapshotNotFound is returned when a snapshot id has no manifest in
// the store, including ids the retention manager already evicted.
var ErrSnapshotNotFound = errors.New("snapshot not found")

const manifestName = "manifest.json"

// Store owns the on-disk snapshot layout: one directory per snapshot id
// holding manifest.json plus one payload file per captured component.
// Nothing else writes into these directories.
type Store struct {
	root string
	fsys fs.FS
}

func NewStore(root string, fsys fs.FS) *Store {
	if fsys == nil {
		fsys = fs.New()
	}
	return &Store{root: root, fsys: fsys}
}

// Root returns the store's base directory.
func (s *Store) Root() string { return s.root }

// Dir returns the directory for a snapshot id.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.root, id)
}

// NewID returns an unused snapshot id for the given creation time.
// Ids embed the creation time at millisecond precision; captures landing
// in the same millisecond take the next free slot.
func (s *Store) NewID(t time.Time) string {
	ms := t.UnixMilli()
	for {
		id := fmt.Sprintf("snapshot-%d", ms)
		if _, err := s.fsys.Stat(s.Dir(id)); err != nil {
			return id
		}
		ms++
	}
}

// Create makes the snapshot directory.
func (s *Store) Create(id string) error {
	return s.fsys.MkdirAll(s.Dir(id))
}

// WritePayload persists one captured component body.
func (s *Store) WritePayload(ctx context.Context, id, payloadFile string, content []byte) error {
	return s.fsys.WriteFile(ctx, filepath.Join(s.Dir(id), payloadFile), content)
}

// ReadPayload loads one captured component body.
func (s *Store) ReadPayload(id, payloadFile string) ([]byte, error) {
	return s.fsys.ReadFile(filepath.Join(s.Dir(id), payloadFile))
}

// SaveManifest writes the snapshot manifest.
func (s *Store) SaveManifest(ctx context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return s.fsys.WriteFile(ctx, filepath.Join(s.Dir(snap.ID), manifestName), data)
}

// Load reads a snapshot manifest by id. Unknown or evicted ids return
// ErrSnapshotNotFound.
func (s *Store) Load(id string) (*Snapshot, error) {
	data, err := s.fsys.ReadFile(filepath.Join(s.Dir(id), manifestName))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding manifest for %s: %w", id, err)
	}
	return &snap, nil
}

// Delete removes a snapshot's directory, manifest and payloads included.
// There is no undo at this level.
func (s *Store) Delete(id string) error {
	return s.fsys.RemoveAll(s.Dir(id))
}

// List scans the store and returns summaries of restorable snapshots,
// newest first, optionally filtered by target environment. It reads the
// live directory rather than the history ledger, so evicted snapshots
// never appear.
func (s *Store) List(environment string) ([]Summary, error) {
	entries, err := s.fsys.ReadDir(s.root)
	if err != nil {
		// A store that was never written to has nothing to list.
		return nil, nil
	}

	var out []Summary
	for _, ent := range entries {
		if !ent.IsDir() || !strings.HasPrefix(ent.Name(), "snapshot-") {
			continue
		}

		snap, err := s.Load(ent.Name())
		if err != nil {
			continue
		}
		if snap.Status != StatusCreated {
			continue
		}
		if environment != "" && snap.TargetEnvironment != environment {
			continue
		}

		out = append(out, Summary{
			ID:                snap.ID,
			DeploymentID:      snap.DeploymentID,
			TargetEnvironment: snap.TargetEnvironment,
			CreatedAt:         snap.CreatedAt,
			ComponentCount:    len(snap.Components),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

// Latest returns the newest restorable snapshot for an environment, or
// nil if there is none.
func (s *Store) Latest(environment string) (*Summary, error) {
	list, err := s.List(environment)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}
