// Package store persists rendered gauge snapshots so they can be fetched
// again by ID.
//
// [MemoryStore] keeps snapshots in process and backs the CLI and tests.
// [MongoStore] keeps them in a MongoDB collection for the server.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/errors"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Snapshot is one rendered update.
type Snapshot struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Update    *dataview.UpdateOptions `json:"update"`
	ViewModel settings.ViewModel      `json:"view_model"`
	Scene     gauge.Scene             `json:"scene"`
	SVG       []byte                  `json:"-"`
}

// NewSnapshot stamps a fresh ID and creation time.
func NewSnapshot(update *dataview.UpdateOptions, vm settings.ViewModel, scene gauge.Scene, svg []byte) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Update:    update,
		ViewModel: vm,
		Scene:     scene,
		SVG:       svg,
	}
}

// Store persists snapshots.
type Store interface {
	Save(ctx context.Context, s *Snapshot) error
	// Get returns a SNAPSHOT_NOT_FOUND error for unknown IDs.
	Get(ctx context.Context, id string) (*Snapshot, error)
	// List returns the newest snapshots first.
	List(ctx context.Context, limit int) ([]*Snapshot, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid snapshot id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
