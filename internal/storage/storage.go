// Package storage keeps saved deal snapshots. Backends: in-memory, a JSON
// file, PostgreSQL and Redis. All of them list snapshots newest first.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/datetime"
	"github.com/iwvelando/proforma/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no snapshot has the requested id.
	ErrNotFound = errors.New("saved deal not found")
	// ErrNotCalculated is returned when saving a deal without a project cost.
	ErrNotCalculated = errors.New("deal has no computed project cost")
)

// UntitledProject names snapshots of deals without a name.
const UntitledProject = "Untitled"

// Snapshot is a saved deal with the results it had when it was saved.
type Snapshot struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	CreatedAt   time.Time        `json:"createdAt"`
	ProjectName string           `json:"projectName"`
	ProjectInfo deal.ProjectInfo `json:"projectInfo"`
	Deal        *deal.Deal       `json:"dealSnapshot"`
	Results     deal.Results     `json:"results"`
}

// NewSnapshot captures a calculated deal. It refuses deals whose pipeline
// has not produced a project cost.
func NewSnapshot(d *deal.Deal, now time.Time) (*Snapshot, error) {
	if d == nil || mathutil.IsZero(d.Results.TotalProjectCost) {
		return nil, ErrNotCalculated
	}
	saved := d.Clone()
	name := strings.TrimSpace(saved.ProjectInfo.Name)
	if name == "" {
		name = UntitledProject
	}
	saved.ProjectInfo.Name = name

	return &Snapshot{
		ID:          uuid.New().String(),
		Date:        datetime.Today(now),
		CreatedAt:   now.UTC(),
		ProjectName: name,
		ProjectInfo: saved.ProjectInfo,
		Deal:        saved,
		Results:     saved.Results,
	}, nil
}

// Store persists snapshots.
type Store interface {
	// Save adds a snapshot. It becomes the first entry of List.
	Save(ctx context.Context, s *Snapshot) error
	// List returns every snapshot, newest first.
	List(ctx context.Context) ([]Snapshot, error)
	// Get returns the snapshot with the id or ErrNotFound.
	Get(ctx context.Context, id string) (*Snapshot, error)
	// Delete removes the snapshot with the id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// Clear removes every snapshot.
	Clear(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	Path      string `mapstructure:"path" yaml:"path"`
	URL       string `mapstructure:"url" yaml:"url"`
	RedisAddr string `mapstructure:"redisAddr" yaml:"redisAddr"`
	KeyPrefix string `mapstructure:"keyPrefix" yaml:"keyPrefix"`
}

// New opens the configured backend. The "none" backend (or an empty one)
// returns a nil Store and no error.
func New(ctx context.Context, logger *zap.Logger, cfg Config) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	var (
		store Store
		err   error
	)
	switch backend {
	case "", constants.StorageBackendNone:
		return nil, nil
	case constants.StorageBackendMemory:
		store = NewMemoryStore()
	case constants.StorageBackendFile:
		path := cfg.Path
		if path == "" {
			path = constants.DefaultDealsFile
		}
		store = NewFileStore(path)
	case constants.StorageBackendPostgres:
		store, err = NewPostgresStore(ctx, cfg.URL)
	case constants.StorageBackendRedis:
		store, err = NewRedisStore(ctx, cfg.RedisAddr, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("opened deal storage",
		zap.String("op", "storage.New"),
		zap.String("backend", backend),
	)
	return store, nil
}
