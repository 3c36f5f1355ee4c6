package model

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kbukum/pronounce/component"
	"github.com/kbukum/pronounce/logger"
	"github.com/kbukum/pronounce/storage"
)

// DefaultPath is the artifact location inside storage.
const DefaultPath = "models/pronunciation_model.msgpack"

// maxArtifactBytes bounds artifact downloads.
const maxArtifactBytes = 64 << 20

// Store loads the forest once and shares it read-only. It implements
// component.Component so the artifact is loaded during service start.
type Store struct {
	storage storage.Storage
	path    string
	log     *logger.Logger

	once    sync.Once
	forest  *Forest
	loadErr error
}

// NewStore creates a store reading path from s.
func NewStore(s storage.Storage, path string, log *logger.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{storage: s, path: path, log: log.WithComponent("model")}
}

// NewStaticStore wraps an already loaded forest. A nil forest gives a store
// in placeholder mode.
func NewStaticStore(f *Forest) *Store {
	s := &Store{path: "memory", log: logger.Nop()}
	s.once.Do(func() { s.forest = f })
	return s
}

// Path returns the artifact path.
func (s *Store) Path() string { return s.path }

// Load reads the artifact. A missing artifact returns (nil, false, nil).
// A corrupt artifact returns the decode error; the caller decides whether
// that is fatal.
func (s *Store) Load(ctx context.Context) (*Forest, bool, error) {
	ok, err := s.storage.Exists(ctx, s.path)
	if err != nil {
		return nil, false, fmt.Errorf("model: stat %s: %w", s.path, err)
	}
	if !ok {
		return nil, false, nil
	}
	data, err := storage.ReadAll(ctx, s.storage, s.path, maxArtifactBytes)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}

// Save encodes f and writes it to the store's path.
func (s *Store) Save(ctx context.Context, f *Forest) error {
	if s.storage == nil {
		return fmt.Errorf("model: store has no storage backend")
	}
	data, err := Encode(f)
	if err != nil {
		return err
	}
	return storage.WriteBytes(ctx, s.storage, s.path, data)
}

// Forest returns the loaded forest, loading it on first use. It returns nil
// in placeholder mode.
func (s *Store) Forest(ctx context.Context) *Forest {
	s.once.Do(func() {
		f, ok, err := s.Load(ctx)
		switch {
		case err != nil:
			s.loadErr = err
			s.log.Warn("model artifact unreadable, running in placeholder mode",
				logger.MergeWithError(logger.Fields("path", s.path), err))
		case !ok:
			s.log.Warn("model artifact not found, running in placeholder mode", logger.Fields("path", s.path))
		default:
			s.forest = f
			s.log.Info("model loaded", logger.Fields(
				"path", s.path,
				"trees", len(f.Trees),
				"features", f.Features,
				"accuracy", f.Accuracy,
			))
		}
	})
	return s.forest
}

// Loaded reports whether a forest is available.
func (s *Store) Loaded(ctx context.Context) bool {
	return s.Forest(ctx) != nil
}

func (s *Store) Name() string { return "model" }

// Start loads the artifact. Absence never fails startup.
func (s *Store) Start(ctx context.Context) error {
	s.Forest(ctx)
	return nil
}

func (s *Store) Stop(context.Context) error { return nil }

// Health is healthy with a model and degraded in placeholder mode.
func (s *Store) Health(ctx context.Context) component.Health {
	h := component.Health{Name: s.Name(), Status: component.StatusHealthy}
	if s.Forest(ctx) == nil {
		h.Status = component.StatusDegraded
		h.Message = "placeholder mode: no trained model at " + s.path
		if s.loadErr != nil {
			h.Message = "placeholder mode: " + s.loadErr.Error()
		}
	}
	return h
}

// Describe reports the artifact location for the startup summary.
func (s *Store) Describe() component.Description {
	return component.Description{Type: "model", Details: s.path}
}
