package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"nanomerch/internal/domain"
	"nanomerch/internal/infra"
	"nanomerch/internal/prompt"
)

// Generator turns a source image and an instruction into a result image.
type Generator interface {
	Generate(ctx context.Context, src domain.SourceImage, prompt string) (domain.SourceImage, error)
}

// State is a point-in-time copy of the session.
type State struct {
	Source     domain.SourceImage        `json:"source_image,omitempty"`
	Mode       domain.Mode               `json:"mode"`
	InProgress bool                      `json:"in_progress"`
	Error      string                    `json:"error,omitempty"`
	History    []domain.GenerationRecord `json:"history"`
}

// HasImage reports whether an uploaded image is present.
func (s State) HasImage() bool {
	return !s.Source.IsZero()
}

// Options wires a Store. Generator is required. Catalog defaults to the merch
// catalog, Clock to time.Now and NewID to random UUIDs.
type Options struct {
	Generator Generator
	Catalog   *domain.Catalog
	Logger    *infra.Logger
	Clock     func() time.Time
	NewID     func() string
}

// Store serializes every transition of a single session. At most one
// generation runs at a time; a second request while one is in flight is
// rejected, never queued.
type Store struct {
	mu      sync.Mutex
	state   State
	gen     Generator
	catalog domain.Catalog
	logger  *infra.Logger
	now     func() time.Time
	newID   func() string
}

func NewStore(opts Options) *Store {
	catalog := domain.MerchCatalog()
	if opts.Catalog != nil {
		catalog = *opts.Catalog
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		discard := infra.DiscardLogger()
		logger = &discard
	}
	return &Store{
		state:   State{Mode: domain.ModeCatalog},
		gen:     opts.Generator,
		catalog: catalog,
		logger:  logger,
		now:     now,
		newID:   newID,
	}
}

// Catalog returns the product table the store resolves selections against.
func (s *Store) Catalog() domain.Catalog {
	return s.catalog
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	out := s.state
	out.History = make([]domain.GenerationRecord, len(s.state.History))
	copy(out.History, s.state.History)
	return out
}

// Record looks up a history entry by id.
func (s *Store) Record(id string) (domain.GenerationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.state.History {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.GenerationRecord{}, false
}

// Upload replaces the source image and clears the error. History is kept.
func (s *Store) Upload(src domain.SourceImage) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Source = src
	s.state.Error = ""
	return s.snapshotLocked()
}

// FailUpload records a file that could not be read. The current image, if
// any, stays in place.
func (s *Store) FailUpload(err error) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = domain.UserMessage(err)
	return s.snapshotLocked()
}

// Clear discards the source image. History is kept.
func (s *Store) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Source = ""
	return s.snapshotLocked()
}

// SetMode switches between the catalog and the free-text editor.
func (s *Store) SetMode(mode domain.Mode) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mode = mode
	return s.snapshotLocked()
}

// GenerateFromCatalog places the uploaded design on the product with id.
func (s *Store) GenerateFromCatalog(ctx context.Context, id string) (domain.GenerationRecord, error) {
	entry, ok := s.catalog.Lookup(id)
	if !ok {
		return domain.GenerationRecord{}, domain.ErrUnknownProduct
	}
	return s.generate(ctx, domain.ModeCatalog, prompt.FromCatalogSelection(entry), nil)
}

// GenerateFromText applies a free-form instruction to the uploaded image.
func (s *Store) GenerateFromText(ctx context.Context, text string) (domain.GenerationRecord, error) {
	instruction, err := prompt.FromFreeText(text)
	return s.generate(ctx, domain.ModeFreeText, instruction, err)
}

func (s *Store) generate(ctx context.Context, mode domain.Mode, instruction string, promptErr error) (domain.GenerationRecord, error) {
	s.mu.Lock()
	if s.state.InProgress {
		s.mu.Unlock()
		return domain.GenerationRecord{}, domain.ErrGenerationInProgress
	}
	if s.state.Source.IsZero() {
		s.mu.Unlock()
		return domain.GenerationRecord{}, domain.ErrNoSourceImage
	}
	if promptErr != nil {
		s.state.Error = domain.UserMessage(promptErr)
		s.mu.Unlock()
		return domain.GenerationRecord{}, promptErr
	}
	src := s.state.Source
	s.state.InProgress = true
	s.state.Error = ""
	s.mu.Unlock()

	result, err := s.dispatch(ctx, src, instruction)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.InProgress = false
	if err != nil {
		s.state.Error = domain.UserMessage(err)
		s.logger.Warn().
			Err(err).
			Str("mode", string(mode)).
			Str("kind", domain.KindOf(err).String()).
			Msg("session: generation failed")
		return domain.GenerationRecord{}, err
	}

	rec := domain.GenerationRecord{
		ID:          s.newID(),
		SourceImage: src,
		ResultImage: result,
		PromptText:  instruction,
		CreatedAt:   s.now(),
		Mode:        mode,
	}
	history := make([]domain.GenerationRecord, 0, len(s.state.History)+1)
	history = append(history, rec)
	s.state.History = append(history, s.state.History...)
	s.state.Error = ""

	s.logger.Info().
		Str("record_id", rec.ID).
		Str("mode", string(mode)).
		Int("history_len", len(s.state.History)).
		Msg("session: generation recorded")
	return rec, nil
}

// dispatch runs the generator outside the lock. Once dispatched a generation
// runs to completion, and a panicking generator still releases the gate.
func (s *Store) dispatch(ctx context.Context, src domain.SourceImage, instruction string) (result domain.SourceImage, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = domain.Classify(domain.KindUnclassifiedService, fmt.Errorf("generator panic: %v", p))
		}
	}()
	return s.gen.Generate(context.WithoutCancel(ctx), src, instruction)
}
