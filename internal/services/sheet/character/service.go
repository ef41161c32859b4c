package character

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/platform/id"
	"github.com/louisbranch/poolsheet/internal/random"
	"github.com/louisbranch/poolsheet/internal/rules/tags"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/poolsheet/internal/services/sheet/character"

// Service runs sheet operations against a store.
type Service struct {
	store         storage.Store
	clock         func() time.Time
	idGenerator   id.Generator
	seedGenerator func() (int64, error)
	tagList       []string
	tracer        trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithTagList sets the list that bare numeric tags index into.
func WithTagList(list []string) Option {
	return func(s *Service) {
		s.tagList = append([]string(nil), list...)
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(generate id.Generator) Option {
	return func(s *Service) {
		if generate != nil {
			s.idGenerator = generate
		}
	}
}

// WithSeedGenerator overrides the seed source used when a roll does not pin one.
func WithSeedGenerator(generate func() (int64, error)) Option {
	return func(s *Service) {
		if generate != nil {
			s.seedGenerator = generate
		}
	}
}

// NewService creates a sheet service backed by store.
func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		clock:         time.Now,
		idGenerator:   id.NewID,
		seedGenerator: random.NewSeed,
		tracer:        otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func (s *Service) normalizer() tags.Normalizer {
	return tags.New(s.tagList)
}

func (s *Service) ready() error {
	if s == nil || s.store == nil {
		return fmt.Errorf("sheet store is not configured")
	}
	return nil
}

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return tracer.Start(ctx, "sheet."+name, trace.WithAttributes(attrs...))
}

// finish records err on span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, string(apperrors.GetCode(err)))
	}
	span.End()
}

// CreateCharacter stores a new character.
func (s *Service) CreateCharacter(ctx context.Context, name string) (rec storage.CharacterRecord, err error) {
	ctx, span := s.start(ctx, "CreateCharacter")
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return storage.CharacterRecord{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.CharacterRecord{}, apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	}
	characterID, err := s.idGenerator()
	if err != nil {
		return storage.CharacterRecord{}, fmt.Errorf("generate character id: %w", err)
	}
	now := s.now()
	rec = storage.CharacterRecord{
		ID:        characterID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutCharacter(ctx, rec); err != nil {
		return storage.CharacterRecord{}, fmt.Errorf("put character: %w", err)
	}
	span.SetAttributes(attribute.String("character.id", rec.ID))
	log.Printf("character %s created", rec.ID)
	return rec, nil
}

// GetCharacter returns one character.
func (s *Service) GetCharacter(ctx context.Context, characterID string) (rec storage.CharacterRecord, err error) {
	ctx, span := s.start(ctx, "GetCharacter", attribute.String("character.id", characterID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return storage.CharacterRecord{}, err
	}
	return s.loadCharacter(ctx, s.store, characterID)
}

func (s *Service) loadCharacter(ctx context.Context, store storage.CharacterStore, characterID string) (storage.CharacterRecord, error) {
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return storage.CharacterRecord{}, apperrors.New(apperrors.CodeCharacterEmptyID, "character id is required")
	}
	rec, err := store.GetCharacter(ctx, characterID)
	if err != nil {
		return storage.CharacterRecord{}, notFound(err, "character", characterID)
	}
	return rec, nil
}

// notFound maps storage.ErrNotFound to a coded error and wraps anything else.
func notFound(err error, kind, recordID string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.Wrap(err, apperrors.CodeNotFound, kind+" not found", map[string]string{"Kind": kind, "ID": recordID})
	}
	return fmt.Errorf("get %s: %w", kind, err)
}
