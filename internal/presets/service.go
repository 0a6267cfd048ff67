package presets

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service manages style presets and turns them into section patches.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*StylePreset, error)
	Get(ctx context.Context, id uuid.UUID) (*StylePreset, error)
	GetBySlug(ctx context.Context, slug string) (*StylePreset, error)
	List(ctx context.Context, category Category) ([]*StylePreset, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Use returns the patch for presetID and bumps its usage counter.
	Use(ctx context.Context, presetID uuid.UUID) (sections.Patch, error)
	// Apply merges the preset into section the way a responsive override
	// merges, marking the touched fields as customised.
	Apply(ctx context.Context, presetID uuid.UUID, section sections.Section) (sections.Section, error)
}

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs the preset service. It panics without a repository.
func NewService(repo Repository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateInput) (*StylePreset, error) {
	input.Name = strings.TrimSpace(input.Name)
	key := strings.TrimSpace(input.Slug)
	if key == "" {
		key = input.Name
	}
	normalized, err := slug.Normalize(key)
	if err != nil {
		return nil, errors.Join(ErrPresetInvalid, err)
	}
	input.Slug = normalized

	if err := validateCreate(input); err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetBySlug(ctx, input.Slug); err == nil && existing != nil {
		return nil, ErrPresetExists
	} else if err != nil && !errors.Is(err, ErrPresetNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &StylePreset{
		ID:          identity.PresetUUID(input.Slug),
		Name:        input.Name,
		Slug:        input.Slug,
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		Layout:      input.Layout,
		Style:       input.Style,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("presets.created", "preset_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

func validateCreate(input CreateInput) error {
	categories := make([]any, len(Categories))
	for i, category := range Categories {
		categories[i] = category
	}
	err := validation.Errors{
		"name":     validation.Validate(input.Name, validation.Required, validation.Length(1, 120)),
		"slug":     validation.Validate(input.Slug, validation.Required),
		"category": validation.Validate(input.Category, validation.Required, validation.In(categories...)),
	}.Filter()
	if err != nil {
		return errors.Join(ErrPresetInvalid, err)
	}
	if len(settings.Paths(input.Layout)) == 0 && len(settings.Paths(input.Style)) == 0 {
		return ErrPresetEmpty
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StylePreset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, key string) (*StylePreset, error) {
	return s.repo.GetBySlug(ctx, strings.TrimSpace(key))
}

func (s *service) List(ctx context.Context, category Category) ([]*StylePreset, error) {
	return s.repo.List(ctx, category)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Use(ctx context.Context, presetID uuid.UUID) (sections.Patch, error) {
	preset, err := s.repo.GetByID(ctx, presetID)
	if err != nil {
		return sections.Patch{}, err
	}
	preset.UsageCount++
	preset.UpdatedAt = s.now().UTC()
	if _, err := s.repo.Update(ctx, preset); err != nil {
		return sections.Patch{}, err
	}

	s.logger.Debug("presets.used", "preset_id", preset.ID.String(), "usage_count", preset.UsageCount)
	patch := sections.Patch{}
	if len(settings.Paths(preset.Layout)) > 0 {
		patch.Layout = &preset.Layout
	}
	if len(settings.Paths(preset.Style)) > 0 {
		patch.Style = &preset.Style
	}
	return patch, nil
}

func (s *service) Apply(ctx context.Context, presetID uuid.UUID, section sections.Section) (sections.Section, error) {
	patch, err := s.Use(ctx, presetID)
	if err != nil {
		return sections.Section{}, err
	}
	updated := sections.Clone(section)
	var touched []string
	if patch.Layout != nil {
		updated.Layout = settings.MergeLayout(updated.Layout, *patch.Layout)
		for _, path := range settings.Paths(*patch.Layout) {
			touched = append(touched, "layout."+path)
		}
	}
	if patch.Style != nil {
		updated.Style = settings.MergeStyle(updated.Style, *patch.Style)
		for _, path := range settings.Paths(*patch.Style) {
			touched = append(touched, "style."+path)
		}
	}
	updated.CustomizedFields = sections.MarkCustomized(updated.CustomizedFields, touched...)
	updated.UpdatedAt = s.now()
	return updated, nil
}
