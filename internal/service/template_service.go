package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrInvalidTemplate  = errors.New("template needs a name and at least one section")
	ErrTemplateNotFound = errors.New("template not found")
)

// TemplateService manages the reusable session blueprints.
type TemplateService interface {
	Create(ctx context.Context, tpl domain.Template) (domain.Template, error)
	Replace(ctx context.Context, id string, tpl domain.Template) (domain.Template, error)
	Get(ctx context.Context, id string) (domain.Template, error)
	List(ctx context.Context) []domain.Template
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type templateService struct {
	store repository.TemplateStore
}

func NewTemplateService(store repository.TemplateStore) TemplateService {
	return &templateService{store: store}
}

// Create stores tpl under a fresh ID.
func (s *templateService) Create(ctx context.Context, tpl domain.Template) (domain.Template, error) {
	if !s.store.Validate(tpl) {
		return domain.Template{}, ErrInvalidTemplate
	}
	tpl.ID = uuid.New().String()
	tpl.Intensity = domain.ClampIntensity(tpl.Intensity)
	if err := s.store.Save(ctx, tpl); err != nil {
		return domain.Template{}, err
	}
	return tpl, nil
}

// Replace swaps the whole template stored under id.
func (s *templateService) Replace(ctx context.Context, id string, tpl domain.Template) (domain.Template, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return domain.Template{}, err
	}
	if !s.store.Validate(tpl) {
		return domain.Template{}, ErrInvalidTemplate
	}
	tpl.ID = id
	tpl.Intensity = domain.ClampIntensity(tpl.Intensity)
	if err := s.store.Save(ctx, tpl); err != nil {
		return domain.Template{}, err
	}
	return tpl, nil
}

func (s *templateService) Get(ctx context.Context, id string) (domain.Template, error) {
	for _, tpl := range s.store.Load(ctx) {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return domain.Template{}, ErrTemplateNotFound
}

// List returns templates sorted by name.
func (s *templateService) List(ctx context.Context) []domain.Template {
	templates := s.store.Load(ctx)
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *templateService) DeleteAll(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}
