package kvstore

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
)

// TemplateStore is the persistent repository.TemplateStore.
type TemplateStore struct {
	guard
	templates collection[domain.Template]
}

func NewTemplateStore(blobs repository.BlobStore) *TemplateStore {
	return &TemplateStore{templates: collection[domain.Template]{blobs: blobs, key: repository.TemplatesKey}}
}

// Save replaces any template with the same ID.
func (s *TemplateStore) Save(ctx context.Context, template domain.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.templates.read(ctx)
	if err != nil {
		return s.fail(repository.ErrSaveFailed, repository.TemplatesKey, err)
	}
	templates = removeTemplate(templates, template.ID)
	templates = append(templates, template)
	if err := s.templates.write(ctx, templates); err != nil {
		return s.fail(repository.ErrSaveFailed, repository.TemplatesKey, err)
	}
	return nil
}

func (s *TemplateStore) Load(ctx context.Context) []domain.Template {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.templates.read(ctx)
	if err != nil {
		s.fail(repository.ErrLoadFailed, repository.TemplatesKey, err)
		return []domain.Template{}
	}
	if templates == nil {
		return []domain.Template{}
	}
	return templates
}

func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.templates.read(ctx)
	if err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.TemplatesKey, err)
	}
	kept := removeTemplate(templates, id)
	if len(kept) == len(templates) {
		return nil
	}
	if err := s.templates.write(ctx, kept); err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.TemplatesKey, err)
	}
	return nil
}

func (s *TemplateStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.templates.clear(ctx); err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.TemplatesKey, err)
	}
	return nil
}

func (s *TemplateStore) Validate(template domain.Template) bool {
	return template.Validate()
}

func removeTemplate(templates []domain.Template, id string) []domain.Template {
	kept := make([]domain.Template, 0, len(templates))
	for _, t := range templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept
}
