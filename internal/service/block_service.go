package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidBlock  = errors.New("block content must not be empty")
	ErrBlockNotFound = errors.New("block not found")
)

// BlockService is the library of saved authoring blocks.
type BlockService interface {
	Save(ctx context.Context, title, content string) (domain.Block, error)
	List(ctx context.Context) []domain.Block
	Delete(ctx context.Context, id string) error
}

type blockService struct {
	store repository.BlockStore
	now   func() time.Time
}

func NewBlockService(store repository.BlockStore) BlockService {
	return &blockService{store: store, now: time.Now}
}

func (s *blockService) Save(ctx context.Context, title, content string) (domain.Block, error) {
	block := domain.NewBlock(strings.TrimSpace(title), strings.TrimSpace(content), s.now())
	if !block.IsValid() {
		return domain.Block{}, ErrInvalidBlock
	}
	if err := s.store.Save(ctx, block); err != nil {
		return domain.Block{}, err
	}
	return block, nil
}

// List returns saved blocks, newest first.
func (s *blockService) List(ctx context.Context) []domain.Block {
	blocks := s.store.Load(ctx)
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].CreatedAt.After(blocks[j].CreatedAt)
	})
	return blocks
}

func (s *blockService) Delete(ctx context.Context, id string) error {
	for _, b := range s.store.Load(ctx) {
		if b.ID == id {
			return s.store.Delete(ctx, id)
		}
	}
	return ErrBlockNotFound
}
