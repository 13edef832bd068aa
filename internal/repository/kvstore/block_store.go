package kvstore

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
)

// BlockStore is the persistent repository.BlockStore.
type BlockStore struct {
	guard
	blocks collection[domain.Block]
}

func NewBlockStore(blobs repository.BlobStore) *BlockStore {
	return &BlockStore{blocks: collection[domain.Block]{blobs: blobs, key: repository.BlocksKey}}
}

func (s *BlockStore) Save(ctx context.Context, block domain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.blocks.read(ctx)
	if err != nil {
		return s.fail(repository.ErrSaveFailed, repository.BlocksKey, err)
	}
	blocks = removeBlock(blocks, block.ID)
	blocks = append(blocks, block)
	if err := s.blocks.write(ctx, blocks); err != nil {
		return s.fail(repository.ErrSaveFailed, repository.BlocksKey, err)
	}
	return nil
}

func (s *BlockStore) Load(ctx context.Context) []domain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.blocks.read(ctx)
	if err != nil {
		s.fail(repository.ErrLoadFailed, repository.BlocksKey, err)
		return []domain.Block{}
	}
	if blocks == nil {
		return []domain.Block{}
	}
	return blocks
}

func (s *BlockStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.blocks.read(ctx)
	if err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.BlocksKey, err)
	}
	kept := removeBlock(blocks, id)
	if len(kept) == len(blocks) {
		return nil
	}
	if err := s.blocks.write(ctx, kept); err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.BlocksKey, err)
	}
	return nil
}

func (s *BlockStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.blocks.clear(ctx); err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.BlocksKey, err)
	}
	return nil
}

func removeBlock(blocks []domain.Block, id string) []domain.Block {
	kept := make([]domain.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return kept
}
