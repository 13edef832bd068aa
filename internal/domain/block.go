// internal/domain/block.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Block is a titled piece of session content used while authoring. It is
// flattened into a Session section on save and parsed back when editing.
type Block struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewBlock creates a Block with a fresh ID.
func NewBlock(title, content string, createdAt time.Time) Block {
	return Block{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	}
}

func (b Block) IsEmpty() bool {
	return b.Title == "" && b.Content == ""
}

func (b Block) IsValid() bool {
	return b.Content != ""
}

func (b Block) DisplayTitle() string {
	if b.Title == "" {
		return "Untitled Block"
	}
	return b.Title
}

// Format renders the block as a section string: "title: content", or the bare
// content when there is no title.
func (b Block) Format() string {
	if b.Title == "" {
		return b.Content
	}
	return b.Title + ": " + b.Content
}

// ParseBlock splits a section on its first colon. Content that itself contains a
// colon before the intended separator does not round-trip.
func ParseBlock(section string) Block {
	title, content, found := strings.Cut(section, ":")
	if !found {
		return Block{ID: uuid.New().String(), Content: section}
	}
	return Block{
		ID:      uuid.New().String(),
		Title:   title,
		Content: strings.TrimSpace(content),
	}
}

// BlocksFromSections rebuilds blocks from a Session's sections, skipping the summary.
func BlocksFromSections(sections []string) []Block {
	if len(sections) <= 1 {
		return nil
	}
	blocks := make([]Block, 0, len(sections)-1)
	for _, section := range sections[1:] {
		blocks = append(blocks, ParseBlock(section))
	}
	return blocks
}

// SectionsFromBlocks puts the summary first and appends every non-empty block.
func SectionsFromBlocks(summary string, blocks []Block) []string {
	sections := []string{summary}
	for _, b := range blocks {
		if b.IsEmpty() {
			continue
		}
		sections = append(sections, b.Format())
	}
	return sections
}
