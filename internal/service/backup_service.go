package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is a full copy of every collection, used for export and import.
type Snapshot struct {
	Version    int                   `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exportedAt" yaml:"exportedAt"`
	Sessions   []domain.Session      `json:"sessions" yaml:"sessions"`
	Templates  []domain.Template     `json:"templates" yaml:"templates"`
	Blocks     []domain.Block        `json:"blocks" yaml:"blocks"`
	Focuses    []domain.MonthlyFocus `json:"focuses" yaml:"focuses"`
}

// Snapshot encodings.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type BackupService interface {
	Export(ctx context.Context) Snapshot
	// Import replaces every collection with the snapshot's contents.
	Import(ctx context.Context, snap Snapshot) error
}

type backupService struct {
	sessions  repository.SessionStore
	templates repository.TemplateStore
	blocks    repository.BlockStore
	focuses   repository.FocusStore
	now       func() time.Time
}

func NewBackupService(sessions repository.SessionStore, templates repository.TemplateStore, blocks repository.BlockStore, focuses repository.FocusStore) BackupService {
	return &backupService{
		sessions:  sessions,
		templates: templates,
		blocks:    blocks,
		focuses:   focuses,
		now:       time.Now,
	}
}

func (s *backupService) Export(ctx context.Context) Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.now().UTC(),
		Sessions:   s.sessions.Load(ctx),
		Templates:  s.templates.Load(ctx),
		Blocks:     s.blocks.Load(ctx),
		Focuses:    s.focuses.Load(ctx),
	}
}

func (s *backupService) Import(ctx context.Context, snap Snapshot) error {
	if snap.Version > SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, SnapshotVersion)
	}

	if err := s.sessions.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.sessions.SaveMultiple(ctx, snap.Sessions); err != nil {
		return err
	}

	if err := s.templates.DeleteAll(ctx); err != nil {
		return err
	}
	for _, tpl := range snap.Templates {
		if err := s.templates.Save(ctx, tpl); err != nil {
			return err
		}
	}

	if err := s.blocks.DeleteAll(ctx); err != nil {
		return err
	}
	for _, b := range snap.Blocks {
		if err := s.blocks.Save(ctx, b); err != nil {
			return err
		}
	}

	if err := s.focuses.DeleteAll(ctx); err != nil {
		return err
	}
	for _, f := range snap.Focuses {
		if err := s.focuses.Save(ctx, f); err != nil {
			return err
		}
	}

	log.Printf("INFO: imported %d sessions, %d templates, %d blocks, %d focuses",
		len(snap.Sessions), len(snap.Templates), len(snap.Blocks), len(snap.Focuses))
	return nil
}

// FormatFromPath picks the encoding from a file extension, defaulting to YAML.
func FormatFromPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// EncodeSnapshot writes snap to w in the given format.
func EncodeSnapshot(w io.Writer, snap Snapshot, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported snapshot format %q", format)
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader, format string) (Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("decode json snapshot: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	default:
		return Snapshot{}, fmt.Errorf("unsupported snapshot format %q", format)
	}
	return snap, nil
}
