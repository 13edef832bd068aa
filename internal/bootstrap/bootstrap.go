// Package bootstrap assembles the stores and services from configuration. The
// HTTP server and the CLI both start here.
package bootstrap

import (
	"coachplus/coachlog/internal/api"
	"coachplus/coachlog/internal/config"
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"coachplus/coachlog/internal/repository/kvstore"
	"coachplus/coachlog/internal/repository/memory"
	"coachplus/coachlog/internal/repository/mongo"
	"coachplus/coachlog/internal/repository/sqlite"
	"coachplus/coachlog/internal/service"
	"coachplus/coachlog/internal/storage"
	"context"
	"fmt"
	"log"
	"time"
)

// backend is a BlobStore that owns a connection or file handle.
type backend interface {
	repository.BlobStore
	Close(ctx context.Context) error
}

type App struct {
	Calendar domain.Calendar

	Sessions  service.SessionManager
	Search    service.SearchService
	Templates service.TemplateService
	Blocks    service.BlockService
	Focus     service.FocusService
	Stats     service.StatsService
	Backup    service.BackupService

	blobs backend
}

// New opens the configured backend and wires every service onto it.
func New(cfg config.Config) (*App, error) {
	cal, err := domain.NewCalendar(cfg.Calendar.Timezone, cfg.Calendar.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}
	defaultTime, err := domain.ParseTimeOfDay(cfg.Sessions.DefaultTime)
	if err != nil {
		return nil, fmt.Errorf("sessions.default_time: %w", err)
	}

	blobs, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	return newApp(cal, defaultTime, blobs), nil
}

func newApp(cal domain.Calendar, defaultTime domain.TimeOfDay, blobs backend) *App {
	sessionStore := kvstore.NewSessionStore(blobs, cal)
	templateStore := kvstore.NewTemplateStore(blobs)
	blockStore := kvstore.NewBlockStore(blobs)
	focusStore := kvstore.NewFocusStore(blobs)

	return &App{
		Calendar:  cal,
		Sessions:  service.NewSessionManager(cal, sessionStore, defaultTime),
		Search:    service.NewSearchService(sessionStore),
		Templates: service.NewTemplateService(templateStore),
		Blocks:    service.NewBlockService(blockStore),
		Focus:     service.NewFocusService(cal, focusStore),
		Stats:     service.NewStatsService(cal, sessionStore),
		Backup:    service.NewBackupService(sessionStore, templateStore, blockStore, focusStore),
		blobs:     blobs,
	}
}

func openBackend(cfg config.Config) (backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Println("WARN: Using in-memory storage; nothing survives a restart.")
		return memory.NewBlobStore(), nil

	case config.BackendSQLite:
		store, err := sqlite.NewBlobStore(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.Storage.SQLite.Path, err)
		}
		log.Printf("INFO: Using SQLite storage at %s", cfg.Storage.SQLite.Path)
		return store, nil

	case config.BackendMongo:
		client, err := mongo.ConnectDB(cfg.Storage.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		store := mongo.NewMongoBlobStore(client, client.Database(cfg.Storage.Mongo.Name))
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureBlobIndexes(ctx, store.Collection())
		}()
		log.Printf("INFO: Using MongoDB storage in database %s", cfg.Storage.Mongo.Name)
		return store, nil

	case config.BackendS3:
		store, err := storage.NewS3BlobStore(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("initialize S3 storage: %w", err)
		}
		log.Printf("INFO: Using S3 storage in bucket %s", cfg.S3.BucketName)
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// Services exposes the HTTP-facing subset of the app.
func (a *App) Services() api.Services {
	return api.Services{
		Sessions:  a.Sessions,
		Search:    a.Search,
		Templates: a.Templates,
		Blocks:    a.Blocks,
		Focus:     a.Focus,
		Stats:     a.Stats,
	}
}

// Close releases the storage backend.
func (a *App) Close(ctx context.Context) error {
	return a.blobs.Close(ctx)
}
