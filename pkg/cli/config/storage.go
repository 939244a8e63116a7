package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/repository/file"
	"github.com/secmon-lab/tailorkit/pkg/repository/firestore"
	"github.com/secmon-lab/tailorkit/pkg/repository/gcs"
	"github.com/secmon-lab/tailorkit/pkg/repository/memory"
	"github.com/secmon-lab/tailorkit/pkg/repository/sqlite"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage backends
const (
	BackendMemory    = "memory"
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
	BackendGCS       = "gcs"
)

// Storage holds CLI flags for the Storage port backend
type Storage struct {
	backend string

	dir string
	dsn string

	projectID        string
	databaseID       string
	collectionPrefix string

	bucket       string
	objectPrefix string
	gcsEndpoint  string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Storage backend (memory, file, sqlite, firestore, gcs)",
			Value:       BackendFile,
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_STORAGE_BACKEND"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "storage-dir",
			Usage:       "Directory for the file backend",
			Value:       "./data",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_STORAGE_DIR"),
			Destination: &s.dir,
		},
		&cli.StringFlag{
			Name:        "sqlite-dsn",
			Usage:       "SQLite DSN for the sqlite backend",
			Value:       "file:tailorkit.db",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_SQLITE_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_FIRESTORE_PROJECT_ID"),
			Destination: &s.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_FIRESTORE_DATABASE_ID"),
			Destination: &s.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix of the Firestore collection name",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &s.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket (required when using gcs backend)",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_GCS_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix in the Cloud Storage bucket",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_GCS_PREFIX"),
			Destination: &s.objectPrefix,
		},
		&cli.StringFlag{
			Name:        "gcs-endpoint",
			Usage:       "Custom Cloud Storage endpoint, e.g. an emulator (disables authentication)",
			Category:    "Storage",
			Sources:     cli.EnvVars("TAILORKIT_GCS_ENDPOINT"),
			Destination: &s.gcsEndpoint,
		},
	}
}

// Backend returns the configured backend type
func (s *Storage) Backend() string {
	return s.backend
}

// Configure initializes the configured backend.
// The caller is responsible for calling Close() on the returned storage.
func (s *Storage) Configure(ctx context.Context) (interfaces.Storage, error) {
	logger := logging.From(ctx)

	switch s.backend {
	case BackendMemory:
		logger.Warn("Using in-memory storage, data is lost on exit (development mode)")
		return memory.New(), nil

	case BackendFile:
		st, err := file.New(s.dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize file storage")
		}
		logger.Info("Using file storage", "dir", s.dir)
		return st, nil

	case BackendSQLite:
		st, err := sqlite.New(ctx, s.dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite storage")
		}
		logger.Info("Using SQLite storage", "dsn", s.dsn)
		return st, nil

	case BackendFirestore:
		if s.projectID == "" {
			return nil, goerr.Wrap(ErrMissingOption, "firestore-project-id is required when using firestore backend",
				goerr.V(OptionKey, "firestore-project-id"))
		}
		var opts []firestore.Option
		if s.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(s.collectionPrefix))
		}
		st, err := firestore.New(ctx, s.projectID, s.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore storage")
		}
		logger.Info("Using Firestore storage",
			"project_id", s.projectID,
			"database_id", s.databaseID,
		)
		return st, nil

	case BackendGCS:
		if s.bucket == "" {
			return nil, goerr.Wrap(ErrMissingOption, "gcs-bucket is required when using gcs backend",
				goerr.V(OptionKey, "gcs-bucket"))
		}
		st, err := gcs.New(ctx, s.bucket,
			gcs.WithPrefix(s.objectPrefix),
			gcs.WithEndpoint(s.gcsEndpoint),
		)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize cloud storage")
		}
		logger.Info("Using Cloud Storage", "bucket", s.bucket, "prefix", s.objectPrefix)
		return st, nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unknown storage backend", goerr.V(BackendKey, s.backend))
	}
}

func (s Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", s.backend),
		slog.String("dir", s.dir),
		slog.String("project_id", s.projectID),
		slog.String("bucket", s.bucket),
	)
}
