package gcs

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/utils/safe"
	"google.golang.org/api/option"
)

// GCS stores each key as the object <prefix><key>.json in one bucket
type GCS struct {
	client        *storage.Client
	bucket        string
	prefix        string
	clientOptions []option.ClientOption
}

var _ interfaces.Storage = &GCS{}

type Option func(*GCS)

// WithPrefix sets the object name prefix, e.g. "tailorkit/"
func WithPrefix(prefix string) Option {
	return func(g *GCS) {
		g.prefix = prefix
	}
}

// WithEndpoint points the client at a custom endpoint such as a local emulator
func WithEndpoint(endpoint string) Option {
	return func(g *GCS) {
		if endpoint == "" {
			return
		}
		g.clientOptions = append(g.clientOptions,
			option.WithEndpoint(endpoint),
			option.WithoutAuthentication(),
		)
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket is required")
	}

	g := &GCS{bucket: bucket}
	for _, opt := range opts {
		opt(g)
	}

	client, err := storage.NewClient(ctx, g.clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create cloud storage client")
	}
	g.client = client
	return g, nil
}

func (g *GCS) object(key string) *storage.ObjectHandle {
	return g.client.Bucket(g.bucket).Object(g.prefix + key + ".json")
}

func (g *GCS) Load(ctx context.Context, key string) ([]byte, error) {
	r, err := g.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to open object",
			goerr.V("bucket", g.bucket),
			goerr.V(model.StorageKeyKey, key),
		)
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read object",
			goerr.V("bucket", g.bucket),
			goerr.V(model.StorageKeyKey, key),
		)
	}
	return data, nil
}

func (g *GCS) Save(ctx context.Context, key string, data []byte) error {
	w := g.object(key).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", g.bucket),
			goerr.V(model.StorageKeyKey, key),
		)
	}
	// the object is committed on Close
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to commit object",
			goerr.V("bucket", g.bucket),
			goerr.V(model.StorageKeyKey, key),
		)
	}
	return nil
}

func (g *GCS) Close() error {
	if err := g.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close cloud storage client")
	}
	return nil
}
