package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type document struct {
	Key       string    `firestore:"key"`
	Data      []byte    `firestore:"data"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// Firestore stores each key as one document in a single collection
type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.Storage = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix isolates documents of one deployment, mainly for tests
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Firestore) collection() string {
	if f.collectionPrefix != "" {
		return f.collectionPrefix + "_documents"
	}
	return "documents"
}

func (f *Firestore) Load(ctx context.Context, key string) ([]byte, error) {
	doc, err := f.client.Collection(f.collection()).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V(model.StorageKeyKey, key))
	}

	var d document
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document", goerr.V(model.StorageKeyKey, key))
	}
	return d.Data, nil
}

func (f *Firestore) Save(ctx context.Context, key string, data []byte) error {
	d := &document{
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.client.Collection(f.collection()).Doc(key).Set(ctx, d); err != nil {
		return goerr.Wrap(err, "failed to set document", goerr.V(model.StorageKeyKey, key))
	}
	return nil
}

func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
