package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// UseCases bundles the engine operations over one shared, persisted state.
// Every operation holds the state lock until it has been saved, so calls from
// concurrent HTTP handlers still run one after another.
type UseCases struct {
	state *state

	commerce interfaces.Commerce

	OptionSet *OptionSetUseCase
	Template  *TemplateUseCase
	Catalog   *CatalogUseCase
}

type Option func(*UseCases)

// WithRegistry replaces the built-in element type registry
func WithRegistry(registry *schema.Registry) Option {
	return func(uc *UseCases) {
		uc.state.registry = registry
	}
}

// WithEmptyTemplatePolicy selects what happens to a template that loses its last option set
func WithEmptyTemplatePolicy(policy types.EmptyTemplatePolicy) Option {
	return func(uc *UseCases) {
		uc.state.policy = policy
	}
}

// WithCommerce enables catalog backed option population
func WithCommerce(commerce interfaces.Commerce) Option {
	return func(uc *UseCases) {
		uc.commerce = commerce
	}
}

// WithClock overrides the time source, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.state.now = now
	}
}

func New(storage interfaces.Storage, opts ...Option) *UseCases {
	uc := &UseCases{
		state: &state{
			collections: NewCollections(storage),
			registry:    schema.Default(),
			policy:      types.EmptyTemplatePolicyKeep,
			now:         time.Now,
			optionSets:  []*model.OptionSet{},
			templates:   []*model.Template{},
		},
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.OptionSet = NewOptionSetUseCase(uc.state)
	uc.Template = NewTemplateUseCase(uc.state)
	uc.Catalog = NewCatalogUseCase(uc.state.registry, uc.commerce)

	return uc
}

// Load replaces the in-memory state with the persisted collections
func (uc *UseCases) Load(ctx context.Context) error {
	optionSets, templates, err := uc.state.collections.Load(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load collections")
	}

	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()
	uc.state.optionSets = optionSets
	uc.state.templates = templates
	return nil
}

// Registry returns the element type registry used by the engine
func (uc *UseCases) Registry() *schema.Registry {
	return uc.state.registry
}

// Policy returns the configured empty template policy
func (uc *UseCases) Policy() types.EmptyTemplatePolicy {
	return uc.state.policy
}

// state is the canonical in-memory copy of both collections. Mutations build the
// next collections from copies and swap them in only after a successful save.
type state struct {
	mu sync.Mutex

	collections *Collections
	registry    *schema.Registry
	policy      types.EmptyTemplatePolicy
	now         func() time.Time

	optionSets []*model.OptionSet
	templates  []*model.Template
}

func (s *state) commit(ctx context.Context, optionSets []*model.OptionSet, templates []*model.Template) error {
	if err := s.collections.Save(ctx, optionSets, templates); err != nil {
		return goerr.Wrap(err, "failed to persist collections")
	}
	s.optionSets = optionSets
	s.templates = templates
	return nil
}

func (s *state) findOptionSet(id model.OptionSetID) (int, error) {
	for i, set := range s.optionSets {
		if set.ID == id {
			return i, nil
		}
	}
	return -1, goerr.Wrap(model.ErrOptionSetNotFound, "option set not found", goerr.V(model.OptionSetIDKey, id))
}

func (s *state) findTemplate(id model.TemplateID) (int, error) {
	for i, t := range s.templates {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, goerr.Wrap(model.ErrTemplateNotFound, "template not found", goerr.V(model.TemplateIDKey, id))
}

// timestamp returns the current time truncated so that it survives a JSON round trip unchanged
func (s *state) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
