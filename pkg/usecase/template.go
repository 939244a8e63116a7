package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// TemplateUseCase composes templates out of option set snapshots
type TemplateUseCase struct {
	state *state
}

func NewTemplateUseCase(s *state) *TemplateUseCase {
	return &TemplateUseCase{state: s}
}

func (uc *TemplateUseCase) List(ctx context.Context) []*model.Template {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()
	return model.CloneTemplates(uc.state.templates)
}

func (uc *TemplateUseCase) Get(ctx context.Context, id model.TemplateID) (*model.Template, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findTemplate(id)
	if err != nil {
		return nil, err
	}
	return uc.state.templates[idx].Clone(), nil
}

// Save creates a template holding deep copies of the selected option sets, in selection order
func (uc *TemplateUseCase) Save(ctx context.Context, name string, optionSetIDs []model.OptionSetID) (*model.Template, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	snapshots, err := uc.snapshot(name, optionSetIDs)
	if err != nil {
		return nil, err
	}

	now := uc.state.timestamp()
	t := &model.Template{
		ID:         model.NewTemplateID(),
		Name:       strings.TrimSpace(name),
		OptionSets: snapshots,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	templates := append(model.CloneTemplates(uc.state.templates), t)
	if err := uc.state.commit(ctx, uc.state.optionSets, templates); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// Update renames the template and takes fresh snapshots of the selected option sets
func (uc *TemplateUseCase) Update(ctx context.Context, id model.TemplateID, name string, optionSetIDs []model.OptionSetID) (*model.Template, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findTemplate(id)
	if err != nil {
		return nil, err
	}

	snapshots, err := uc.snapshot(name, optionSetIDs)
	if err != nil {
		return nil, err
	}

	templates := model.CloneTemplates(uc.state.templates)
	t := templates[idx]
	t.Name = strings.TrimSpace(name)
	t.OptionSets = snapshots
	t.UpdatedAt = uc.state.timestamp()

	if err := uc.state.commit(ctx, uc.state.optionSets, templates); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

func (uc *TemplateUseCase) Delete(ctx context.Context, id model.TemplateID) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findTemplate(id)
	if err != nil {
		return err
	}

	templates := make([]*model.Template, 0, len(uc.state.templates)-1)
	for i, t := range uc.state.templates {
		if i != idx {
			templates = append(templates, t.Clone())
		}
	}
	return uc.state.commit(ctx, uc.state.optionSets, templates)
}

// Duplicate copies a template under a new id. Snapshots keep the ids of the option sets
// they were taken from, so later edits still propagate into the copy.
func (uc *TemplateUseCase) Duplicate(ctx context.Context, id model.TemplateID) (*model.Template, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findTemplate(id)
	if err != nil {
		return nil, err
	}

	now := uc.state.timestamp()
	dup := uc.state.templates[idx].Clone()
	dup.ID = model.NewTemplateID()
	dup.Name = dup.Name + " (Copy)"
	dup.CreatedAt = now
	dup.UpdatedAt = now

	templates := append(model.CloneTemplates(uc.state.templates), dup)
	if err := uc.state.commit(ctx, uc.state.optionSets, templates); err != nil {
		return nil, err
	}
	return dup.Clone(), nil
}

// OnOptionSetChanged replaces the snapshot of set in every template holding it
func (uc *TemplateUseCase) OnOptionSetChanged(ctx context.Context, set *model.OptionSet) error {
	if set == nil {
		return goerr.Wrap(ErrMissingInput, "option set is required")
	}

	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	templates := propagateChange(model.CloneTemplates(uc.state.templates), set, uc.state.timestamp())
	return uc.state.commit(ctx, uc.state.optionSets, templates)
}

// OnOptionSetDeleted drops the option set from every template, applying the empty template policy
func (uc *TemplateUseCase) OnOptionSetDeleted(ctx context.Context, id model.OptionSetID) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	templates := propagateDelete(model.CloneTemplates(uc.state.templates), id, uc.state.policy, uc.state.timestamp())
	return uc.state.commit(ctx, uc.state.optionSets, templates)
}

// snapshot validates a template selection and deep copies the selected option sets.
// Repeated ids are kept once, at their first position. The caller must hold the state lock.
func (uc *TemplateUseCase) snapshot(name string, ids []model.OptionSetID) ([]*model.OptionSet, error) {
	if len(ids) == 0 {
		return nil, goerr.Wrap(model.ErrNoOptionSetsSelected, "template needs at least one option set")
	}
	if strings.TrimSpace(name) == "" {
		return nil, goerr.Wrap(model.ErrMissingName, "template name is required")
	}

	seen := make(map[model.OptionSetID]bool, len(ids))
	snapshots := make([]*model.OptionSet, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		idx, err := uc.state.findOptionSet(id)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, uc.state.optionSets[idx].Clone())
	}
	return snapshots, nil
}

// propagateChange replaces the snapshot of set in every template that holds it and
// refreshes their updatedAt. templates is modified in place and returned.
func propagateChange(templates []*model.Template, set *model.OptionSet, now time.Time) []*model.Template {
	for _, t := range templates {
		touched := false
		for i, s := range t.OptionSets {
			if s.ID == set.ID {
				t.OptionSets[i] = set.Clone()
				touched = true
			}
		}
		if touched {
			t.UpdatedAt = now
		}
	}
	return templates
}

// propagateDelete filters the option set out of every template. Templates left with no
// option sets are kept or removed according to policy.
func propagateDelete(templates []*model.Template, id model.OptionSetID, policy types.EmptyTemplatePolicy, now time.Time) []*model.Template {
	result := make([]*model.Template, 0, len(templates))
	for _, t := range templates {
		if !t.Contains(id) {
			result = append(result, t)
			continue
		}

		remaining := make([]*model.OptionSet, 0, len(t.OptionSets))
		for _, s := range t.OptionSets {
			if s.ID != id {
				remaining = append(remaining, s)
			}
		}
		t.OptionSets = remaining
		t.UpdatedAt = now

		if len(remaining) == 0 && policy == types.EmptyTemplatePolicyRemove {
			continue
		}
		result = append(result, t)
	}
	return result
}
