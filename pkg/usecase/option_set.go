package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// OptionSetUseCase owns the canonical option sets and keeps template snapshots in sync
type OptionSetUseCase struct {
	state *state
}

func NewOptionSetUseCase(s *state) *OptionSetUseCase {
	return &OptionSetUseCase{state: s}
}

// List returns copies of all option sets in display order
func (uc *OptionSetUseCase) List(ctx context.Context) []*model.OptionSet {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()
	return model.CloneOptionSets(uc.state.optionSets)
}

func (uc *OptionSetUseCase) Get(ctx context.Context, id model.OptionSetID) (*model.OptionSet, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findOptionSet(id)
	if err != nil {
		return nil, err
	}
	return uc.state.optionSets[idx].Clone(), nil
}

// Create validates input and appends it as a new option set with a fresh id.
// An option set without elements is rejected with a validation error matching ErrEmptyOptionSet.
func (uc *OptionSetUseCase) Create(ctx context.Context, input *model.OptionSet) (*model.OptionSet, error) {
	if input == nil {
		return nil, goerr.Wrap(ErrMissingInput, "option set is required")
	}

	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	set := input.Clone()
	set.ID = model.NewOptionSetID()
	set.CreatedAt = uc.state.timestamp()
	if err := uc.prepare(set, uc.state.optionSets); err != nil {
		return nil, err
	}

	optionSets := append(model.CloneOptionSets(uc.state.optionSets), set)
	templates := uc.state.templates
	if set.IsDefaultOpen {
		if cleared := exclusiveDefaultOpen(optionSets, set.ID); len(cleared) > 0 {
			templates = model.CloneTemplates(uc.state.templates)
			for _, c := range cleared {
				templates = propagateChange(templates, c, uc.state.timestamp())
			}
		}
	}

	if err := uc.state.commit(ctx, optionSets, templates); err != nil {
		return nil, err
	}
	return set.Clone(), nil
}

// Update replaces the option set in place, keeping its id and creation time,
// and refreshes every template snapshot of it.
func (uc *OptionSetUseCase) Update(ctx context.Context, id model.OptionSetID, input *model.OptionSet) (*model.OptionSet, error) {
	if input == nil {
		return nil, goerr.Wrap(ErrMissingInput, "option set is required")
	}

	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findOptionSet(id)
	if err != nil {
		return nil, err
	}
	current := uc.state.optionSets[idx]

	set := input.Clone()
	set.ID = current.ID
	set.CreatedAt = current.CreatedAt

	others := make([]*model.OptionSet, 0, len(uc.state.optionSets)-1)
	for i, s := range uc.state.optionSets {
		if i != idx {
			others = append(others, s)
		}
	}
	if err := uc.prepare(set, others); err != nil {
		return nil, err
	}

	optionSets := model.CloneOptionSets(uc.state.optionSets)
	optionSets[idx] = set
	changed := []*model.OptionSet{set}
	if set.IsDefaultOpen {
		changed = append(changed, exclusiveDefaultOpen(optionSets, set.ID)...)
	}

	templates := model.CloneTemplates(uc.state.templates)
	for _, c := range changed {
		templates = propagateChange(templates, c, uc.state.timestamp())
	}

	if err := uc.state.commit(ctx, optionSets, templates); err != nil {
		return nil, err
	}
	return set.Clone(), nil
}

// Duplicate appends a deep copy of the option set with new ids for the set and every element
func (uc *OptionSetUseCase) Duplicate(ctx context.Context, id model.OptionSetID) (*model.OptionSet, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findOptionSet(id)
	if err != nil {
		return nil, err
	}

	dup := uc.state.optionSets[idx].Clone()
	dup.ID = model.NewOptionSetID()
	dup.Name = dup.Name + " (Copy)"
	dup.CreatedAt = uc.state.timestamp()
	dup.IsDefaultOpen = false
	for _, el := range dup.Elements {
		el.ID = model.NewElementID()
	}

	optionSets := append(model.CloneOptionSets(uc.state.optionSets), dup)
	if err := uc.state.commit(ctx, optionSets, uc.state.templates); err != nil {
		return nil, err
	}
	return dup.Clone(), nil
}

// Delete removes the option set and, in the same save, removes it from every template
func (uc *OptionSetUseCase) Delete(ctx context.Context, id model.OptionSetID) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findOptionSet(id)
	if err != nil {
		return err
	}

	optionSets := make([]*model.OptionSet, 0, len(uc.state.optionSets)-1)
	for i, s := range uc.state.optionSets {
		if i != idx {
			optionSets = append(optionSets, s.Clone())
		}
	}
	templates := propagateDelete(model.CloneTemplates(uc.state.templates), id, uc.state.policy, uc.state.timestamp())

	return uc.state.commit(ctx, optionSets, templates)
}

// Reorder sets the display order. ids must be a permutation of the stored option set ids.
func (uc *OptionSetUseCase) Reorder(ctx context.Context, ids []model.OptionSetID) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	if !samePermutation(uc.state.optionSets, ids) {
		return goerr.Wrap(model.ErrReorderSetMismatch, "reorder rejected",
			goerr.V("ids", ids),
			goerr.V("stored", len(uc.state.optionSets)),
		)
	}

	byID := make(map[model.OptionSetID]*model.OptionSet, len(uc.state.optionSets))
	for _, s := range uc.state.optionSets {
		byID[s.ID] = s
	}
	optionSets := make([]*model.OptionSet, len(ids))
	for i, id := range ids {
		optionSets[i] = byID[id].Clone()
	}

	return uc.state.commit(ctx, optionSets, uc.state.templates)
}

func samePermutation(sets []*model.OptionSet, ids []model.OptionSetID) bool {
	if len(sets) != len(ids) {
		return false
	}
	counts := make(map[model.OptionSetID]int, len(sets))
	for _, s := range sets {
		counts[s.ID]++
	}
	for _, id := range ids {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}

// SetDefaultOpen marks id as the only option set that opens by default
func (uc *OptionSetUseCase) SetDefaultOpen(ctx context.Context, id model.OptionSetID) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	idx, err := uc.state.findOptionSet(id)
	if err != nil {
		return err
	}

	optionSets := model.CloneOptionSets(uc.state.optionSets)
	changed := exclusiveDefaultOpen(optionSets, id)
	if !uc.state.optionSets[idx].IsDefaultOpen {
		changed = append(changed, optionSets[idx])
	}

	templates := uc.state.templates
	if len(changed) > 0 {
		templates = model.CloneTemplates(uc.state.templates)
		for _, c := range changed {
			templates = propagateChange(templates, c, uc.state.timestamp())
		}
	}

	return uc.state.commit(ctx, optionSets, templates)
}

// ClearDefaultOpen leaves no option set opening by default
func (uc *OptionSetUseCase) ClearDefaultOpen(ctx context.Context) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	optionSets := model.CloneOptionSets(uc.state.optionSets)
	templates := model.CloneTemplates(uc.state.templates)
	for _, s := range optionSets {
		if s.IsDefaultOpen {
			s.IsDefaultOpen = false
			templates = propagateChange(templates, s, uc.state.timestamp())
		}
	}

	return uc.state.commit(ctx, optionSets, templates)
}

// exclusiveDefaultOpen sets the flag on id and clears it everywhere else.
// It returns the option sets whose flag was cleared.
func exclusiveDefaultOpen(optionSets []*model.OptionSet, id model.OptionSetID) []*model.OptionSet {
	var cleared []*model.OptionSet
	for _, s := range optionSets {
		if s.ID == id {
			s.IsDefaultOpen = true
			continue
		}
		if s.IsDefaultOpen {
			s.IsDefaultOpen = false
			cleared = append(cleared, s)
		}
	}
	return cleared
}

// AddElement appends a new element of type t with schema defaults
func (uc *OptionSetUseCase) AddElement(ctx context.Context, setID model.OptionSetID, t types.ElementType) (*model.Element, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	el, err := uc.state.registry.NewElement(t)
	if err != nil {
		return nil, err
	}

	err = uc.mutateSet(ctx, setID, func(set *model.OptionSet) error {
		set.Elements = append(set.Elements, el)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return el.Clone(), nil
}

// EditElement sets one config field of an element. Edits that would break a
// mutual exclusion or invert a range are rejected and leave the element unchanged.
func (uc *OptionSetUseCase) EditElement(ctx context.Context, setID model.OptionSetID, elementID model.ElementID, path string, value any) (*model.Element, error) {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	var edited *model.Element
	err := uc.mutateSet(ctx, setID, func(set *model.OptionSet) error {
		el, _ := set.Element(elementID)
		if el == nil {
			return goerr.Wrap(model.ErrElementNotFound, "element not found",
				goerr.V(model.OptionSetIDKey, setID),
				goerr.V(model.ElementIDKey, elementID),
			)
		}
		if err := uc.state.registry.ApplyEdit(el, path, value); err != nil {
			return err
		}
		edited = el
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited.Clone(), nil
}

// RemoveElement deletes an element. Removing the last element is rejected because
// an option set without elements cannot be saved.
func (uc *OptionSetUseCase) RemoveElement(ctx context.Context, setID model.OptionSetID, elementID model.ElementID) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	return uc.mutateSet(ctx, setID, func(set *model.OptionSet) error {
		_, idx := set.Element(elementID)
		if idx < 0 {
			return goerr.Wrap(model.ErrElementNotFound, "element not found",
				goerr.V(model.OptionSetIDKey, setID),
				goerr.V(model.ElementIDKey, elementID),
			)
		}
		if len(set.Elements) == 1 {
			return goerr.Wrap(model.ErrEmptyOptionSet, "cannot remove the last element",
				goerr.V(model.OptionSetIDKey, setID),
				goerr.V(model.ElementIDKey, elementID),
			)
		}
		set.Elements = append(set.Elements[:idx], set.Elements[idx+1:]...)
		return nil
	})
}

// MoveElement moves an element to index within its option set
func (uc *OptionSetUseCase) MoveElement(ctx context.Context, setID model.OptionSetID, elementID model.ElementID, index int) error {
	uc.state.mu.Lock()
	defer uc.state.mu.Unlock()

	return uc.mutateSet(ctx, setID, func(set *model.OptionSet) error {
		el, from := set.Element(elementID)
		if el == nil {
			return goerr.Wrap(model.ErrElementNotFound, "element not found",
				goerr.V(model.OptionSetIDKey, setID),
				goerr.V(model.ElementIDKey, elementID),
			)
		}
		if index < 0 || index >= len(set.Elements) {
			return goerr.Wrap(model.ErrIndexOutOfRange, "invalid element position",
				goerr.V(model.IndexKey, index),
				goerr.V("count", len(set.Elements)),
			)
		}

		rest := append(set.Elements[:from:from], set.Elements[from+1:]...)
		moved := make([]*model.Element, 0, len(set.Elements))
		moved = append(moved, rest[:index]...)
		moved = append(moved, el)
		moved = append(moved, rest[index:]...)
		set.Elements = moved
		return nil
	})
}

// mutateSet applies fn to a copy of one option set, propagates the result to
// templates and saves. The caller must hold the state lock.
func (uc *OptionSetUseCase) mutateSet(ctx context.Context, setID model.OptionSetID, fn func(set *model.OptionSet) error) error {
	idx, err := uc.state.findOptionSet(setID)
	if err != nil {
		return err
	}

	optionSets := model.CloneOptionSets(uc.state.optionSets)
	if err := fn(optionSets[idx]); err != nil {
		return err
	}

	templates := propagateChange(model.CloneTemplates(uc.state.templates), optionSets[idx], uc.state.timestamp())
	return uc.state.commit(ctx, optionSets, templates)
}

// prepare normalizes a candidate option set before it is saved: the name is trimmed,
// elements get ids that are unique across the store, configs are completed with
// schema defaults, and the save boundary rules are checked.
func (uc *OptionSetUseCase) prepare(set *model.OptionSet, others []*model.OptionSet) error {
	set.Name = strings.TrimSpace(set.Name)

	taken := make(map[model.ElementID]bool)
	for _, s := range others {
		for _, el := range s.Elements {
			if el != nil {
				taken[el.ID] = true
			}
		}
	}

	elements := make([]*model.Element, 0, len(set.Elements))
	for _, el := range set.Elements {
		if el == nil {
			continue
		}
		if el.ID == "" || taken[el.ID] {
			el.ID = model.NewElementID()
		}
		taken[el.ID] = true

		if uc.state.registry.Has(el.Type) {
			cfg, err := uc.state.registry.Complete(el.Type, el.Config)
			if err != nil {
				return err
			}
			el.Config = cfg
		} else if el.Config == nil {
			el.Config = model.Config{}
		}
		elements = append(elements, el)
	}
	set.Elements = elements

	if err := uc.state.registry.ValidateOptionSet(set).Err(); err != nil {
		return goerr.Wrap(err, "option set rejected", goerr.V(model.OptionSetIDKey, set.ID))
	}
	return nil
}
