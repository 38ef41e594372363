package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	ledger *Ledger
}

// List returns all categories
func (s *categoryService) List(ctx context.Context) []*Category {
	s.ledger.mu.RLock()
	defer s.ledger.mu.RUnlock()
	out := make([]*Category, len(s.ledger.categories))
	copy(out, s.ledger.categories)
	return out
}

// Get retrieves a single category by ID
func (s *categoryService) Get(ctx context.Context, categoryID string) (*Category, error) {
	s.ledger.mu.RLock()
	defer s.ledger.mu.RUnlock()
	for _, cat := range s.ledger.categories {
		if cat.ID == categoryID {
			return cat, nil
		}
	}
	return nil, ErrNotFound
}

// Create creates a new category
func (s *categoryService) Create(ctx context.Context, params *CreateCategoryParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		s.ledger.captureError(ctx, "categories.create", err)
		return nil, errors.Wrap(err, "failed to create category")
	}

	cat := &Category{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Group:     params.Group,
		Assigned:  params.Assigned,
		SortOrder: params.SortOrder,
	}

	s.ledger.mu.Lock()
	s.ledger.categories = append(append([]*Category{}, s.ledger.categories...), cat)
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("categories.create")
	return cat, nil
}

// Update applies a partial update to a category
func (s *categoryService) Update(ctx context.Context, categoryID string, params *UpdateCategoryParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		s.ledger.captureError(ctx, "categories.update", err)
		return nil, errors.Wrap(err, "failed to update category")
	}

	s.ledger.mu.Lock()

	idx := -1
	for i, cat := range s.ledger.categories {
		if cat.ID == categoryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.ledger.mu.Unlock()
		return nil, ErrNotFound
	}

	updated := *s.ledger.categories[idx]
	if params.Name != nil {
		updated.Name = *params.Name
	}
	if params.Group != nil {
		updated.Group = *params.Group
	}
	if params.Assigned != nil {
		updated.Assigned = *params.Assigned
	}
	if params.SortOrder != nil {
		updated.SortOrder = *params.SortOrder
	}
	if params.Archived != nil {
		updated.Archived = *params.Archived
	}

	categories := make([]*Category, len(s.ledger.categories))
	copy(categories, s.ledger.categories)
	categories[idx] = &updated
	s.ledger.categories = categories
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("categories.update")
	return &updated, nil
}

// Delete removes a category. Referencing transactions are preserved with
// their category cleared, in the same atomic replacement.
func (s *categoryService) Delete(ctx context.Context, categoryID string) error {
	s.ledger.mu.Lock()

	found := false
	for _, cat := range s.ledger.categories {
		if cat.ID == categoryID {
			found = true
			break
		}
	}
	if !found {
		s.ledger.mu.Unlock()
		return ErrNotFound
	}

	categories := make([]*Category, 0, len(s.ledger.categories)-1)
	for _, cat := range s.ledger.categories {
		if cat.ID != categoryID {
			categories = append(categories, cat)
		}
	}
	s.ledger.categories = categories
	s.ledger.transactions = OnDeleteCategory(s.ledger.transactions, categoryID)
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("categories.delete")
	return nil
}

// Reorder computes and applies the patch set for a drag move, returning the
// patches that were applied. A stale move that resolves to nothing is a
// no-op, not an error.
func (s *categoryService) Reorder(ctx context.Context, activeID, sourceGroup string, sourceOrder int, targetGroup string, targetOrder int) ([]CategoryPatch, error) {
	s.ledger.mu.Lock()

	patches := ComputeReorder(s.ledger.categories, activeID, sourceGroup, sourceOrder, targetGroup, targetOrder)
	if len(patches) == 0 {
		s.ledger.mu.Unlock()
		return nil, nil
	}

	byID := make(map[string]CategoryChanges, len(patches))
	for _, patch := range patches {
		byID[patch.ID] = patch.Changes
	}

	categories := make([]*Category, len(s.ledger.categories))
	for i, cat := range s.ledger.categories {
		changes, ok := byID[cat.ID]
		if !ok {
			categories[i] = cat
			continue
		}
		patched := *cat
		if changes.Group != nil {
			patched.Group = *changes.Group
		}
		if changes.Archived != nil {
			patched.Archived = *changes.Archived
		}
		if changes.SortOrder != nil {
			patched.SortOrder = *changes.SortOrder
		}
		categories[i] = &patched
	}
	s.ledger.categories = categories
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("categories.reorder")
	return patches, nil
}
