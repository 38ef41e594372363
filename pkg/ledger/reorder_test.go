package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reorderFixture() []*Category {
	return []*Category{
		{ID: "a", Name: "Rent", Group: "Fixed", SortOrder: 1},
		{ID: "b", Name: "Utilities", Group: "Fixed", SortOrder: 2},
		{ID: "c", Name: "Insurance", Group: "Fixed", SortOrder: 3},
		{ID: "d", Name: "Groceries", Group: "Daily Living", SortOrder: 1},
		{ID: "e", Name: "Transport", Group: "Daily Living", SortOrder: 2},
		{ID: "x", Name: "Old thing", Group: "Fixed", SortOrder: 1, Archived: true},
	}
}

func patchByID(patches []CategoryPatch, id string) (CategoryPatch, bool) {
	for _, p := range patches {
		if p.ID == id {
			return p, true
		}
	}
	return CategoryPatch{}, false
}

func TestBuildContainerItems(t *testing.T) {
	containers := BuildContainerItems(reorderFixture())

	assert.Equal(t, []string{"a", "b", "c"}, containers["Fixed"])
	assert.Equal(t, []string{"d", "e"}, containers["Daily Living"])
	// Archived categories collect in the sentinel bucket regardless of
	// their stored group.
	assert.Equal(t, []string{"x"}, containers[ArchivedContainer])
}

func TestFindContainer(t *testing.T) {
	containers := BuildContainerItems(reorderFixture())

	key, ok := FindContainer("b", containers)
	require.True(t, ok)
	assert.Equal(t, "Fixed", key)

	key, ok = FindContainer("x", containers)
	require.True(t, ok)
	assert.Equal(t, ArchivedContainer, key)

	// A container key resolves to itself.
	key, ok = FindContainer("Daily Living", containers)
	require.True(t, ok)
	assert.Equal(t, "Daily Living", key)

	_, ok = FindContainer("missing", containers)
	assert.False(t, ok)
}

func TestComputeReorder_MoveToEndOfOwnGroup(t *testing.T) {
	patches := ComputeReorder(reorderFixture(), "a", "Fixed", 1, "Fixed", 3)
	require.Len(t, patches, 3)

	b, ok := patchByID(patches, "b")
	require.True(t, ok)
	assert.Equal(t, 1, *b.Changes.SortOrder)
	c, _ := patchByID(patches, "c")
	assert.Equal(t, 2, *c.Changes.SortOrder)
	a, _ := patchByID(patches, "a")
	assert.Equal(t, 3, *a.Changes.SortOrder)
	assert.Nil(t, a.Changes.Group)
	assert.Nil(t, a.Changes.Archived)
}

func TestComputeReorder_CrossGroupMove(t *testing.T) {
	patches := ComputeReorder(reorderFixture(), "b", "Fixed", 2, "Daily Living", 2)
	require.Len(t, patches, 3)

	b, ok := patchByID(patches, "b")
	require.True(t, ok)
	require.NotNil(t, b.Changes.Group)
	assert.Equal(t, "Daily Living", *b.Changes.Group)
	assert.Equal(t, 2, *b.Changes.SortOrder)
	assert.Nil(t, b.Changes.Archived)

	// e shifts down in the target group.
	e, ok := patchByID(patches, "e")
	require.True(t, ok)
	assert.Equal(t, 3, *e.Changes.SortOrder)

	// c closes the gap in the source group.
	c, ok := patchByID(patches, "c")
	require.True(t, ok)
	assert.Equal(t, 2, *c.Changes.SortOrder)

	// d is already in place and gets no patch.
	_, ok = patchByID(patches, "d")
	assert.False(t, ok)
}

func TestComputeReorder_ArchiveMove(t *testing.T) {
	patches := ComputeReorder(reorderFixture(), "a", "Fixed", 1, ArchivedContainer, 2)

	a, ok := patchByID(patches, "a")
	require.True(t, ok)
	require.NotNil(t, a.Changes.Archived)
	assert.True(t, *a.Changes.Archived)
	assert.Equal(t, 2, *a.Changes.SortOrder)
	assert.Nil(t, a.Changes.Group)

	// Source group closes the gap.
	b, ok := patchByID(patches, "b")
	require.True(t, ok)
	assert.Equal(t, 1, *b.Changes.SortOrder)
	c, ok := patchByID(patches, "c")
	require.True(t, ok)
	assert.Equal(t, 2, *c.Changes.SortOrder)
}

func TestComputeReorder_UnarchiveMove(t *testing.T) {
	patches := ComputeReorder(reorderFixture(), "x", ArchivedContainer, 1, "Daily Living", 1)

	x, ok := patchByID(patches, "x")
	require.True(t, ok)
	require.NotNil(t, x.Changes.Archived)
	assert.False(t, *x.Changes.Archived)
	require.NotNil(t, x.Changes.Group)
	assert.Equal(t, "Daily Living", *x.Changes.Group)
	assert.Equal(t, 1, *x.Changes.SortOrder)

	// d and e shift down.
	d, ok := patchByID(patches, "d")
	require.True(t, ok)
	assert.Equal(t, 2, *d.Changes.SortOrder)
	e, ok := patchByID(patches, "e")
	require.True(t, ok)
	assert.Equal(t, 3, *e.Changes.SortOrder)
}

func TestComputeReorder_Idempotent(t *testing.T) {
	assert.Empty(t, ComputeReorder(reorderFixture(), "b", "Fixed", 2, "Fixed", 2))
	assert.Empty(t, ComputeReorder(reorderFixture(), "d", "Daily Living", 1, "Daily Living", 1))
}

func TestComputeReorder_Defensive(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		assert.Empty(t, ComputeReorder(reorderFixture(), "deleted", "Fixed", 1, "Fixed", 2))
	})

	t.Run("stale source group", func(t *testing.T) {
		assert.Empty(t, ComputeReorder(reorderFixture(), "a", "Daily Living", 1, "Fixed", 2))
	})

	t.Run("container key as active id", func(t *testing.T) {
		assert.Empty(t, ComputeReorder(reorderFixture(), "Fixed", "Fixed", 1, "Daily Living", 1))
	})

	t.Run("empty categories", func(t *testing.T) {
		assert.Empty(t, ComputeReorder(nil, "a", "Fixed", 1, "Fixed", 2))
	})
}

func TestComputeReorder_SingletonContainer(t *testing.T) {
	categories := []*Category{
		{ID: "solo", Name: "Rent", Group: "Fixed", SortOrder: 1},
		{ID: "d", Name: "Groceries", Group: "Daily Living", SortOrder: 1},
	}

	// Moving the only member of a group onto itself is a no-op.
	assert.Empty(t, ComputeReorder(categories, "solo", "Fixed", 1, "Fixed", 1))

	// Moving it out leaves nothing to resequence in the source.
	patches := ComputeReorder(categories, "solo", "Fixed", 1, "Daily Living", 2)
	require.Len(t, patches, 1)
	solo := patches[0]
	assert.Equal(t, "solo", solo.ID)
	assert.Equal(t, "Daily Living", *solo.Changes.Group)
	assert.Equal(t, 2, *solo.Changes.SortOrder)
}

func TestComputeReorder_TargetOrderClamped(t *testing.T) {
	patches := ComputeReorder(reorderFixture(), "a", "Fixed", 1, "Fixed", 99)
	require.Len(t, patches, 3)
	a, _ := patchByID(patches, "a")
	assert.Equal(t, 3, *a.Changes.SortOrder)
}
