package ledger

import (
	"sort"
)

// ArchivedContainer is the key of the virtual bucket holding archived
// categories during a drag session. The NUL byte keeps it from ever
// colliding with a user-entered group name.
const ArchivedContainer = "\x00archived"

// BuildContainerItems maps every drag container to its ordered member
// category ids: one container per active group plus the virtual archived
// bucket. Archived categories land in the archived bucket regardless of
// their stored group, each list sorted by SortOrder.
func BuildContainerItems(categories []*Category) map[string][]string {
	type member struct {
		id    string
		order int
	}
	buckets := make(map[string][]member)
	for _, cat := range categories {
		key := cat.Group
		if cat.Archived {
			key = ArchivedContainer
		}
		buckets[key] = append(buckets[key], member{id: cat.ID, order: cat.SortOrder})
	}

	containers := make(map[string][]string, len(buckets))
	for key, members := range buckets {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].order < members[j].order
		})
		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = m.id
		}
		containers[key] = ids
	}
	return containers
}

// FindContainer resolves an id to its owning container key. An id that
// itself names a container resolves to that container; otherwise the
// container whose item list holds the id is returned. Unknown ids resolve
// to ("", false).
func FindContainer(id string, containers map[string][]string) (string, bool) {
	if _, ok := containers[id]; ok {
		return id, true
	}
	for key, items := range containers {
		for _, item := range items {
			if item == id {
				return key, true
			}
		}
	}
	return "", false
}

// reorderPatchSet accumulates per-category patches, merging repeated
// changes for the same id into a single patch.
type reorderPatchSet struct {
	patches []CategoryPatch
	index   map[string]int
}

func (s *reorderPatchSet) at(id string) *CategoryPatch {
	if i, ok := s.index[id]; ok {
		return &s.patches[i]
	}
	s.patches = append(s.patches, CategoryPatch{ID: id})
	s.index[id] = len(s.patches) - 1
	return &s.patches[len(s.patches)-1]
}

// resequence walks a container's items and records a SortOrder patch for
// every member whose stored order does not already equal its new 1-based
// position.
func (s *reorderPatchSet) resequence(items []string, byID map[string]*Category) {
	for i, id := range items {
		pos := i + 1
		if cat, ok := byID[id]; ok && cat.SortOrder == pos {
			continue
		}
		p := pos
		s.at(id).Changes.SortOrder = &p
	}
}

// ComputeReorder returns the minimal patch set realizing a drag move of
// activeID from sourceGroup to position targetOrder (1-based) in
// targetGroup. Either group may be the ArchivedContainer sentinel. Stale
// input, e.g. a drag event for a category deleted mid-gesture, yields an
// empty patch list rather than an error.
func ComputeReorder(categories []*Category, activeID, sourceGroup string, sourceOrder int, targetGroup string, targetOrder int) []CategoryPatch {
	containers := BuildContainerItems(categories)

	owner, ok := FindContainer(activeID, containers)
	if !ok || owner == activeID || owner != sourceGroup {
		return nil
	}

	byID := make(map[string]*Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	source := make([]string, 0, len(containers[sourceGroup]))
	for _, id := range containers[sourceGroup] {
		if id != activeID {
			source = append(source, id)
		}
	}

	target := source
	crossContainer := sourceGroup != targetGroup
	if crossContainer {
		target = containers[targetGroup]
	}

	insert := targetOrder - 1
	if insert < 0 {
		insert = 0
	}
	if insert > len(target) {
		insert = len(target)
	}
	inserted := make([]string, 0, len(target)+1)
	inserted = append(inserted, target[:insert]...)
	inserted = append(inserted, activeID)
	inserted = append(inserted, target[insert:]...)

	set := &reorderPatchSet{index: make(map[string]int)}

	if crossContainer {
		moved := set.at(activeID)
		switch {
		case targetGroup == ArchivedContainer:
			archived := true
			moved.Changes.Archived = &archived
		case sourceGroup == ArchivedContainer:
			archived := false
			group := targetGroup
			moved.Changes.Archived = &archived
			moved.Changes.Group = &group
		default:
			group := targetGroup
			moved.Changes.Group = &group
		}
		// The moved item re-seats its order key in the new bucket, so its
		// patch always carries the landing position.
		pos := insert + 1
		moved.Changes.SortOrder = &pos
	}

	set.resequence(inserted, byID)
	if crossContainer {
		// Close the gap the move left behind.
		set.resequence(source, byID)
	}

	if len(set.patches) == 0 {
		return nil
	}
	return set.patches
}
