package reorder_test

import (
	"testing"

	"github.com/nikbrunner/mystart/internal/model"
	"github.com/nikbrunner/mystart/internal/reorder"
	"gotest.tools/v3/assert"
)

func item(id string) model.LinkItem {
	return model.LinkItem{ID: id, Title: id, URL: "https://" + id + ".example.com"}
}

func group(id string, page int, itemIDs ...string) model.Group {
	items := make([]model.LinkItem, 0, len(itemIDs))
	for _, iid := range itemIDs {
		items = append(items, item(iid))
	}
	return model.Group{ID: id, Title: id, Items: items, PageIndex: page}
}

func itemIDs(g model.Group) []string {
	ids := make([]string, len(g.Items))
	for i, it := range g.Items {
		ids[i] = it.ID
	}
	return ids
}

func groupIDs(s *model.Store) []string {
	ids := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		ids[i] = g.ID
	}
	return ids
}

func TestApply_ReorderWithinGroup(t *testing.T) {
	store := &model.Store{Groups: []model.Group{group("G1", 0, "A", "B", "C")}}

	move := reorder.Apply(store, reorder.ItemRef("B"), reorder.ItemRef("A"))

	assert.Equal(t, move, reorder.MoveItemWithin)
	assert.DeepEqual(t, itemIDs(store.Groups[0]), []string{"B", "A", "C"})
}

func TestApply_ItemOntoGroupBodyAppends(t *testing.T) {
	store := &model.Store{Groups: []model.Group{
		group("G1", 0, "A", "B"),
		group("G2", 0, "C"),
	}}

	move := reorder.Apply(store, reorder.ItemRef("A"), reorder.GroupRef("G2"))

	assert.Equal(t, move, reorder.MoveItemAcross)
	assert.DeepEqual(t, itemIDs(store.Groups[0]), []string{"B"})
	assert.DeepEqual(t, itemIDs(store.Groups[1]), []string{"C", "A"})
}

func TestApply_ItemOntoItemInsertsAtIndex(t *testing.T) {
	store := &model.Store{Groups: []model.Group{
		group("G1", 0, "A", "B"),
		group("G2", 0, "C", "D", "E"),
	}}

	reorder.Apply(store, reorder.ItemRef("B"), reorder.ItemRef("D"))

	assert.DeepEqual(t, itemIDs(store.Groups[0]), []string{"A"})
	assert.DeepEqual(t, itemIDs(store.Groups[1]), []string{"C", "B", "D", "E"})
}

func TestApply_GroupOntoTab(t *testing.T) {
	store := &model.Store{Groups: []model.Group{
		group("G0", 1, "X"),
		group("G1", 0, "A", "B", "C"),
		group("G2", 0, "D"),
	}}

	move := reorder.Apply(store, reorder.GroupRef("G1"), reorder.TabRef(3))

	assert.Equal(t, move, reorder.MoveGroupToPage)
	assert.Equal(t, store.Groups[1].PageIndex, 3)
	assert.DeepEqual(t, itemIDs(store.Groups[1]), []string{"A", "B", "C"})
	assert.DeepEqual(t, groupIDs(store), []string{"G0", "G1", "G2"})
}

func TestApply_GroupReorder(t *testing.T) {
	tests := []struct {
		name   string
		active string
		over   reorder.Ref
		want   []string
	}{
		{"forward", "G1", reorder.GroupRef("G3"), []string{"G2", "G3", "G1", "G4"}},
		{"backward", "G4", reorder.GroupRef("G2"), []string{"G1", "G4", "G2", "G3"}},
		{"item target resolves to its group", "G1", reorder.ItemRef("b"), []string{"G2", "G1", "G3", "G4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &model.Store{Groups: []model.Group{
				group("G1", 0, "a"),
				group("G2", 0, "b"),
				group("G3", 0),
				group("G4", 0),
			}}

			move := reorder.Apply(store, reorder.GroupRef(tt.active), tt.over)

			assert.Equal(t, move, reorder.MoveGroupReorder)
			assert.DeepEqual(t, groupIDs(store), tt.want)
		})
	}
}

func TestApply_NoOps(t *testing.T) {
	tests := []struct {
		name   string
		active reorder.Ref
		over   reorder.Ref
	}{
		{"item onto itself", reorder.ItemRef("A"), reorder.ItemRef("A")},
		{"group onto itself", reorder.GroupRef("G1"), reorder.GroupRef("G1")},
		{"item onto own group body", reorder.ItemRef("A"), reorder.GroupRef("G1")},
		{"item onto tab", reorder.ItemRef("A"), reorder.TabRef(2)},
		{"stale active item", reorder.ItemRef("gone"), reorder.GroupRef("G2")},
		{"stale target item", reorder.ItemRef("A"), reorder.ItemRef("gone")},
		{"stale target group", reorder.ItemRef("A"), reorder.GroupRef("gone")},
		{"stale active group", reorder.GroupRef("gone"), reorder.TabRef(2)},
		{"group onto own tab", reorder.GroupRef("G1"), reorder.TabRef(0)},
		{"group onto tab out of range", reorder.GroupRef("G1"), reorder.TabRef(model.PageCount)},
		{"group onto negative tab", reorder.GroupRef("G1"), reorder.TabRef(-1)},
		{"group onto own item", reorder.GroupRef("G1"), reorder.ItemRef("B")},
		{"tab as active", reorder.TabRef(1), reorder.GroupRef("G1")},
		{"item ref carrying a group id", reorder.ItemRef("G1"), reorder.GroupRef("G2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &model.Store{Groups: []model.Group{
				group("G1", 0, "A", "B"),
				group("G2", 0, "C"),
			}}
			before := store.Clone()

			move := reorder.Apply(store, tt.active, tt.over)

			assert.Equal(t, move, reorder.MoveNone)
			assert.DeepEqual(t, store, before)
		})
	}
}

func TestApply_ConservesItems(t *testing.T) {
	pairs := []struct {
		active, over reorder.Ref
	}{
		{reorder.ItemRef("A"), reorder.GroupRef("G2")},
		{reorder.ItemRef("C"), reorder.ItemRef("B")},
		{reorder.ItemRef("B"), reorder.ItemRef("A")},
		{reorder.GroupRef("G2"), reorder.GroupRef("G1")},
		{reorder.GroupRef("G1"), reorder.TabRef(5)},
		{reorder.ItemRef("E"), reorder.GroupRef("G1")},
	}

	store := &model.Store{Groups: []model.Group{
		group("G1", 0, "A", "B"),
		group("G2", 0, "C"),
		group("G3", 1, "D", "E"),
	}}
	total := store.ItemCount()

	for _, p := range pairs {
		beforeFrom, _ := store.FindContainer(p.active.ID)
		beforeLens := map[string]int{}
		for _, g := range store.Groups {
			beforeLens[g.ID] = len(g.Items)
		}

		move := reorder.Apply(store, p.active, p.over)

		assert.Equal(t, store.ItemCount(), total, "after %s onto %s", p.active, p.over)
		assert.NilError(t, store.Validate())

		if move == reorder.MoveItemAcross {
			afterTo, _ := store.FindContainer(p.active.ID)
			assert.Equal(t, len(store.GetGroupByID(beforeFrom).Items), beforeLens[beforeFrom]-1)
			assert.Equal(t, len(store.GetGroupByID(afterTo).Items), beforeLens[afterTo]+1)
		}
	}
}

func TestMoveIndex_PreservesRelativeOrder(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e", "f"}

	for from := range base {
		for to := range base {
			s := append([]string{}, base...)
			moved := base[from]

			got := reorder.MoveIndex(s, from, to)

			if got[to] != moved {
				t.Fatalf("MoveIndex(%d, %d): expected %q at %d, got %v", from, to, moved, to, got)
			}

			var rest, baseRest []string
			for _, v := range got {
				if v != moved {
					rest = append(rest, v)
				}
			}
			for _, v := range base {
				if v != moved {
					baseRest = append(baseRest, v)
				}
			}
			assert.DeepEqual(t, rest, baseRest)
		}
	}
}

func TestMoveIndex_OutOfRange(t *testing.T) {
	s := []int{1, 2, 3}
	assert.DeepEqual(t, reorder.MoveIndex(s, -1, 2), []int{1, 2, 3})
	assert.DeepEqual(t, reorder.MoveIndex(s, 0, 3), []int{1, 2, 3})
}

func TestPreview_LeavesStoreUntouched(t *testing.T) {
	store := &model.Store{Groups: []model.Group{
		group("G1", 0, "A", "B"),
		group("G2", 0, "C"),
	}}
	before := store.Clone()

	next, move := reorder.Preview(store, reorder.ItemRef("A"), reorder.ItemRef("C"))

	assert.Equal(t, move, reorder.MoveItemAcross)
	assert.DeepEqual(t, store, before)
	assert.DeepEqual(t, itemIDs(next.Groups[1]), []string{"A", "C"})

	// Committing the same pair produces the previewed state.
	reorder.Apply(store, reorder.ItemRef("A"), reorder.ItemRef("C"))
	assert.DeepEqual(t, store, next)
}

func TestClassify(t *testing.T) {
	store := &model.Store{Groups: []model.Group{
		group("G1", 0, "A", "B"),
		group("G2", 0, "C"),
	}}

	tests := []struct {
		active, over reorder.Ref
		want         reorder.Move
	}{
		{reorder.ItemRef("A"), reorder.ItemRef("C"), reorder.MoveItemAcross},
		{reorder.ItemRef("A"), reorder.ItemRef("B"), reorder.MoveItemWithin},
		{reorder.GroupRef("G1"), reorder.TabRef(4), reorder.MoveGroupToPage},
		{reorder.GroupRef("G1"), reorder.GroupRef("G2"), reorder.MoveGroupReorder},
		{reorder.ItemRef("A"), reorder.TabRef(4), reorder.MoveNone},
	}

	for _, tt := range tests {
		t.Run(tt.active.String()+"->"+tt.over.String(), func(t *testing.T) {
			assert.Equal(t, reorder.Classify(store, tt.active, tt.over), tt.want)
		})
	}
}
