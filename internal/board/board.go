// Package board owns the authoritative collection. Every mutation goes
// through a Board, which persists the full collection after each change and
// guards asynchronous title suggestions against edits that happened while
// they were in flight.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nikbrunner/mystart/internal/ai"
	"github.com/nikbrunner/mystart/internal/model"
	"github.com/nikbrunner/mystart/internal/reorder"
	"github.com/nikbrunner/mystart/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrEmptyURL     = errors.New("url is required")
	ErrUnknownGroup = errors.New("group not found")
	ErrImport       = errors.New("import failed")
)

// Persistence loads and saves the whole collection.
type Persistence interface {
	LoadCollection() (*model.Store, error)
	SaveCollection(store *model.Store) error
}

// Suggester produces titles. *ai.Suggester implements it.
type Suggester interface {
	Title(ctx context.Context, url string) string
	Category(ctx context.Context, titles []string, groups string) string
}

// Params configures a Board.
type Params struct {
	Persistence Persistence // nil keeps the collection in memory only
	Logger      *zap.Logger
	Suggester   Suggester // nil uses the deterministic fallbacks
}

// Pending identifies an entity at the moment a suggestion was requested.
// The zero value means no suggestion is needed.
type Pending struct {
	EntityID   string
	Generation uint64
}

// Valid reports whether p refers to an entity.
func (p Pending) Valid() bool {
	return p.EntityID != ""
}

// Suggestion is a finished suggestion, to be passed to ApplyTitle.
type Suggestion struct {
	Pending Pending
	Title   string
}

// NewItemParams holds the user input for a new link.
type NewItemParams struct {
	URL   string
	Title string
	Icon  string
}

// ItemPatch changes the non-nil fields of an item.
type ItemPatch struct {
	Title *string
	URL   *string
	Icon  *string
}

// Board is the single owner of the collection. It is not safe for
// concurrent use; callers mutate it from one event loop.
type Board struct {
	store     *model.Store
	persist   Persistence
	logger    *zap.Logger
	suggester Suggester

	clock       uint64
	generations map[string]uint64

	saveErr error
}

// New loads the persisted collection. Missing, malformed or unreadable data
// falls back to the seed collection.
func New(p Params) *Board {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	suggester := p.Suggester
	if suggester == nil {
		suggester = ai.NewSuggester(nil, logger, 0)
	}

	b := &Board{
		persist:     p.Persistence,
		logger:      logger,
		suggester:   suggester,
		generations: map[string]uint64{},
	}
	b.store = b.load()
	return b
}

func (b *Board) load() *model.Store {
	if b.persist == nil {
		return model.SeedStore()
	}

	store, err := b.persist.LoadCollection()
	switch {
	case err == nil:
		b.logger.Info("collection loaded",
			zap.Int("groups", len(store.Groups)), zap.Int("items", store.ItemCount()))
		return store
	case errors.Is(err, storage.ErrNoData):
		b.logger.Info("no saved collection, using seed")
	case errors.Is(err, storage.ErrMalformed):
		b.logger.Warn("saved collection is malformed, using seed", zap.Error(err))
	default:
		b.logger.Error("loading collection failed, using seed", zap.Error(err))
	}
	return model.SeedStore()
}

// save persists the collection. Failures are logged and kept for SaveError.
func (b *Board) save() {
	if b.persist == nil {
		return
	}
	if err := b.persist.SaveCollection(b.store); err != nil {
		b.saveErr = err
		b.logger.Error("saving collection failed", zap.Error(err))
		return
	}
	b.saveErr = nil
}

// SaveError returns the error of the most recent save, if it failed.
func (b *Board) SaveError() error {
	return b.saveErr
}

// Close performs the final save.
func (b *Board) Close() error {
	if b.persist == nil {
		return nil
	}
	return b.persist.SaveCollection(b.store)
}

// Snapshot returns a copy of the collection.
func (b *Board) Snapshot() *model.Store {
	return b.store.Clone()
}

func (b *Board) touch(id string) Pending {
	b.clock++
	b.generations[id] = b.clock
	return Pending{EntityID: id, Generation: b.clock}
}

func (b *Board) forget(id string) {
	delete(b.generations, id)
}

// CreateGroup appends an empty group with the placeholder title on page.
func (b *Board) CreateGroup(page int) (*model.Store, Pending) {
	g := model.NewGroup(model.NewGroupParams{PageIndex: page})
	b.store.Groups = append(b.store.Groups, g)
	p := b.touch(g.ID)
	b.save()
	return b.Snapshot(), p
}

// RenameGroup sets a group's title. A blank title restores the placeholder.
func (b *Board) RenameGroup(id, title string) *model.Store {
	g := b.store.GetGroupByID(id)
	if g == nil {
		return b.Snapshot()
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = model.DefaultGroupTitle
	}
	g.Title = title
	b.touch(id)
	b.save()
	return b.Snapshot()
}

// DeleteGroup removes a group and all of its items.
func (b *Board) DeleteGroup(id string) *model.Store {
	i := b.store.GroupIndex(id)
	if i < 0 {
		return b.Snapshot()
	}
	for _, it := range b.store.Groups[i].Items {
		b.forget(it.ID)
	}
	b.forget(id)
	b.store.Groups = append(b.store.Groups[:i], b.store.Groups[i+1:]...)
	b.save()
	return b.Snapshot()
}

// AddItem creates a link at the head of a group. The url gets https://
// when it has no scheme. Without a title, the host is used as placeholder
// and the returned Pending is valid so a suggestion can replace it.
func (b *Board) AddItem(groupID string, params NewItemParams) (*model.Store, Pending, error) {
	g := b.store.GetGroupByID(groupID)
	if g == nil {
		return b.Snapshot(), Pending{}, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}

	url := model.NormalizeURL(params.URL)
	if url == "" {
		return b.Snapshot(), Pending{}, ErrEmptyURL
	}

	title := strings.TrimSpace(params.Title)
	needsTitle := title == ""
	if needsTitle {
		title = model.HostTitle(url)
	}

	it := model.NewLinkItem(model.NewLinkItemParams{
		Title: title,
		URL:   url,
		Icon:  strings.TrimSpace(params.Icon),
	})
	g.Items = append([]model.LinkItem{it}, g.Items...)

	p := b.touch(it.ID)
	if !needsTitle {
		p = Pending{}
	}
	b.save()
	return b.Snapshot(), p, nil
}

// EditItem applies patch to an item. Unknown ids are ignored.
func (b *Board) EditItem(id string, patch ItemPatch) (*model.Store, error) {
	it, _ := b.store.GetItemByID(id)
	if it == nil {
		return b.Snapshot(), nil
	}

	next := *it
	if patch.URL != nil {
		url := model.NormalizeURL(*patch.URL)
		if url == "" {
			return b.Snapshot(), ErrEmptyURL
		}
		next.URL = url
	}
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
		if next.Title == "" {
			next.Title = model.HostTitle(next.URL)
		}
	}
	if patch.Icon != nil {
		next.Icon = strings.TrimSpace(*patch.Icon)
	}

	*it = next
	b.touch(id)
	b.save()
	return b.Snapshot(), nil
}

// DeleteItem removes an item.
func (b *Board) DeleteItem(id string) *model.Store {
	_, g := b.store.GetItemByID(id)
	if g == nil {
		return b.Snapshot()
	}
	i := g.ItemIndex(id)
	g.Items = append(g.Items[:i], g.Items[i+1:]...)
	b.forget(id)
	b.save()
	return b.Snapshot()
}

// Move applies the move of active onto over and saves when something changed.
func (b *Board) Move(active, over reorder.Ref) reorder.Move {
	move := reorder.Apply(b.store, active, over)
	if move != reorder.MoveNone {
		b.logger.Debug("moved",
			zap.Stringer("active", active), zap.Stringer("over", over), zap.Stringer("move", move))
		b.save()
	}
	return move
}

// MoveItemToGroup appends an item to another group.
func (b *Board) MoveItemToGroup(itemID, groupID string) (*model.Store, reorder.Move) {
	move := b.Move(reorder.ItemRef(itemID), reorder.GroupRef(groupID))
	return b.Snapshot(), move
}

// ReorderItem places an item at the position of overItemID.
func (b *Board) ReorderItem(itemID, overItemID string) (*model.Store, reorder.Move) {
	move := b.Move(reorder.ItemRef(itemID), reorder.ItemRef(overItemID))
	return b.Snapshot(), move
}

// MoveGroupToPage assigns a group to another page.
func (b *Board) MoveGroupToPage(groupID string, page int) (*model.Store, reorder.Move) {
	move := b.Move(reorder.GroupRef(groupID), reorder.TabRef(page))
	return b.Snapshot(), move
}

// ReorderGroup places a group at the position of overGroupID.
func (b *Board) ReorderGroup(groupID, overGroupID string) (*model.Store, reorder.Move) {
	move := b.Move(reorder.GroupRef(groupID), reorder.GroupRef(overGroupID))
	return b.Snapshot(), move
}

// ApplyTitle sets the suggested title when the entity still exists and has
// not changed since the suggestion was requested.
func (b *Board) ApplyTitle(p Pending, title string) (*model.Store, bool) {
	title = strings.TrimSpace(title)
	if !p.Valid() || title == "" {
		return b.Snapshot(), false
	}
	gen, ok := b.generations[p.EntityID]
	if !ok || gen != p.Generation {
		b.logger.Debug("discarding stale suggestion", zap.String("id", p.EntityID))
		return b.Snapshot(), false
	}

	if g := b.store.GetGroupByID(p.EntityID); g != nil {
		g.Title = title
	} else if it, _ := b.store.GetItemByID(p.EntityID); it != nil {
		it.Title = title
	} else {
		return b.Snapshot(), false
	}

	b.touch(p.EntityID)
	b.save()
	return b.Snapshot(), true
}

// SuggestTitle asks the suggester for an item title. It does not touch the
// collection and may run off the event loop.
func (b *Board) SuggestTitle(ctx context.Context, p Pending, url string) Suggestion {
	return Suggestion{Pending: p, Title: b.suggester.Title(ctx, url)}
}

// PrepareItemTitle returns the pending handle and url of an item for
// SuggestTitle.
func (b *Board) PrepareItemTitle(itemID string) (Pending, string, bool) {
	it, _ := b.store.GetItemByID(itemID)
	if it == nil {
		return Pending{}, "", false
	}
	return b.current(itemID), it.URL, true
}

// GroupJob captures what a group title suggestion needs.
type GroupJob struct {
	Pending Pending
	Titles  []string
	Groups  string
}

// PrepareGroupTitle captures a group's item titles for SuggestGroupTitle.
// An empty group is described by every link title in the collection.
func (b *Board) PrepareGroupTitle(groupID string) (GroupJob, bool) {
	g := b.store.GetGroupByID(groupID)
	if g == nil {
		return GroupJob{}, false
	}
	titles := ai.ItemTitles(*g)
	if len(titles) == 0 {
		titles = ai.AllItemTitles(b.store)
	}
	return GroupJob{
		Pending: b.current(groupID),
		Titles:  titles,
		Groups:  ai.BuildContext(b.store),
	}, true
}

// SuggestGroupTitle asks the suggester for a group title. Like SuggestTitle
// it may run off the event loop.
func (b *Board) SuggestGroupTitle(ctx context.Context, job GroupJob) Suggestion {
	return Suggestion{Pending: job.Pending, Title: b.suggester.Category(ctx, job.Titles, job.Groups)}
}

// current returns the pending handle for an entity's present state.
func (b *Board) current(id string) Pending {
	if gen, ok := b.generations[id]; ok {
		return Pending{EntityID: id, Generation: gen}
	}
	return b.touch(id)
}

// Export serializes the collection as an indented JSON array.
func (b *Board) Export() ([]byte, error) {
	return json.MarshalIndent(b.store, "", "  ")
}

// Import replaces the collection with data. Invalid input leaves the
// collection unchanged and returns an error wrapping ErrImport.
func (b *Board) Import(data []byte) (*model.Store, error) {
	store, err := model.ParseStore(data)
	if err != nil {
		b.logger.Warn("import rejected", zap.Error(err))
		return b.Snapshot(), fmt.Errorf("%w: %w", ErrImport, err)
	}

	b.store = store
	b.generations = map[string]uint64{}
	b.save()
	b.logger.Info("collection imported",
		zap.Int("groups", len(store.Groups)), zap.Int("items", store.ItemCount()))
	return b.Snapshot(), nil
}

// Merge appends groups, skipping links whose url is already present.
// Colliding ids are replaced and groups left without links are dropped.
func (b *Board) Merge(groups []model.Group) (added, skipped int) {
	for _, g := range groups {
		if b.store.Exists(g.ID) || g.ID == "" {
			g.ID = model.GenerateUUID()
		}
		if strings.TrimSpace(g.Title) == "" {
			g.Title = model.DefaultGroupTitle
		}

		items := make([]model.LinkItem, 0, len(g.Items))
		seenURLs := map[string]bool{}
		seenIDs := map[string]bool{}
		for _, it := range g.Items {
			if b.store.HasItemURL(it.URL) || seenURLs[it.URL] {
				skipped++
				continue
			}
			seenURLs[it.URL] = true
			if b.store.Exists(it.ID) || it.ID == "" || it.ID == g.ID || seenIDs[it.ID] {
				it.ID = model.GenerateUUID()
			}
			seenIDs[it.ID] = true
			items = append(items, it)
		}
		if len(items) == 0 {
			continue
		}

		g.Items = items
		b.store.Groups = append(b.store.Groups, g)
		added += len(items)
	}

	if added > 0 {
		b.save()
	}
	return added, skipped
}
