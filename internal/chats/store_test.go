// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chats

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/ragify-tui/internal/storage"
	"github.com/jeranaias/ragify-tui/internal/storage/storagetest"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, backend storage.Store, opts ...Option) (*Store, *storagetest.Clock) {
	t.Helper()
	clock := storagetest.NewClock(epoch)
	base := []Option{WithClock(clock.Now), WithIDFunc(storagetest.Sequence("chat"))}
	s := NewStore(backend, append(base, opts...)...)
	s.Load()
	return s, clock
}

func ids(st State) []string {
	out := make([]string, 0, len(st.Chats))
	for _, c := range st.Chats {
		out = append(out, c.ID)
	}
	return out
}

// =============================================================================
// SEED AND LOAD
// =============================================================================

func TestStore_Seed(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())

	st := s.Snapshot()
	require.Len(t, st.Chats, 1)
	assert.Equal(t, WelcomeTitle, st.Chats[0].Title)
	assert.Equal(t, "", st.ActiveChatID)
	assert.False(t, st.SidebarCollapsed)
	assert.False(t, st.Chats[0].Editing)

	_, ok := s.ActiveChat()
	assert.False(t, ok)
}

func TestStore_SeedIsPersisted(t *testing.T) {
	backend := storage.NewMemoryStore()
	first, _ := newTestStore(t, backend)
	seedID := first.Snapshot().Chats[0].ID

	second := NewStore(backend, WithIDFunc(storagetest.Sequence("other")))
	second.Load()
	assert.Equal(t, []string{seedID}, ids(second.Snapshot()))
}

func TestStore_ReloadRestoresStateWithoutEditingFlags(t *testing.T) {
	backend := storage.NewMemoryStore()
	s, _ := newTestStore(t, backend)

	id := s.CreateChat("Draft")
	s.ToggleSidebar()
	require.True(t, s.Snapshot().Chats[0].Editing)

	reloaded := NewStore(backend)
	reloaded.Load()

	st := reloaded.Snapshot()
	assert.Equal(t, ids(s.Snapshot()), ids(st))
	assert.Equal(t, id, st.ActiveChatID)
	assert.True(t, st.SidebarCollapsed)
	for _, c := range st.Chats {
		assert.False(t, c.Editing, "chat %s came back editing", c.ID)
	}
	assert.True(t, st.Chats[0].CreatedAt.Equal(epoch))
}

func TestStore_RecordShape(t *testing.T) {
	backend := storage.NewMemoryStore()
	s, _ := newTestStore(t, backend)
	s.CreateChat("Notes")

	data, err := backend.Get(RecordKey)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "chat-2", raw["activeChatId"])
	assert.Equal(t, false, raw["sidebarCollapsed"])

	chats := raw["chats"].([]any)
	require.Len(t, chats, 2)
	first := chats[0].(map[string]any)
	assert.Equal(t, "Notes", first["title"])
	assert.Contains(t, first, "createdAt")
	assert.Contains(t, first, "updatedAt")
	assert.NotContains(t, first, "Editing")
	assert.NotContains(t, first, "editing")
}

func TestStore_LoadDropsDuplicateIDs(t *testing.T) {
	backend := storage.NewMemoryStore()
	rec := `{"chats":[
		{"id":"a","title":"first","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"},
		{"id":"b","title":"second","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"},
		{"id":"a","title":"dupe","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}
	],"activeChatId":"b","sidebarCollapsed":false}`
	require.NoError(t, backend.Set(RecordKey, []byte(rec)))

	s := NewStore(backend)
	s.Load()

	st := s.Snapshot()
	assert.Equal(t, []string{"a", "b"}, ids(st))
	assert.Equal(t, "first", st.Chats[0].Title)
	assert.Equal(t, "b", st.ActiveChatID)
}

func TestStore_NilLoggerDropsDuplicatesQuietly(t *testing.T) {
	backend := storage.NewMemoryStore()
	rec := `{"chats":[
		{"id":"a","title":"first","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"},
		{"id":"a","title":"dupe","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}
	]}`
	require.NoError(t, backend.Set(RecordKey, []byte(rec)))

	s := NewStore(backend, WithLogger(nil))
	require.NotPanics(t, s.Load)
	assert.Equal(t, []string{"a"}, ids(s.Snapshot()))
}

func TestStore_LoadCorruptRecordKeepsSeed(t *testing.T) {
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Set(RecordKey, []byte("{not json")))

	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(backend, WithLogger(zap.New(core)))
	s.Load()

	st := s.Snapshot()
	require.Len(t, st.Chats, 1)
	assert.Equal(t, WelcomeTitle, st.Chats[0].Title)
	assert.Equal(t, 1, logs.Len())
}

func TestStore_LoadReadFailureKeepsSeed(t *testing.T) {
	backend := storagetest.NewFlakyStore()
	backend.FailGets(true)

	core, logs := observer.New(zap.WarnLevel)
	s, _ := newTestStore(t, backend, WithLogger(zap.New(core)))

	assert.Len(t, s.Snapshot().Chats, 1)
	assert.Equal(t, 1, logs.FilterField(zap.String("op", "load")).Len())
}

// =============================================================================
// OPERATIONS
// =============================================================================

func TestStore_CreateChat(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())
	seed := s.Snapshot().Chats[0].ID

	id := s.CreateChat()
	st := s.Snapshot()

	assert.Equal(t, []string{id, seed}, ids(st))
	assert.Equal(t, id, st.ActiveChatID)
	assert.Equal(t, DefaultTitle, st.Chats[0].Title)
	assert.True(t, st.Chats[0].Editing)
	assert.True(t, st.Chats[0].CreatedAt.Equal(st.Chats[0].UpdatedAt))

	editing, ok := st.Editing()
	require.True(t, ok)
	assert.Equal(t, id, editing.ID)

	named := s.CreateChat("Research")
	assert.Equal(t, "Research", s.Snapshot().Chats[0].Title)
	assert.Equal(t, named, s.Snapshot().ActiveChatID)
}

func TestStore_CreateChatRegeneratesCollidingID(t *testing.T) {
	gen := []string{"same", "same", "fresh"}
	n := 0
	s := NewStore(nil, WithIDFunc(func() string {
		id := gen[n]
		n++
		return id
	}))

	// Seed took "same"; the first candidate collides.
	id := s.CreateChat()
	assert.Equal(t, "fresh", id)
	assert.Equal(t, []string{"fresh", "same"}, ids(s.Snapshot()))
}

func TestStore_RenameChat(t *testing.T) {
	s, clock := newTestStore(t, storage.NewMemoryStore())
	id := s.CreateChat()
	clock.Advance(time.Minute)

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"trimmed", "  Plans  ", "Plans"},
		{"blank becomes default", "   ", DefaultTitle},
		{"empty becomes default", "", DefaultTitle},
		{"plain", "Ideas", "Ideas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.RenameChat(id, tt.title)
			c, ok := s.Snapshot().Find(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Title)
			assert.True(t, c.UpdatedAt.Equal(epoch.Add(time.Minute)))
			assert.True(t, c.CreatedAt.Equal(epoch))
		})
	}
}

func TestStore_RenameUnknownIsNoop(t *testing.T) {
	backend := storagetest.NewFlakyStore()
	s, _ := newTestStore(t, backend)
	before := s.Snapshot()
	sets := backend.Sets()

	s.RenameChat("missing", "x")

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, sets, backend.Sets())
}

func TestStore_DeleteChat(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())
	seed := s.Snapshot().Chats[0].ID
	a := s.CreateChat("a")
	b := s.CreateChat("b")

	// Deleting an inactive chat keeps the selection.
	s.DeleteChat(a)
	st := s.Snapshot()
	assert.Equal(t, []string{b, seed}, ids(st))
	assert.Equal(t, b, st.ActiveChatID)

	// Deleting the active chat selects the first remaining.
	s.DeleteChat(b)
	st = s.Snapshot()
	assert.Equal(t, []string{seed}, ids(st))
	assert.Equal(t, seed, st.ActiveChatID)

	// Deleting the last chat leaves no selection.
	s.DeleteChat(seed)
	st = s.Snapshot()
	assert.Empty(t, st.Chats)
	assert.Equal(t, "", st.ActiveChatID)

	// Unknown id.
	s.DeleteChat("missing")
	assert.Empty(t, s.Snapshot().Chats)
}

func TestStore_DeleteChatHook(t *testing.T) {
	var deleted []string
	s, _ := newTestStore(t, storage.NewMemoryStore(), WithOnDelete(func(id string) {
		deleted = append(deleted, id)
	}))
	id := s.CreateChat()

	s.DeleteChat("missing")
	s.DeleteChat(id)

	assert.Equal(t, []string{id}, deleted)
}

func TestStore_SetActiveChatDoesNotValidate(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())
	seed := s.Snapshot().Chats[0].ID

	s.SetActiveChat(seed)
	c, ok := s.ActiveChat()
	require.True(t, ok)
	assert.Equal(t, seed, c.ID)

	s.SetActiveChat("ghost")
	assert.Equal(t, "ghost", s.Snapshot().ActiveChatID)
	_, ok = s.ActiveChat()
	assert.False(t, ok, "dangling id resolves to no chat")
}

func TestStore_ToggleSidebar(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())
	s.ToggleSidebar()
	assert.True(t, s.Snapshot().SidebarCollapsed)
	s.ToggleSidebar()
	assert.False(t, s.Snapshot().SidebarCollapsed)
}

func TestStore_EditingLifecycle(t *testing.T) {
	s, clock := newTestStore(t, storage.NewMemoryStore())
	seed := s.Snapshot().Chats[0]

	s.StartEditing(seed.ID)
	c, _ := s.Snapshot().Find(seed.ID)
	assert.True(t, c.Editing)
	assert.True(t, c.UpdatedAt.Equal(seed.UpdatedAt))

	// Cancel leaves title and timestamps alone.
	clock.Advance(time.Hour)
	title := "ignored"
	s.StopEditing(seed.ID, false, &title)
	c, _ = s.Snapshot().Find(seed.ID)
	assert.False(t, c.Editing)
	assert.Equal(t, WelcomeTitle, c.Title)
	assert.True(t, c.UpdatedAt.Equal(seed.UpdatedAt))

	// Commit renames and refreshes UpdatedAt together.
	s.StartEditing(seed.ID)
	title = "  Renamed "
	s.StopEditing(seed.ID, true, &title)
	c, _ = s.Snapshot().Find(seed.ID)
	assert.False(t, c.Editing)
	assert.Equal(t, "Renamed", c.Title)
	assert.True(t, c.UpdatedAt.Equal(epoch.Add(time.Hour)))

	// Commit without a title keeps it but still refreshes UpdatedAt.
	clock.Advance(time.Hour)
	s.StopEditing(seed.ID, true, nil)
	c, _ = s.Snapshot().Find(seed.ID)
	assert.Equal(t, "Renamed", c.Title)
	assert.True(t, c.UpdatedAt.Equal(epoch.Add(2*time.Hour)))

	// Blank commit normalises.
	blank := " "
	s.StopEditing(seed.ID, true, &blank)
	c, _ = s.Snapshot().Find(seed.ID)
	assert.Equal(t, DefaultTitle, c.Title)

	// Unknown ids.
	s.StartEditing("missing")
	s.StopEditing("missing", true, &title)
	assert.Len(t, s.Snapshot().Chats, 1)
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestStore_SnapshotsAreImmutable(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())
	before := s.Snapshot()
	saved := before.clone()

	id := s.CreateChat("new")
	s.RenameChat(before.Chats[0].ID, "changed")
	s.ToggleSidebar()
	s.DeleteChat(id)

	if diff := cmp.Diff(saved, before); diff != "" {
		t.Errorf("earlier snapshot changed (-want +got):\n%s", diff)
	}

	// Writing into a snapshot does not reach the store.
	snap := s.Snapshot()
	snap.Chats[0].Title = "hacked"
	assert.Equal(t, "changed", s.Snapshot().Chats[0].Title)
}

func TestStore_IDsStayUnique(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())
	for i := 0; i < 50; i++ {
		s.CreateChat()
		if i%3 == 0 {
			s.DeleteChat(s.Snapshot().Chats[1].ID)
		}
	}

	seen := map[string]bool{}
	for _, c := range s.Snapshot().Chats {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestStore_PersistsAfterEveryMutation(t *testing.T) {
	backend := storagetest.NewFlakyStore()
	s, _ := newTestStore(t, backend)
	base := backend.Sets()

	id := s.CreateChat()
	s.RenameChat(id, "x")
	s.StartEditing(id)
	s.StopEditing(id, false, nil)
	s.SetActiveChat(id)
	s.ToggleSidebar()
	s.DeleteChat(id)

	assert.Equal(t, base+7, backend.Sets())

	// The record reflects the state after the last mutation.
	reloaded := NewStore(backend)
	reloaded.Load()
	st := reloaded.Snapshot()
	assert.True(t, st.SidebarCollapsed)
	assert.NotContains(t, ids(st), id)
}

func TestStore_WriteFailureKeepsMemoryState(t *testing.T) {
	backend := storagetest.NewFlakyStore()
	core, logs := observer.New(zap.WarnLevel)
	s, _ := newTestStore(t, backend, WithLogger(zap.New(core)))

	backend.FailSets(true)
	id := s.CreateChat("offline")

	st := s.Snapshot()
	assert.Equal(t, id, st.ActiveChatID)
	assert.Equal(t, "offline", st.Chats[0].Title)
	assert.GreaterOrEqual(t, logs.FilterMessage("storage operation failed").Len(), 1)
}

func TestStore_NilBackend(t *testing.T) {
	s := NewStore(nil)
	s.Load()
	id := s.CreateChat()
	assert.Equal(t, id, s.Snapshot().ActiveChatID)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(t, storage.NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id := s.CreateChat()
			s.RenameChat(id, "concurrent")
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			s.ToggleSidebar()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Chats, 21)
}
