package progress

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamespaceKeys(t *testing.T) {
	ns := NewNamespace("kbm_sb", "swatch")
	require.Equal(t, "kbm_sb_swatch_", ns.Prefix)
	require.Equal(t, "kbm_sb_swatch_step_3", ns.StepKey(3))
	require.Equal(t, "kbm_sb_swatch_notes", ns.NotesKey())
	require.Equal(t, "kbm_sb_swatch_react_love", ns.ReactionKey("love"))
}

func TestPercent(t *testing.T) {
	cases := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 2, 0},
		{1, 2, 50},
		{2, 2, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Percent(c.done, c.total), "done=%d total=%d", c.done, c.total)
	}
}

func TestSummarize(t *testing.T) {
	tried := map[int]bool{1: true, 3: true}
	s := Summarize(4, func(p int) bool { return tried[p] })
	require.Equal(t, Summary{Done: 2, Total: 4, Percent: 50}, s)
	require.False(t, s.Complete())

	require.True(t, Summarize(2, func(int) bool { return true }).Complete())
	require.False(t, Summarize(0, func(int) bool { return true }).Complete())
}

func TestStateReadsAbsentAsFalse(t *testing.T) {
	ctx := context.Background()
	st := NewState(NewMemoryStore(), NewNamespace("kbm_sb", "swatch"), nil)
	require.False(t, st.Tried(ctx, 1))
	require.False(t, st.Reacted(ctx, "love"))
	require.Equal(t, "", st.Notes(ctx))
}

func TestStateWritesThrough(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ns := NewNamespace("kbm_sb", "swatch")
	st := NewState(store, ns, nil)

	st.SetTried(ctx, 2, true)
	st.SetReacted(ctx, "love", true)
	st.SetNotes(ctx, "blend <b>slowly</b>")

	v, ok, err := store.Get(ctx, "kbm_sb_swatch_step_2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)

	v, _, _ = store.Get(ctx, "kbm_sb_swatch_react_love")
	require.Equal(t, "true", v)
	v, _, _ = store.Get(ctx, "kbm_sb_swatch_notes")
	require.Equal(t, "blend <b>slowly</b>", v)

	reopened := NewState(store, ns, nil)
	require.True(t, reopened.Tried(ctx, 2))
	require.False(t, reopened.Tried(ctx, 1))
	require.True(t, reopened.Reacted(ctx, "love"))

	st.SetTried(ctx, 2, false)
	v, _, _ = store.Get(ctx, "kbm_sb_swatch_step_2")
	require.Equal(t, "false", v)
}

func TestStatesSharingAStoreStayIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a := NewState(store, NewNamespace("kbm_sb", "swatch"), nil)
	b := NewState(store, NewNamespace("kbm_sb", "swatch-2"), nil)

	a.SetTried(ctx, 1, true)
	a.SetNotes(ctx, "mine")
	require.False(t, b.Tried(ctx, 1))
	require.Equal(t, "", b.Notes(ctx))

	for _, k := range store.Keys() {
		require.True(t, strings.HasPrefix(k, "kbm_sb_swatch_"), k)
	}
}

func TestStateDegradesWhenStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	st := NewState(UnavailableStore{}, NewNamespace("kbm_sb", "swatch"), nil)

	require.False(t, st.Tried(ctx, 1))
	require.True(t, st.Degraded())

	st.SetTried(ctx, 1, true)
	require.True(t, st.Tried(ctx, 1), "writes stay usable for the session")
	st.SetTried(ctx, 1, false)
	require.False(t, st.Tried(ctx, 1))
}

func TestNilStoreIsUnavailable(t *testing.T) {
	st := NewState(nil, NewNamespace("kbm_sb", "x"), nil)
	st.SetNotes(context.Background(), "n")
	require.True(t, st.Degraded())
	require.Equal(t, "n", st.Notes(context.Background()))
}
