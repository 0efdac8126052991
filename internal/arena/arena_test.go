package arena_test

import (
	"testing"

	"github.com/KimNorgaard/go-sml/internal/arena"
	"github.com/stretchr/testify/require"
)

type rec struct {
	a, b int64
}

func TestArena_PageCapacity(t *testing.T) {
	a := arena.New[rec](64)
	require.Equal(t, 4, a.PageCap())
	require.Equal(t, 1, a.Pages())

	tiny := arena.New[rec](1)
	require.Equal(t, 1, tiny.PageCap(), "a page always holds one record")

	bytes := arena.New[byte](0)
	require.Equal(t, arena.DefaultPageSize, bytes.PageCap())
}

func TestArena_AllocFillsPagesInOrder(t *testing.T) {
	a := arena.New[rec](64)
	refs := make([]arena.Ref, 0, 10)
	for i := range 10 {
		ref, r := a.Alloc()
		require.False(t, ref.IsNil())
		require.Zero(t, *r)
		r.a = int64(i)
		refs = append(refs, ref)
	}
	require.Equal(t, 3, a.Pages())
	require.Equal(t, 10, a.Len())

	for i, ref := range refs {
		require.Equal(t, int64(i), a.Get(ref).a, "records never relocate")
	}
}

func TestArena_RunsNeverSplit(t *testing.T) {
	a := arena.New[rec](64) // 4 records per page
	_, _ = a.AllocN(3)
	ref, run := a.AllocN(2)
	require.Equal(t, 2, a.Pages(), "a run that does not fit starts a new page")
	require.Len(t, run, 2)
	run[0].a, run[1].a = 7, 8

	got := a.Slice(ref, 2)
	require.Equal(t, int64(7), got[0].a)
	require.Equal(t, int64(8), got[1].a)
}

func TestArena_OversizedRun(t *testing.T) {
	a := arena.New[rec](64)
	first, r := a.Alloc()
	r.a = 1

	big, run := a.AllocN(9)
	require.Len(t, run, 9)
	require.Equal(t, 9, cap(run), "oversized page holds exactly the run")
	for i := range run {
		run[i].a = int64(100 + i)
	}

	next, r := a.Alloc()
	r.a = 2
	require.Equal(t, 3, a.Pages())

	require.Equal(t, int64(1), a.Get(first).a)
	require.Equal(t, int64(2), a.Get(next).a)
	require.Equal(t, int64(108), a.Slice(big, 9)[8].a)
	require.Equal(t, 11, a.Len())
}

func TestArena_AppendToRunDoesNotClobberNeighbour(t *testing.T) {
	a := arena.New[rec](64)
	_, run := a.AllocN(2)
	afterRef, after := a.Alloc()
	after.a = 42

	run = append(run, rec{a: 1})
	require.Len(t, run, 3)
	require.Equal(t, int64(42), a.Get(afterRef).a)
}

func TestArena_ZeroAndRelease(t *testing.T) {
	a := arena.New[rec](64)
	ref, run := a.AllocN(0)
	require.True(t, ref.IsNil())
	require.Nil(t, run)
	require.Nil(t, a.Slice(ref, 0))

	a.Alloc()
	a.Release()
	require.Equal(t, 0, a.Pages())
	require.Panics(t, func() { a.Alloc() })
}
