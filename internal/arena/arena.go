// Package arena implements the paged allocator backing a document tree.
//
// Records are carved from fixed-capacity pages and addressed by Ref rather
// than by pointer. Pages are appended as needed and dropped together by
// Release; there is no per-record free.
package arena

import "unsafe"

// DefaultPageSize is the page size in bytes used when none is configured.
const DefaultPageSize = 4096

// Ref addresses a record (or the first record of a run) inside an Arena.
// The zero Ref is nil.
type Ref struct {
	page int32 // page index + 1
	off  int32
}

// IsNil reports whether r addresses nothing.
func (r Ref) IsNil() bool { return r.page == 0 }

// Arena is a typed page allocator. The zero value is not usable; use New.
type Arena[T any] struct {
	pages   [][]T
	pageCap int
	used    int // records used in the last page
	n       int // records handed out
}

// New returns an arena whose pages hold pageBytes worth of T records.
// A page always holds at least one record.
func New[T any](pageBytes int) *Arena[T] {
	if pageBytes <= 0 {
		pageBytes = DefaultPageSize
	}
	var t T
	size := int(unsafe.Sizeof(t))
	capacity := 1
	if size > 0 && pageBytes/size > 1 {
		capacity = pageBytes / size
	} else if size == 0 {
		capacity = pageBytes
	}
	a := &Arena[T]{
		pages:   make([][]T, 0, 2),
		pageCap: capacity,
	}
	a.addPage(capacity)
	return a
}

// PageCap returns the number of records a regular page holds.
func (a *Arena[T]) PageCap() int { return a.pageCap }

// Pages returns the number of pages currently owned by the arena.
func (a *Arena[T]) Pages() int { return len(a.pages) }

// Len returns the number of records handed out so far.
func (a *Arena[T]) Len() int { return a.n }

// Alloc returns a zeroed record and its reference.
func (a *Arena[T]) Alloc() (Ref, *T) {
	ref, s := a.AllocN(1)
	return ref, &s[0]
}

// AllocN returns n contiguous zeroed records. A run never spans two pages:
// if the current page lacks room a fresh page is started, and a run larger
// than a page gets a dedicated page of exactly its size.
func (a *Arena[T]) AllocN(n int) (Ref, []T) {
	if a.pages == nil {
		panic("arena: allocation after release")
	}
	if n <= 0 {
		return Ref{}, nil
	}
	if n > a.pageCap {
		return a.allocOversized(n)
	}
	if a.used+n > a.pageCap {
		a.addPage(a.pageCap)
	}
	idx := len(a.pages) - 1
	ref := Ref{page: int32(idx + 1), off: int32(a.used)}
	s := a.pages[idx][a.used : a.used+n : a.used+n]
	a.used += n
	a.n += n
	return ref, s
}

// allocOversized places a run that cannot fit any regular page. The
// oversized page is sealed: the next allocation starts a regular page.
//
//go:noinline
func (a *Arena[T]) allocOversized(n int) (Ref, []T) {
	a.addPage(n)
	a.used = a.pageCap
	idx := len(a.pages) - 1
	a.n += n
	return Ref{page: int32(idx + 1)}, a.pages[idx]
}

// Get returns the record addressed by r.
func (a *Arena[T]) Get(r Ref) *T {
	return &a.pages[r.page-1][r.off]
}

// Slice returns the run of n records starting at r.
func (a *Arena[T]) Slice(r Ref, n int) []T {
	if n == 0 || r.IsNil() {
		return nil
	}
	return a.pages[r.page-1][r.off : int(r.off)+n : int(r.off)+n]
}

// Release drops every page. The arena must not be used afterwards.
func (a *Arena[T]) Release() {
	clear(a.pages)
	a.pages = nil
	a.used = 0
	a.n = 0
}

func (a *Arena[T]) addPage(capacity int) {
	a.grow()
	a.pages = append(a.pages, make([]T, capacity))
	a.used = 0
}

// grow doubles the backing capacity of the page list when it is full.
func (a *Arena[T]) grow() {
	if len(a.pages) < cap(a.pages) {
		return
	}
	pages := make([][]T, len(a.pages), max(2, cap(a.pages)<<1))
	copy(pages, a.pages)
	a.pages = pages
}
