package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type row struct {
	id string
	at time.Time
}

func rows(n int) []row {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: string(rune('a' + i)), at: base.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func key(r row) Cursor { return Cursor{ID: r.id, CreatedAt: r.at} }

func TestPaginationParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	require.Equal(t, 1, p.Page)
	require.Equal(t, 100, p.PerPage)
	require.Zero(t, p.Offset())

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	require.Equal(t, 15, p.PerPage)
	require.Equal(t, 30, p.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	require.Equal(t, 3, p.TotalPages)
	require.True(t, p.HasNext)
	require.True(t, p.HasPrev)

	p = NewPagination(1, 10, 0)
	require.Zero(t, p.TotalPages)
	require.False(t, p.HasNext)
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	params := &CursorParams{Cursor: EncodeCursor(Cursor{ID: "abc", CreatedAt: at})}
	c, err := params.DecodeCursor()
	require.NoError(t, err)
	require.Equal(t, "abc", c.ID)
	require.True(t, at.Equal(c.CreatedAt))

	for _, bad := range []string{"%%%", "bm90LWpzb24=", EncodeCursor(Cursor{})} {
		_, err := (&CursorParams{Cursor: bad}).DecodeCursor()
		require.Error(t, err, bad)
	}

	c, err = (&CursorParams{}).DecodeCursor()
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestCursorParamsValidate(t *testing.T) {
	p := &CursorParams{Direction: "sideways", Limit: 0}
	p.Validate()
	require.Equal(t, CursorDirectionNext, p.Direction)
	require.Equal(t, 15, p.Limit)
}

func TestNewCursorPaginationForward(t *testing.T) {
	params := &CursorParams{Direction: CursorDirectionNext, Limit: 2}
	p, items := NewCursorPagination(rows(3), params, key)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].id)
	require.True(t, p.HasNext)
	require.False(t, p.HasPrev)

	next, err := (&CursorParams{Cursor: *p.NextCursor}).DecodeCursor()
	require.NoError(t, err)
	require.Equal(t, "b", next.ID)
}

func TestNewCursorPaginationBackward(t *testing.T) {
	params := &CursorParams{Cursor: "x", Direction: CursorDirectionPrev, Limit: 2}
	p, items := NewCursorPagination(rows(3), params, key)
	require.Len(t, items, 2)
	require.Equal(t, "b", items[0].id)
	require.Equal(t, "c", items[1].id)
	require.True(t, p.HasPrev)
	require.True(t, p.HasNext)
}

func TestNewCursorPaginationEmpty(t *testing.T) {
	p, items := NewCursorPagination([]row{}, &CursorParams{Limit: 5}, key)
	require.Empty(t, items)
	require.Nil(t, p.NextCursor)
	require.False(t, p.HasNext)
}
