package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListNavigation(t *testing.T) {
	l := NewList(3)
	l.SetItems([]string{"a", "b", "c", "d", "e"})

	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, []string{"a", "b", "c"}, l.Visible())

	l.Down()
	l.Down()
	l.Down()
	assert.Equal(t, 3, l.Selected())
	assert.Equal(t, []string{"b", "c", "d"}, l.Visible())

	l.Up()
	l.Up()
	l.Up()
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, []string{"a", "b", "c"}, l.Visible())
}

func TestListBoundaries(t *testing.T) {
	l := NewList(3)
	l.SetItems([]string{"a", "b"})

	l.Up()
	assert.Equal(t, 0, l.Selected())

	l.Down()
	l.Down()
	l.Down()
	assert.Equal(t, 1, l.Selected())
}

func TestListEmpty(t *testing.T) {
	l := NewList(3)
	assert.Nil(t, l.Visible())
	assert.Equal(t, 0, l.Len())
	l.Down()
	l.Up()
	assert.Equal(t, 0, l.Selected())
}

func TestListSetItemsResetsCursor(t *testing.T) {
	l := NewList(3)
	l.SetItems([]string{"a", "b", "c", "d"})
	l.Down()
	l.Down()

	l.SetItems([]string{"x", "y"})
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 0, l.Offset)
}

func TestListSetItemsKeepCursorClamps(t *testing.T) {
	l := NewList(3)
	l.SetItems([]string{"a", "b", "c", "d", "e"})
	l.Down()
	l.Down()
	l.Down()
	l.Down()
	assert.Equal(t, 4, l.Selected())

	l.SetItemsKeepCursor([]string{"a", "b"})
	assert.Equal(t, 1, l.Selected())
	assert.Equal(t, []string{"a", "b"}, l.Visible())

	l.SetItemsKeepCursor(nil)
	assert.Equal(t, 0, l.Selected())
}

func TestListRelToAbs(t *testing.T) {
	l := NewList(2)
	l.SetItems([]string{"a", "b", "c", "d"})
	l.Down()
	l.Down()
	l.Down()

	assert.Equal(t, 2, l.Offset)
	assert.Equal(t, 3, l.RelToAbs(1))
	assert.True(t, l.IsSelected(3))
	assert.False(t, l.IsSelected(2))
}
