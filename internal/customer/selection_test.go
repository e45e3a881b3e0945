package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	t.Parallel()

	records := []Record{{ID: 1}, {ID: 2}, {ID: 3}}

	t.Run("toggle", func(t *testing.T) {
		t.Parallel()
		s := NewSelection()
		assert.True(t, s.Toggle(2))
		assert.True(t, s.Has(2))
		assert.False(t, s.Toggle(2))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("toggle all only touches the given records", func(t *testing.T) {
		t.Parallel()
		s := NewSelection()
		s.Toggle(42)

		assert.True(t, s.ToggleAll(records[:2]))
		assert.Equal(t, []int{1, 2, 42}, s.IDs())
		assert.Equal(t, StateAll, s.StateOf(records[:2]))
		assert.Equal(t, StatePartial, s.StateOf(records))

		assert.False(t, s.ToggleAll(records[:2]))
		assert.Equal(t, []int{42}, s.IDs())
	})

	t.Run("partial selection selects the rest", func(t *testing.T) {
		t.Parallel()
		s := NewSelection()
		s.Toggle(3)
		assert.True(t, s.ToggleAll(records))
		assert.Equal(t, StateAll, s.StateOf(records))
	})

	t.Run("empty slice is a no-op", func(t *testing.T) {
		t.Parallel()
		s := NewSelection()
		assert.False(t, s.ToggleAll(nil))
		assert.Equal(t, StateNone, s.StateOf(nil))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("selected follows dataset order", func(t *testing.T) {
		t.Parallel()
		d := MustDataset([]Record{{ID: 9}, {ID: 4}, {ID: 7}})
		s := NewSelection()
		s.Toggle(7)
		s.Toggle(9)
		assert.Equal(t, []int{9, 7}, ids(s.Selected(d)))
		s.Clear()
		assert.Nil(t, s.Selected(d))
	})
}
