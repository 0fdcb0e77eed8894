package symbols

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTable(t *testing.T) {
	t.Run("new table is empty", func(t *testing.T) {
		tbl := New()

		assert.NotNil(t, tbl)
		assert.Equal(t, 0, tbl.Len())
		assert.Empty(t, tbl.Unused())
	})

	t.Run("add and get symbol", func(t *testing.T) {
		tbl := New()

		assert.False(t, tbl.Add("program_start", 0x200))

		value, ok := tbl.Get("program_start")
		assert.True(t, ok)
		assert.Equal(t, uint16(0x200), value)
	})

	t.Run("get undefined symbol", func(t *testing.T) {
		tbl := New()

		_, ok := tbl.Get("missing")
		assert.False(t, ok)
	})

	t.Run("redefinition keeps first value", func(t *testing.T) {
		tbl := New()

		assert.False(t, tbl.Add("x", 1))
		assert.True(t, tbl.Add("x", 2))

		value, ok := tbl.Get("x")
		assert.True(t, ok)
		assert.Equal(t, uint16(1), value)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		tbl := New()

		assert.False(t, tbl.Add("lbl", 1))
		assert.False(t, tbl.Add("LBL", 2))
		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, []string{"LBL", "lbl"}, tbl.Unused())

		_, ok := tbl.Get("Lbl")
		assert.False(t, ok)
	})

	t.Run("unused symbols", func(t *testing.T) {
		tbl := New()
		tbl.Add("a", 1)
		tbl.Add("b", 2)
		tbl.Add("c", 3)

		_, _ = tbl.Get("b")

		assert.Equal(t, []string{"a", "c"}, tbl.Unused())
	})
}
