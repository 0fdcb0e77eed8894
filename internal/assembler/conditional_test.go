package assembler

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestConditional(t *testing.T) {
	var c conditional
	assert.True(t, c.active())

	c.ifBlock(func() bool { return false })
	assert.False(t, c.active())

	evaluated := false
	c.ifBlock(func() bool {
		evaluated = true
		return true
	})
	assert.False(t, evaluated, "nested condition must not be evaluated while skipping")
	assert.NoError(t, c.elseBlock())
	assert.False(t, c.active())
	assert.NoError(t, c.endBlock())
	assert.False(t, c.active())

	assert.NoError(t, c.elseBlock())
	assert.True(t, c.active())
	assert.NoError(t, c.endBlock())
	assert.True(t, c.active())
	assert.Equal(t, 0, c.level)

	c.ifBlock(func() bool { return true })
	assert.True(t, c.active())
	assert.NoError(t, c.elseBlock())
	assert.False(t, c.active())
	assert.NoError(t, c.endBlock())
	assert.True(t, c.active())
}

func TestConditionalUnbalanced(t *testing.T) {
	var c conditional
	assert.ErrorIs(t, c.elseBlock(), ErrUnbalancedConditional)
	assert.ErrorIs(t, c.endBlock(), ErrUnbalancedConditional)
}
