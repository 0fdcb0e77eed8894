package assembler

import (
	"fmt"
)

// conditional tracks the nesting of IFDEF, IFNDEF, ELSE and ENDIF blocks.
//
// Only the innermost false branch has to be tracked for properly nested
// blocks: skipToElse holds the level of an IF block whose condition was
// false, so processing resumes at its ELSE. skipToEndif holds the level of an
// ELSE block that has to be skipped until its ENDIF. A value of 0 means that
// nothing is skipped.
type conditional struct {
	level       int
	skipToElse  int
	skipToEndif int
}

// active returns whether statements are currently processed.
func (c *conditional) active() bool {
	return c.skipToElse == 0 && c.skipToEndif == 0
}

// ifBlock opens a new IFDEF or IFNDEF block. condition is only evaluated
// when statements are processed.
func (c *conditional) ifBlock(condition func() bool) {
	c.level++
	if c.active() && !condition() {
		c.skipToElse = c.level
	}
}

func (c *conditional) elseBlock() error {
	if c.level == 0 {
		return fmt.Errorf("%w: unexpected ELSE", ErrUnbalancedConditional)
	}
	if c.skipToElse == c.level {
		c.skipToElse = 0
	} else if c.active() {
		c.skipToEndif = c.level
	}
	return nil
}

func (c *conditional) endBlock() error {
	if c.level == 0 {
		return fmt.Errorf("%w: unexpected ENDIF", ErrUnbalancedConditional)
	}
	if c.skipToElse == c.level {
		c.skipToElse = 0
	}
	if c.skipToEndif == c.level {
		c.skipToEndif = 0
	}
	c.level--
	return nil
}
