package disasm

import (
	"slices"
)

// jumpPointTag marks an entry of a pointList as jump point. Instructions are
// word aligned, which leaves the lowest bit of an offset free for tagging.
const jumpPointTag = 1

// pointList is a sorted list of program offsets without duplicates.
//
// A return point is an offset where a control flow path starts or resumes,
// it is stored unmodified. A jump point is the offset of an instruction that
// unconditionally ends a path, it is stored with jumpPointTag set. A jump
// point sorts after the return point of its own offset and before the return
// point of the next instruction, so that the data regions of a program are
// exactly the regions between a jump point and the next return point.
type pointList []uint16

func (l *pointList) add(value uint16) {
	i, found := slices.BinarySearch(*l, value)
	if found {
		return
	}
	*l = slices.Insert(*l, i, value)
}

func (l *pointList) addJumpPoint(offset uint16) {
	l.add(offset | jumpPointTag)
}

func (l pointList) contains(value uint16) bool {
	_, found := slices.BinarySearch(l, value)
	return found
}

// pop removes and returns the highest entry.
func (l *pointList) pop() uint16 {
	value := (*l)[len(*l)-1]
	*l = (*l)[:len(*l)-1]
	return value
}

// inData returns whether the offset lies in the half-open interval that
// starts after a jump point and ends before the next return point.
func (l pointList) inData(offset uint16) bool {
	pos, _ := slices.BinarySearch(l, offset)
	if pos == 0 {
		return false
	}
	return l[pos-1]&jumpPointTag != 0 && (pos == len(l) || offset < l[pos])
}
