package program

// OffsetType defines the type of a program offset.
type OffsetType uint8

// offset types, an offset can have multiple types.
const (
	UnknownOffset OffsetType = 0
	CodeOffset    OffsetType = 1 << iota
	DataOffset
	CodeAsData      // data that decodes to a valid instruction
	CallDestination // destination of a CALL, indicating a subroutine
	JumpDestination // destination of a JP
	DataReference   // address loaded into I
)

// IsType returns whether the offset is of given type.
func (o *Offset) IsType(typ OffsetType) bool {
	ret := o.Type&typ != 0
	return ret
}

// SetType sets the type of the offset.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}
