package tiff

// FieldType is the numeric on-disk type code of a directory entry.
type FieldType uint16

// Field types per TIFF 6.0 p.14-16 plus the BigTIFF additions.
const (
	TypeByte      FieldType = 1
	TypeASCII     FieldType = 2
	TypeShort     FieldType = 3
	TypeLong      FieldType = 4
	TypeRational  FieldType = 5
	TypeSByte     FieldType = 6
	TypeUndefined FieldType = 7
	TypeSShort    FieldType = 8
	TypeSLong     FieldType = 9
	TypeSRational FieldType = 10
	TypeFloat     FieldType = 11
	TypeDouble    FieldType = 12
	TypeIFD       FieldType = 13
	TypeLong8     FieldType = 16
	TypeSLong8    FieldType = 17
	TypeIFD8      FieldType = 18
)

type fieldTypeInfo struct {
	name string
	size uint64 // element size in bytes
}

// fieldTypes is the registry of recognized type codes. An absent code
// is the normal "unknown type" condition, not an error: the entry's
// value length cannot be computed, so the entry is skipped.
var fieldTypes = map[FieldType]fieldTypeInfo{
	TypeByte:      {"Byte", 1},
	TypeASCII:     {"ASCII", 1},
	TypeShort:     {"Short", 2},
	TypeLong:      {"Long", 4},
	TypeRational:  {"Rational", 8},
	TypeSByte:     {"SByte", 1},
	TypeUndefined: {"Undefined", 1},
	TypeSShort:    {"SShort", 2},
	TypeSLong:     {"SLong", 4},
	TypeSRational: {"SRational", 8},
	TypeFloat:     {"Float", 4},
	TypeDouble:    {"Double", 8},
	TypeIFD:       {"IFD", 4},
	TypeLong8:     {"Long8", 8},
	TypeSLong8:    {"SLong8", 8},
	TypeIFD8:      {"IFD8", 8},
}

// Size returns the element size in bytes, or 0 for unrecognized codes.
func (t FieldType) Size() uint64 {
	return fieldTypes[t].size
}

// Known reports whether t is a recognized type code.
func (t FieldType) Known() bool {
	_, ok := fieldTypes[t]
	return ok
}

func (t FieldType) String() string {
	if info, ok := fieldTypes[t]; ok {
		return info.name
	}
	return "Unknown"
}
