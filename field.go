package tiff

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Field is one decoded directory entry. Fields are immutable once
// constructed and owned by the Directory that produced them.
type Field struct {
	Tag     uint16
	DirType DirType
	Type    FieldType
	Count   uint64

	// Offset is the entry's value-slot content interpreted as a file
	// offset. It locates the value area when the value is indirect;
	// for inline values it is meaningless.
	Offset uint64

	// Value holds the raw value bytes, already resolved whether the
	// entry stored them inline or behind Offset.
	Value []byte

	Order binary.ByteOrder

	// Index is the entry's ordinal position within its directory.
	Index int
}

// Length returns the byte length of the field's value area.
func (f *Field) Length() uint64 {
	return f.Count * f.Type.Size()
}

func (f *Field) String() string {
	return fmt.Sprintf("tag %d (%s) x%d", f.Tag, f.Type, f.Count)
}

// UintValues decodes the value as unsigned integers. It accepts the
// Byte, Short, Long, Long8 and IFD-pointer types.
func (f *Field) UintValues() ([]uint64, error) {
	size := f.Type.Size()
	if size == 0 || f.Count > uint64(len(f.Value))/size {
		return nil, fmt.Errorf("%w: field %s value truncated", ErrShortRead, f)
	}
	u := make([]uint64, f.Count)
	switch f.Type {
	case TypeByte, TypeUndefined:
		for i := range u {
			u[i] = uint64(f.Value[i])
		}
	case TypeShort:
		for i := range u {
			u[i] = uint64(f.Order.Uint16(f.Value[2*i:]))
		}
	case TypeLong, TypeIFD:
		for i := range u {
			u[i] = uint64(f.Order.Uint32(f.Value[4*i:]))
		}
	case TypeLong8, TypeIFD8:
		for i := range u {
			u[i] = f.Order.Uint64(f.Value[8*i:])
		}
	default:
		return nil, fmt.Errorf("tiff: field %s is not an unsigned integer type", f)
	}
	return u, nil
}

// UintValue decodes the first element of an unsigned integer field.
func (f *Field) UintValue() (uint64, error) {
	u, err := f.UintValues()
	if err != nil {
		return 0, err
	}
	if len(u) == 0 {
		return 0, fmt.Errorf("%w: field %s has no elements", ErrShortRead, f)
	}
	return u[0], nil
}

// Rational is an unsigned rational field element.
type Rational struct {
	Num, Den uint32
}

// Float64 returns the rational as a float, or 0 for a zero denominator.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// RationalValues decodes the value of a Rational field.
func (f *Field) RationalValues() ([]Rational, error) {
	if f.Type != TypeRational {
		return nil, fmt.Errorf("tiff: field %s is not Rational", f)
	}
	if f.Count > uint64(len(f.Value))/8 {
		return nil, fmt.Errorf("%w: field %s value truncated", ErrShortRead, f)
	}
	u := make([]Rational, f.Count)
	for i := range u {
		u[i] = Rational{
			Num: f.Order.Uint32(f.Value[8*i:]),
			Den: f.Order.Uint32(f.Value[8*i+4:]),
		}
	}
	return u, nil
}

// StringValue decodes an ASCII field. Trailing NUL terminators are
// dropped. Values that are not valid UTF-8 are reinterpreted as
// Latin-1, which is what legacy writers actually emit.
func (f *Field) StringValue() (string, error) {
	if f.Type != TypeASCII && f.Type != TypeByte && f.Type != TypeUndefined {
		return "", fmt.Errorf("tiff: field %s is not a text type", f)
	}
	n := int(f.Count)
	if n > len(f.Value) {
		n = len(f.Value)
	}
	b := f.Value[:n]
	if utf8.Valid(b) {
		return strings.TrimRight(string(b), "\x00"), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(decoded), "\x00"), nil
}
