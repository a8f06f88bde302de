package tiff

import "testing"

func TestFieldTypeSizes(t *testing.T) {
	tests := []struct {
		typ  FieldType
		size uint64
	}{
		{TypeByte, 1},
		{TypeASCII, 1},
		{TypeShort, 2},
		{TypeLong, 4},
		{TypeRational, 8},
		{TypeSByte, 1},
		{TypeUndefined, 1},
		{TypeSShort, 2},
		{TypeSLong, 4},
		{TypeSRational, 8},
		{TypeFloat, 4},
		{TypeDouble, 8},
		{TypeIFD, 4},
		{TypeLong8, 8},
		{TypeSLong8, 8},
		{TypeIFD8, 8},
	}
	for _, tt := range tests {
		if got := tt.typ.Size(); got != tt.size {
			t.Errorf("%v.Size() = %d, want %d", tt.typ, got, tt.size)
		}
		if !tt.typ.Known() {
			t.Errorf("%v.Known() = false, want true", tt.typ)
		}
	}
}

func TestFieldTypeUnknown(t *testing.T) {
	unknown := FieldType(9999)
	if unknown.Known() {
		t.Error("Known() = true for code 9999")
	}
	if unknown.Size() != 0 {
		t.Errorf("Size() = %d for code 9999, want 0", unknown.Size())
	}
	if unknown.String() != "Unknown" {
		t.Errorf("String() = %q, want Unknown", unknown.String())
	}
	if TypeRational.String() != "Rational" {
		t.Errorf("String() = %q, want Rational", TypeRational.String())
	}
}
