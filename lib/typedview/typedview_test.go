// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typedview

import (
	"encoding/binary"
	"errors"
	"math"
	"slices"
	"testing"
)

func TestUnsigned(t *testing.T) {
	data := []byte{0x01, 0x00, 0xff, 0xff, 0x34, 0x12, 0x00, 0x80}

	got16, err := Uint16s(data)
	if err != nil {
		t.Fatalf("Uint16s: %v", err)
	}
	if want := []uint16{1, 0xffff, 0x1234, 0x8000}; !slices.Equal(got16, want) {
		t.Errorf("Uint16s = %#v, want %#v", got16, want)
	}

	got32, err := Uint32s(data)
	if err != nil {
		t.Fatalf("Uint32s: %v", err)
	}
	if want := []uint32{0xffff0001, 0x80001234}; !slices.Equal(got32, want) {
		t.Errorf("Uint32s = %#x, want %#x", got32, want)
	}

	got64, err := Uint64s(data)
	if err != nil {
		t.Fatalf("Uint64s: %v", err)
	}
	if want := []uint64{0x80001234ffff0001}; !slices.Equal(got64, want) {
		t.Errorf("Uint64s = %#x, want %#x", got64, want)
	}
}

func TestSigned(t *testing.T) {
	data := binary.LittleEndian.AppendUint32(nil, uint32(0xfffffffe))
	data = binary.LittleEndian.AppendUint32(data, 7)

	got32, err := Int32s(data)
	if err != nil {
		t.Fatalf("Int32s: %v", err)
	}
	if want := []int32{-2, 7}; !slices.Equal(got32, want) {
		t.Errorf("Int32s = %v, want %v", got32, want)
	}

	got64, err := Int64s(binary.LittleEndian.AppendUint64(nil, math.MaxUint64))
	if err != nil {
		t.Fatalf("Int64s: %v", err)
	}
	if want := []int64{-1}; !slices.Equal(got64, want) {
		t.Errorf("Int64s = %v, want %v", got64, want)
	}
}

func TestFloats(t *testing.T) {
	data := binary.LittleEndian.AppendUint32(nil, math.Float32bits(1.5))
	data = binary.LittleEndian.AppendUint32(data, math.Float32bits(-0.25))

	got32, err := Float32s(data)
	if err != nil {
		t.Fatalf("Float32s: %v", err)
	}
	if want := []float32{1.5, -0.25}; !slices.Equal(got32, want) {
		t.Errorf("Float32s = %v, want %v", got32, want)
	}

	got64, err := Float64s(binary.LittleEndian.AppendUint64(nil, math.Float64bits(math.Pi)))
	if err != nil {
		t.Fatalf("Float64s: %v", err)
	}
	if want := []float64{math.Pi}; !slices.Equal(got64, want) {
		t.Errorf("Float64s = %v, want %v", got64, want)
	}
}

func TestUnalignedInput(t *testing.T) {
	buffer := make([]byte, 9)
	binary.LittleEndian.PutUint64(buffer[1:], 42)
	got, err := Uint64s(buffer[1:])
	if err != nil {
		t.Fatalf("Uint64s: %v", err)
	}
	if len(got) != 1 || got[0] != 42 {
		t.Errorf("Uint64s(unaligned) = %v, want [42]", got)
	}
}

func TestResultOwnsMemory(t *testing.T) {
	data := []byte{1, 0, 0, 0}
	got, err := Uint32s(data)
	if err != nil {
		t.Fatalf("Uint32s: %v", err)
	}
	data[0] = 9
	if got[0] != 1 {
		t.Errorf("decoded value changed to %d after input was modified", got[0])
	}
}

func TestLengthErrors(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) error
		length int
	}{
		{"Uint16s", func(b []byte) error { _, err := Uint16s(b); return err }, 3},
		{"Uint32s", func(b []byte) error { _, err := Uint32s(b); return err }, 6},
		{"Uint64s", func(b []byte) error { _, err := Uint64s(b); return err }, 12},
		{"Int32s", func(b []byte) error { _, err := Int32s(b); return err }, 1},
		{"Int64s", func(b []byte) error { _, err := Int64s(b); return err }, 7},
		{"Float32s", func(b []byte) error { _, err := Float32s(b); return err }, 5},
		{"Float64s", func(b []byte) error { _, err := Float64s(b); return err }, 15},
	}
	for _, test := range tests {
		if err := test.decode(make([]byte, test.length)); !errors.Is(err, ErrLength) {
			t.Errorf("%s(%d bytes) error = %v, want ErrLength", test.name, test.length, err)
		}
		if err := test.decode(nil); err != nil {
			t.Errorf("%s(empty) error = %v, want nil", test.name, err)
		}
	}
}
