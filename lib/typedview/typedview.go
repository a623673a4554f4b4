// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typedview

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrLength is returned when the input cannot be split evenly into
// elements.
var ErrLength = errors.New("byte length is not a multiple of the element size")

func checkLength(data []byte, size int) (int, error) {
	if len(data)%size != 0 {
		return 0, fmt.Errorf("%w: %d bytes, element size %d", ErrLength, len(data), size)
	}
	return len(data) / size, nil
}

// Uint16s decodes little-endian uint16 values.
func Uint16s(data []byte) ([]uint16, error) {
	n, err := checkLength(data, 2)
	if err != nil {
		return nil, err
	}
	values := make([]uint16, n)
	for i := range values {
		values[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return values, nil
}

// Uint32s decodes little-endian uint32 values.
func Uint32s(data []byte) ([]uint32, error) {
	n, err := checkLength(data, 4)
	if err != nil {
		return nil, err
	}
	values := make([]uint32, n)
	for i := range values {
		values[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return values, nil
}

// Uint64s decodes little-endian uint64 values.
func Uint64s(data []byte) ([]uint64, error) {
	n, err := checkLength(data, 8)
	if err != nil {
		return nil, err
	}
	values := make([]uint64, n)
	for i := range values {
		values[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	return values, nil
}

// Int32s decodes little-endian two's complement int32 values.
func Int32s(data []byte) ([]int32, error) {
	n, err := checkLength(data, 4)
	if err != nil {
		return nil, err
	}
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return values, nil
}

// Int64s decodes little-endian two's complement int64 values.
func Int64s(data []byte) ([]int64, error) {
	n, err := checkLength(data, 8)
	if err != nil {
		return nil, err
	}
	values := make([]int64, n)
	for i := range values {
		values[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return values, nil
}

// Float32s decodes little-endian IEEE 754 binary32 values.
func Float32s(data []byte) ([]float32, error) {
	n, err := checkLength(data, 4)
	if err != nil {
		return nil, err
	}
	values := make([]float32, n)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return values, nil
}

// Float64s decodes little-endian IEEE 754 binary64 values.
func Float64s(data []byte) ([]float64, error) {
	n, err := checkLength(data, 8)
	if err != nil {
		return nil, err
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return values, nil
}
