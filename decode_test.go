package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseMethod(t *testing.T) {
	m, err := parseMethod("ieee754")
	require.NoError(t, err)
	assert.Equal(t, methodIEEE754, m)
	assert.Equal(t, "ieee754", m.String())

	m, err = parseMethod("direct")
	require.NoError(t, err)
	assert.Equal(t, methodDirect, m)
	assert.Equal(t, "direct", m.String())

	_, err = parseMethod("octal")
	assert.Error(t, err)
	assert.Equal(t, "<unknown>", method(42).String())
}

func Test_decodeIEEE754_Single(t *testing.T) {
	for _, bits := range []uint32{0x3F800000, 0xDEADBEEF, 0, 0x80000000, 0x40490FDB, 0x00000001, 0x7F800000, 0xFF800000, 0x3DCCCCCD} {
		want := float64(math.Float32frombits(bits))
		for _, h := range []string{fmt.Sprintf("%08x", bits), fmt.Sprintf("0x%08X", bits)} {
			got, err := decodeIEEE754(h)
			require.NoError(t, err, h)
			assert.Equal(t, math.Float64bits(want), math.Float64bits(got), h)
		}
	}
}

func Test_decodeIEEE754_Double(t *testing.T) {
	for _, bits := range []uint64{0x3FF0000000000000, 0x400921FB54442D18, 0, 0xC000000000000000, 0x0000000000000001, 0xDEADBEEFDEADBEEF} {
		want := math.Float64frombits(bits)
		got, err := decodeIEEE754(fmt.Sprintf("%016X", bits))
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(want), math.Float64bits(got))
	}

	got, err := decodeIEEE754("400921FB54442D18")
	require.NoError(t, err)
	assert.Equal(t, math.Pi, got)
}

func Test_decodeIEEE754_OddLength(t *testing.T) {
	for _, h := range []string{"1", "3F8", "abc", "3F80000", "DEADBEE", "123456789", "0x7"} {
		got, err := decodeIEEE754(h)
		require.NoError(t, err, h)
		padded, err := decodeIEEE754(h + "0")
		require.NoError(t, err, h)
		assert.Equal(t, math.Float64bits(padded), math.Float64bits(got), h)
	}

	got, err := decodeIEEE754("3F80000")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func Test_decodeIEEE754_OtherLengths(t *testing.T) {
	tests := []struct {
		input string
		bits  uint32
	}{
		{"3F80", 0x00003F80},
		{"ff", 0x000000FF},
		{"013F800000", 0x3F800000},
		{"AABBCCDD3F800000FF", 0x800000FF},
		{"00112233445566778899AABB3F800000", 0x3F800000},
		{"", 0},
		{"0x", 0},
	}

	for _, tt := range tests {
		got, err := decodeIEEE754(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, math.Float64bits(float64(math.Float32frombits(tt.bits))), math.Float64bits(got), tt.input)
	}
}

func Test_decodeIEEE754_Error(t *testing.T) {
	for _, h := range []string{"hello", "3F80000G", "-1f", "12 34"} {
		_, err := decodeIEEE754(h)
		require.Error(t, err, h)

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), h)
		assert.Equal(t, h, decodeErr.Value)
		assert.Equal(t, methodIEEE754, decodeErr.Method)
		assert.Contains(t, err.Error(), strconv.Quote(h))
	}
}

func Test_decodeDirect(t *testing.T) {
	for _, h := range []string{"3F800000", "deadbeef", "0", "1", "FFFFFFFFFFFFFFFF", "20000000000001", "20000000000003", "0x7fffffff"} {
		u, err := strconv.ParseUint(trimHex(h), 16, 64)
		require.NoError(t, err, h)

		got, err := decodeDirect(h)
		require.NoError(t, err, h)
		assert.Equal(t, float64(u), got, h)
	}

	got, err := decodeDirect("3F800000")
	require.NoError(t, err)
	assert.Equal(t, "1065353216.0", formatFloat(got))

	got, err = decodeDirect("1" + strings.Repeat("0", 31))
	require.NoError(t, err)
	assert.Equal(t, math.Ldexp(1, 124), got)
}

func Test_decodeDirect_Error(t *testing.T) {
	tests := []struct {
		input string
		cause error
	}{
		{"", errNoDigits},
		{"0x", errNoDigits},
		{"hello", errNotHex},
		{"-1", errNotHex},
		{"+1", errNotHex},
		{"1_0", errNotHex},
		{strings.Repeat("F", 300), errOverflow},
	}

	for _, tt := range tests {
		_, err := decodeDirect(tt.input)
		assert.ErrorIs(t, err, tt.cause, tt.input)

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), tt.input)
		assert.Equal(t, methodDirect, decodeErr.Method)
	}
}

func Test_methodDecode(t *testing.T) {
	v, err := methodIEEE754.decode("3F800000")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = methodDirect.decode("3F800000")
	require.NoError(t, err)
	assert.Equal(t, 1065353216.0, v)

	_, err = method(42).decode("00")
	assert.Error(t, err)
}
