package main

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
)

type method int

func (m method) String() string {
	switch m {
	case methodIEEE754:
		return "ieee754"
	case methodDirect:
		return "direct"
	default:
		return "<unknown>"
	}
}

const (
	methodIEEE754 = method(iota)
	methodDirect
)

func parseMethod(s string) (method, error) {
	switch s {
	case "ieee754", "ieee", "i":
		return methodIEEE754, nil
	case "direct", "d":
		return methodDirect, nil
	default:
		return 0, fmt.Errorf("unsupported conversion method %q", s)
	}
}

func (m method) decode(value string) (float64, error) {
	switch m {
	case methodIEEE754:
		return decodeIEEE754(value)
	case methodDirect:
		return decodeDirect(value)
	default:
		return 0, &DecodeError{Value: value, Method: m, Err: errors.New("unsupported method")}
	}
}

var (
	errNoDigits = errors.New("no hex digits")
	errNotHex   = errors.New("non-hexadecimal character")
	errOverflow = errors.New("value too large for a float")
)

// DecodeError is returned when a cell cannot be converted with the chosen
// method. The cell is kept as is.
type DecodeError struct {
	Value  string
	Method method
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot convert %q to float (method=%s): %v", e.Value, e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeDirect reads the digits as an unsigned integer of any width and rounds
// it to the nearest float64.
func decodeDirect(value string) (float64, error) {
	s := trimHex(value)
	if s == "" {
		return 0, &DecodeError{Value: value, Method: methodDirect, Err: errNoDigits}
	}
	if !allHexDigits(s) {
		return 0, &DecodeError{Value: value, Method: methodDirect, Err: errNotHex}
	}

	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return 0, &DecodeError{Value: value, Method: methodDirect, Err: errNotHex}
	}

	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return 0, &DecodeError{Value: value, Method: methodDirect, Err: errOverflow}
	}
	return f, nil
}

// decodeIEEE754 reads the digits as big-endian IEEE-754 bytes. 4 bytes is a
// single, 8 bytes a double. Any other length is cut or zero-padded on the
// left to 4 bytes and read as a single. An odd digit count gets a trailing 0.
func decodeIEEE754(value string) (float64, error) {
	s := trimHex(value)
	if len(s)%2 != 0 {
		s += "0"
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, &DecodeError{Value: value, Method: methodIEEE754, Err: err}
	}

	switch len(b) {
	case 4:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case 8:
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	}

	var word [4]byte
	if len(b) < 4 {
		copy(word[4-len(b):], b)
	} else {
		copy(word[:], b[len(b)-4:])
	}
	return float64(math.Float32frombits(binary.BigEndian.Uint32(word[:]))), nil
}
