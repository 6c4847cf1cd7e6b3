// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import "golang.org/x/exp/constraints"

// checkRange asserts that v falls within [lo, hi]. This guards scalar
// writes whose wire width is narrower than the Go type carrying the value
// (int32 [-2^31,2^31), uint32 [0,2^32)). It panics rather than returning an
// error, since an out-of-range field value is a programmer error, not a
// malformed byte stream.
func checkRange[T constraints.Integer](v, lo, hi T) {
	if v < lo || v > hi {
		panic(assertionError{msg: "value out of range for field type"})
	}
}

type assertionError struct{ msg string }

func (e assertionError) Error() string { return "wire: assertion failed: " + e.msg }

// MaxFieldNumber is the largest field number the wire format's 29-bit
// field number space can hold.
const MaxFieldNumber Number = 1<<29 - 1

// CheckFieldNumber asserts num is a legal field number: field numbers
// start at 1, and the wire format's tag varint can only express up to
// MaxFieldNumber.
func CheckFieldNumber(num Number) {
	checkRange(num, MinValidNumber, MaxFieldNumber)
}

// CheckInt32Range asserts v fits the int32 wire range: [-2^31, 2^31).
func CheckInt32Range(v int64) { checkRange(v, -2147483648, 2147483647) }

// CheckUint32Range asserts v fits the uint32 wire range: [0, 2^32).
func CheckUint32Range(v int64) { checkRange(v, 0, 4294967295) }
