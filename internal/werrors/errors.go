// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package werrors implements the data-driven error taxonomy shared by the
// wire and pbwire packages. Every error here represents a structural
// problem with a byte stream, never a caller contract violation (those are
// assertion panics at the call site, not werrors values).
package werrors

import "fmt"

// New formats a string according to the format specifier and arguments and
// returns an error with a "wire: " prefix. If one of the arguments is
// itself a *prefixError, its prefix is not duplicated.
func New(f string, x ...interface{}) error {
	for i := 0; i < len(x); i++ {
		if e, ok := x[i].(*prefixError); ok {
			x[i] = e.s
		}
	}
	return &prefixError{s: fmt.Sprintf(f, x...)}
}

type prefixError struct{ s string }

func (e *prefixError) Error() string { return "wire: " + e.s }

// Sentinel errors for the data-driven failure taxonomy. Call sites return
// these values directly, so errors.Is(err, werrors.ErrReadPastEnd)
// resolves.
var (
	// ErrReadPastEnd is returned when a read's target exceeds the
	// decoder's current end boundary.
	ErrReadPastEnd = New("attempted read past end of buffer")

	// ErrNegativeByteLength is returned when a delimited field advertises
	// a negative length.
	ErrNegativeByteLength = New("negative byte length")

	// ErrInvalidVarint is returned when a varint does not terminate
	// within its maximum byte count.
	ErrInvalidVarint = New("invalid varint")

	// ErrInvalidWireType is returned when a tag's wire type is 6 or 7, or
	// an END_GROUP tag appears outside of a group.
	ErrInvalidWireType = New("invalid wire type")

	// ErrInvalidFieldNumber is returned when a tag's field number is 0.
	ErrInvalidFieldNumber = New("invalid field number")

	// ErrMessageLengthMismatch is returned when a submessage callback
	// consumes fewer or more bytes than the submessage declared.
	ErrMessageLengthMismatch = New("message length mismatch")

	// ErrUnmatchedStartGroupEOF is returned when the input ends before a
	// matching END_GROUP tag is found.
	ErrUnmatchedStartGroupEOF = New("unmatched start-group tag, stream ended before END_GROUP")

	// ErrUnmatchedStartGroup is returned when an END_GROUP tag's field
	// number does not match the START_GROUP that opened it.
	ErrUnmatchedStartGroup = New("unmatched start-group tag")

	// ErrGroupDidNotEndWithEndGroup is returned when a group callback
	// returns without having consumed an END_GROUP tag.
	ErrGroupDidNotEndWithEndGroup = New("group did not end with END_GROUP")

	// ErrMalformedMessageSet is returned when a MessageSet group is
	// structurally invalid.
	ErrMalformedMessageSet = New("malformed message set")

	// ErrInvalidUTF8 is returned in fatal UTF-8 mode when a decode hits
	// an invalid byte sequence.
	ErrInvalidUTF8 = New("invalid UTF-8")

	// ErrParseInt64 is returned by xint64.FromDecimal on malformed input.
	ErrParseInt64 = New("invalid decimal integer")
)
