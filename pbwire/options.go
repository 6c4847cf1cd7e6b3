// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

// ReaderOptions configures a Reader. The zero value is the default
// configuration: no aliasing, no discarding, mutable-backed input.
type ReaderOptions struct {
	// DiscardUnknownFields, when set, makes ReadUnknownField skip the
	// field without returning its raw bytes.
	DiscardUnknownFields bool

	// AliasBytesFields, when set, allows ReadBytes/ReadByteString to
	// return a view into the attached buffer instead of a copy, subject
	// to the mutability rule TreatNewDataAsImmutable controls.
	AliasBytesFields bool

	// TreatNewDataAsImmutable records whether the caller promises not to
	// mutate the buffer passed to Attach/AttachWhole for the lifetime of
	// the binding.
	TreatNewDataAsImmutable bool
}

// UTF8Policy selects how strictly a Writer enforces UTF-8 validity on
// string field writes.
type UTF8Policy int

const (
	// UTF8Always validates every string write and fails on invalid
	// UTF-8, matching proto3 string field semantics.
	UTF8Always UTF8Policy = iota
	// UTF8DeprecatedProto3Only relaxes validation to match legacy
	// proto2 string fields, which never enforced UTF-8 validity.
	UTF8DeprecatedProto3Only
)

// WriterOptions configures a Writer.
type WriterOptions struct {
	// UTF8 selects the string-write validation policy.
	UTF8 UTF8Policy

	// ReplaceSurrogates, when set, emits U+FFFD for an unpaired UTF-16
	// surrogate on encode instead of failing.
	ReplaceSurrogates bool
}
