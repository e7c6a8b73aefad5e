// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package models

import (
	"github.com/pkg/errors"
)

// Cursor identifies precisely where consumption of a batch stopped so a
// later invocation can pick up from the next undelivered unit.
//
// Both offsets are optional and their absence means something different
// from zero: a cursor with neither offset set resumes its record from the
// start, while offset 0 is a valid resumption point in its own right.
type Cursor struct {
	// RecordIndex is the position of the interrupted record in the batch
	RecordIndex int

	// SequenceNumber is the stream-native identifier of the record
	SequenceNumber string

	// LastEndingOffset is the exclusive byte offset of the last unit that
	// was emitted from the record; nil when no unit was emitted yet
	LastEndingOffset *int64

	// LastExpandedOffset is the index of the last emitted sub-event
	// sharing that byte range; nil when the unit was not expanded
	LastExpandedOffset *int64
}

// Validate checks the cursor invariant: an expanded offset is only
// meaningful relative to a byte offset
func (c *Cursor) Validate() error {
	if c.LastExpandedOffset != nil && c.LastEndingOffset == nil {
		return errors.New("Invalid cursor: expanded offset set without an ending offset")
	}
	return nil
}

// RangeStart returns the offset to hand the decoder when resuming the
// cursor's record.
//
// When the last emitted unit came out of an expansion group the byte range
// alone cannot address it, so the record is re-decoded from the start and
// Covers filters out everything already delivered.
func (c *Cursor) RangeStart() int64 {
	if c.LastEndingOffset == nil || c.LastExpandedOffset != nil {
		return 0
	}
	return *c.LastEndingOffset
}

// Covers reports whether a unit with the given ending and expanded offsets
// was already emitted before this cursor was captured
func (c *Cursor) Covers(endingOffset int64, expandedOffset *int64) bool {
	if c.LastEndingOffset == nil {
		return false
	}
	if endingOffset != *c.LastEndingOffset {
		return endingOffset < *c.LastEndingOffset
	}
	if c.LastExpandedOffset == nil || expandedOffset == nil {
		return true
	}
	return *expandedOffset <= *c.LastExpandedOffset
}

// Advance moves the cursor past a unit that has just been emitted
func (c *Cursor) Advance(endingOffset int64, expandedOffset *int64) {
	offset := endingOffset
	c.LastEndingOffset = &offset

	if expandedOffset != nil {
		expanded := *expandedOffset
		c.LastExpandedOffset = &expanded
	} else {
		c.LastExpandedOffset = nil
	}
}
