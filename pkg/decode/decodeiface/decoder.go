// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package decodeiface

// Unit is one event extracted from a record's payload.
//
// Within one record's sequence EndingOffset is non-decreasing; the
// ExpandedOffset disambiguates multiple units sharing a byte range when a
// single line expands into several events, resetting to 0 whenever the
// ending offset moves.
type Unit struct {
	// Content is the decoded event body
	Content []byte

	// StartingOffset and EndingOffset delimit the byte range of the
	// record's decoded content consumed to produce this unit; the ending
	// offset is exclusive
	StartingOffset int64
	EndingOffset   int64

	// ExpandedOffset is the index of this unit within an expansion group
	// sharing one byte range; nil when the unit was not expanded
	ExpandedOffset *int64
}

// Units is a lazy, finite sequence of decoded units.  Next returns io.EOF
// once the sequence is exhausted; any other error invalidates the rest of
// the record.
type Units interface {
	Next() (*Unit, error)
}

// Decoder turns one record payload into an ordered sequence of decoded
// units.  Implementations must honour rangeStart by skipping units ending
// at or before that offset, must retain no state across calls, and must be
// restartable from any record with a fresh call.
type Decoder interface {
	Decode(payload []byte, rangeStart int64) (Units, error)
}
