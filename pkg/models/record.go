// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package models

import (
	"time"
)

// Record holds one entry of a Kinesis batch along with the stream
// provenance needed to build documents and continuation messages
type Record struct {
	// Data is the record payload, already base64-decoded by the host
	Data []byte

	// SequenceNumber is the stream-native identifier of the record
	SequenceNumber string

	// PartitionKey is the key the record was sharded on
	PartitionKey string

	// EventSourceARN identifies the stream the record was pulled from
	EventSourceARN string

	// ArrivalTime is when the record landed on the stream
	ArrivalTime time.Time
}

// StreamIdentity holds the components parsed out of a stream ARN
type StreamIdentity struct {
	Type      string
	Name      string
	Region    string
	AccountID string
}

// Interrupted describes a record whose decoding was cut short by the
// invocation deadline, along with the exact point to resume from
type Interrupted struct {
	Record *Record
	Index  int
	Cursor *Cursor
}
