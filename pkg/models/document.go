// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package models

import (
	"github.com/goccy/go-json"
)

// DocumentTimestampFormat is the layout used for the @timestamp field
const DocumentTimestampFormat = "2006-01-02T15:04:05.000000Z"

// Document is the normalized, sink-ready representation of one decoded
// unit.  A Document is immutable once built and owned by the sink after
// emission.
type Document struct {
	Timestamp string         `json:"@timestamp"`
	Fields    DocumentFields `json:"fields"`

	// RecordIndex is the position of the originating record in the batch
	RecordIndex int `json:"-"`
}

// DocumentFields nests the payload and provenance of a document
type DocumentFields struct {
	Message string      `json:"message"`
	Log     LogFields   `json:"log"`
	AWS     AWSFields   `json:"aws"`
	Cloud   CloudFields `json:"cloud"`
}

// LogFields carries the offset of the event within the record's decoded
// content and the path of the source it was read from
type LogFields struct {
	Offset int64      `json:"offset"`
	File   FileFields `json:"file"`
}

// FileFields carries the source path of the event (the stream ARN)
type FileFields struct {
	Path string `json:"path"`
}

// AWSFields carries the stream provenance of the event
type AWSFields struct {
	Kinesis KinesisFields `json:"kinesis"`
}

// KinesisFields identifies the stream and record the event came from
type KinesisFields struct {
	Type           string `json:"type"`
	Name           string `json:"name"`
	SequenceNumber string `json:"sequence_number"`
}

// CloudFields carries the account and region provenance of the event
type CloudFields struct {
	Provider string        `json:"provider"`
	Region   string        `json:"region"`
	Account  AccountFields `json:"account"`
}

// AccountFields identifies the owning cloud account
type AccountFields struct {
	ID string `json:"id"`
}

// ToJSON returns the wire form of the document
func (d *Document) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Document) String() string {
	b, err := d.ToJSON()
	if err != nil {
		return ""
	}
	return string(b)
}
