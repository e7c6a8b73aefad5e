// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package normalize

import (
	"time"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// Normalizer maps a decoded unit plus its record provenance into the
// canonical document shape.  It is a pure constructor: every call builds a
// fresh document from scratch, so no field can leak across documents, and
// the only non-determinism is the creation timestamp.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer stamping documents with the current UTC time
func New() *Normalizer {
	return &Normalizer{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// NewWithClock allows the clock to be substituted for testing
func NewWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize builds the canonical document for one decoded unit
func (n *Normalizer) Normalize(unit *decodeiface.Unit, record *models.Record, identity *models.StreamIdentity, recordIndex int) *models.Document {
	return &models.Document{
		Timestamp:   n.now().Format(models.DocumentTimestampFormat),
		RecordIndex: recordIndex,
		Fields: models.DocumentFields{
			Message: string(unit.Content),
			Log: models.LogFields{
				Offset: unit.StartingOffset,
				File: models.FileFields{
					Path: record.EventSourceARN,
				},
			},
			AWS: models.AWSFields{
				Kinesis: models.KinesisFields{
					Type:           identity.Type,
					Name:           identity.Name,
					SequenceNumber: record.SequenceNumber,
				},
			},
			Cloud: models.CloudFields{
				Provider: "aws",
				Region:   identity.Region,
				Account: models.AccountFields{
					ID: identity.AccountID,
				},
			},
		},
	}
}
