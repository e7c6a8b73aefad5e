// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package consume

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/common"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/normalize"
)

// EmitFunc receives each normalized document in emission order; ownership
// of the document transfers to the callee
type EmitFunc func(*models.Document) error

// BatchConsumer drives one batch of records through decode and normalize,
// checking the deadline predicate before every unit so the invocation can
// stop mid-record and resume later from exactly the next undelivered unit.
type BatchConsumer struct {
	decoder    decodeiface.Decoder
	normalizer *normalize.Normalizer

	// timeRemaining reports whether there is still time to process one
	// more unit before the host kills the invocation
	timeRemaining func() bool

	log *log.Entry
}

// NewBatchConsumer creates a consumer over the given decoder and deadline
// predicate
func NewBatchConsumer(decoder decodeiface.Decoder, normalizer *normalize.Normalizer, timeRemaining func() bool) *BatchConsumer {
	return &BatchConsumer{
		decoder:       decoder,
		normalizer:    normalizer,
		timeRemaining: timeRemaining,
		log:           log.WithFields(log.Fields{"component": "batch_consumer"}),
	}
}

// Consume iterates the batch in order, emitting one document per decoded
// unit.  When resume is non-nil it must describe the first record of the
// batch and consumption of that record restarts strictly after the last
// unit the previous invocation delivered.
//
// On deadline interruption the returned Interrupted descriptor captures
// the record and cursor to republish; no record after the interrupted one
// is started.  A record whose payload fails to decode is counted and
// skipped without stopping the batch.
func (bc *BatchConsumer) Consume(records []*models.Record, resume *models.Cursor, emit EmitFunc) (*models.BatchResult, *models.Interrupted, error) {
	result := &models.BatchResult{}

	if resume != nil {
		if err := resume.Validate(); err != nil {
			return nil, nil, err
		}
	}

	for i, record := range records {
		var active *models.Cursor
		var rangeStart int64
		if i == 0 && resume != nil {
			active = resume
			rangeStart = resume.RangeStart()
		}

		interrupted, err := bc.consumeRecord(record, i, active, rangeStart, result, emit)
		if err != nil {
			return result, nil, err
		}
		if interrupted != nil {
			return result, interrupted, nil
		}
	}

	return result, nil, nil
}

// consumeRecord walks one record's unit sequence.  The live cursor starts
// from the resume cursor when one was supplied, so an interruption before
// the first unit of a resumed record still preserves the point reached by
// the previous invocation.
func (bc *BatchConsumer) consumeRecord(record *models.Record, index int, resume *models.Cursor, rangeStart int64, result *models.BatchResult, emit EmitFunc) (*models.Interrupted, error) {
	recordLog := bc.log.WithFields(log.Fields{"record_index": index, "sequence_number": record.SequenceNumber})

	identity, err := common.ParseStreamARN(record.EventSourceARN)
	if err != nil {
		bc.recordFailed(record, index, err, result, recordLog)
		return nil, nil
	}

	units, err := bc.decoder.Decode(record.Data, rangeStart)
	if err != nil {
		bc.recordFailed(record, index, err, result, recordLog)
		return nil, nil
	}

	live := models.Cursor{
		RecordIndex:    index,
		SequenceNumber: record.SequenceNumber,
	}
	if resume != nil {
		live.LastEndingOffset = resume.LastEndingOffset
		live.LastExpandedOffset = resume.LastExpandedOffset
	}

	for {
		unit, err := units.Next()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			bc.recordFailed(record, index, err, result, recordLog)
			return nil, nil
		}

		if resume != nil && resume.Covers(unit.EndingOffset, unit.ExpandedOffset) {
			continue
		}

		if !bc.timeRemaining() {
			recordLog.WithFields(log.Fields{
				"last_ending_offset":   formatOffset(live.LastEndingOffset),
				"last_expanded_offset": formatOffset(live.LastExpandedOffset),
			}).Info("Deadline reached; interrupting batch")

			cursor := live
			return &models.Interrupted{
				Record: record,
				Index:  index,
				Cursor: &cursor,
			}, nil
		}

		doc := bc.normalizer.Normalize(unit, record, identity, index)
		if err := emit(doc); err != nil {
			return nil, errors.Wrap(err, "Failed to emit document")
		}

		result.EmittedCount++
		live.Advance(unit.EndingOffset, unit.ExpandedOffset)
	}
}

func (bc *BatchConsumer) recordFailed(record *models.Record, index int, err error, result *models.BatchResult, recordLog *log.Entry) {
	wrapped := errors.Wrapf(err, "Failed to decode record %d (sequence number: %s)", index, record.SequenceNumber)
	recordLog.WithFields(log.Fields{"error": wrapped}).Error(wrapped)

	result.FailedCount++
	result.DecodeErrors = append(result.DecodeErrors, wrapped)
}

// DecodeError flattens the per-record decode failures of a result into a
// single error, or nil when every record decoded cleanly
func DecodeError(result *models.BatchResult) error {
	var errResult error
	for _, err := range result.DecodeErrors {
		errResult = multierror.Append(errResult, err)
	}
	return errResult
}

func formatOffset(offset *int64) interface{} {
	if offset == nil {
		return nil
	}
	return *offset
}
