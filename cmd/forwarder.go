// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package cmd

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/consume"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/normalize"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/statsreceiver"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/target/targetiface"
)

// Publisher is the slice of the continuation publisher the handler needs
type Publisher interface {
	Publish(interrupted *models.Interrupted) error
	Open()
	Close()
}

// PublisherFactory builds the continuation publisher on first
// interruption, so uninterrupted invocations never touch the queue
type PublisherFactory func() (Publisher, error)

// ForwardBatch is the common invocation body for all entrypoints: consume
// the batch, flush the documents to the target and, when the deadline cut
// the batch short, hand the interrupted record off to the continuation
// queue.
//
// A decode failure on a single record never fails the invocation; a
// failure to flush documents or to publish the continuation does, so the
// stream's at-least-once redelivery can re-supply the batch.
func ForwardBatch(cfg *Config, records []*models.Record, resume *models.Cursor, timeRemaining func() bool) (*models.BatchResult, error) {
	decoder, err := cfg.GetDecoder()
	if err != nil {
		return nil, err
	}

	t, err := cfg.GetTarget()
	if err != nil {
		return nil, err
	}

	sr, err := cfg.GetStatsReceiver()
	if err != nil {
		return nil, err
	}

	publisherFactory := func() (Publisher, error) {
		return cfg.GetPublisher()
	}

	return forwardBatchWithInterfaces(records, resume, timeRemaining, decoder, t, publisherFactory, sr)
}

func forwardBatchWithInterfaces(
	records []*models.Record,
	resume *models.Cursor,
	timeRemaining func() bool,
	decoder decodeiface.Decoder,
	t targetiface.Target,
	publisherFactory PublisherFactory,
	sr *statsreceiver.StatsDStatsReceiver,
) (*models.BatchResult, error) {
	consumer := consume.NewBatchConsumer(decoder, normalize.New(), timeRemaining)

	var documents []*models.Document
	emit := func(doc *models.Document) error {
		documents = append(documents, doc)
		return nil
	}

	result, interrupted, err := consumer.Consume(records, resume, emit)
	if err != nil {
		return nil, err
	}

	t.Open()
	defer t.Close()

	writeResult, err := t.Write(documents)
	if err != nil {
		return result, errors.Wrapf(err, "Failed to write documents to target %s", t.GetID())
	}
	if writeResult.FailedCount > 0 {
		return result, errors.Errorf("Target %s rejected %d/%d documents", t.GetID(), writeResult.FailedCount, writeResult.Total())
	}

	if interrupted != nil {
		publisher, err := publisherFactory()
		if err != nil {
			return result, errors.Wrap(err, "Failed to build continuation publisher")
		}
		publisher.Open()
		defer publisher.Close()

		if err := publisher.Publish(interrupted); err != nil {
			return result, err
		}
		result.Continued = true
	}

	if sr != nil {
		sr.Send(result)
	}

	log.WithFields(log.Fields{
		"documents_emitted": result.EmittedCount,
		"records_failed":    result.FailedCount,
		"continued":         result.Continued,
	}).Info("Batch consumed")

	if decodeErr := consume.DecodeError(result); decodeErr != nil {
		log.WithFields(log.Fields{"error": decodeErr}).Error(decodeErr)
	}

	return result, nil
}
