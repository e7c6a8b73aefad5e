// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/cloudpine-devops/kinesis-forwarder/cmd"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/continuation"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

func main() {
	lambda.Start(HandleRequest)
}

// HandleRequest processes one invocation: either a Kinesis batch pushed by
// the stream trigger, or a continuation message pulled off the internal
// SQS queue by a resumed invocation
func HandleRequest(ctx context.Context, raw json.RawMessage) error {
	cfg, sentryEnabled, err := cmd.Init()
	if err != nil {
		return err
	}
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}

	timeRemaining := deadlinePredicate(ctx, cfg.DeadlineMargin())

	source, err := classifyTrigger(raw)
	if err != nil {
		return err
	}

	switch source {
	case "aws:kinesis":
		var event events.KinesisEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return errors.Wrap(err, "Failed to unmarshal Kinesis trigger event")
		}
		_, err := cmd.ForwardBatch(cfg, recordsFromKinesisEvent(&event), nil, timeRemaining)
		return err
	case "aws:sqs":
		var event events.SQSEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return errors.Wrap(err, "Failed to unmarshal SQS trigger event")
		}
		return handleContinuations(cfg, &event, timeRemaining)
	default:
		return errors.Errorf("Unsupported trigger event source '%s'", source)
	}
}

// handleContinuations resumes each interrupted record carried by the SQS
// trigger, in order.  Messages the deadline does not leave room to start
// are republished to the continuation queue untouched, so nothing is lost
// and nothing already delivered is re-emitted.
func handleContinuations(cfg *cmd.Config, event *events.SQSEvent, timeRemaining func() bool) error {
	for i, message := range event.Records {
		record, cursor, err := recordFromContinuation(&message)
		if err != nil {
			return err
		}

		if !timeRemaining() {
			return republishTail(cfg, event.Records[i:])
		}

		if _, err := cmd.ForwardBatch(cfg, []*models.Record{record}, cursor, timeRemaining); err != nil {
			return err
		}
	}
	return nil
}

func republishTail(cfg *cmd.Config, messages []events.SQSMessage) error {
	publisher, err := cfg.GetPublisher()
	if err != nil {
		return err
	}
	publisher.Open()
	defer publisher.Close()

	for i := range messages {
		record, cursor, err := recordFromContinuation(&messages[i])
		if err != nil {
			return err
		}
		if err := publisher.Publish(&models.Interrupted{Record: record, Index: 0, Cursor: cursor}); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{"republished": len(messages)}).Info("Deadline reached before resuming; republished remaining continuations")
	return nil
}

// classifyTrigger peeks at the first record's eventSource to tell the two
// trigger shapes apart
func classifyTrigger(raw json.RawMessage) (string, error) {
	var probe struct {
		Records []struct {
			EventSource string `json:"eventSource"`
		} `json:"Records"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", errors.Wrap(err, "Failed to unmarshal trigger event")
	}
	if len(probe.Records) == 0 {
		return "aws:kinesis", nil
	}
	return probe.Records[0].EventSource, nil
}

func recordsFromKinesisEvent(event *events.KinesisEvent) []*models.Record {
	records := make([]*models.Record, len(event.Records))
	for i := range event.Records {
		eventRecord := &event.Records[i]
		records[i] = &models.Record{
			Data:           eventRecord.Kinesis.Data,
			SequenceNumber: eventRecord.Kinesis.SequenceNumber,
			PartitionKey:   eventRecord.Kinesis.PartitionKey,
			EventSourceARN: eventRecord.EventSourceArn,
			ArrivalTime:    eventRecord.Kinesis.ApproximateArrivalTimestamp.UTC(),
		}
	}
	return records
}

// recordFromContinuation rebuilds the interrupted record and its cursor
// from a continuation queue message
func recordFromContinuation(message *events.SQSMessage) (*models.Record, *models.Cursor, error) {
	attributes := make(map[string]string, len(message.MessageAttributes))
	for name, attribute := range message.MessageAttributes {
		if attribute.StringValue != nil {
			attributes[name] = *attribute.StringValue
		}
	}

	resumption, err := continuation.ParseAttributes(attributes)
	if err != nil {
		return nil, nil, err
	}

	cursor, err := resumption.Cursor()
	if err != nil {
		return nil, nil, err
	}

	record := &models.Record{
		Data:           []byte(message.Body),
		SequenceNumber: resumption.SequenceNumber,
		EventSourceARN: resumption.EventSourceARN,
	}
	return record, cursor, nil
}

func deadlinePredicate(ctx context.Context, margin time.Duration) func() bool {
	deadline, ok := ctx.Deadline()
	if !ok {
		return func() bool { return true }
	}
	return func() bool {
		return time.Until(deadline) > margin
	}
}
