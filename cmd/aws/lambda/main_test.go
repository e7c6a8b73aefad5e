// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package main

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/continuation"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/testutil"
)

func TestClassifyTrigger(t *testing.T) {
	assert := assert.New(t)

	source, err := classifyTrigger(json.RawMessage(`{"Records":[{"eventSource":"aws:kinesis"}]}`))
	assert.Nil(err)
	assert.Equal("aws:kinesis", source)

	source, err = classifyTrigger(json.RawMessage(`{"Records":[{"eventSource":"aws:sqs"}]}`))
	assert.Nil(err)
	assert.Equal("aws:sqs", source)

	// an empty batch is treated as the stream trigger
	source, err = classifyTrigger(json.RawMessage(`{"Records":[]}`))
	assert.Nil(err)
	assert.Equal("aws:kinesis", source)

	_, err = classifyTrigger(json.RawMessage(`not json`))
	assert.NotNil(err)
}

func TestRecordsFromKinesisEvent(t *testing.T) {
	assert := assert.New(t)

	arrival := time.Date(2023, 6, 1, 10, 30, 0, 0, time.UTC)
	event := &events.KinesisEvent{
		Records: []events.KinesisEventRecord{
			{
				EventSource:    "aws:kinesis",
				EventSourceArn: testutil.TestStreamARN,
				Kinesis: events.KinesisRecord{
					Data:                        []byte("alpha\nbeta\n"),
					SequenceNumber:              "49600000000000000001",
					PartitionKey:                "pk-1",
					ApproximateArrivalTimestamp: events.SecondsEpochTime{Time: arrival},
				},
			},
			{
				EventSource:    "aws:kinesis",
				EventSourceArn: testutil.TestStreamARN,
				Kinesis: events.KinesisRecord{
					Data:           []byte("gamma\n"),
					SequenceNumber: "49600000000000000002",
					PartitionKey:   "pk-2",
				},
			},
		},
	}

	records := recordsFromKinesisEvent(event)
	assert.Equal(2, len(records))

	assert.Equal([]byte("alpha\nbeta\n"), records[0].Data)
	assert.Equal("49600000000000000001", records[0].SequenceNumber)
	assert.Equal("pk-1", records[0].PartitionKey)
	assert.Equal(testutil.TestStreamARN, records[0].EventSourceARN)
	assert.Equal(arrival, records[0].ArrivalTime)

	assert.Equal([]byte("gamma\n"), records[1].Data)
}

func TestRecordFromContinuation(t *testing.T) {
	assert := assert.New(t)

	endingOffset := "6"
	message := &events.SQSMessage{
		Body: "alpha\nbeta\n",
		MessageAttributes: map[string]events.SQSMessageAttribute{
			continuation.AttrConfig:           {StringValue: stringPtr("cfg")},
			continuation.AttrStreamType:       {StringValue: stringPtr("stream")},
			continuation.AttrStreamName:       {StringValue: stringPtr("test-stream")},
			continuation.AttrSequenceNumber:   {StringValue: stringPtr("49600000000000000001")},
			continuation.AttrEventSourceARN:   {StringValue: stringPtr(testutil.TestStreamARN)},
			continuation.AttrLastEndingOffset: {StringValue: &endingOffset},
		},
	}

	record, cursor, err := recordFromContinuation(message)
	assert.Nil(err)
	assert.NotNil(record)
	assert.NotNil(cursor)
	if record == nil || cursor == nil {
		return
	}

	assert.Equal([]byte("alpha\nbeta\n"), record.Data)
	assert.Equal("49600000000000000001", record.SequenceNumber)
	assert.Equal(testutil.TestStreamARN, record.EventSourceARN)

	assert.Equal(0, cursor.RecordIndex)
	assert.Equal("49600000000000000001", cursor.SequenceNumber)
	assert.NotNil(cursor.LastEndingOffset)
	if cursor.LastEndingOffset != nil {
		assert.Equal(int64(6), *cursor.LastEndingOffset)
	}
	assert.Nil(cursor.LastExpandedOffset)
}

func TestRecordFromContinuation_MissingAttributes(t *testing.T) {
	assert := assert.New(t)

	message := &events.SQSMessage{Body: "payload"}

	record, cursor, err := recordFromContinuation(message)
	assert.Nil(record)
	assert.Nil(cursor)
	assert.NotNil(err)
}

func TestDeadlinePredicate(t *testing.T) {
	assert := assert.New(t)

	// no deadline on the context means no time pressure
	assert.True(deadlinePredicate(context.Background(), time.Second)())

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(time.Hour))
	defer cancel()
	assert.True(deadlinePredicate(ctx, time.Second)())

	// a margin larger than the remaining time reports expiry
	assert.False(deadlinePredicate(ctx, 2*time.Hour)())

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Minute))
	defer cancelExpired()
	assert.False(deadlinePredicate(expired, time.Second)())
}

func stringPtr(s string) *string {
	return &s
}
