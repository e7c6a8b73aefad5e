// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

func testFixtures() (*models.Record, *models.StreamIdentity) {
	record := &models.Record{
		Data:           []byte("irrelevant"),
		SequenceNumber: "49600000000000000001",
		EventSourceARN: "arn:aws:kinesis:eu-west-1:123456789012:stream/app-logs",
	}
	identity := &models.StreamIdentity{
		Type:      "stream",
		Name:      "app-logs",
		Region:    "eu-west-1",
		AccountID: "123456789012",
	}
	return record, identity
}

func TestNormalize(t *testing.T) {
	assert := assert.New(t)

	frozen := time.Date(2023, 6, 1, 10, 30, 0, 123456000, time.UTC)
	normalizer := NewWithClock(func() time.Time { return frozen })

	record, identity := testFixtures()
	unit := &decodeiface.Unit{
		Content:        []byte("hello world"),
		StartingOffset: 128,
		EndingOffset:   140,
	}

	doc := normalizer.Normalize(unit, record, identity, 3)

	assert.Equal("2023-06-01T10:30:00.123456Z", doc.Timestamp)
	assert.Equal(3, doc.RecordIndex)
	assert.Equal("hello world", doc.Fields.Message)
	assert.Equal(int64(128), doc.Fields.Log.Offset)
	assert.Equal(record.EventSourceARN, doc.Fields.Log.File.Path)
	assert.Equal("stream", doc.Fields.AWS.Kinesis.Type)
	assert.Equal("app-logs", doc.Fields.AWS.Kinesis.Name)
	assert.Equal(record.SequenceNumber, doc.Fields.AWS.Kinesis.SequenceNumber)
	assert.Equal("aws", doc.Fields.Cloud.Provider)
	assert.Equal("eu-west-1", doc.Fields.Cloud.Region)
	assert.Equal("123456789012", doc.Fields.Cloud.Account.ID)
}

func TestNormalize_FreshDocumentPerCall(t *testing.T) {
	assert := assert.New(t)

	normalizer := New()
	record, identity := testFixtures()

	first := normalizer.Normalize(&decodeiface.Unit{Content: []byte("one"), EndingOffset: 4}, record, identity, 0)
	second := normalizer.Normalize(&decodeiface.Unit{Content: []byte("two"), StartingOffset: 4, EndingOffset: 8}, record, identity, 0)

	// no shared state between documents
	assert.NotSame(first, second)
	assert.Equal("one", first.Fields.Message)
	assert.Equal("two", second.Fields.Message)
	assert.Equal(int64(0), first.Fields.Log.Offset)
	assert.Equal(int64(4), second.Fields.Log.Offset)
}
