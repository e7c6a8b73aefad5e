// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/twinj/uuid"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TestStreamARN is the stream every test record claims to come from
const TestStreamARN = "arn:aws:kinesis:us-east-1:123456789012:stream/test-stream"

var (
	seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenRandomString can produce a random string of any provided length which is
// useful for testing situations that might have byte limitations
func GenRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// GetTestRecord returns one batch record carrying the given payload
func GetTestRecord(sequenceNumber string, payload string) *models.Record {
	return &models.Record{
		Data:           []byte(payload),
		SequenceNumber: sequenceNumber,
		PartitionKey:   uuid.NewV4().String(),
		EventSourceARN: TestStreamARN,
		ArrivalTime:    time.Now().UTC(),
	}
}

// GetTestBatch returns a batch of records, each payload holding lineCount
// newline-terminated lines of the form "r<record>-l<line>"
func GetTestBatch(recordCount int, lineCount int) []*models.Record {
	records := make([]*models.Record, recordCount)
	for i := 0; i < recordCount; i++ {
		payload := ""
		for j := 0; j < lineCount; j++ {
			payload += fmt.Sprintf("r%d-l%d\n", i, j)
		}
		records[i] = GetTestRecord(fmt.Sprintf("4960000000000000000%d", i), payload)
	}
	return records
}

// UnitBudget returns a deadline predicate that reports time remaining for
// the first n checks and expiry thereafter
func UnitBudget(n int) func() bool {
	remaining := n
	return func() bool {
		if remaining <= 0 {
			return false
		}
		remaining--
		return true
	}
}

// NoDeadline is a deadline predicate that never expires
func NoDeadline() bool {
	return true
}
