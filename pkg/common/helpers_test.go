// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStreamARN(t *testing.T) {
	assert := assert.New(t)

	identity, err := ParseStreamARN("arn:aws:kinesis:eu-west-1:123456789012:stream/my-stream")
	assert.Nil(err)
	assert.NotNil(identity)
	if identity == nil {
		return
	}

	assert.Equal("stream", identity.Type)
	assert.Equal("my-stream", identity.Name)
	assert.Equal("eu-west-1", identity.Region)
	assert.Equal("123456789012", identity.AccountID)
}

func TestParseStreamARN_NameWithSlashes(t *testing.T) {
	assert := assert.New(t)

	identity, err := ParseStreamARN("arn:aws:kinesis:us-east-1:123456789012:stream/team/my-stream")
	assert.Nil(err)
	assert.NotNil(identity)
	if identity == nil {
		return
	}

	// only the first separator splits type from name
	assert.Equal("stream", identity.Type)
	assert.Equal("team/my-stream", identity.Name)
}

func TestParseStreamARN_Invalid(t *testing.T) {
	assert := assert.New(t)

	identity, err := ParseStreamARN("not-an-arn")
	assert.Nil(identity)
	assert.NotNil(err)
	if err != nil {
		assert.Contains(err.Error(), "Failed to parse stream ARN 'not-an-arn'")
	}
}

func TestParseStreamARN_MissingStreamName(t *testing.T) {
	assert := assert.New(t)

	identity, err := ParseStreamARN("arn:aws:kinesis:us-east-1:123456789012:my-stream")
	assert.Nil(identity)
	assert.NotNil(err)
}

func TestGetAccountIDFromARN(t *testing.T) {
	assert := assert.New(t)

	accountID, err := GetAccountIDFromARN("arn:aws:sqs:us-east-1:123456789012:continuation-queue")
	assert.Nil(err)
	assert.Equal("123456789012", accountID)
}

func TestGetAccountIDFromARN_Invalid(t *testing.T) {
	assert := assert.New(t)

	accountID, err := GetAccountIDFromARN("nonsense")
	assert.NotNil(err)
	assert.Equal("", accountID)
}
