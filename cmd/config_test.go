// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/target"
)

func TestNewConfig_Defaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := NewConfig()
	assert.Nil(err)
	assert.NotNil(cfg)
	if cfg == nil {
		return
	}

	assert.Equal("stdout", cfg.Target)
	assert.Equal("lines", cfg.Decoder.Name)
	assert.Equal("", cfg.Decoder.ExpandEventListFromField)
	assert.Equal("", cfg.Continuation.QueueName)
	assert.Equal(5000, cfg.DeadlineMarginMs)
	assert.Equal(5*time.Second, cfg.DeadlineMargin())
	assert.Equal("info", cfg.LogLevel)
	assert.Equal("{}", cfg.Sentry.Tags)
	assert.Equal("cloudpine.kinesis-forwarder", cfg.StatsReceiver.Prefix)
}

func TestNewConfig_FromEnv(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("TARGET", "inmemory")
	t.Setenv("DECODER", "lines")
	t.Setenv("EXPAND_EVENT_LIST_FROM_FIELD", "Records")
	t.Setenv("CONTINUATION_SQS_QUEUE_NAME", "continuation-queue")
	t.Setenv("CONTINUATION_SQS_REGION", "eu-west-1")
	t.Setenv("DEADLINE_SAFETY_MARGIN_MS", "2500")
	t.Setenv("FORWARDER_CONFIG", "{\"decoder\":\"lines\"}")

	cfg, err := NewConfig()
	assert.Nil(err)
	if cfg == nil {
		return
	}

	assert.Equal("inmemory", cfg.Target)
	assert.Equal("Records", cfg.Decoder.ExpandEventListFromField)
	assert.Equal("continuation-queue", cfg.Continuation.QueueName)
	assert.Equal("eu-west-1", cfg.Continuation.Region)
	assert.Equal(2500*time.Millisecond, cfg.DeadlineMargin())
	assert.Equal("{\"decoder\":\"lines\"}", cfg.ConfigBlob)
}

func TestConfig_GetTarget(t *testing.T) {
	assert := assert.New(t)

	cfg, err := NewConfig()
	assert.Nil(err)

	stdoutTarget, err := cfg.GetTarget()
	assert.Nil(err)
	assert.IsType(&target.StdoutTarget{}, stdoutTarget)

	cfg.Target = "inmemory"
	memTarget, err := cfg.GetTarget()
	assert.Nil(err)
	assert.IsType(&target.InMemoryTarget{}, memTarget)

	cfg.Target = "fake"
	badTarget, err := cfg.GetTarget()
	assert.Nil(badTarget)
	assert.NotNil(err)
	if err != nil {
		assert.Equal("Invalid target found; expected one of 'stdout, inmemory' and got 'fake'", err.Error())
	}
}

func TestConfig_GetDecoder(t *testing.T) {
	assert := assert.New(t)

	cfg, err := NewConfig()
	assert.Nil(err)

	lineDecoder, err := cfg.GetDecoder()
	assert.Nil(err)
	assert.IsType(&decode.LineDecoder{}, lineDecoder)

	cfg.Decoder.ExpandEventListFromField = "Records"
	expandDecoder, err := cfg.GetDecoder()
	assert.Nil(err)
	assert.IsType(&decode.ExpandDecoder{}, expandDecoder)

	cfg.Decoder.Name = "fake"
	badDecoder, err := cfg.GetDecoder()
	assert.Nil(badDecoder)
	assert.NotNil(err)
	if err != nil {
		assert.Equal("Invalid decoder found; expected one of 'lines' and got 'fake'", err.Error())
	}
}

func TestConfig_GetPublisherRequiresQueueName(t *testing.T) {
	assert := assert.New(t)

	cfg, err := NewConfig()
	assert.Nil(err)

	publisher, err := cfg.GetPublisher()
	assert.Nil(publisher)
	assert.NotNil(err)
	if err != nil {
		assert.Contains(err.Error(), "CONTINUATION_SQS_QUEUE_NAME")
	}
}

func TestConfig_GetStatsReceiverWithoutAddress(t *testing.T) {
	assert := assert.New(t)

	cfg, err := NewConfig()
	assert.Nil(err)

	sr, err := cfg.GetStatsReceiver()
	assert.Nil(err)
	assert.Nil(sr)
}
