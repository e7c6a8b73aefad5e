// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/continuation"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/statsreceiver"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/target"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/target/targetiface"
)

// ContinuationConfig configures the queue interrupted records are handed
// off to
type ContinuationConfig struct {
	QueueName string `env:"CONTINUATION_SQS_QUEUE_NAME"`
	Region    string `env:"CONTINUATION_SQS_REGION"`
	RoleARN   string `env:"CONTINUATION_SQS_ROLE_ARN"`
}

// DecoderConfig configures how record payloads are turned into events
type DecoderConfig struct {
	Name string `env:"DECODER" envDefault:"lines"`

	// ExpandEventListFromField names the JSON field whose list elements
	// become standalone events; empty disables expansion
	ExpandEventListFromField string `env:"EXPAND_EVENT_LIST_FROM_FIELD"`
}

// SentryConfig configures the Sentry error tracker
type SentryConfig struct {
	Dsn   string `env:"SENTRY_DSN"`
	Tags  string `env:"SENTRY_TAGS" envDefault:"{}"`
	Debug bool   `env:"SENTRY_DEBUG" envDefault:"false"`
}

// StatsDConfig configures the StatsD metrics receiver
type StatsDConfig struct {
	Address string `env:"STATSD_ADDRESS"`
	Prefix  string `env:"STATSD_PREFIX" envDefault:"cloudpine.kinesis-forwarder"`
	Tags    string `env:"STATSD_TAGS" envDefault:"{}"`
}

// Config for the kinesis forwarder as a whole
type Config struct {
	Target       string `env:"TARGET" envDefault:"stdout"`
	Continuation ContinuationConfig
	Decoder      DecoderConfig

	// ConfigBlob is forwarded unchanged on every continuation message so
	// a resumed invocation knows how to decode the record
	ConfigBlob string `env:"FORWARDER_CONFIG"`

	// DeadlineMarginMs is how much of the invocation deadline is reserved
	// for flushing documents and publishing the continuation message
	DeadlineMarginMs int `env:"DEADLINE_SAFETY_MARGIN_MS" envDefault:"5000"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	Sentry        SentryConfig
	StatsReceiver StatsDConfig
}

// NewConfig resolves the config from the environment
func NewConfig() (*Config, error) {
	cfg := Config{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DeadlineMargin returns the configured safety margin as a duration
func (c *Config) DeadlineMargin() time.Duration {
	return time.Duration(c.DeadlineMarginMs) * time.Millisecond
}

// GetTarget builds and returns the target that is configured
func (c *Config) GetTarget() (targetiface.Target, error) {
	switch c.Target {
	case "stdout":
		return target.NewStdoutTarget()
	case "inmemory":
		return target.NewInMemoryTarget()
	default:
		return nil, errors.New(fmt.Sprintf("Invalid target found; expected one of 'stdout, inmemory' and got '%s'", c.Target))
	}
}

// GetDecoder builds and returns the decoder that is configured, wrapping
// it in the list-field expander when one is set
func (c *Config) GetDecoder() (decodeiface.Decoder, error) {
	var base decodeiface.Decoder

	switch c.Decoder.Name {
	case "lines":
		base = decode.NewLineDecoder()
	default:
		return nil, errors.New(fmt.Sprintf("Invalid decoder found; expected one of 'lines' and got '%s'", c.Decoder.Name))
	}

	if c.Decoder.ExpandEventListFromField != "" {
		return decode.NewExpandDecoder(base, c.Decoder.ExpandEventListFromField), nil
	}
	return base, nil
}

// GetPublisher builds and returns the continuation publisher
func (c *Config) GetPublisher() (*continuation.Publisher, error) {
	if c.Continuation.QueueName == "" {
		return nil, errors.New("Missing CONTINUATION_SQS_QUEUE_NAME; a continuation queue is required to survive deadline interruptions")
	}
	return continuation.NewPublisher(
		c.Continuation.Region,
		c.Continuation.QueueName,
		c.Continuation.RoleARN,
		c.ConfigBlob,
	)
}

// GetStatsReceiver builds and returns the stats receiver, or nil when no
// address is configured
func (c *Config) GetStatsReceiver() (*statsreceiver.StatsDStatsReceiver, error) {
	if c.StatsReceiver.Address == "" {
		return nil, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get server hostname as tag")
	}

	return statsreceiver.NewStatsDStatsReceiver(
		c.StatsReceiver.Address,
		c.StatsReceiver.Prefix,
		c.StatsReceiver.Tags,
		map[string]string{
			"hostname":   hostname,
			"process_id": strconv.Itoa(os.Getpid()),
			"app_name":   AppName,
		},
	)
}
