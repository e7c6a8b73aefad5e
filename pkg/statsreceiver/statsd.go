// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package statsreceiver

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	statsd "github.com/smira/go-statsd"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// StatsDStatsReceiver holds a new client for writing invocation statistics
// to a StatsD server
type StatsDStatsReceiver struct {
	client *statsd.Client
}

// NewStatsDStatsReceiver creates a new client for writing metrics to StatsD
func NewStatsDStatsReceiver(address string, prefix string, tagsRaw string, tagsMapClient map[string]string) (*StatsDStatsReceiver, error) {
	tagsMap := map[string]string{}
	err := json.Unmarshal([]byte(tagsRaw), &tagsMap)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshall STATSD_TAGS to map")
	}

	var tags []statsd.Tag
	for key, value := range tagsMap {
		tags = append(tags, statsd.StringTag(key, value))
	}
	for key, value := range tagsMapClient {
		tags = append(tags, statsd.StringTag(key, value))
	}

	client := statsd.NewClient(address,
		statsd.MaxPacketSize(1400),
		statsd.MetricPrefix(fmt.Sprintf("%s.", prefix)),
		statsd.TagStyle(statsd.TagFormatDatadog),
		statsd.DefaultTags(tags...),
		statsd.ReconnectInterval(60*time.Second),
	)

	return &StatsDStatsReceiver{
		client: client,
	}, nil
}

// Send emits the counts of one consumed batch to the receiver
func (s *StatsDStatsReceiver) Send(r *models.BatchResult) {
	s.client.Incr("documents_emitted", r.EmittedCount)
	s.client.Incr("records_failed", r.FailedCount)
	if r.Continued {
		s.client.Incr("continuations_published", 1)
	}
}

// Close flushes any buffered metrics and shuts the client down
func (s *StatsDStatsReceiver) Close() {
	s.client.Close()
}
