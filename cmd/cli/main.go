// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/cloudpine-devops/kinesis-forwarder/cmd"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

const (
	appUsage     = "Replays a Kinesis trigger event file through the forwarder"
	appCopyright = "(c) 2023-present Cloudpine Ltd. All rights reserved."
)

func main() {
	app := cli.NewApp()
	app.Name = cmd.AppName
	app.Usage = appUsage
	app.Version = cmd.AppVersion
	app.Copyright = appCopyright
	app.Compiled = time.Now()

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "event, e",
			Usage: "Path to a Kinesis trigger event JSON file",
		},
	}

	app.Action = func(c *cli.Context) error {
		eventPath := c.String("event")
		if eventPath == "" {
			return errors.New("Missing required flag --event")
		}

		cfg, _, err := cmd.Init()
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(eventPath)
		if err != nil {
			return errors.Wrapf(err, "Failed to read event file '%s'", eventPath)
		}

		var event events.KinesisEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return errors.Wrapf(err, "Failed to unmarshal event file '%s'", eventPath)
		}

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

		// no host deadline when replaying locally
		result, err := cmd.ForwardBatch(cfg, records, nil, func() bool { return true })
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"documents_emitted": result.EmittedCount,
			"records_failed":    result.FailedCount,
		}).Info("Replay complete")
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
