// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package continuation

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/common"
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// Publisher holds a client for handing an interrupted record off to the
// continuation queue.  Exactly one message is sent per interrupted record;
// publish failures are surfaced to the caller and never retried here, so
// the caller can fail the invocation and let the stream's at-least-once
// redelivery take over.
type Publisher struct {
	client    sqsiface.SQSAPI
	queueURL  string
	queueName string
	region    string
	accountID string

	// configBlob is forwarded unchanged on every message so the resumed
	// invocation knows how to decode the record
	configBlob string

	log *log.Entry
}

// NewPublisher creates a new client for writing continuation messages to sqs
func NewPublisher(region string, queueName string, roleARN string, configBlob string) (*Publisher, error) {
	awsSession, awsConfig, awsAccountID, err := common.GetAWSSession(region, roleARN)
	if err != nil {
		return nil, err
	}
	sqsClient := sqs.New(awsSession, awsConfig)

	return NewPublisherWithInterfaces(sqsClient, *awsAccountID, region, queueName, configBlob)
}

// NewPublisherWithInterfaces allows you to provide an SQS client directly
// to allow for mocking and localstack usage
func NewPublisherWithInterfaces(client sqsiface.SQSAPI, awsAccountID string, region string, queueName string, configBlob string) (*Publisher, error) {
	return &Publisher{
		client:     client,
		queueName:  queueName,
		region:     region,
		accountID:  awsAccountID,
		configBlob: configBlob,
		log:        log.WithFields(log.Fields{"target": "sqs_continuation", "cloud": "AWS", "region": region, "queue": queueName}),
	}, nil
}

// Publish sends the continuation message for one interrupted record: the
// body is the raw, undecoded payload and the attributes carry the cursor
// plus enough provenance to resume without the original batch.
func (p *Publisher) Publish(interrupted *models.Interrupted) error {
	cursor := interrupted.Cursor
	if err := cursor.Validate(); err != nil {
		return err
	}

	identity, err := common.ParseStreamARN(interrupted.Record.EventSourceARN)
	if err != nil {
		return err
	}

	_, err = p.client.SendMessage(&sqs.SendMessageInput{
		QueueUrl:          aws.String(p.queueURL),
		MessageBody:       aws.String(string(interrupted.Record.Data)),
		MessageAttributes: attributesFromCursor(p.configBlob, identity, interrupted.Record, cursor),
	})
	if err != nil {
		return errors.Wrap(err, "Failed to send continuation message to SQS queue")
	}

	p.log.WithFields(log.Fields{
		"record_index":         interrupted.Index,
		"sequence_number":      cursor.SequenceNumber,
		"last_ending_offset":   offsetField(cursor.LastEndingOffset),
		"last_expanded_offset": offsetField(cursor.LastExpandedOffset),
	}).Debug("Continuing")

	return nil
}

// Open fetches the queue URL for this publisher
func (p *Publisher) Open() {
	urlResult, err := p.client.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(p.queueName),
	})
	if err != nil {
		errWrapped := errors.Wrap(err, "Failed to get SQS queue URL")
		p.log.WithFields(log.Fields{"error": errWrapped}).Fatal(errWrapped)
	}

	p.queueURL = *urlResult.QueueUrl
}

// Close resets the queue URL value
func (p *Publisher) Close() {
	p.queueURL = ""
}

// GetID returns the identifier for this publisher
func (p *Publisher) GetID() string {
	return fmt.Sprintf("arn:aws:sqs:%s:%s:%s", p.region, p.accountID, p.queueName)
}

func offsetField(offset *int64) interface{} {
	if offset == nil {
		return nil
	}
	return *offset
}
