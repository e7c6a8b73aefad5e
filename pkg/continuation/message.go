// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package continuation

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// Attribute names of the continuation message.  The two offset attributes
// are present only when the corresponding cursor field is set, so that
// offset 0 stays distinguishable from "no unit emitted yet".
const (
	AttrConfig                  = "config"
	AttrStreamType              = "originalStreamType"
	AttrStreamName              = "originalStreamName"
	AttrSequenceNumber          = "originalSequenceNumber"
	AttrEventSourceARN          = "originalEventSourceARN"
	AttrLastEndingOffset        = "originalLastEndingOffset"
	AttrLastEventExpandedOffset = "originalLastEventExpandedOffset"
)

// Resumption is the decoded form of a continuation message's attributes:
// everything a fresh invocation needs to resume the interrupted record
// without the original batch object.
type Resumption struct {
	Config         string `mapstructure:"config"`
	StreamType     string `mapstructure:"originalStreamType"`
	StreamName     string `mapstructure:"originalStreamName"`
	SequenceNumber string `mapstructure:"originalSequenceNumber"`
	EventSourceARN string `mapstructure:"originalEventSourceARN"`

	LastEndingOffset        *int64 `mapstructure:"originalLastEndingOffset"`
	LastEventExpandedOffset *int64 `mapstructure:"originalLastEventExpandedOffset"`
}

// Cursor rebuilds the resumption cursor for the single-record batch the
// continuation message carries
func (r *Resumption) Cursor() (*models.Cursor, error) {
	cursor := &models.Cursor{
		RecordIndex:        0,
		SequenceNumber:     r.SequenceNumber,
		LastEndingOffset:   r.LastEndingOffset,
		LastExpandedOffset: r.LastEventExpandedOffset,
	}
	if err := cursor.Validate(); err != nil {
		return nil, err
	}
	return cursor, nil
}

// attributesFromCursor encodes the cursor and its provenance into SQS
// message attributes, numbers in their canonical string form
func attributesFromCursor(configBlob string, identity *models.StreamIdentity, record *models.Record, cursor *models.Cursor) map[string]*sqs.MessageAttributeValue {
	attributes := map[string]*sqs.MessageAttributeValue{
		AttrConfig: {
			DataType:    aws.String("String"),
			StringValue: aws.String(configBlob),
		},
		AttrStreamType: {
			DataType:    aws.String("String"),
			StringValue: aws.String(identity.Type),
		},
		AttrStreamName: {
			DataType:    aws.String("String"),
			StringValue: aws.String(identity.Name),
		},
		AttrSequenceNumber: {
			DataType:    aws.String("String"),
			StringValue: aws.String(record.SequenceNumber),
		},
		AttrEventSourceARN: {
			DataType:    aws.String("String"),
			StringValue: aws.String(record.EventSourceARN),
		},
	}

	if cursor.LastEndingOffset != nil {
		attributes[AttrLastEndingOffset] = &sqs.MessageAttributeValue{
			DataType:    aws.String("Number"),
			StringValue: aws.String(strconv.FormatInt(*cursor.LastEndingOffset, 10)),
		}
	}
	if cursor.LastExpandedOffset != nil {
		attributes[AttrLastEventExpandedOffset] = &sqs.MessageAttributeValue{
			DataType:    aws.String("Number"),
			StringValue: aws.String(strconv.FormatInt(*cursor.LastExpandedOffset, 10)),
		}
	}

	return attributes
}

// ParseAttributes decodes a continuation message's attribute values, keyed
// by attribute name, into a Resumption.  Missing offset attributes stay
// nil; a malformed numeric attribute is an error.
func ParseAttributes(attributes map[string]string) (*Resumption, error) {
	input := make(map[string]interface{}, len(attributes))
	for key, value := range attributes {
		input[key] = value
	}

	var resumption Resumption
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &resumption,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build continuation attribute decoder")
	}
	if err := decoder.Decode(input); err != nil {
		return nil, errors.Wrap(err, "Failed to decode continuation attributes")
	}

	if resumption.SequenceNumber == "" {
		return nil, errors.New("Invalid continuation attributes: missing originalSequenceNumber")
	}
	if resumption.EventSourceARN == "" {
		return nil, errors.New("Invalid continuation attributes: missing originalEventSourceARN")
	}

	return &resumption, nil
}
