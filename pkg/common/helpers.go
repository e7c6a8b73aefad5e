// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package common

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/pkg/errors"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// GetAWSSession is a general tool to handle generating an AWS session
// using the standard auth flow.  We also have the ability to pass a role ARN
// to allow for roles to be assumed in cross-account access flows.
func GetAWSSession(region string, roleARN string) (sess *session.Session, cfg *aws.Config, accountID *string, err error) {
	sess = session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Config: aws.Config{
			Region: aws.String(region),
		},
	}))

	if roleARN != "" {
		creds := stscreds.NewCredentials(sess, roleARN)
		cfg = &aws.Config{
			Credentials: creds,
			Region:      aws.String(region),
		}
	}

	stsClient := sts.New(sess, cfg)

	res, err := stsClient.GetCallerIdentity(&sts.GetCallerIdentityInput{})
	if err != nil {
		return sess, cfg, nil, err
	}
	accountID = res.Account

	return sess, cfg, accountID, nil
}

// ParseStreamARN extracts the stream type, name, region and account ID out
// of a Kinesis stream ARN such as
// arn:aws:kinesis:eu-west-1:123456789012:stream/my-stream
func ParseStreamARN(streamARN string) (*models.StreamIdentity, error) {
	parsed, err := arn.Parse(streamARN)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse stream ARN '%s'", streamARN)
	}

	streamType, streamName, ok := strings.Cut(parsed.Resource, "/")
	if !ok || streamName == "" {
		return nil, errors.Errorf("Failed to parse stream ARN '%s': resource '%s' is not of the form type/name", streamARN, parsed.Resource)
	}

	return &models.StreamIdentity{
		Type:      streamType,
		Name:      streamName,
		Region:    parsed.Region,
		AccountID: parsed.AccountID,
	}, nil
}

// GetAccountIDFromARN extracts just the account ID of an ARN
func GetAccountIDFromARN(sourceARN string) (string, error) {
	parsed, err := arn.Parse(sourceARN)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to parse ARN '%s'", sourceARN)
	}
	return parsed.AccountID, nil
}
