// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package testutil

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

var (
	// AWSLocalstackEndpoint is the default endpoint localstack runs under
	AWSLocalstackEndpoint = "http://localhost:4566"

	// AWSLocalstackRegion is the default region we are using for testing
	AWSLocalstackRegion = "us-east-1"
)

// GetAWSLocalstackSession will return an AWS session ready to interact with localstack
func GetAWSLocalstackSession() *session.Session {
	return session.Must(session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials("foo", "var", ""),
		Region:      aws.String(AWSLocalstackRegion),
		Endpoint:    aws.String(AWSLocalstackEndpoint),
	}))
}

// --- SQS Testing

// GetAWSLocalstackSQSClient returns an SQS client
func GetAWSLocalstackSQSClient() sqsiface.SQSAPI {
	return sqs.New(GetAWSLocalstackSession())
}

// CreateAWSLocalstackSQSQueue creates a new SQS queue
func CreateAWSLocalstackSQSQueue(client sqsiface.SQSAPI, queueName string) (*sqs.CreateQueueOutput, error) {
	return client.CreateQueue(&sqs.CreateQueueInput{
		QueueName: aws.String(queueName),
	})
}

// DeleteAWSLocalstackSQSQueue deletes an existing SQS queue
func DeleteAWSLocalstackSQSQueue(client sqsiface.SQSAPI, queueURL *string) (*sqs.DeleteQueueOutput, error) {
	return client.DeleteQueue(&sqs.DeleteQueueInput{
		QueueUrl: queueURL,
	})
}
