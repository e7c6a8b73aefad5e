// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package target

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// StdoutTarget holds a new client for writing documents to stdout
type StdoutTarget struct {
	output io.Writer

	log *log.Entry
}

// NewStdoutTarget creates a new client for writing documents to stdout
func NewStdoutTarget() (*StdoutTarget, error) {
	return NewStdoutTargetWithInterfaces(os.Stdout)
}

// NewStdoutTargetWithInterfaces allows you to provide a writer directly to
// allow for mocking
func NewStdoutTargetWithInterfaces(writer io.Writer) (*StdoutTarget, error) {
	return &StdoutTarget{
		output: writer,
		log:    log.WithFields(log.Fields{"target": "stdout"}),
	}, nil
}

// Write pushes all documents to the required target
func (st *StdoutTarget) Write(documents []*models.Document) (*models.TargetWriteResult, error) {
	st.log.Debugf("Writing %d documents to stdout ...", len(documents))

	var sent []*models.Document
	var failed []*models.Document

	for _, doc := range documents {
		b, err := doc.ToJSON()
		if err != nil {
			st.log.WithFields(log.Fields{"error": err}).Error(err)
			failed = append(failed, doc)
			continue
		}

		fmt.Fprintf(st.output, "%s\n", b)
		sent = append(sent, doc)
	}

	return models.NewTargetWriteResult(sent, failed), nil
}

// Open does not do anything for this target
func (st *StdoutTarget) Open() {}

// Close does not do anything for this target
func (st *StdoutTarget) Close() {}

// GetID returns the identifier for this target
func (st *StdoutTarget) GetID() string {
	return "stdout"
}
