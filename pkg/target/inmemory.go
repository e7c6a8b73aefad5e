// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package target

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// InMemoryTarget buffers documents in memory; it backs tests and local
// replay runs where no downstream sink is wired up
type InMemoryTarget struct {
	documents []*models.Document
	mutex     sync.Mutex

	log *log.Entry
}

// NewInMemoryTarget creates a target buffering documents in memory
func NewInMemoryTarget() (*InMemoryTarget, error) {
	return &InMemoryTarget{
		log: log.WithFields(log.Fields{"target": "in_memory"}),
	}, nil
}

// Write appends all documents to the in-memory buffer
func (mt *InMemoryTarget) Write(documents []*models.Document) (*models.TargetWriteResult, error) {
	mt.mutex.Lock()
	defer mt.mutex.Unlock()

	mt.documents = append(mt.documents, documents...)
	return models.NewTargetWriteResult(documents, nil), nil
}

// Documents returns a copy of everything written so far
func (mt *InMemoryTarget) Documents() []*models.Document {
	mt.mutex.Lock()
	defer mt.mutex.Unlock()

	out := make([]*models.Document, len(mt.documents))
	copy(out, mt.documents)
	return out
}

// Open does not do anything for this target
func (mt *InMemoryTarget) Open() {}

// Close does not do anything for this target
func (mt *InMemoryTarget) Close() {}

// GetID returns the identifier for this target
func (mt *InMemoryTarget) GetID() string {
	return "inMemory"
}
