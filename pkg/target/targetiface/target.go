// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package targetiface

import (
	"github.com/cloudpine-devops/kinesis-forwarder/pkg/models"
)

// Target describes the interface for the downstream sink documents are
// forwarded to.  Delivery and retry behaviour belong to the
// implementation, not the callers.
type Target interface {
	Write(documents []*models.Document) (*models.TargetWriteResult, error)
	Open()
	Close()
	GetID() string
}
