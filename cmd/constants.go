// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package cmd

const (
	// AppVersion is the current version of the forwarder
	AppVersion = "0.3.1"

	// AppName is the name of the application to use in logging / places that require the artifact
	AppName = "kinesis-forwarder"
)
