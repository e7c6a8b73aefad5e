// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package decode

import (
	"bytes"
	"io"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
)

// LineDecoder splits a payload into newline-delimited events, tracking the
// byte range each event was read from.  A trailing fragment without a
// terminating newline is still one event.
type LineDecoder struct{}

// NewLineDecoder creates a decoder for newline-delimited payloads
func NewLineDecoder() *LineDecoder {
	return &LineDecoder{}
}

// Decode returns a lazy sequence over the payload's lines, skipping any
// line ending at or before rangeStart
func (d *LineDecoder) Decode(payload []byte, rangeStart int64) (decodeiface.Units, error) {
	return &lineUnits{payload: payload, rangeStart: rangeStart}, nil
}

type lineUnits struct {
	payload    []byte
	pos        int64
	rangeStart int64
}

func (u *lineUnits) Next() (*decodeiface.Unit, error) {
	for u.pos < int64(len(u.payload)) {
		start := u.pos

		var end int64
		var content []byte
		if idx := bytes.IndexByte(u.payload[u.pos:], '\n'); idx < 0 {
			end = int64(len(u.payload))
			content = u.payload[start:end]
		} else {
			end = u.pos + int64(idx) + 1
			content = u.payload[start : end-1]
		}
		u.pos = end

		if end <= u.rangeStart {
			continue
		}

		content = bytes.TrimSuffix(content, []byte("\r"))
		return &decodeiface.Unit{
			Content:        content,
			StartingOffset: start,
			EndingOffset:   end,
		}, nil
	}
	return nil, io.EOF
}
