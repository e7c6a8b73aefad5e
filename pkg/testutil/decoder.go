// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package testutil

import (
	"io"

	"github.com/pkg/errors"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
)

// ScriptedDecoder replays a fixed unit sequence per payload, honouring
// rangeStart the way a real decoder must.  Payloads without a script fail
// to decode, which makes it easy to stage per-record decode errors.
type ScriptedDecoder struct {
	// Units maps a payload (as string) to the unit sequence it decodes into
	Units map[string][]*decodeiface.Unit
}

// Decode returns the scripted sequence for the payload
func (d *ScriptedDecoder) Decode(payload []byte, rangeStart int64) (decodeiface.Units, error) {
	units, ok := d.Units[string(payload)]
	if !ok {
		return nil, errors.Errorf("no scripted units for payload '%s'", string(payload))
	}
	return &scriptedUnits{units: units, rangeStart: rangeStart}, nil
}

type scriptedUnits struct {
	units      []*decodeiface.Unit
	pos        int
	rangeStart int64
}

func (u *scriptedUnits) Next() (*decodeiface.Unit, error) {
	for u.pos < len(u.units) {
		unit := u.units[u.pos]
		u.pos++

		// the rangeStart contract drops fully consumed ranges but keeps
		// expansion groups ending exactly at the boundary
		if unit.EndingOffset < u.rangeStart ||
			(unit.EndingOffset == u.rangeStart && unit.ExpandedOffset == nil) {
			continue
		}
		return unit, nil
	}
	return nil, io.EOF
}

// Unit builds a plain decoded unit
func Unit(content string, start int64, end int64) *decodeiface.Unit {
	return &decodeiface.Unit{
		Content:        []byte(content),
		StartingOffset: start,
		EndingOffset:   end,
	}
}

// ExpandedUnit builds a decoded unit belonging to an expansion group
func ExpandedUnit(content string, start int64, end int64, expanded int64) *decodeiface.Unit {
	return &decodeiface.Unit{
		Content:        []byte(content),
		StartingOffset: start,
		EndingOffset:   end,
		ExpandedOffset: &expanded,
	}
}
