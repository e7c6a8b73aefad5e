// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2023-present Cloudpine Ltd. All rights reserved.

package decode

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/cloudpine-devops/kinesis-forwarder/pkg/decode/decodeiface"
)

// ExpandDecoder wraps another decoder and expands units whose content is a
// JSON object carrying a list under a configured field, emitting one unit
// per list element.  Expanded units share the byte range of the original
// unit and are told apart by their expanded offset.
//
// Content that is not a JSON object, or that lacks the field, passes
// through unexpanded.
type ExpandDecoder struct {
	base  decodeiface.Decoder
	field string
}

// NewExpandDecoder creates a decoder expanding the given list field out of
// the units produced by base
func NewExpandDecoder(base decodeiface.Decoder, field string) *ExpandDecoder {
	return &ExpandDecoder{
		base:  base,
		field: field,
	}
}

// Decode returns a lazy sequence over the base decoder's units with list
// fields expanded
func (d *ExpandDecoder) Decode(payload []byte, rangeStart int64) (decodeiface.Units, error) {
	base, err := d.base.Decode(payload, rangeStart)
	if err != nil {
		return nil, err
	}
	return &expandUnits{base: base, field: d.field}, nil
}

type expandUnits struct {
	base    decodeiface.Units
	field   string
	pending []*decodeiface.Unit
}

func (u *expandUnits) Next() (*decodeiface.Unit, error) {
	for {
		if len(u.pending) > 0 {
			unit := u.pending[0]
			u.pending = u.pending[1:]
			return unit, nil
		}

		unit, err := u.base.Next()
		if err != nil {
			return nil, err
		}

		expanded, err := u.expand(unit)
		if err != nil {
			return nil, err
		}
		if expanded == nil {
			return unit, nil
		}
		u.pending = expanded
	}
}

// expand returns the unit's list elements as standalone units, or nil when
// the unit does not carry the configured field
func (u *expandUnits) expand(unit *decodeiface.Unit) ([]*decodeiface.Unit, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(unit.Content, &obj); err != nil {
		return nil, nil
	}

	raw, ok := obj[u.field]
	if !ok {
		return nil, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, errors.Wrapf(err, "Failed to expand field '%s' as a list", u.field)
	}

	units := make([]*decodeiface.Unit, len(elements))
	for i, element := range elements {
		offset := int64(i)
		units[i] = &decodeiface.Unit{
			Content:        element,
			StartingOffset: unit.StartingOffset,
			EndingOffset:   unit.EndingOffset,
			ExpandedOffset: &offset,
		}
	}
	return units, nil
}
