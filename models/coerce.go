package models

import (
	"bytes"
	"encoding/json"
)

// Clients of the original service were allowed to send array fields either as
// a list or as a single bare value. The list types below keep that contract in
// one place: a scalar is wrapped into a one-element list, null becomes an
// empty list, an array passes through unchanged.

// unmarshalCoerced decodes data into listPtr (a pointer to a slice), wrapping
// a bare value into a one-element JSON array when the payload is not one
func unmarshalCoerced(data []byte, listPtr interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '[' {
		wrapped := make([]byte, 0, len(data)+2)
		wrapped = append(wrapped, '[')
		wrapped = append(wrapped, data...)
		wrapped = append(wrapped, ']')
		data = wrapped
	}
	return json.Unmarshal(data, listPtr)
}

// StringList is used for smartTags
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var vals []string
	if err := unmarshalCoerced(data, &vals); err != nil {
		return err
	}
	*l = vals
	return nil
}

// PlantRefList is used for the embedded plant snapshots of a garden
type PlantRefList []PlantRef

func (l *PlantRefList) UnmarshalJSON(data []byte) error {
	var vals []PlantRef
	if err := unmarshalCoerced(data, &vals); err != nil {
		return err
	}
	*l = vals
	return nil
}

// RatingList is used for the embedded ratings of a garden
type RatingList []Rating

func (l *RatingList) UnmarshalJSON(data []byte) error {
	var vals []Rating
	if err := unmarshalCoerced(data, &vals); err != nil {
		return err
	}
	*l = vals
	return nil
}
