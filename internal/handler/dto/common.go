// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

var (
	errNotNumeric = errors.New("value is not a number")
	errOutOfRange = errors.New("value is out of range")
)

// Float is a float64 that decodes from a JSON number or a numeric string.
// Map widgets send coordinates either way.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	raw, err := numericText(data)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errNotNumeric
	}
	*f = Float(v)
	return nil
}

// Int is an int64 that decodes from a JSON number or a numeric string.
// Browser forms post IDs and scores as strings. Values must fit the
// database's 32-bit INTEGER columns.
type Int int64

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	raw, err := numericText(data)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return errOutOfRange
		}
		return errNotNumeric
	}
	*i = Int(v)
	return nil
}

// Text is a string that also accepts a JSON number, kept verbatim.
// Geocoders hand out external place IDs as either.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errNotNumeric
	}
	*t = Text(n.String())
	return nil
}

// numericText returns the digits of a JSON number or numeric string.
func numericText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", errNotNumeric
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", errNotNumeric
	}
	return n.String(), nil
}

// FloatPtr converts an optional Float.
func FloatPtr(f *Float) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// IntPtr converts an optional Int.
func IntPtr(i *Int) *int64 {
	if i == nil {
		return nil
	}
	v := int64(*i)
	return &v
}

// TextPtr converts an optional Text.
func TextPtr(t *Text) *string {
	if t == nil {
		return nil
	}
	v := string(*t)
	return &v
}
