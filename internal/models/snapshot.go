package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// DeviceSnapshot is one state report pushed by the dryer (or returned by /status).
// Every field is expected; pointers keep a missing field distinguishable from a zero value.
type DeviceSnapshot struct {
	Temperature       *float64     `json:"temperature"`       // °C
	TargetTemperature *float64     `json:"targetTemperature"` // °C
	Humidity          *float64     `json:"humidity"`          // %
	HeaterPower       *HeaterPower `json:"heaterPower"`       // number or string, shown as received
	DryingActive      *bool        `json:"dryingActive"`
	RemainingTime     *int         `json:"remainingTime"` // seconds
}

var errSnapshotNotObject = errors.New("snapshot is not a JSON object")

// ParseSnapshot decodes a single JSON frame. Only a frame that is not a JSON
// object is an error; a field of the wrong type is left nil, same as a missing one.
func ParseSnapshot(data []byte) (DeviceSnapshot, error) {
	var s DeviceSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return DeviceSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// UnmarshalJSON decodes every field on its own so one bad value does not
// cost the others.
func (s *DeviceSnapshot) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		// null
		return errSnapshotNotObject
	}
	*s = DeviceSnapshot{
		Temperature:       decodeField[float64](fields, "temperature"),
		TargetTemperature: decodeField[float64](fields, "targetTemperature"),
		Humidity:          decodeField[float64](fields, "humidity"),
		HeaterPower:       decodeField[HeaterPower](fields, "heaterPower"),
		DryingActive:      decodeField[bool](fields, "dryingActive"),
		RemainingTime:     decodeSeconds(fields, "remainingTime"),
	}
	return nil
}

// decodeField returns nil when key is absent, null or not decodable as T.
func decodeField[T any](fields map[string]json.RawMessage, key string) *T {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// decodeSeconds accepts whole numbers written either way (125 or 125.0).
func decodeSeconds(fields map[string]json.RawMessage, key string) *int {
	f := decodeField[float64](fields, key)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	v := int(*f)
	return &v
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// HeaterPower is reported either as a number (percent) or as a free-form string.
type HeaterPower struct {
	Value   float64
	Text    string
	Numeric bool
}

// NumericPower builds a numeric HeaterPower.
func NumericPower(v float64) *HeaterPower {
	return &HeaterPower{Value: v, Numeric: true}
}

// TextPower builds a string HeaterPower.
func TextPower(s string) *HeaterPower {
	return &HeaterPower{Text: s}
}

// String renders the value the way the device sent it: numbers without forced decimals.
func (p HeaterPower) String() string {
	if p.Numeric {
		return strconv.FormatFloat(p.Value, 'f', -1, 64)
	}
	return p.Text
}

func (p *HeaterPower) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = HeaterPower{Text: s}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("heaterPower: expected number or string: %w", err)
	}
	*p = HeaterPower{Value: v, Numeric: true}
	return nil
}

func (p HeaterPower) MarshalJSON() ([]byte, error) {
	if p.Numeric {
		return json.Marshal(p.Value)
	}
	return json.Marshal(p.Text)
}
