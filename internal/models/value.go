package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

type ValueKind string

const (
	KindNull   ValueKind = "null"
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindBool   ValueKind = "bool"
	KindTime   ValueKind = "time"
)

// Value is a single audited field value. The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	t    time.Time
}

func NullValue() Value { return Value{kind: KindNull} }
func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t.UTC()} }
func IntValue(n int) Value { return NumberValue(float64(n)) }
func OptionalString(s *string) Value {
	if s == nil {
		return NullValue()
	}
	return StringValue(*s)
}

func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return KindNull
	}
	return v.kind
}

func (v Value) IsNull() bool { return v.Kind() == KindNull }

// Equal compares kind and payload. Timestamps are equal when they denote the
// same instant, regardless of location or monotonic reading.
func (v Value) Equal(o Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	default:
		return "null"
	}
}

type taggedValue struct {
	Kind  ValueKind       `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch v.Kind() {
	case KindString:
		raw, err = json.Marshal(v.str)
	case KindNumber:
		raw, err = json.Marshal(v.num)
	case KindBool:
		raw, err = json.Marshal(v.b)
	case KindTime:
		raw, err = json.Marshal(v.t.Format(time.RFC3339Nano))
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(taggedValue{Kind: v.Kind(), Value: raw})
}

// UnmarshalJSON accepts the tagged form written by MarshalJSON as well as bare
// JSON scalars.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	if data[0] != '{' {
		return v.unmarshalScalar(data)
	}

	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	switch tv.Kind {
	case KindNull:
		*v = NullValue()
		return nil
	case KindString:
		var s string
		if err := json.Unmarshal(tv.Value, &s); err != nil {
			return fmt.Errorf("string value: %w", err)
		}
		*v = StringValue(s)
	case KindNumber:
		var n float64
		if err := json.Unmarshal(tv.Value, &n); err != nil {
			return fmt.Errorf("number value: %w", err)
		}
		*v = NumberValue(n)
	case KindBool:
		var b bool
		if err := json.Unmarshal(tv.Value, &b); err != nil {
			return fmt.Errorf("bool value: %w", err)
		}
		*v = BoolValue(b)
	case KindTime:
		var s string
		if err := json.Unmarshal(tv.Value, &s); err != nil {
			return fmt.Errorf("time value: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("time value: %w", err)
		}
		*v = TimeValue(t)
	default:
		return fmt.Errorf("unknown value kind %q", tv.Kind)
	}
	return nil
}

func (v *Value) unmarshalScalar(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = NullValue()
	case string:
		*v = StringValue(x)
	case float64:
		*v = NumberValue(x)
	case bool:
		*v = BoolValue(x)
	default:
		return fmt.Errorf("unsupported value %s", string(data))
	}
	return nil
}

// Values maps field names to values. A missing key means the field was not
// captured.
type Values map[string]Value

// Keys returns the field names in lexical order.
func (vs Values) Keys() []string {
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both maps hold the same keys with equal values.
func (vs Values) Equal(o Values) bool {
	if len(vs) != len(o) {
		return false
	}
	for k, v := range vs {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
