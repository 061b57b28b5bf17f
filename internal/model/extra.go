package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// Extra holds the JSON members of a result node that this package does not
// model, such as profile checksums, groups or control source code. They are
// kept as raw JSON so a decoded tree encodes back with every member the
// engine wrote.
type Extra map[string]json.RawMessage

// UnmarshalJSON decodes a run and keeps its unknown members.
func (r *RunResult) UnmarshalJSON(data []byte) error {
	type plain RunResult
	extra, err := decodeWithExtra(data, (*plain)(r))
	r.Extra = extra
	return err
}

// MarshalJSON encodes a run together with its unknown members.
func (r RunResult) MarshalJSON() ([]byte, error) {
	type plain RunResult
	return encodeWithExtra(plain(r), r.Extra)
}

// UnmarshalJSON decodes a platform and keeps its unknown members.
func (p *Platform) UnmarshalJSON(data []byte) error {
	type plain Platform
	extra, err := decodeWithExtra(data, (*plain)(p))
	p.Extra = extra
	return err
}

// MarshalJSON encodes a platform together with its unknown members.
func (p Platform) MarshalJSON() ([]byte, error) {
	type plain Platform
	return encodeWithExtra(plain(p), p.Extra)
}

// UnmarshalJSON decodes run statistics and keeps their unknown members.
func (s *Statistics) UnmarshalJSON(data []byte) error {
	type plain Statistics
	extra, err := decodeWithExtra(data, (*plain)(s))
	s.Extra = extra
	return err
}

// MarshalJSON encodes run statistics together with their unknown members.
func (s Statistics) MarshalJSON() ([]byte, error) {
	type plain Statistics
	return encodeWithExtra(plain(s), s.Extra)
}

// UnmarshalJSON decodes a profile and keeps its unknown members.
func (p *ProfileResult) UnmarshalJSON(data []byte) error {
	type plain ProfileResult
	extra, err := decodeWithExtra(data, (*plain)(p))
	p.Extra = extra
	return err
}

// MarshalJSON encodes a profile together with its unknown members.
func (p ProfileResult) MarshalJSON() ([]byte, error) {
	type plain ProfileResult
	return encodeWithExtra(plain(p), p.Extra)
}

// UnmarshalJSON decodes a control and keeps its unknown members.
func (c *ControlRecord) UnmarshalJSON(data []byte) error {
	type plain ControlRecord
	extra, err := decodeWithExtra(data, (*plain)(c))
	c.Extra = extra
	return err
}

// MarshalJSON encodes a control together with its unknown members.
func (c ControlRecord) MarshalJSON() ([]byte, error) {
	type plain ControlRecord
	return encodeWithExtra(plain(c), c.Extra)
}

// UnmarshalJSON decodes a source location and keeps its unknown members.
func (l *SourceLocation) UnmarshalJSON(data []byte) error {
	type plain SourceLocation
	extra, err := decodeWithExtra(data, (*plain)(l))
	l.Extra = extra
	return err
}

// MarshalJSON encodes a source location together with its unknown members.
func (l SourceLocation) MarshalJSON() ([]byte, error) {
	type plain SourceLocation
	return encodeWithExtra(plain(l), l.Extra)
}

// UnmarshalJSON decodes an assertion result and keeps its unknown members.
func (a *AssertionResult) UnmarshalJSON(data []byte) error {
	type plain AssertionResult
	extra, err := decodeWithExtra(data, (*plain)(a))
	a.Extra = extra
	return err
}

// MarshalJSON encodes an assertion result together with its unknown members.
func (a AssertionResult) MarshalJSON() ([]byte, error) {
	type plain AssertionResult
	return encodeWithExtra(plain(a), a.Extra)
}

// decodeWithExtra decodes data into v, a pointer to a struct, and returns
// the object members that match none of its JSON field names.
func decodeWithExtra(data []byte, v any) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	known := jsonFieldNames(reflect.TypeOf(v).Elem())
	for key := range members {
		for _, name := range known {
			// encoding/json matches field names case-insensitively.
			if strings.EqualFold(key, name) {
				delete(members, key)
				break
			}
		}
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members, nil
}

// encodeWithExtra encodes v, a struct, and appends the extra members in key
// order.
func encodeWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	first := len(data) == 2
	for _, k := range keys {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		raw := extra[k]
		if len(raw) == 0 {
			raw = json.RawMessage("null")
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonFieldNames returns the JSON member names of the fields of struct type t.
func jsonFieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}
