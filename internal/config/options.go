package config

import (
	"maps"
	"strings"
)

// MissingValue is the value an option that requires a value receives when
// it was given on the command line without one.
const MissingValue = "\x00missing"

// Options is a loosely typed option table as it comes from defaults, a JSON
// document or the command line. Keys use underscores ("sudo_password").
type Options map[string]any

// NormalizeKey converts a flag-style key ("sudo-password") to option style.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// normalized returns a copy of o with every top-level key normalized.
func (o Options) normalized() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[NormalizeKey(k)] = v
	}
	return out
}

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// Merge copies every key of other into o, replacing existing values.
func (o Options) Merge(other Options) {
	maps.Copy(o, other)
}

// Get returns the value for key. A key holding nil counts as absent.
func (o Options) Get(key string) (any, bool) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether key holds a non-nil value.
func (o Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// String returns the value for key if it is a string.
func (o Options) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the value for key if it is a bool.
func (o Options) Bool(key string) (bool, bool) {
	v, ok := o.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Strings returns the value for key as a string slice. A single string is
// returned as a one-element slice; a list with non-string elements is rejected.
func (o Options) Strings(key string) ([]string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	return toStrings(v)
}

// Map returns the value for key if it is an object.
func (o Options) Map(key string) (map[string]any, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
