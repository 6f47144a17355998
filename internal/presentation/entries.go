// Package presentation holds helpers shared by the output renderers.
package presentation

import (
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/aretw0/randomizer"
)

// Entry is one key of a record.
type Entry struct {
	Key   string
	Value any
}

// Entries lists the keys of a record in output order. Objects keep their
// template order; plain maps (e.g. fixtures reloaded from a store) are
// sorted by key.
func Entries(v any) ([]Entry, bool) {
	switch t := v.(type) {
	case randomizer.Object:
		out := make([]Entry, 0, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, Entry{Key: pair.Key, Value: pair.Value})
		}
		return out, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make([]Entry, len(keys))
		for i, k := range keys {
			out[i] = Entry{Key: k, Value: t[k]}
		}
		return out, true
	}
	return nil, false
}

// List returns v as a slice when it is one. Elements are not converted.
func List(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil, string, []byte:
		return nil, false
	case []any:
		return t, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Scalar formats a leaf value for display.
func Scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case float64:
		return fmt.Sprintf("%g", t)
	}
	return fmt.Sprint(v)
}
