package randomizer

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Plain converts a produced value into plain Go data: Objects become
// map[string]any and slices become []any, recursively. Other values are
// returned unchanged.
func Plain(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Object:
		out := make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = Plain(pair.Value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	case string, []byte:
		return v
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return v
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = Plain(rv.Index(i).Interface())
	}
	return out
}

// Decode maps a produced value onto target, a pointer to a struct, slice or
// map. Struct fields are matched through their json tags.
func Decode(v any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := dec.Decode(Plain(v)); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
