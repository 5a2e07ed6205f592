package jtree

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// ValueDecoder is the interface implemented by types that can decode a Value into themselves
type ValueDecoder interface {
	DecodeJSON(v *Value) error
}

// Interface returns the Go representation of the value: nil, bool, float64, string, []any or map[string]any
func (v *Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str.String()
	case KindArray:
		out := make([]any, 0, v.arr.Len())
		v.arr.Each(func(_ int, elem *Value) bool {
			out = append(out, elem.Interface())
			return true
		})
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		v.obj.Each(func(key string, elem *Value) bool {
			out[key] = elem.Interface()
			return true
		})
		return out
	default:
		return nil
	}
}

// fromInterface builds a heap backed Value from the output of Interface
func fromInterface(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(x), nil
	case float64:
		return NumberValue(x), nil
	case string:
		s, err := NewStringFrom(Heap, x)
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case []any:
		arr, err := NewArray(Heap)
		if err != nil {
			return Value{}, err
		}
		for _, elem := range x {
			v, err := fromInterface(elem)
			if err == nil {
				err = arr.Append(v)
			}
			if err != nil {
				arr.Destroy()
				return Value{}, err
			}
		}
		return ArrayValue(arr), nil
	case map[string]any:
		obj, err := NewObject(Heap)
		if err != nil {
			return Value{}, err
		}
		for key, elem := range x {
			v, err := fromInterface(elem)
			if err == nil {
				err = obj.Put(key, v)
			}
			if err != nil {
				obj.Destroy()
				return Value{}, err
			}
		}
		return ObjectValue(obj), nil
	default:
		return Value{}, fmt.Errorf("jtree: unsupported type %T", x)
	}
}

var (
	bytesType        = reflect.TypeOf([]byte(nil))
	valueDecoderType = reflect.TypeOf((*ValueDecoder)(nil)).Elem()
)

// valueDecoderHook hands nested values over to types implementing ValueDecoder
func valueDecoderHook(from, to reflect.Type, data any) (any, error) {
	if !reflect.PointerTo(to).Implements(valueDecoderType) {
		return data, nil
	}
	v, err := fromInterface(data)
	if err != nil {
		return nil, err
	}
	defer v.Dispose()
	out := reflect.New(to)
	if err := out.Interface().(ValueDecoder).DecodeJSON(&v); err != nil {
		return nil, err
	}
	return out.Elem().Interface(), nil
}

func bytesHook(enc Encoding) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != bytesType {
			return data, nil
		}
		s := data.(string)
		if enc == nil {
			return []byte(s), nil
		}
		return enc.DecodeString(s)
	}
}

// Decode stores the value into the Go value pointed to by out. If out or any nested destination implements
// ValueDecoder its DecodeJSON method is called instead. Struct fields are matched by the "json" tag unless
// OpTagName is given
func (v *Value) Decode(out any, op ...Option) error {
	if d, ok := out.(ValueDecoder); ok {
		return d.DecodeJSON(v)
	}
	opt := newOptions(op)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(valueDecoderHook),
			bytesHook(opt.enc),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused:      opt.noUnknown,
		WeaklyTypedInput: opt.str,
		TagName:          opt.tag,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("jtree: %w", err)
	}
	if err := dec.Decode(v.Interface()); err != nil {
		return fmt.Errorf("jtree: %w", err)
	}
	return nil
}
