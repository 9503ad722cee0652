package form

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// TagName is the struct tag read by the encoder.
const TagName = "form"

// Appender lets a type control its own encoding.
type Appender interface {
	AppendForm(values *Values, key string)
}

// Encode walks params (a struct or pointer to struct) and returns its form
// encoding. Nil params encode to an empty Values.
//
// Rules: fields tagged `form:"-"` and untagged exported fields are skipped,
// except untagged embedded structs, which are flattened. Non-pointer zero
// values are omitted; pointers are encoded whenever non-nil, so a pointer to
// "" sends an empty string. Slices become key[0], key[1]...; maps become
// key[k] in sorted key order; nested structs become key[field].
func Encode(params interface{}) *Values {
	values := NewValues()
	AppendTo(values, params)

	return values
}

// AppendTo encodes params into an existing Values.
func AppendTo(values *Values, params interface{}) {
	if params == nil {
		return
	}

	val := reflect.ValueOf(params)
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return
		}

		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return
	}

	appendStruct(values, "", val)
}

func appendStruct(values *Values, prefix string, val reflect.Value) {
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, hasTag := field.Tag.Lookup(TagName)
		name := strings.Split(tag, ",")[0]

		if name == "-" {
			continue
		}

		fieldVal := val.Field(i)

		if !hasTag {
			if field.Anonymous {
				embedded := fieldVal
				if embedded.Kind() == reflect.Ptr {
					if embedded.IsNil() {
						continue
					}

					embedded = embedded.Elem()
				}

				if embedded.Kind() == reflect.Struct {
					appendStruct(values, prefix, embedded)
				}
			}

			continue
		}

		appendValue(values, joinKey(prefix, name), fieldVal, false)
	}
}

func appendValue(values *Values, key string, val reflect.Value, explicit bool) {
	if val.CanInterface() {
		if appender, ok := val.Interface().(Appender); ok {
			if val.Kind() == reflect.Ptr && val.IsNil() {
				return
			}

			appender.AppendForm(values, key)

			return
		}
	}

	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return
		}

		appendValue(values, key, val.Elem(), true)
	case reflect.String:
		if explicit || val.String() != "" {
			values.Add(key, val.String())
		}
	case reflect.Bool:
		if explicit || val.Bool() {
			values.Add(key, strconv.FormatBool(val.Bool()))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if explicit || val.Int() != 0 {
			values.Add(key, strconv.FormatInt(val.Int(), 10))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if explicit || val.Uint() != 0 {
			values.Add(key, strconv.FormatUint(val.Uint(), 10))
		}
	case reflect.Float32, reflect.Float64:
		if explicit || val.Float() != 0 {
			values.Add(key, strconv.FormatFloat(val.Float(), 'f', -1, 64))
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			appendValue(values, key+"["+strconv.Itoa(i)+"]", val.Index(i), true)
		}
	case reflect.Map:
		appendMap(values, key, val)
	case reflect.Struct:
		appendStruct(values, key, val)
	default:
	}
}

func appendMap(values *Values, key string, val reflect.Value) {
	if val.IsNil() || val.Type().Key().Kind() != reflect.String {
		return
	}

	keys := make([]string, 0, val.Len())
	for _, mapKey := range val.MapKeys() {
		keys = append(keys, mapKey.String())
	}

	sort.Strings(keys)

	for _, mapKey := range keys {
		entry := val.MapIndex(reflect.ValueOf(mapKey).Convert(val.Type().Key()))
		appendValue(values, key+"["+mapKey+"]", entry, true)
	}
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "[" + name + "]"
}
