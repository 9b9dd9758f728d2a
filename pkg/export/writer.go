package export

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal renders a config object to the textual, indentation-based
// format the downstream runtime parses. The format is deliberately
// hand-rolled rather than delegated to a YAML encoder: the consumer
// depends on this exact quoting and indentation behavior.
//
// Rules: two spaces per nesting level; string scalars are quoted,
// numbers and booleans are bare; nested objects recurse under a
// "key:" line; array items render as "- <item>" lines, with object
// items carrying their first field on the dash line and the remaining
// fields aligned beneath it. Struct fields render in declaration
// order, map keys in sorted order.
func Marshal(v any) string {
	var sb strings.Builder
	writeObject(&sb, reflect.ValueOf(v), 0)
	return sb.String()
}

func writeObject(sb *strings.Builder, rv reflect.Value, level int) {
	rv = unwrap(rv)
	switch rv.Kind() {
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			name, omitempty := fieldName(field)
			if name == "-" {
				continue
			}
			value := rv.Field(i)
			if omitempty && value.IsZero() {
				continue
			}
			writeKeyed(sb, name, value, level)
		}
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, fmt.Sprint(k.Interface()))
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeKeyed(sb, k, rv.MapIndex(reflect.ValueOf(k)), level)
		}
	}
}

func writeKeyed(sb *strings.Builder, key string, rv reflect.Value, level int) {
	pad := strings.Repeat("  ", level)
	rv = unwrap(rv)

	switch classify(rv) {
	case kindScalar:
		fmt.Fprintf(sb, "%s%s: %s\n", pad, key, scalar(rv))
	case kindObject:
		fmt.Fprintf(sb, "%s%s:\n", pad, key)
		writeObject(sb, rv, level+1)
	case kindArray:
		if rv.Len() == 0 {
			fmt.Fprintf(sb, "%s%s: []\n", pad, key)
			return
		}
		fmt.Fprintf(sb, "%s%s:\n", pad, key)
		itemPad := strings.Repeat("  ", level+1)
		for i := 0; i < rv.Len(); i++ {
			item := unwrap(rv.Index(i))
			if classify(item) == kindScalar {
				fmt.Fprintf(sb, "%s- %s\n", itemPad, scalar(item))
				continue
			}
			var inner strings.Builder
			writeObject(&inner, item, 0)
			for j, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
				if j == 0 {
					fmt.Fprintf(sb, "%s- %s\n", itemPad, line)
				} else {
					fmt.Fprintf(sb, "%s  %s\n", itemPad, line)
				}
			}
		}
	}
}

type valueClass int

const (
	kindScalar valueClass = iota
	kindObject
	kindArray
)

func classify(rv reflect.Value) valueClass {
	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		return kindObject
	case reflect.Slice, reflect.Array:
		return kindArray
	default:
		return kindScalar
	}
}

func scalar(rv reflect.Value) string {
	if !rv.IsValid() {
		return "null"
	}
	switch rv.Kind() {
	case reflect.String:
		return strconv.Quote(rv.String())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	default:
		return "null"
	}
}

func unwrap(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func fieldName(field reflect.StructField) (name string, omitempty bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = field.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}
