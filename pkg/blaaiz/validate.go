package blaaiz

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// requireFields checks fields in order and fails on the first missing one
func requireFields(data Params, fields ...string) error {
	for _, field := range fields {
		if isEmpty(data[field]) {
			return validationError(fmt.Sprintf("%s is required", field))
		}
	}
	return nil
}

// requireID guards path parameters
func requireID(id, message string) error {
	if id == "" {
		return validationError(message)
	}
	return nil
}

// isEmpty treats nil, zero values and empty collections as absent
func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case bool:
		return !t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return rv.IsZero()
}

// stringValue reads a scalar field as a string
func stringValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// lookup walks nested JSON objects by key
func lookup(v interface{}, keys ...string) (interface{}, bool) {
	current := v
	for _, key := range keys {
		var m map[string]interface{}
		switch t := current.(type) {
		case map[string]interface{}:
			m = t
		case Params:
			m = t
		default:
			return nil, false
		}
		next, ok := m[key]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
