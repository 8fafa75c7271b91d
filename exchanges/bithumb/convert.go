package bithumb

import (
	"strconv"

	"bithumbbot/ds"
)

// The exchange sends numbers as strings; numeric JSON is accepted too.
func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	case float64:
		return x, true
	}
	return 0, false
}

func floatField(op string, rec ds.Record, key string) (float64, error) {
	v, ok := rec[key]
	if !ok {
		return 0, decodeErr(op, "missing field %q", key)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, decodeErr(op, "field %q is not a number: %v", key, v)
	}
	return f, nil
}

func dataObject(op string, resp ds.Record) (ds.Record, error) {
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		return nil, decodeErr(op, "data is not an object")
	}
	return data, nil
}

// firstRecord unwraps data arrays the exchange uses even for single results.
func firstRecord(op string, resp ds.Record) (ds.Record, error) {
	switch data := resp["data"].(type) {
	case []interface{}:
		if len(data) == 0 {
			return nil, decodeErr(op, "data is empty")
		}
		rec, ok := data[0].(map[string]interface{})
		if !ok {
			return nil, decodeErr(op, "data[0] is not an object")
		}
		return rec, nil
	case map[string]interface{}:
		return data, nil
	}
	return nil, decodeErr(op, "data is neither a list nor an object")
}
