package mcp

import (
	"fmt"
	"math"
)

// Arguments arrive as decoded JSON: numbers are float64, arrays []interface{}.

func stringArg(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", name, v)
	}
	return s, nil
}

func optionalStringArg(args map[string]interface{}, name string) (string, error) {
	if v, ok := args[name]; !ok || v == nil {
		return "", nil
	}
	return stringArg(args, name)
}

func optionalBoolArg(args map[string]interface{}, name string) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %q must be a boolean, got %T", name, v)
	}
	return b, nil
}

func numberArg(args map[string]interface{}, name string) (float64, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required argument %q", name)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q must be a number, got %T", name, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("argument %q must be finite", name)
	}
	return f, nil
}

// integerArg reads a whole number within [lo, hi].
func integerArg(args map[string]interface{}, name string, lo, hi int64) (int64, error) {
	f, err := numberArg(args, name)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("argument %q must be an integer, got %v", name, f)
	}
	if f < float64(lo) || f > float64(hi) {
		return 0, fmt.Errorf("argument %q must be in [%d, %d], got %v", name, lo, hi, f)
	}
	return int64(f), nil
}

func optionalIntegerArg(args map[string]interface{}, name string, lo, hi, def int64) (int64, error) {
	if v, ok := args[name]; !ok || v == nil {
		return def, nil
	}
	return integerArg(args, name, lo, hi)
}

func numberListArg(args map[string]interface{}, name string) ([]float64, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing required argument %q", name)
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array, got %T", name, v)
	}
	out := make([]float64, len(raw))
	for i, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("argument %q[%d] must be a number, got %T", name, i, item)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("argument %q[%d] must be finite", name, i)
		}
		out[i] = f
	}
	return out, nil
}
