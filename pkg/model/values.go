package model

import (
	"fmt"
	"strconv"
)

// CloneValues deep-copies a value map so callers can hand it out without
// exposing the store's copy.
func CloneValues(src map[string]any) map[string]any {
	if src == nil {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = cloneValue(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = cloneValue(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}

// ValueString renders a bound value the way it is compared against a
// conditional rule's literal.
func ValueString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return fmt.Sprint(typed)
	}
}

// Selection converts a stored multi-select value into its option strings.
// Anything that is not a list yields an empty selection.
func Selection(value any) []string {
	switch typed := value.(type) {
	case []string:
		return append([]string(nil), typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, ValueString(item))
		}
		return out
	default:
		return []string{}
	}
}

// ToggleSelection adds or removes option from the selection held in current,
// keeping the relative order of the other entries. Turning on an option that is
// already selected leaves the selection unchanged.
func ToggleSelection(current any, option string, on bool) []any {
	selected := Selection(current)
	out := make([]any, 0, len(selected)+1)
	present := false
	for _, item := range selected {
		if item == option {
			present = true
			if !on {
				continue
			}
		}
		out = append(out, item)
	}
	if on && !present {
		out = append(out, option)
	}
	return out
}
