package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Widget configurations arrive either as Go literals or decoded JSON/YAML,
// so the helpers below accept both shapes.

func seriesFromConfig(v any) []ChartSeries {
	var entries []map[string]any
	switch val := v.(type) {
	case []map[string]any:
		entries = val
	case []any:
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				entries = append(entries, m)
			}
		}
	}
	out := make([]ChartSeries, 0, len(entries))
	for _, entry := range entries {
		points := pointsFromConfig(entry["data"])
		if len(points) == 0 {
			continue
		}
		out = append(out, ChartSeries{Name: stringValue(entry["name"], "Series"), Points: points})
	}
	return out
}

func pointsFromConfig(v any) []ChartPoint {
	var items []any
	switch val := v.(type) {
	case []float64:
		return mapSlice(val, func(f float64) ChartPoint { return ChartPoint{Value: f} })
	case []int:
		return mapSlice(val, func(i int) ChartPoint { return ChartPoint{Value: float64(i)} })
	case []map[string]any:
		return mapSlice(val, labelledPoint)
	case []any:
		items = val
	default:
		return nil
	}
	points := make([]ChartPoint, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			points = append(points, labelledPoint(m))
			continue
		}
		if f, ok := numberValue(item); ok {
			points = append(points, ChartPoint{Value: f})
		}
	}
	return points
}

func labelledPoint(m map[string]any) ChartPoint {
	return ChartPoint{Label: stringValue(m["name"], ""), Value: float64Value(m["value"])}
}

// axisFromSeries labels the x axis from the longest series.
func axisFromSeries(series []ChartSeries) []string {
	var longest []ChartPoint
	for _, s := range series {
		if len(s.Points) > len(longest) {
			longest = s.Points
		}
	}
	if longest == nil {
		return nil
	}
	labels := make([]string, len(longest))
	for i, pt := range longest {
		labels[i] = pt.Label
		if labels[i] == "" {
			labels[i] = fmt.Sprintf("Item %d", i+1)
		}
	}
	return labels
}

func mapSlice[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func numberValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func float64Value(v any) float64 {
	f, _ := numberValue(v)
	return f
}

func intValue(v any, fallback int) int {
	if f, ok := numberValue(v); ok {
		return int(f)
	}
	return fallback
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	case int:
		return val != 0
	case int64:
		return val != 0
	}
	return false
}
