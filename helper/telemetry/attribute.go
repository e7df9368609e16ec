package telemetry

import (
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"
)

func attributeValue(value interface{}) attribute.Value {
	switch v := value.(type) {
	case string:
		return attribute.StringValue(v)
	case bool:
		return attribute.BoolValue(v)
	case int:
		return attribute.IntValue(v)
	case int32:
		return attribute.Int64Value(int64(v))
	case int64:
		return attribute.Int64Value(v)
	case uint32:
		return attribute.Int64Value(int64(v))
	case uint64:
		// sequence numbers and gas amounts above the int64 range keep
		// their exact value as text
		if v > math.MaxInt64 {
			return attribute.StringValue(fmt.Sprintf("%d", v))
		}

		return attribute.Int64Value(int64(v))
	case float64:
		return attribute.Float64Value(v)
	case fmt.Stringer:
		return attribute.StringValue(v.String())
	default:
		return attribute.StringValue(fmt.Sprintf("%v", v))
	}
}

// keyValues converts the map in key order, so exported spans are stable
func keyValues(attributes map[string]interface{}) []attribute.KeyValue {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	kvs := make([]attribute.KeyValue, 0, len(keys))
	for _, key := range keys {
		kvs = append(kvs, attribute.KeyValue{
			Key:   attribute.Key(key),
			Value: attributeValue(attributes[key]),
		})
	}

	return kvs
}
