package telemetry

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

type hexID string

func (h hexID) String() string { return "0x" + string(h) }

func TestNilTracer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := NewNilTracerProvider()
	tracer := provider.NewTracer("authority")

	span := tracer.StartWithContext(ctx, "handleOrder")
	span.SetAttribute("inputs", 2)
	span.Fail(errors.New("boom"))
	span.End()

	assert.Equal(t, ctx, span.Context())
	assert.NoError(t, provider.Shutdown(ctx))
}

func TestAttributeValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, attribute.StringValue("x"), attributeValue("x"))
	assert.Equal(t, attribute.Int64Value(7), attributeValue(uint64(7)))
	assert.Equal(t, attribute.StringValue("18446744073709551615"), attributeValue(uint64(math.MaxUint64)))
	assert.Equal(t, attribute.BoolValue(true), attributeValue(true))
	assert.Equal(t, attribute.StringValue("0x2a"), attributeValue(hexID("2a")))
	assert.Equal(t, attribute.StringValue("[1 2]"), attributeValue([]int{1, 2}))
}

func TestKeyValuesSorted(t *testing.T) {
	t.Parallel()

	kvs := keyValues(map[string]interface{}{"b": 1, "a": "x"})

	assert.Len(t, kvs, 2)
	assert.Equal(t, attribute.Key("a"), kvs[0].Key)
	assert.Equal(t, attribute.Key("b"), kvs[1].Key)
}
