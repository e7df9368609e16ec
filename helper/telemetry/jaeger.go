package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/dogechain-lab/objectchain/helper/common"
	"github.com/dogechain-lab/objectchain/versioning"
)

func hostname() string {
	if name, err := os.Hostname(); err == nil {
		return name
	}

	if ip, err := common.GetOutboundIP(); err == nil {
		return ip.String()
	}

	return "unknown"
}

func newJaegerProvider(url string, service string) (*tracesdk.TracerProvider, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(url)))
	if err != nil {
		return nil, err
	}

	return tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
			attribute.String("hostname", hostname()),
			attribute.String("version", versioning.Version),
			attribute.String("commit", common.Substr(versioning.Commit, 0, 8)),
			attribute.String("buildTime", versioning.BuildTime),
		)),
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
	), nil
}

type otelSpan struct {
	span trace.Span
	ctx  context.Context
}

func (s *otelSpan) SetAttribute(key string, value interface{}) {
	s.span.SetAttributes(attribute.KeyValue{
		Key:   attribute.Key(key),
		Value: attributeValue(value),
	})
}

func (s *otelSpan) SetAttributes(attributes map[string]interface{}) {
	s.span.SetAttributes(keyValues(attributes)...)
}

func (s *otelSpan) Fail(err error) {
	if err == nil {
		return
	}

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *otelSpan) End() {
	s.span.End()
}

func (s *otelSpan) Context() context.Context {
	return s.ctx
}

type otelTracer struct {
	tracer trace.Tracer
}

func (t *otelTracer) StartWithContext(ctx context.Context, name string) Span {
	childCtx, span := t.tracer.Start(ctx, name)

	return &otelSpan{span: span, ctx: childCtx}
}

type jaegerTracerProvider struct {
	provider *tracesdk.TracerProvider
}

func (p *jaegerTracerProvider) NewTracer(namespace string) Tracer {
	return &otelTracer{tracer: p.provider.Tracer(namespace)}
}

func (p *jaegerTracerProvider) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}

// NewTracerProvider exports spans of service to the jaeger collector at url
// and registers the provider globally
func NewTracerProvider(url string, service string) (TracerProvider, error) {
	tp, err := newJaegerProvider(url, service)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)

	return &jaegerTracerProvider{provider: tp}, nil
}
