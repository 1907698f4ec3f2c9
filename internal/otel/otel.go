package otel

import (
	"context"
	"sync"

	eventbus "github.com/hanpama/deepsearch/internal/eventbus"
	events "github.com/hanpama/deepsearch/internal/events"
	reqid "github.com/hanpama/deepsearch/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe := newSubscriber(otel.Tracer("deepsearch")).register()
	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

type subscriber struct {
	tracer      trace.Tracer
	searchSpans sync.Map // rid -> trace.Span
}

func newSubscriber(tracer trace.Tracer) *subscriber {
	return &subscriber{tracer: tracer}
}

// register subscribes to search events on the global bus and returns a
// function removing those subscriptions.
func (s *subscriber) register() func() {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.SearchStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "deepsearch.search")
			span.SetAttributes(
				attribute.String("search.item", e.Item),
				attribute.Int("search.verbosity", e.Verbosity),
				attribute.Int("search.exclude_paths", e.ExcludePaths),
				attribute.Int("search.exclude_types", e.ExcludeTypes),
			)
			s.searchSpans.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.UnorderedCollection) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.searchSpans.Load(rid)
			if !ok {
				return
			}
			v.(trace.Span).AddEvent("unordered collection", trace.WithAttributes(
				attribute.String("search.path", e.Path),
			))
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.SearchFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.searchSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(
				attribute.Int("search.matched_paths", e.MatchedPaths),
				attribute.Int("search.matched_values", e.MatchedValues),
				attribute.Int("search.unprocessed", e.Unprocessed),
				attribute.Int("search.advisories", e.Advisories),
				attribute.Int64("search.duration_us", e.Duration.Microseconds()),
			)
			span.End()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
