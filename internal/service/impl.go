package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vbncursed/vkr/wallet-service/internal/result"
)

const tracerName = "github.com/vbncursed/vkr/wallet-service/internal/service"

// NopRecorder — Recorder без метрик
type NopRecorder struct{}

func (NopRecorder) ObserveOperation(string, string, string, time.Duration) {}

// op — одна инструментированная операция: span и метрика
type op struct {
	span     trace.Span
	rec      Recorder
	platform string
	name     string
	started  time.Time
}

func (s *Service) begin(ctx context.Context, platform, name string) (context.Context, *op) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "wallet."+name,
		trace.WithAttributes(
			attribute.String("wallet.platform", platform),
			attribute.String("wallet.operation", name),
		),
	)
	return ctx, &op{span: span, rec: s.rec, platform: platform, name: name, started: time.Now()}
}

func (o *op) end(err error) {
	outcome := result.OutcomeOf(err)
	o.span.SetAttributes(attribute.String("wallet.outcome", string(outcome)))
	if err != nil {
		o.span.SetStatus(codes.Error, err.Error())
	}
	o.span.End()
	o.rec.ObserveOperation(o.platform, o.name, string(outcome), time.Since(o.started))
}
