package v1

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/duynhne/booking-service/internal/core/domain"
	"github.com/duynhne/booking-service/internal/core/repository"
)

func TestTeacherService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewTeacherService(repository.NewMemoryStore().Teachers)

	created, err := svc.Create(ctx, domain.TeacherRequest{FirstName: "Margot", LastName: "Delahaye"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Margot", got.FirstName)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrTeacherNotFound))
}

func TestTeacherService_DeleteMissing(t *testing.T) {
	svc := NewTeacherService(repository.NewMemoryStore().Teachers)

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestTeacherService_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	ctx := context.Background()
	svc := NewTeacherService(repository.NewMemoryStore().Teachers)

	created, err := svc.Create(ctx, domain.TeacherRequest{FirstName: "Margot", LastName: "Delahaye"})
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Subset(t, names, []string{"teacher.create", "teacher.get", "teacher.delete"})
}
