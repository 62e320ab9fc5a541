package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedProduct struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func openTracedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedProduct{}))
	return db
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	db := openTracedDB(t)

	require.NoError(t, RegisterDBTracing(db, DefaultDBTracingConfig(), zap.NewNop()))
	assert.Nil(t, db.Callback().Query().Get("telemetry:after_query"))
}

func TestRegisterDBTracing_RecordsSpans(t *testing.T) {
	db := openTracedDB(t)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.TracerProvider = tp
	require.NoError(t, RegisterDBTracing(db, cfg, zap.NewNop()))

	ctx, span := tp.Tracer("test").Start(context.Background(), "checkout")
	require.NoError(t, db.WithContext(ctx).Create(&tracedProduct{Name: "Kaos"}).Error)
	var got []tracedProduct
	require.NoError(t, db.WithContext(ctx).Find(&got).Error)
	span.End()

	assert.Len(t, got, 1)
	assert.GreaterOrEqual(t, len(recorder.Ended()), 3, "one span per statement plus the parent")
}
