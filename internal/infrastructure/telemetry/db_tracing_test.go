package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type tracedVehicle struct {
	ID        uint   `gorm:"primaryKey"`
	RegNumber string `gorm:"size:20"`
	CreatedAt time.Time
}

func setupTracingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&tracedVehicle{}))
	return db
}

// startRecordedSpan creates a recording span backed by an in-memory recorder.
func startRecordedSpan(t *testing.T) (context.Context, *tracetest.SpanRecorder, func()) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	ctx, span := tp.Tracer("test").Start(context.Background(), "db.operation")
	finish := func() {
		span.End()
		_ = tp.Shutdown(context.Background())
	}
	return ctx, sr, finish
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestDBTracingPlugin_Register_Disabled(t *testing.T) {
	db := setupTracingTestDB(t)

	cfg := DefaultDBTracingConfig()
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	require.NoError(t, plugin.Register(db))

	// Registration is a no-op, queries still work
	require.NoError(t, db.Create(&tracedVehicle{RegNumber: "MH12AB1234"}).Error)
}

func TestDBTracingPlugin_Register_Enabled(t *testing.T) {
	db := setupTracingTestDB(t)

	cfg := DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "sqlite",
	}
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	require.NoError(t, plugin.Register(db))

	require.NoError(t, db.Create(&tracedVehicle{RegNumber: "MH12AB1234"}).Error)

	var found tracedVehicle
	require.NoError(t, db.Where("reg_number = ?", "MH12AB1234").First(&found).Error)
	assert.Equal(t, "MH12AB1234", found.RegNumber)
}

func TestDBTracingPlugin_Register_WithFullSQL(t *testing.T) {
	db := setupTracingTestDB(t)

	cfg := DBTracingConfig{
		Enabled:         true,
		LogFullSQL:      true,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "sqlite",
	}
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	assert.NoError(t, plugin.Register(db))
}

func TestDBTracingPlugin_AfterCallback_Annotations(t *testing.T) {
	db := setupTracingTestDB(t)
	ctx, sr, finish := startRecordedSpan(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "sqlite",
	}, zap.NewNop())

	session := db.Session(&gorm.Session{})
	session.Statement.Context = ctx
	session.Statement.Table = "vehicles"
	session.Statement.RowsAffected = 3

	plugin.afterCallback(session)
	finish()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrMap := make(map[string]interface{})
	for _, attr := range spans[0].Attributes() {
		attrMap[string(attr.Key)] = attr.Value.AsInterface()
	}
	assert.Equal(t, "vehicles", attrMap["db.sql.table"])
	assert.Equal(t, int64(3), attrMap["db.rows_affected"])
}

func TestDBTracingPlugin_AfterCallback_SlowQuery(t *testing.T) {
	db := setupTracingTestDB(t)
	ctx, sr, finish := startRecordedSpan(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Nanosecond,
		DBSystem:        "sqlite",
	}, zap.NewNop())

	session := db.Session(&gorm.Session{})
	session.Statement.Context = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))
	session.Statement.Table = "cash_transactions"

	plugin.afterCallback(session)
	finish()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	var slowSeen bool
	for _, event := range spans[0].Events() {
		if event.Name == "slow_query_warning" {
			slowSeen = true
		}
	}
	assert.True(t, slowSeen, "expected slow_query_warning event")
}

func TestDBTracingPlugin_AfterCallback_ErrorMarking(t *testing.T) {
	db := setupTracingTestDB(t)
	ctx, sr, finish := startRecordedSpan(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "sqlite",
	}, zap.NewNop())

	session := db.Session(&gorm.Session{})
	session.Statement.Context = ctx
	session.Error = errors.New("constraint violation")

	plugin.afterCallback(session)
	finish()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestDBTracingPlugin_AfterCallback_RecordNotFoundNotAnError(t *testing.T) {
	db := setupTracingTestDB(t)
	ctx, sr, finish := startRecordedSpan(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "sqlite",
	}, zap.NewNop())

	session := db.Session(&gorm.Session{})
	session.Statement.Context = ctx
	session.Error = gorm.ErrRecordNotFound

	plugin.afterCallback(session)
	finish()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}
