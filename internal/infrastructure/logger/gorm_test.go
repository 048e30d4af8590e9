package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		elapsed time.Duration
		err     error
		wantMsg string
	}{
		{"error logged", gormlogger.Warn, 0, errors.New("syntax"), "SQL error"},
		{"record not found ignored", gormlogger.Warn, 0, gorm.ErrRecordNotFound, ""},
		{"slow query", gormlogger.Warn, time.Second, nil, "slow SQL"},
		{"fast query below info", gormlogger.Warn, 0, nil, ""},
		{"fast query at info", gormlogger.Info, 0, nil, "SQL"},
		{"silent", gormlogger.Silent, time.Second, errors.New("x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := observed()
			gl := NewGormLogger(log, tt.level, 200*time.Millisecond)

			ctx := context.WithValue(context.Background(), requestIDKey, "req-7")
			gl.Trace(ctx, time.Now().Add(-tt.elapsed), sqlFn, tt.err)

			if tt.wantMsg == "" {
				assert.Equal(t, 0, logs.Len())
				return
			}
			entries := logs.All()
			if assert.Len(t, entries, 1) {
				assert.Equal(t, tt.wantMsg, entries[0].Message)
				assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
			}
		})
	}
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	log, _ := observed()
	gl := NewGormLogger(log, gormlogger.Warn, 0)
	info := gl.LogMode(gormlogger.Info).(*GormLogger)

	assert.Equal(t, gormlogger.Info, info.level)
	assert.Equal(t, gormlogger.Warn, gl.level)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
