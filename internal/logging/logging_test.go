package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{"debug text", "debug", "text", logrus.DebugLevel},
		{"info json", "info", "json", logrus.InfoLevel},
		{"warn text", "warn", "text", logrus.WarnLevel},
		{"invalid level falls back to info", "loud", "text", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format, &bytes.Buffer{})

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				assert.IsType(t, &logrus.JSONFormatter{}, adapter.logger.Formatter)
			} else {
				assert.IsType(t, &logrus.TextFormatter{}, adapter.logger.Formatter)
			}
		})
	}
}

func TestLogrusAdapter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapter("info", "json", &buf)

	logger.WithField(FieldInputFile, "members.xlsx").
		WithError(errors.New("boom")).
		Info("file processed", F(FieldRows, 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "file processed", entry["msg"])
	assert.Equal(t, "members.xlsx", entry[FieldInputFile])
	assert.Equal(t, float64(3), entry[FieldRows])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogrusAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapter("warn", "text", &buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
}

func TestMockLogger(t *testing.T) {
	mock := NewMockLogger()
	errBoom := errors.New("boom")

	derived := mock.WithField(FieldInputFile, "a.xlsx").WithError(errBoom)
	derived.Error("failed", F(FieldOperation, "read"))
	mock.Info("done")

	entries := mock.Entries()
	require.Len(t, entries, 2, "derived loggers record into the parent")

	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, errBoom, entries[0].Error)
	v, ok := entries[0].Field(FieldInputFile)
	assert.True(t, ok)
	assert.Equal(t, "a.xlsx", v)
	v, _ = entries[0].Field(FieldOperation)
	assert.Equal(t, "read", v)

	assert.True(t, mock.HasEntry("INFO", "done"))
	assert.Len(t, mock.EntriesByLevel("ERROR"), 1)
	_, ok = entries[1].Field(FieldInputFile)
	assert.False(t, ok, "parent fields are unaffected")
}

func TestMockLogger_Concurrent(t *testing.T) {
	mock := NewMockLogger()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mock.WithField(FieldCount, i).Debug("tick")
		}()
	}
	wg.Wait()

	assert.Len(t, mock.EntriesByLevel("DEBUG"), 50)
}
