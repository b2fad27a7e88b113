package logger

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaseed/pkg/config"
)

func newBufferLogger(buf *bytes.Buffer) *zerologLogger {
	return &zerologLogger{
		zl: zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger(),
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{
			name:    "valid config with info level",
			cfg:     &config.LoggingConfig{Level: "info"},
			wantErr: false,
		},
		{
			name:    "valid config with debug level",
			cfg:     &config.LoggingConfig{Level: "debug"},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			cfg:     &config.LoggingConfig{Level: "invalid"},
			wantErr: true,
		},
		{
			name:    "config with file output",
			cfg:     &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "seed.log")},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"invalid", zerolog.InfoLevel, true},
		{"", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseLogLevel() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if level != tt.expected {
				t.Errorf("parseLogLevel() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&config.LoggingConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	log.Info("Downloaded: uploads/profile-pictures/travel_image_01.jpg")
	log.Debug("hidden at info level")

	output := buf.String()
	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "| Downloaded: uploads/profile-pictures/travel_image_01.jpg")
	assert.NotContains(t, output, "hidden at info level")
	// A bytes.Buffer is never a terminal, so no escape codes
	assert.NotContains(t, output, "\033[")
}

func TestFileOutput(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "seed.log")

	log, err := NewWithWriter(&config.LoggingConfig{Level: "info", File: logFile}, &buf)
	require.NoError(t, err)

	log.WithField("category", "travel").Info("batch started")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"travel"`)
	assert.Contains(t, string(data), `"message":"batch started"`)
	assert.Contains(t, buf.String(), "batch started")
}

func TestCloseReleasesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "seed.log")

	log, err := NewWithWriter(&config.LoggingConfig{Level: "info", File: logFile}, &bytes.Buffer{})
	require.NoError(t, err)
	closer, ok := log.(io.Closer)
	require.True(t, ok)

	log.Info("before close")
	require.NoError(t, closer.Close())
	assert.NoError(t, closer.Close(), "closing twice is a no-op")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
}

func TestInitializeClosesPreviousLogFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")
	t.Cleanup(func() { _ = Close() })

	require.NoError(t, Initialize(&config.LoggingConfig{Level: "info", File: first}))
	previous, ok := std.(*zerologLogger)
	require.True(t, ok)
	require.NotNil(t, previous.file)

	require.NoError(t, Initialize(&config.LoggingConfig{Level: "info", File: second}))
	assert.Nil(t, previous.file)

	Info("into second")
	require.NoError(t, Close())
	assert.Nil(t, std)
	assert.NoError(t, Close())
	assert.NotNil(t, GetLogger())

	firstData, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.NotContains(t, string(firstData), "into second")

	secondData, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(secondData), "into second")
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	cases := map[string]func(string){
		"debug message": logger.Debug,
		"info message":  logger.Info,
		"warn message":  logger.Warn,
		"error message": logger.Error,
	}

	for msg, logFn := range cases {
		buf.Reset()
		logFn(msg)
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.
		WithField("url", "https://picsum.photos/800/600?random=1001").
		WithFields(map[string]interface{}{
			"index":   1,
			"success": true,
			"delay":   500 * time.Millisecond,
		}).
		Info("chained fields")

	output := buf.String()
	assert.Contains(t, output, "chained fields")
	assert.Contains(t, output, `"url":"https://picsum.photos/800/600?random=1001"`)
	assert.Contains(t, output, `"index":1`)
	assert.Contains(t, output, `"success":true`)
}

func TestWithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	_ = logger.WithField("leak", "no")
	logger.Info("plain")

	assert.NotContains(t, buf.String(), "leak")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}

	logger.WithError(errors.New("connection refused")).Error("error occurred")

	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "connection refused")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.InfoWithFields("batch finished", map[string]interface{}{
		"category":   "profile",
		"downloaded": 99,
		"failed":     1,
	})

	output := buf.String()
	assert.Contains(t, output, `"category":"profile"`)
	assert.Contains(t, output, `"downloaded":99`)
	assert.Contains(t, output, `"failed":1`)
}

func TestGlobalLogger(t *testing.T) {
	require.NoError(t, Initialize(&config.LoggingConfig{Level: "debug"}))
	require.NotNil(t, GetLogger())

	// Convenience functions must not panic
	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
	WithField("key", "value").Info("with field")
	WithFields(map[string]interface{}{"k1": "v1"}).Info("with fields")
	WithError(errors.New("boom")).Error("with error")
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	log.WithField("a", 1).WithError(errors.New("x")).Info("ignored")
	assert.Nil(t, log.GetZerolog())
}

func TestTestLoggerCapture(t *testing.T) {
	log := NewTestLogger()

	log.WithField("url", "u").WithError(errors.New("timeout")).Error("Failed to download u: timeout")
	log.InfoWithFields("Downloaded: p", map[string]interface{}{"bytes": 10})

	messages := log.GetMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "ERROR", messages[0].Level)
	assert.Equal(t, "u", messages[0].Fields["url"])
	assert.EqualError(t, messages[0].Error, "timeout")
	assert.Equal(t, 10, messages[1].Fields["bytes"])
	assert.True(t, log.HasError())
	assert.True(t, log.HasMessage("Downloaded: p"))
	assert.Contains(t, log.String(), "[INFO] Downloaded: p")

	log.Clear()
	assert.Empty(t, log.GetMessages())
}
