package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{level: "debug", expected: zerolog.DebugLevel},
		{level: "info", expected: zerolog.InfoLevel},
		{level: "WARN", expected: zerolog.WarnLevel},
		{level: " error ", expected: zerolog.ErrorLevel},
		{level: "trace", expected: zerolog.InfoLevel},
		{level: "invalid", expected: zerolog.InfoLevel},
		{level: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Init(tt.level, false)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)
	defer Init("info", false)

	l := ForCart(context.Background(), "cart_guest_g1")
	l.Info().Msg("cart saved")
	l.Debug().Msg("suppressed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "cart_guest_g1", entry["cart_key"])
	assert.Equal(t, "cart saved", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestInitWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", true)
	defer Init("info", false)

	l := Logger()
	l.Info().Msg("ready")

	assert.Contains(t, buf.String(), "ready")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)
	defer Init("info", false)

	l := WithContext(map[string]interface{}{"request_id": "r-1", "lines": 2})
	l.Info().Msg("priced")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, float64(2), entry["lines"])
}

func TestForCart_UsesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)
	defer Init("info", false)

	ctx := WithRequestID(context.Background(), "req-7")
	l := ForCart(ctx, "cart_client_7")
	l.Warn().Msg("discarding corrupt cart")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "req-7", entry["request_id"])
	assert.Equal(t, "cart_client_7", entry["cart_key"])
	assert.Equal(t, ServiceName, entry["service"])
}
