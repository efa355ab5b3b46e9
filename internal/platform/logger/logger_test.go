package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel_Defaults(t *testing.T) {
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, Warn, ParseLevel("WARNING"))
	assert.Equal(t, Debug, ParseLevel(" debug "))
}

func TestParseFormat_DefaultsToJSON(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("console"))
	assert.Equal(t, FormatText, ParseFormat("text"))
}

func TestLogger_JSONIncludesBaseAndFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: Debug, Format: FormatJSON, App: "petrescue", Output: buf})

	log.With(map[string]any{"request_id": "req-1"}).Warn("notify failed", map[string]any{
		"err": errors.New("boom"),
		"":    "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "petrescue", entry["app"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "boom", entry["err"])
	assert.Equal(t, "warn", entry["level"])
	assert.NotContains(t, entry, "")
}

func TestLogger_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: Error, Output: buf})

	log.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	log.Error("shown", nil)
	assert.NotZero(t, buf.Len())
}

func TestNew_SetsTimeFormatOnlyOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Output: buf}).Info("first", nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, err := time.Parse(time.RFC3339Nano, entry["time"].(string))
	require.NoError(t, err)

	prev := zerolog.TimeFieldFormat
	t.Cleanup(func() { zerolog.TimeFieldFormat = prev })

	// Un formato fijado por el proceso no se pisa con cada logger nuevo.
	zerolog.TimeFieldFormat = time.Kitchen
	New(Options{Output: &bytes.Buffer{}})
	assert.Equal(t, time.Kitchen, zerolog.TimeFieldFormat)
}
