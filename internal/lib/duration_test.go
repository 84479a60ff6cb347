package lib

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"30ms"`), &d))
	assert.Equal(t, 30*time.Millisecond, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, d.Duration)

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("10s")))
	assert.Equal(t, DurationFrom(10*time.Second), d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "10s", string(text))

	assert.ErrorContains(t, d.UnmarshalText([]byte("ten")), `"ten"`)
}

func TestParseSLogLevel(t *testing.T) {
	_, err := ParseSLogLevel("warn")
	assert.NoError(t, err)
	_, err = ParseSLogLevel("loud")
	assert.Error(t, err)
	assert.NotNil(t, OrDiscard(nil))
}
