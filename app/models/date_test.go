package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Valid(t *testing.T) {
	d, err := ParseDate("1990-01-31")
	require.NoError(t, err)
	assert.Equal(t, 1990, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 31, d.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("31/01/1990")
	assert.Error(t, err)

	_, err = ParseDate("1990-13-01")
	assert.Error(t, err)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 5)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-05"`, string(b))

	var decoded Date
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, d.String(), decoded.String())
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1990-01-01", d.String())

	require.NoError(t, d.Scan("2000-02-29"))
	assert.Equal(t, "2000-02-29", d.String())

	require.NoError(t, d.Scan([]byte("2001-12-24")))
	assert.Equal(t, "2001-12-24", d.String())

	assert.Error(t, d.Scan(42))
}
