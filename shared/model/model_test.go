package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	var v struct {
		A model.FlexString `json:"a"`
		B model.FlexString `json:"b"`
		C model.FlexString `json:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"101","b":101,"c":null}`), &v))

	assert.Equal(t, model.FlexString("101"), v.A)
	assert.Equal(t, model.FlexString("101"), v.B)
	assert.Equal(t, model.FlexString(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestTimestamp_Unmarshal(t *testing.T) {
	timezone.SetLocation(time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "rfc3339", input: `"2026-03-01T10:30:00+07:00"`, want: time.Date(2026, 3, 1, 3, 30, 0, 0, time.UTC)},
		{name: "local", input: `"2026-03-01T10:30:00"`, want: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{name: "local fraction", input: `"2026-03-01T10:30:00.123"`, want: time.Date(2026, 3, 1, 10, 30, 0, 123000000, time.UTC)},
		{name: "date", input: `"2026-03-01"`, want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "array", input: `[2026,3,1,10,30]`, want: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{name: "null", input: `null`, want: time.Time{}},
		{name: "empty", input: `""`, want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts model.Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_UnmarshalInvalid(t *testing.T) {
	var ts model.Timestamp

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`[2026,3]`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestTimestamp_Marshal(t *testing.T) {
	out, err := json.Marshal(model.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(model.NewTimestamp(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T10:00:00Z"`, string(out))
}
