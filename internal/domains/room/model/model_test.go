package model_test

import (
	"encoding/json"
	"testing"

	"lodge/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_NormalizesCasing(t *testing.T) {
	inputs := map[string]model.Status{
		"available":    model.StatusAvailable,
		" Occupied ":   model.StatusOccupied,
		"CLEANING":     model.StatusCleaning,
		"reserved":     model.StatusReserved,
		"ReSeRvEd":     model.StatusReserved,
		"\tcleaning\n": model.StatusCleaning,
	}

	for raw, want := range inputs {
		got, err := model.ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
		assert.Contains(t, model.Statuses, got)
	}
}

func TestParseStatus_Rejects(t *testing.T) {
	for _, raw := range []string{"", "BOOKED", "out of order", "available!"} {
		_, err := model.ParseStatus(raw)
		assert.Error(t, err, raw)
	}
}

func TestRoom_UnmarshalJSON(t *testing.T) {
	var room model.Room

	err := json.Unmarshal([]byte(`{
		"id": 12,
		"roomNumber": "204",
		"floor": 2,
		"status": "occupied",
		"lastCleanedAt": "2026-03-01T09:00:00",
		"baseHourlyRate": 15.5,
		"categoryId": 3
	}`), &room)
	require.NoError(t, err)

	assert.Equal(t, "12", room.ID.String())
	assert.Equal(t, "204", room.RoomNumber.String())
	assert.Equal(t, model.StatusOccupied, room.Status)
	assert.Equal(t, "3", room.CategoryID.String())
	assert.False(t, room.LastCleanedAt.IsZero())
	assert.True(t, room.Blocks())
}

func TestRoom_UnmarshalJSONUnknownStatus(t *testing.T) {
	var room model.Room

	assert.Error(t, json.Unmarshal([]byte(`{"id":1,"status":"MAINTENANCE"}`), &room))
}

func TestDedupeAmenities(t *testing.T) {
	got := model.DedupeAmenities([]string{"WiFi", " TV ", "wifi", "", "Minibar", "TV"})

	assert.Equal(t, []string{"WiFi", "TV", "Minibar"}, got)
}
