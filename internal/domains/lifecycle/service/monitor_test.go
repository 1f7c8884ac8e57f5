package service_test

import (
	"testing"

	"lodge/internal/domains/lifecycle/model"
	"lodge/internal/domains/lifecycle/service"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tracker := service.NewTracker()

	tracker.Start("ZZZ9")
	tracker.Start("abc1")
	tracker.Start("ABC1")

	assert.Equal(t, []string{"ZZZ9", "abc1"}, tracker.Watched())

	tracker.Record(model.Monitor{BookingCode: "ABC1", TimeRemaining: "00:15"})
	tracker.Record(model.Monitor{BookingCode: "NOPE", TimeRemaining: "01:00"})

	m, ok := tracker.Get("abc1")
	assert.True(t, ok)
	assert.Equal(t, "00:15", m.TimeRemaining)

	_, ok = tracker.Get("NOPE")
	assert.False(t, ok)

	tracker.Stop("Abc1")
	assert.Equal(t, []string{"ZZZ9"}, tracker.Watched())
}
