package timezone_test

import (
	"testing"
	"time"

	"lodge/config"
	"lodge/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	defer timezone.SetLocation(time.UTC)

	cfg := &config.Config{}
	cfg.App.Timezone = "Asia/Jakarta"
	timezone.Init(cfg)

	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())
}

func TestTimezoneInitFallsBackToUTC(t *testing.T) {
	defer timezone.SetLocation(time.UTC)

	cfg := &config.Config{}
	cfg.App.Timezone = "Mars/Olympus_Mons"
	timezone.Init(cfg)

	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	assert.NotEmpty(t, formatted)

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.False(t, parsed.IsZero())
}

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)

	// 2024-03-01 20:00 UTC is already 2024-03-02 03:00 at UTC+7.
	late := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	morning := time.Date(2024, 3, 2, 8, 0, 0, 0, loc)

	assert.True(t, timezone.SameDay(late, morning, loc))
	assert.False(t, timezone.SameDay(late, morning, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, loc), timezone.StartOfDay(late, loc))
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	clock := timezone.NewFixedClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Add(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := timezone.NewSystemClock().Now()

	assert.False(t, now.Before(before.Add(-time.Second)))
}
