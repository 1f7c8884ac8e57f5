// Package timezone provides timezone utilities and the application clock.
//
// Usage Examples:
//
//  1. Basic usage after initialization:
//     timezone.Init(cfg)
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  2. Injecting a clock:
//     clock := timezone.NewSystemClock()       // production
//     clock := timezone.NewFixedClock(t)       // tests; Set/Add move it
//
//  3. Calendar bucketing:
//     timezone.SameDay(a, b, timezone.GetLocation())
//
// Supported timezone formats:
// - Standard timezone names only: "UTC", "Asia/Jakarta", "America/New_York", "Europe/London"
//
// The timezone is configured via the APP_TIMEZONE environment variable.
// Until Init is called every function operates in UTC.
package timezone
