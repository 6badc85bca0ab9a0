// Package timezone provides time utilities for the application.
//
// Instants are kept in UTC. A business's IANA zone is only used to turn a
// calendar day plus an "HH:mm" wall-clock time into an instant, and back.
//
// Usage Examples:
//
//  1. Composing an appointment start and end:
//     day, _ := timezone.ParseDay("2025-06-10")
//     start, _ := timezone.Combine(day, "14:30", timezone.LoadLocation("Europe/Lisbon"))
//     end := timezone.EndAt(start, 45)
//
//  2. Day-granularity checks:
//     today := timezone.Today(timezone.Now(), loc)
//
//  3. Rendering an instant in a business zone:
//     local := start.In(timezone.LoadLocation(business.Timezone))
//
// The application fallback zone is configured via the APP_TIMEZONE environment
// variable and is initialized when the package is imported.
package timezone
