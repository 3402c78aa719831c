// Package domain contains the core domain model for the diary service.
//
// This package defines:
//   - Entities: DiaryEntry and the caller Identity
//   - Value Objects: EntryFilter search criteria and Pagination metadata
//   - Domain Errors: the error taxonomy surfaced to HTTP callers
//   - Defaults: page size, preview length and the generated title rule
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Derived values (previews, pagination) are pure functions of their inputs
package domain
