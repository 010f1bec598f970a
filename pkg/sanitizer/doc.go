// Package sanitizer normalizes free-text booking input before validation and storage.
//
// All functions are idempotent and never fail: invalid input comes back as an
// empty string (or unchanged) and is left for the validator to reject.
//
// Normalization includes:
//   - Names (resources, requesters): trim and collapse inner whitespace, keep case
//   - Dates and clock times: trim surrounding whitespace only
package sanitizer
