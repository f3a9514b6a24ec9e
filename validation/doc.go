// Package validation provides field-level validation helpers that report
// failures as taxonomy errors, plus tag-based struct validation for
// configuration types.
package validation
