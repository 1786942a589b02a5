package sqlite

import (
	"database/sql"
	"time"
)

// timestampLayout matches the second-resolution ISO-8601 values the
// store has always used, so existing files keep sorting correctly.
const timestampLayout = "2006-01-02T15:04:05"

// isoNow returns the current time as stored in created_at/updated_at
func isoNow() string {
	return time.Now().Format(timestampLayout)
}

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString, mapping the
// empty string to NULL
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// boolToInt converts a bool to the 0/1 representation used in storage
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
