package helper

import "database/sql"

// NullToStringPtr maps a nullable text column to an optional JSON field.
func NullToStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
