package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SchemaViolationError reports a database-level constraint rejection. It is
// distinct from service-level validation: the schema is the last line of
// defense and its violations map to the same 400 class with their own message.
type SchemaViolationError struct {
	Constraint string
	Message    string
}

func (e *SchemaViolationError) Error() string { return e.Message }

// Messages keyed by constraint name, mirroring the migration DDL.
var constraintMessages = map[string]string{
	"advertisements_title_length":       "Title must be between 5 and 70 characters",
	"advertisements_description_length": "Description must be at least 10 characters",
	"advertisements_price_non_negative": "Price must be a non-negative number",
	"advertisements_phone_format":       "Please enter a valid 10-digit phone number",
	"advertisements_images_present":     "At least one image is required",
	"advertisements_user_id_fkey":       "Invalid user reference",
	"users_identity_check":              "A phone number or Google account is required",
	"users_phone_format":                "Phone must be a 10-digit number",
	"users_phone_key":                   "Phone number is already registered",
	"users_google_id_key":               "Google account is already registered",
}

// Constraint-class SQLSTATE codes: check, not-null, foreign key, unique.
func isConstraintCode(code string) bool {
	switch code {
	case "23502", "23503", "23505", "23514":
		return true
	}
	return false
}

// mapError converts pgx constraint violations into SchemaViolationError and
// leaves every other error untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && isConstraintCode(pgErr.Code) {
		msg := constraintMessages[pgErr.ConstraintName]
		if msg == "" {
			msg = "Record violates schema constraints"
		}
		return &SchemaViolationError{Constraint: pgErr.ConstraintName, Message: msg}
	}
	return err
}
