package util

import (
	"database/sql"
	"errors"
)

// pgError is the slice of pgdriver.Error this package relies on: access to
// the PostgreSQL ErrorResponse fields by protocol byte.
type pgError interface {
	Field(byte) string
}

func SkipNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func IsUniqueViolation(err error) bool {
	var postgresErr pgError
	if errors.As(err, &postgresErr) {
		return postgresErr.Field('C') == "23505" // unique_violation, see at: https://www.postgresql.org/docs/current/errcodes-appendix.html
	}
	return false
}

// UniqueViolationColumn extracts the first column named in the violated
// constraint, e.g. "users_username_key" yields "username". Empty when the
// constraint name does not follow the table_column_key convention.
func UniqueViolationColumn(err error) string {
	var postgresErr pgError
	if !errors.As(err, &postgresErr) {
		return ""
	}
	constraint := postgresErr.Field('n')
	if constraint == "" {
		return ""
	}
	table := postgresErr.Field('t')
	name := constraint
	if table != "" && len(name) > len(table)+1 && name[:len(table)+1] == table+"_" {
		name = name[len(table)+1:]
	}
	if len(name) > 4 && name[len(name)-4:] == "_key" {
		name = name[:len(name)-4]
	}
	return name
}
