// Package repository implements data access over MySQL. Each repo is a thin
// struct around *sql.DB using plain SQL. Failure modes that handlers must
// distinguish are expressed as sentinel errors or typed errors defined here;
// everything else propagates as-is and is treated as a server fault.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by id matches no row. Handlers
// translate it into a 404.
var ErrNotFound = errors.New("not found")

// DuplicateError reports a unique-constraint violation on a specific
// column. Handlers translate it into a 400 with the message unchanged, so
// the wording here is part of the API contract.
type DuplicateError struct {
	Field string // column name, lower case
}

func (e *DuplicateError) Error() string {
	return capitalize(e.Field) + " already exists"
}

// asDuplicate converts a MySQL duplicate-key failure (error 1062) into a
// DuplicateError carrying the violated column. Unique keys in the schema are
// named after their column, so the key name in the driver message ("...for
// key 'users.username'") identifies the field directly.
func asDuplicate(err error) (*DuplicateError, bool) {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return nil, false
	}
	field := "value"
	if i := strings.LastIndex(me.Message, "for key '"); i >= 0 {
		key := strings.TrimSuffix(me.Message[i+len("for key '"):], "'")
		if j := strings.LastIndexByte(key, '.'); j >= 0 {
			key = key[j+1:]
		}
		if key != "" {
			field = key
		}
	}
	return &DuplicateError{Field: field}, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
