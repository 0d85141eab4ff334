package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateErrorMessage(t *testing.T) {
	assert.Equal(t, "Username already exists", (&DuplicateError{Field: "username"}).Error())
	assert.Equal(t, "Email already exists", (&DuplicateError{Field: "email"}).Error())
}

func TestAsDuplicateExtractsField(t *testing.T) {
	err := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'bob' for key 'users.username'",
	}
	dup, ok := asDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, "username", dup.Field)
	assert.Equal(t, "Username already exists", dup.Error())
}

func TestAsDuplicateWrapped(t *testing.T) {
	inner := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'a@b.c' for key 'users.email'",
	}
	dup, ok := asDuplicate(fmt.Errorf("insert user: %w", inner))
	require.True(t, ok)
	assert.Equal(t, "email", dup.Field)
}

func TestAsDuplicateUnnamedKey(t *testing.T) {
	err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x'"}
	dup, ok := asDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, "value", dup.Field)
}

func TestAsDuplicateOtherErrors(t *testing.T) {
	_, ok := asDuplicate(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = asDuplicate(&mysql.MySQLError{Number: 1452, Message: "foreign key fails"})
	assert.False(t, ok)
}
