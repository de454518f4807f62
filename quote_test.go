package orabridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	// reserved words need quoting or the server rejects the statement
	assert.Equal(t, `"NUMBER"`, Quote("NUMBER"))
	assert.Equal(t, `"date"`, Quote("date"))
	assert.Equal(t, `"FIRST"`, Quote("FIRST"))

	// everything else stays unquoted so the server upper cases it
	assert.Equal(t, "users", Quote("users"))
	assert.Equal(t, "created_at", Quote("created_at"))
}

func TestIsReservedWord(t *testing.T) {
	assert.True(t, IsReservedWord("order"))
	assert.True(t, IsReservedWord("Level"))
	assert.True(t, IsReservedWord("VARCHAR2"))
	assert.False(t, IsReservedWord("users"))
	assert.False(t, IsReservedWord(""))
}

func TestBindVar(t *testing.T) {
	assert.Equal(t, ":1", BindVar(1))
	assert.Equal(t, ":42", BindVar(42))
}

func TestSelectFromDummyTable(t *testing.T) {
	assert.Equal(t, "FROM DUAL", SelectFromDummyTable())
}
