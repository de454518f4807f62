package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orabridge/orabridge/oratype"
)

func strptr(s string) *string { return &s }

func TestColumnDescriptorDefaultString(t *testing.T) {
	col := ColumnDescriptor{
		Name:    "status",
		SQLType: "VARCHAR2(20)",
		Type:    oratype.String{Limit: 20},
		Default: strptr("'it''s fine'"),
	}

	got, ok := col.DefaultString()
	assert.True(t, ok)
	assert.Equal(t, "it's fine", got)

	col.Default = nil
	_, ok = col.DefaultString()
	assert.False(t, ok)
}

func TestColumnDescriptorDefaultTime(t *testing.T) {
	col := ColumnDescriptor{
		Name:    "hired_at",
		SQLType: "DATE",
		Type:    oratype.DateTime{},
		Default: strptr("'2024-05-01 10:30:00'"),
	}

	got, ok := col.DefaultTime()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local), got)

	col.Default = strptr("SYSDATE")
	_, ok = col.DefaultTime()
	assert.False(t, ok)
}

func TestIndexColumnString(t *testing.T) {
	assert.Equal(t, "status", IndexColumn{Name: "status"}.String())
	assert.Equal(t, `UPPER("NAME")`, IndexColumn{Expression: `UPPER("NAME")`}.String())
}
