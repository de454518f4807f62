package oratype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNumeric(t *testing.T) {
	registry := NewRegistry(Config{})

	tests := []struct {
		native string
		want   Type
	}{
		{"NUMBER(10,0)", Integer{Precision: 10}},
		{"NUMBER(5)", Integer{Precision: 5, Limit: 5}},
		{"NUMBER(38,0)", Integer{Precision: 38}},
		{"NUMBER(10,2)", Decimal{Precision: 10, Scale: 2}},
		{"NUMBER(7,-2)", Decimal{Precision: 7, Scale: -2}},
		{"NUMBER", Decimal{}},
		{"DECIMAL(8,3)", Decimal{Precision: 8, Scale: 3}},
		{"BIGINT", Integer{Limit: 19}},
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, registry.Resolve(tt.native))
		})
	}
}

func TestResolveCharacterAndTime(t *testing.T) {
	registry := NewRegistry(Config{})

	tests := []struct {
		native string
		want   Type
	}{
		{"VARCHAR2(255)", String{Limit: 255}},
		{"VARCHAR2(30 BYTE)", String{}},
		{"CHAR(3)", String{Limit: 3}},
		{"NVARCHAR2(100)", NString{Limit: 100}},
		{"NCHAR(1)", NString{Limit: 1}},
		{"CLOB", Text{}},
		{"NCLOB", NText{}},
		{"LONG", Text{}},
		{"DATE", DateTime{}},
		{"TIMESTAMP", DateTime{}},
		{"TIMESTAMP(6)", DateTime{}},
		{"TIMESTAMP(6) WITH TIME ZONE", TimestampTZ{}},
		{"TIMESTAMP(6) WITH LOCAL TIME ZONE", TimestampLTZ{}},
		{"RAW(16)", Raw{Limit: 16}},
		{"LONG RAW", Raw{}},
		{"BLOB", Binary{}},
		{"BFILE", Binary{}},
		{"BINARY_DOUBLE", Float{}},
		{"FLOAT(126)", Float{Precision: 126}},
		{"SDO_GEOMETRY", Unknown{Native: "SDO_GEOMETRY"}},
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, registry.Resolve(tt.native))
		})
	}
}

func TestResolveBooleanEmulation(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		registry := NewRegistry(Config{})
		assert.Equal(t, Integer{Precision: 1, Limit: 1}, registry.Resolve("NUMBER(1)"))
		assert.Equal(t, String{Limit: 1}, registry.Resolve("VARCHAR2(1)"))
	})

	t.Run("from numbers", func(t *testing.T) {
		registry := NewRegistry(Config{EmulateBooleans: true})
		assert.Equal(t, Boolean{}, registry.Resolve("NUMBER(1)"))
		assert.Equal(t, Integer{Precision: 2, Limit: 2}, registry.Resolve("NUMBER(2)"))
		assert.Equal(t, String{Limit: 1}, registry.Resolve("VARCHAR2(1)"))
	})

	t.Run("from strings", func(t *testing.T) {
		registry := NewRegistry(Config{EmulateBooleans: true, EmulateBooleansFromStrings: true})
		assert.Equal(t, Boolean{FromString: true}, registry.Resolve("VARCHAR2(1)"))
		assert.Equal(t, Integer{Precision: 1, Limit: 1}, registry.Resolve("NUMBER(1)"))
	})
}

func TestSerializedCapability(t *testing.T) {
	assert.False(t, IsSerialized(Text{}))
	assert.True(t, IsSerialized(Serialized{Wrapped: Text{}}))

	assert.True(t, IsLOB(Text{}))
	assert.True(t, IsLOB(Binary{}))
	assert.True(t, IsLOB(Serialized{Wrapped: NText{}}))
	assert.False(t, IsLOB(String{Limit: 4000}))

	assert.True(t, IsCharacterLOB(Text{}))
	assert.False(t, IsCharacterLOB(Binary{}))
}
