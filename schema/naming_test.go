package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTableRef(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TableRef
	}{
		{"bare lowercase", "employees", TableRef{Name: "EMPLOYEES"}},
		{"qualified", "HR.EMPLOYEES", TableRef{Owner: "HR", Name: "EMPLOYEES"}},
		{"qualified lowercase", "hr.employees", TableRef{Owner: "HR", Name: "EMPLOYEES"}},
		{"quoted mixed case", `"Employees"`, TableRef{Name: "Employees"}},
		{"db link", "employees@remote", TableRef{Name: "EMPLOYEES", DBLink: "@remote"}},
		{"qualified db link", "hr.employees@remote.example", TableRef{Owner: "HR", Name: "EMPLOYEES", DBLink: "@remote.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTableRef(tt.raw))
		})
	}
}

func TestTableRefLocal(t *testing.T) {
	assert.True(t, ResolveTableRef("employees").Local())
	assert.False(t, ResolveTableRef("employees@remote").Local())
}

func TestTableRefQualifiedName(t *testing.T) {
	assert.Equal(t, "HR.EMPLOYEES", ResolveTableRef("hr.employees").QualifiedName())
	assert.Equal(t, "EMPLOYEES@remote", ResolveTableRef("employees@remote").QualifiedName())
}

func TestFoldCase(t *testing.T) {
	assert.Equal(t, "EMPLOYEES", FoldCase("employees"))
	assert.Equal(t, "TAB$1", FoldCase("tab$1"))
	assert.Equal(t, "Employees", FoldCase(`"Employees"`))
	assert.Equal(t, "my table", FoldCase("my table"))
}

func TestNamingConventions(t *testing.T) {
	assert.Equal(t, "users_seq", DefaultSequenceName("users"))
	assert.Equal(t, "users_pkt", DefaultTriggerName("users"))
	assert.Equal(t, "users", TableNameForModel("User"))
	assert.Equal(t, "people", TableNameForModel("Person"))
}

func TestUnquoteDefault(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"'hello'", "hello"},
		{"'it''s'", "it's"},
		{"'O''Brien''s'", "O'Brien's"},
		{"0 ", "0"},
		{"SYSDATE", "SYSDATE"},
		{"''", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, UnquoteDefault(tt.in))
		})
	}
}
