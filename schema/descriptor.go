package schema

import (
	"time"

	"github.com/jinzhu/now"

	"github.com/orabridge/orabridge/oratype"
)

// ColumnDescriptor is a read-only projection of one ALL_TAB_COLS row,
// joined with the column comment. Descriptors are rebuilt from the data
// dictionary on every introspection call; nothing is cached here.
type ColumnDescriptor struct {
	Name      string
	SQLType   string
	Type      oratype.Type
	Nullable  bool
	Default   *string
	Virtual   bool
	Hidden    bool
	Precision int
	Scale     *int
	Limit     int
	TypeOwner string // owner of the object type, empty for built-ins
	Comment   string
}

// DefaultString returns the column's default as a plain string with the
// dialect's doubled-quote escaping undone. Only meaningful for string
// typed columns; the bool reports whether a default exists.
func (c ColumnDescriptor) DefaultString() (string, bool) {
	if c.Default == nil {
		return "", false
	}
	return UnquoteDefault(*c.Default), true
}

// DefaultTime parses a DATE/TIMESTAMP default literal leniently. Oracle
// stores defaults as raw expression text, so SYSDATE and friends simply
// fail to parse and report false.
func (c ColumnDescriptor) DefaultTime() (time.Time, bool) {
	if c.Default == nil {
		return time.Time{}, false
	}
	t, err := now.Parse(UnquoteDefault(*c.Default))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IndexColumn is one ordered entry of an index: either a plain column name
// or, for functional indexes, the indexed expression text.
type IndexColumn struct {
	Name       string
	Expression string
}

// String returns the expression when present, otherwise the column name.
func (c IndexColumn) String() string {
	if c.Expression != "" {
		return c.Expression
	}
	return c.Name
}

// IndexDescriptor is a read-only projection of one index, assembled from
// the fan-out of ALL_INDEXES x ALL_IND_COLUMNS rows.
type IndexDescriptor struct {
	Table      string
	Name       string
	Unique     bool
	Columns    []IndexColumn
	Type       string // ityp_name for domain indexes, e.g. CONTEXT
	TypeOwner  string // ityp_owner for domain indexes, e.g. CTXSYS
	Parameters string // raw index creation parameters
	// StatementParameters carries extra parameters recovered from the
	// generated datastore procedure of a context index; needed to
	// faithfully recreate the index.
	StatementParameters string
	Tablespace          string // empty when the index lives in the default tablespace
}

// SynonymDescriptor is a read-only projection of one ALL_SYNONYMS row.
type SynonymDescriptor struct {
	Name       string
	TableOwner string
	TableName  string
	DBLink     string // empty for local synonyms
}

// SequenceBinding pairs a table's surrogate key column with the sequence
// that feeds it. A nil binding means the table has no usable key for
// generation. TriggerPopulated marks keys filled by a database trigger,
// which must never be prefetched client side.
type SequenceBinding struct {
	Table            string
	Column           string
	Sequence         string
	TriggerPopulated bool
}
