package schema

import (
	"errors"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/orabridge/orabridge/utils"
)

// ErrDBLink is returned when a cross-database-link reference is used where
// a local table is required.
var ErrDBLink = errors.New("table references over a database link cannot be introspected locally")

// TableRef is a resolved table reference. Owner is empty when the
// reference did not carry an explicit schema qualifier, in which case the
// current session schema applies. Names are folded the way the data
// dictionary stores them.
type TableRef struct {
	Owner  string
	Name   string
	DBLink string // "@link" suffix, empty for local references
}

// Local reports whether the reference names an object in this database.
func (r TableRef) Local() bool { return r.DBLink == "" }

// QualifiedName rebuilds the reference as it would appear in SQL.
func (r TableRef) QualifiedName() string {
	var b strings.Builder
	if r.Owner != "" {
		b.WriteString(r.Owner)
		b.WriteByte('.')
	}
	b.WriteString(r.Name)
	b.WriteString(r.DBLink)
	return b.String()
}

// ResolveTableRef splits a possibly qualified, possibly database-linked
// table reference into owner, canonical name and link suffix. Identifiers
// made only of unquoted-safe characters are upper cased before dictionary
// lookup; anything else is assumed pre-quoted and passed through.
func ResolveTableRef(raw string) TableRef {
	ref := TableRef{}

	if at := strings.Index(raw, "@"); at >= 0 {
		ref.DBLink = raw[at:]
		raw = raw[:at]
	}

	if dot := strings.Index(raw, "."); dot >= 0 {
		ref.Owner = FoldCase(raw[:dot])
		ref.Name = FoldCase(raw[dot+1:])
		return ref
	}

	ref.Name = FoldCase(raw)
	return ref
}

// FoldCase applies the dictionary's case convention to a single
// identifier: unquoted identifiers are stored upper case, quoted ones keep
// their case with the quotes stripped.
func FoldCase(identifier string) string {
	if utils.IsUnquotedIdentifier(identifier) {
		return strings.ToUpper(identifier)
	}
	return strings.Trim(identifier, `"`)
}

// Presentable lowers a dictionary-cased name for the logical schema model,
// which is lowercase by convention.
func Presentable(name string) string {
	return strings.ToLower(name)
}

// DefaultSequenceName derives the sequence paired with a table's surrogate
// key, `users` -> `users_seq`.
func DefaultSequenceName(table string) string {
	return table + "_seq"
}

// DefaultTriggerName derives the name of the key-population trigger
// convention, `users` -> `users_pkt`.
func DefaultTriggerName(table string) string {
	return table + "_pkt"
}

// TableNameForModel pluralizes a model-derived name the way the ORM names
// its tables, `user` -> `users`.
func TableNameForModel(name string) string {
	return inflection.Plural(strings.ToLower(name))
}

// UnquoteDefault undoes the dialect's doubled-quote escaping in a textual
// default literal: `'it''s'` -> `it's`. Non-literal defaults (expressions,
// numbers) are returned unchanged.
func UnquoteDefault(def string) string {
	def = strings.TrimSpace(def)
	if len(def) >= 2 && strings.HasPrefix(def, "'") && strings.HasSuffix(def, "'") {
		return strings.ReplaceAll(def[1:len(def)-1], "''", "'")
	}
	return def
}
