// Package dialect rewrites portable statement fragments into Oracle SQL.
// The rewrites depend on the connected server's capabilities, so a
// Translator is built per connection from the detected version.
package dialect

// ObjectKind selects the default tablespace used when creating an object.
type ObjectKind string

const (
	KindTable ObjectKind = "table"
	KindIndex ObjectKind = "index"
	KindCLOB  ObjectKind = "clob"
	KindBLOB  ObjectKind = "blob"
)

// Translator holds the per-connection switches that drive statement
// rewriting.
type Translator struct {
	// UseFetchFirst is set when the server understands the native
	// OFFSET/FETCH FIRST row limiting syntax (12.1 and later). Older
	// servers get the nested ROWNUM rewrite.
	UseFetchFirst bool
	// DefaultTablespaces maps object kinds to the tablespace injected
	// into CREATE statements; missing kinds use the schema default.
	DefaultTablespaces map[ObjectKind]string
}

// TablespaceClause returns the " TABLESPACE name" fragment for kind, or
// the empty string when the schema default applies.
func (t Translator) TablespaceClause(kind ObjectKind) string {
	if ts, ok := t.DefaultTablespaces[kind]; ok && ts != "" {
		return " TABLESPACE " + ts
	}
	return ""
}
