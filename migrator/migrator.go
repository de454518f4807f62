// Package migrator introspects the Oracle data dictionary and assembles
// dialect-neutral schema descriptors. Every call queries the live catalog;
// caching, if any, belongs to the calling ORM's schema cache.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/orabridge/orabridge/dialect"
	"github.com/orabridge/orabridge/logger"
	"github.com/orabridge/orabridge/oratype"
	"github.com/orabridge/orabridge/schema"
)

// Config migrator config
type Config struct {
	DB         *sqlx.DB
	Logger     logger.Interface
	Types      *oratype.Registry
	Translator dialect.Translator
	// SequenceStart seeds recreated sequences for empty tables.
	SequenceStart int64
}

// Migrator resolves table references against the data dictionary and
// produces descriptors.
type Migrator struct {
	Config
}

// New builds a Migrator. A nil logger falls back to the default.
func New(config Config) *Migrator {
	if config.Logger == nil {
		config.Logger = logger.Default
	}
	if config.Types == nil {
		config.Types = oratype.NewRegistry(oratype.Config{})
	}
	return &Migrator{Config: config}
}

// CurrentSchema returns the session's current schema, the implicit owner
// of unqualified table references.
func (m *Migrator) CurrentSchema(ctx context.Context) (string, error) {
	var name string
	err := m.DB.QueryRowContext(ctx, "SELECT SYS_CONTEXT('userenv', 'current_schema') FROM DUAL").Scan(&name)
	return name, err
}

// CurrentDatabase returns the database name. Older server versions reject
// ORA_DATABASE_NAME, so a userenv lookup serves as fallback.
func (m *Migrator) CurrentDatabase(ctx context.Context) (string, error) {
	var name string
	if err := m.DB.QueryRowContext(ctx, "SELECT ORA_DATABASE_NAME FROM DUAL").Scan(&name); err == nil {
		return name, nil
	}
	err := m.DB.QueryRowContext(ctx, "SELECT SYS_CONTEXT('userenv', 'db_name') FROM DUAL").Scan(&name)
	return name, err
}

// resolveOwner fills in the implicit owner of an unqualified reference.
func (m *Migrator) resolveOwner(ctx context.Context, ref schema.TableRef) (schema.TableRef, error) {
	if ref.Owner != "" {
		return ref, nil
	}
	owner, err := m.CurrentSchema(ctx)
	if err != nil {
		return ref, err
	}
	ref.Owner = owner
	return ref, nil
}

// resolveLocal resolves a raw table reference and rejects database links,
// which cannot be introspected through the local dictionary.
func (m *Migrator) resolveLocal(ctx context.Context, table string) (schema.TableRef, error) {
	ref := schema.ResolveTableRef(table)
	if !ref.Local() {
		return ref, schema.ErrDBLink
	}
	return m.resolveOwner(ctx, ref)
}

// DataSourceExists reports whether table resolves to an existing table or
// view. Introspection failures report false rather than propagating.
func (m *Migrator) DataSourceExists(ctx context.Context, table string) bool {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return false
	}

	var count int
	err = m.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ALL_OBJECTS WHERE OWNER = :1 AND OBJECT_NAME = :2 AND OBJECT_TYPE IN ('TABLE', 'VIEW')`,
		ref.Owner, ref.Name).Scan(&count)
	if err != nil {
		return false
	}
	return count > 0
}

// HasTable checks table existence in the current schema.
func (m *Migrator) HasTable(ctx context.Context, table string) bool {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return false
	}
	var count int
	if err := m.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ALL_TABLES WHERE OWNER = :1 AND TABLE_NAME = :2",
		ref.Owner, ref.Name).Scan(&count); err != nil {
		return false
	}
	return count > 0
}

// HasColumn checks column existence.
func (m *Migrator) HasColumn(ctx context.Context, table, column string) bool {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return false
	}
	var count int
	if err := m.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ALL_TAB_COLUMNS WHERE OWNER = :1 AND TABLE_NAME = :2 AND COLUMN_NAME = :3",
		ref.Owner, ref.Name, schema.FoldCase(column)).Scan(&count); err != nil {
		return false
	}
	return count > 0
}

// HasIndex checks index existence.
func (m *Migrator) HasIndex(ctx context.Context, table, index string) bool {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return false
	}
	var count int
	if err := m.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ALL_INDEXES WHERE OWNER = :1 AND TABLE_NAME = :2 AND INDEX_NAME = :3",
		ref.Owner, ref.Name, schema.FoldCase(index)).Scan(&count); err != nil {
		return false
	}
	return count > 0
}

// Tables lists the current schema's tables, lowercased for presentation.
func (m *Migrator) Tables(ctx context.Context) ([]string, error) {
	return m.objectNames(ctx, "SELECT TABLE_NAME FROM USER_TABLES ORDER BY TABLE_NAME")
}

// Views lists the current schema's views.
func (m *Migrator) Views(ctx context.Context) ([]string, error) {
	return m.objectNames(ctx, "SELECT VIEW_NAME FROM USER_VIEWS ORDER BY VIEW_NAME")
}

// MaterializedViews lists the current schema's materialized views.
func (m *Migrator) MaterializedViews(ctx context.Context) ([]string, error) {
	return m.objectNames(ctx, "SELECT MVIEW_NAME FROM USER_MVIEWS ORDER BY MVIEW_NAME")
}

func (m *Migrator) objectNames(ctx context.Context, query string) ([]string, error) {
	var raw []string
	if err := m.DB.SelectContext(ctx, &raw, query); err != nil {
		return nil, err
	}
	names := make([]string, len(raw))
	for i, n := range raw {
		names[i] = schema.Presentable(n)
	}
	return names, nil
}

// Synonyms lists the synonyms visible to the current schema.
func (m *Migrator) Synonyms(ctx context.Context) ([]schema.SynonymDescriptor, error) {
	var rows []synonymRow
	if err := m.DB.SelectContext(ctx, &rows,
		`SELECT SYNONYM_NAME, TABLE_OWNER, TABLE_NAME, DB_LINK FROM USER_SYNONYMS ORDER BY SYNONYM_NAME`); err != nil {
		return nil, err
	}
	return assembleSynonyms(rows), nil
}

type synonymRow struct {
	SynonymName string         `db:"SYNONYM_NAME"`
	TableOwner  sql.NullString `db:"TABLE_OWNER"`
	TableName   string         `db:"TABLE_NAME"`
	DBLink      sql.NullString `db:"DB_LINK"`
}

func assembleSynonyms(rows []synonymRow) []schema.SynonymDescriptor {
	synonyms := make([]schema.SynonymDescriptor, 0, len(rows))
	for _, row := range rows {
		synonyms = append(synonyms, schema.SynonymDescriptor{
			Name:       schema.Presentable(row.SynonymName),
			TableOwner: schema.Presentable(row.TableOwner.String),
			TableName:  schema.Presentable(row.TableName),
			DBLink:     row.DBLink.String,
		})
	}
	return synonyms
}

// quoteObject validates an identifier before it is interpolated into DDL,
// where bind variables are not allowed.
func quoteObject(name string) (string, error) {
	for _, c := range name {
		if !(c >= 'A' && c <= 'Z') && !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') &&
			c != '_' && c != '$' && c != '#' && c != '.' {
			return "", fmt.Errorf("identifier %q is not safe for DDL interpolation", name)
		}
	}
	return strings.ToUpper(name), nil
}
