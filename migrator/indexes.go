package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/orabridge/orabridge/dialect"
	"github.com/orabridge/orabridge/schema"
)

// Indexes backing a primary key constraint are implied by the constraint
// and excluded here. The join fans out one row per (index, column), with
// the expression view contributing text for functional entries.
const indexesSQL = `
SELECT i.INDEX_NAME, i.UNIQUENESS, i.INDEX_TYPE, i.ITYP_OWNER, i.ITYP_NAME,
       i.PARAMETERS, i.TABLESPACE_NAME, c.COLUMN_NAME, e.COLUMN_EXPRESSION
  FROM ALL_INDEXES i
  JOIN ALL_IND_COLUMNS c
    ON c.INDEX_OWNER = i.OWNER AND c.INDEX_NAME = i.INDEX_NAME
  LEFT JOIN ALL_IND_EXPRESSIONS e
    ON e.INDEX_OWNER = c.INDEX_OWNER AND e.INDEX_NAME = c.INDEX_NAME
   AND e.COLUMN_POSITION = c.COLUMN_POSITION
 WHERE i.OWNER = :1 AND i.TABLE_NAME = :2
   AND NOT EXISTS (
         SELECT 1 FROM ALL_CONSTRAINTS ct
          WHERE ct.OWNER = i.OWNER AND ct.INDEX_NAME = i.INDEX_NAME
            AND ct.CONSTRAINT_TYPE = 'P')
 ORDER BY i.INDEX_NAME, c.COLUMN_POSITION`

const indexSourceSQL = `
SELECT TEXT FROM ALL_SOURCE
 WHERE OWNER = :1 AND NAME = :2 AND TYPE = 'PROCEDURE'
 ORDER BY LINE`

type indexRow struct {
	IndexName        string         `db:"INDEX_NAME"`
	Uniqueness       string         `db:"UNIQUENESS"`
	IndexType        string         `db:"INDEX_TYPE"`
	ItypOwner        sql.NullString `db:"ITYP_OWNER"`
	ItypName         sql.NullString `db:"ITYP_NAME"`
	Parameters       sql.NullString `db:"PARAMETERS"`
	TablespaceName   sql.NullString `db:"TABLESPACE_NAME"`
	ColumnName       string         `db:"COLUMN_NAME"`
	ColumnExpression sql.NullString `db:"COLUMN_EXPRESSION"`
}

var contextParamsRe = regexp.MustCompile(`-- add_context_index_parameters (.+)`)

// Indexes returns the table's secondary indexes in first-seen dictionary
// order, one descriptor per index with its accumulated column list.
func (m *Migrator) Indexes(ctx context.Context, table string) ([]schema.IndexDescriptor, error) {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return nil, err
	}

	columns, err := m.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	virtual := map[string]bool{}
	for _, col := range columns {
		if col.Virtual {
			virtual[col.Name] = true
		}
	}

	var rows []indexRow
	if err := m.DB.SelectContext(ctx, &rows, indexesSQL, ref.Owner, ref.Name); err != nil {
		return nil, err
	}

	indexes := assembleIndexes(schema.Presentable(ref.Name), rows, virtual)

	for i := range indexes {
		idx := &indexes[i]
		if idx.TypeOwner == "CTXSYS" && idx.Type == "CONTEXT" {
			params, err := m.contextIndexParameters(ctx, ref.Owner, idx.Name)
			if err != nil {
				return nil, err
			}
			idx.StatementParameters = params
		}
	}

	return indexes, nil
}

// assembleIndexes folds the fanned-out rows into one descriptor per index
// name, preserving first-seen order and accumulating columns as rows are
// consumed.
func assembleIndexes(table string, rows []indexRow, virtual map[string]bool) []schema.IndexDescriptor {
	var indexes []schema.IndexDescriptor
	position := map[string]int{}

	for _, row := range rows {
		i, seen := position[row.IndexName]
		if !seen {
			idx := schema.IndexDescriptor{
				Table:  table,
				Name:   schema.Presentable(row.IndexName),
				Unique: row.Uniqueness == "UNIQUE",
			}
			if row.ItypOwner.Valid {
				idx.TypeOwner = row.ItypOwner.String
			}
			if row.ItypName.Valid {
				idx.Type = row.ItypName.String
			}
			idx.Parameters = row.Parameters.String
			idx.Tablespace = row.TablespaceName.String

			position[row.IndexName] = len(indexes)
			i = len(indexes)
			indexes = append(indexes, idx)
		}

		indexes[i].Columns = append(indexes[i].Columns, indexColumn(row, virtual))
	}

	return indexes
}

// indexColumn picks the representation of one index entry. Functional
// entries use their expression text, except when the entry is a named
// (non-expression) virtual column: recreating such an index from the
// re-derived expression is rejected by the server, so the column name is
// authoritative there.
func indexColumn(row indexRow, virtual map[string]bool) schema.IndexColumn {
	name := schema.Presentable(row.ColumnName)
	if !row.ColumnExpression.Valid {
		return schema.IndexColumn{Name: name}
	}
	if virtual[name] {
		return schema.IndexColumn{Name: name}
	}
	return schema.IndexColumn{Expression: strings.TrimSpace(row.ColumnExpression.String)}
}

// CreateIndex recreates idx from its descriptor.
func (m *Migrator) CreateIndex(ctx context.Context, idx schema.IndexDescriptor) error {
	ddl, err := m.CreateIndexSQL(idx)
	if err != nil {
		return err
	}
	_, err = m.DB.ExecContext(ctx, ddl)
	return err
}

// CreateIndexSQL renders the DDL that recreates idx: uniqueness, functional
// expressions, domain index type with its recovered statement parameters,
// and the tablespace (the descriptor's own, falling back to the configured
// per-kind default).
func (m *Migrator) CreateIndexSQL(idx schema.IndexDescriptor) (string, error) {
	name, err := quoteObject(idx.Name)
	if err != nil {
		return "", err
	}
	table, err := quoteObject(idx.Table)
	if err != nil {
		return "", err
	}

	columns := make([]string, 0, len(idx.Columns))
	for _, col := range idx.Columns {
		// expressions come straight out of the dictionary and are trusted
		if col.Expression != "" {
			columns = append(columns, col.Expression)
			continue
		}
		quoted, err := quoteObject(col.Name)
		if err != nil {
			return "", err
		}
		columns = append(columns, quoted)
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("index %s has no columns", idx.Name)
	}

	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	fmt.Fprintf(&b, "INDEX %s ON %s (%s)", name, table, strings.Join(columns, ", "))

	if idx.Type != "" {
		fmt.Fprintf(&b, " INDEXTYPE IS %s.%s", idx.TypeOwner, idx.Type)
		params := strings.TrimSpace(strings.TrimSpace(idx.Parameters) + " " + strings.TrimSpace(idx.StatementParameters))
		if params != "" {
			fmt.Fprintf(&b, " PARAMETERS ('%s')", strings.ReplaceAll(params, "'", "''"))
		}
		return b.String(), nil
	}

	if idx.Tablespace != "" {
		b.WriteString(" TABLESPACE " + idx.Tablespace)
	} else {
		b.WriteString(m.Translator.TablespaceClause(dialect.KindIndex))
	}
	return b.String(), nil
}

// contextIndexParameters digs the marker comment out of the generated
// datastore procedure of a CTXSYS.CONTEXT index. The marker records the
// statement-level parameters the index was created with, which the
// dictionary itself does not keep.
func (m *Migrator) contextIndexParameters(ctx context.Context, owner, index string) (string, error) {
	procedure := schema.FoldCase(index + "_prc")

	var lines []string
	if err := m.DB.SelectContext(ctx, &lines, indexSourceSQL, owner, procedure); err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}

	source := strings.Join(lines, "")
	if match := contextParamsRe.FindStringSubmatch(source); match != nil {
		return strings.TrimSpace(match[1]), nil
	}
	return "", nil
}
