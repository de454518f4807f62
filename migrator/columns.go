package migrator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orabridge/orabridge/schema"
)

// System-generated hidden columns never surface as descriptors, so the
// dictionary query filters them out and keeps the catalog ordinal order.
const columnsSQL = `
SELECT c.COLUMN_NAME, c.DATA_TYPE, c.DATA_TYPE_OWNER, c.DATA_LENGTH, c.CHAR_USED,
       c.DATA_PRECISION, c.DATA_SCALE, c.NULLABLE, c.DATA_DEFAULT, c.VIRTUAL_COLUMN,
       cc.COMMENTS
  FROM ALL_TAB_COLS c
  LEFT JOIN ALL_COL_COMMENTS cc
    ON cc.OWNER = c.OWNER AND cc.TABLE_NAME = c.TABLE_NAME AND cc.COLUMN_NAME = c.COLUMN_NAME
 WHERE c.OWNER = :1 AND c.TABLE_NAME = :2 AND c.HIDDEN_COLUMN = 'NO'
 ORDER BY c.COLUMN_ID`

type columnRow struct {
	ColumnName    string         `db:"COLUMN_NAME"`
	DataType      string         `db:"DATA_TYPE"`
	DataTypeOwner sql.NullString `db:"DATA_TYPE_OWNER"`
	DataLength    sql.NullInt64  `db:"DATA_LENGTH"`
	CharUsed      sql.NullString `db:"CHAR_USED"`
	DataPrecision sql.NullInt64  `db:"DATA_PRECISION"`
	DataScale     sql.NullInt64  `db:"DATA_SCALE"`
	Nullable      string         `db:"NULLABLE"`
	DataDefault   sql.NullString `db:"DATA_DEFAULT"`
	VirtualColumn string         `db:"VIRTUAL_COLUMN"`
	Comments      sql.NullString `db:"COMMENTS"`
}

// Columns returns the table's column descriptors in catalog ordinal order.
func (m *Migrator) Columns(ctx context.Context, table string) ([]schema.ColumnDescriptor, error) {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return nil, err
	}

	var rows []columnRow
	if err := m.DB.SelectContext(ctx, &rows, columnsSQL, ref.Owner, ref.Name); err != nil {
		return nil, err
	}

	return m.assembleColumns(rows), nil
}

func (m *Migrator) assembleColumns(rows []columnRow) []schema.ColumnDescriptor {
	columns := make([]schema.ColumnDescriptor, 0, len(rows))
	for _, row := range rows {
		sqlType := nativeTypeString(row)

		col := schema.ColumnDescriptor{
			Name:     schema.Presentable(row.ColumnName),
			SQLType:  sqlType,
			Type:     m.Types.Resolve(sqlType),
			Nullable: row.Nullable == "Y",
			Virtual:  row.VirtualColumn == "YES",
			Comment:  row.Comments.String,
		}
		if row.DataDefault.Valid {
			def := row.DataDefault.String
			col.Default = &def
		}
		if row.DataPrecision.Valid {
			col.Precision = int(row.DataPrecision.Int64)
		}
		if row.DataScale.Valid {
			scale := int(row.DataScale.Int64)
			col.Scale = &scale
		}
		if row.DataLength.Valid {
			col.Limit = int(row.DataLength.Int64)
		}
		if row.DataTypeOwner.Valid {
			col.TypeOwner = row.DataTypeOwner.String
		}
		columns = append(columns, col)
	}
	return columns
}

// nativeTypeString rebuilds the native type as it would appear in DDL,
// e.g. "NUMBER(10,2)" or "VARCHAR2(30)", which is the form the type
// registry's patterns match against.
func nativeTypeString(row columnRow) string {
	switch row.DataType {
	case "NUMBER", "DECIMAL", "NUMERIC":
		switch {
		case row.DataPrecision.Valid && row.DataScale.Valid:
			return fmt.Sprintf("%s(%d,%d)", row.DataType, row.DataPrecision.Int64, row.DataScale.Int64)
		case row.DataPrecision.Valid:
			return fmt.Sprintf("%s(%d)", row.DataType, row.DataPrecision.Int64)
		case row.DataScale.Valid && row.DataScale.Int64 == 0:
			// NUMBER(*,0): integer of unconstrained precision
			return fmt.Sprintf("%s(*,0)", row.DataType)
		default:
			return row.DataType
		}
	case "CHAR", "VARCHAR2", "NCHAR", "NVARCHAR2", "RAW":
		if row.DataLength.Valid {
			return fmt.Sprintf("%s(%d)", row.DataType, row.DataLength.Int64)
		}
		return row.DataType
	case "FLOAT":
		if row.DataPrecision.Valid {
			return fmt.Sprintf("FLOAT(%d)", row.DataPrecision.Int64)
		}
		return "FLOAT"
	default:
		// TIMESTAMP variants arrive fully spelled out, object types by name
		return row.DataType
	}
}
