package migrator

import (
	"context"

	"github.com/orabridge/orabridge/schema"
)

const primaryKeysSQL = `
SELECT cc.COLUMN_NAME
  FROM ALL_CONSTRAINTS c
  JOIN ALL_CONS_COLUMNS cc
    ON cc.OWNER = c.OWNER AND cc.CONSTRAINT_NAME = c.CONSTRAINT_NAME
 WHERE c.OWNER = :1 AND c.TABLE_NAME = :2 AND c.CONSTRAINT_TYPE = 'P'
 ORDER BY cc.POSITION`

// PrimaryKeys returns every primary key column in constraint position
// order. Used for structural dumps; key generation uses PrimaryKey.
func (m *Migrator) PrimaryKeys(ctx context.Context, table string) ([]string, error) {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := m.DB.SelectContext(ctx, &raw, primaryKeysSQL, ref.Owner, ref.Name); err != nil {
		return nil, err
	}

	names := make([]string, len(raw))
	for i, n := range raw {
		names[i] = schema.Presentable(n)
	}
	return names, nil
}

// PrimaryKey returns the single column usable for key generation, or ""
// when the table has none.
func (m *Migrator) PrimaryKey(ctx context.Context, table string) (string, error) {
	names, err := m.PrimaryKeys(ctx, table)
	if err != nil {
		return "", err
	}
	return m.keyColumn(ctx, table, names), nil
}

// keyColumn picks the generation-usable key column out of the constraint
// columns. Composite keys are not supported for generation: the table is
// treated as keyless and a warning is emitted.
func (m *Migrator) keyColumn(ctx context.Context, table string, names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		m.Logger.Warn(ctx, "table %s has a composite primary key, ignoring it for key generation", table)
		return ""
	}
}

// PKAndSequence pairs the table's primary key column with its default
// sequence. A nil binding means no usable key; a binding with an empty
// Sequence means the key exists but no default sequence does.
func (m *Migrator) PKAndSequence(ctx context.Context, table string) (*schema.SequenceBinding, error) {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return nil, err
	}

	column, err := m.PrimaryKey(ctx, table)
	if err != nil || column == "" {
		return nil, err
	}

	binding := &schema.SequenceBinding{
		Table:  schema.Presentable(ref.Name),
		Column: column,
	}

	sequence := schema.FoldCase(schema.DefaultSequenceName(schema.Presentable(ref.Name)))
	ok, err := m.hasSequence(ctx, ref.Owner, sequence)
	if err != nil {
		return nil, err
	}
	if !ok {
		m.Logger.Warn(ctx, "table %s has no default sequence %s, inserts must supply the key", table, sequence)
		return binding, nil
	}

	binding.Sequence = schema.Presentable(sequence)
	return binding, nil
}
