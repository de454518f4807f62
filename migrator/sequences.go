package migrator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orabridge/orabridge/schema"
)

// KeyStrategy describes how a table's surrogate key is produced at insert
// time. The dialect has no insert-time auto-increment that returns the
// key, so sequence-backed keys must be prefetched client side.
type KeyStrategy int

const (
	// NoKey the table has no primary key at all
	NoKey KeyStrategy = iota
	// TriggerPopulated a database trigger fills the key, never prefetch
	TriggerPopulated
	// SequencePrefetch fetch NEXTVAL before building the insert
	SequencePrefetch
)

func (s KeyStrategy) String() string {
	switch s {
	case TriggerPopulated:
		return "trigger-populated"
	case SequencePrefetch:
		return "sequence-prefetch"
	default:
		return "no-key"
	}
}

// ResolveKeyStrategy decides the strategy for a table. A binding already
// marked trigger-populated short-circuits the catalog lookups entirely.
func (m *Migrator) ResolveKeyStrategy(ctx context.Context, table string, binding *schema.SequenceBinding) (KeyStrategy, error) {
	if binding != nil && binding.TriggerPopulated {
		return TriggerPopulated, nil
	}

	column, err := m.PrimaryKey(ctx, table)
	if err != nil {
		return NoKey, err
	}
	if column == "" {
		return NoKey, nil
	}

	triggered, err := m.hasEnabledKeyTrigger(ctx, table)
	if err != nil {
		return NoKey, err
	}
	return resolveStrategy(binding, column, triggered), nil
}

// resolveStrategy applies the decision order: an explicit trigger-populated
// binding wins, a missing key column means no strategy, and an enabled key
// trigger beats client-side prefetching.
func resolveStrategy(binding *schema.SequenceBinding, keyColumn string, triggered bool) KeyStrategy {
	if binding != nil && binding.TriggerPopulated {
		return TriggerPopulated
	}
	if keyColumn == "" {
		return NoKey
	}
	if triggered {
		return TriggerPopulated
	}
	return SequencePrefetch
}

// hasEnabledKeyTrigger looks for the conventional key-population trigger,
// `<table>_pkt`, in enabled state.
func (m *Migrator) hasEnabledKeyTrigger(ctx context.Context, table string) (bool, error) {
	ref, err := m.resolveLocal(ctx, table)
	if err != nil {
		return false, err
	}

	trigger := schema.FoldCase(schema.DefaultTriggerName(schema.Presentable(ref.Name)))

	var count int
	err = m.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ALL_TRIGGERS
		  WHERE OWNER = :1 AND TABLE_NAME = :2 AND TRIGGER_NAME = :3 AND STATUS = 'ENABLED'`,
		ref.Owner, ref.Name, trigger).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasSequence checks sequence existence in the current schema.
func (m *Migrator) HasSequence(ctx context.Context, sequence string) (bool, error) {
	owner, err := m.CurrentSchema(ctx)
	if err != nil {
		return false, err
	}
	return m.hasSequence(ctx, owner, schema.FoldCase(sequence))
}

func (m *Migrator) hasSequence(ctx context.Context, owner, sequence string) (bool, error) {
	var count int
	err := m.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ALL_SEQUENCES WHERE SEQUENCE_OWNER = :1 AND SEQUENCE_NAME = :2",
		owner, sequence).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequenceValue prefetches the next key from a sequence.
func (m *Migrator) NextSequenceValue(ctx context.Context, sequence string) (int64, error) {
	name, err := quoteObject(sequence)
	if err != nil {
		return 0, err
	}

	var next int64
	err = m.DB.QueryRowContext(ctx, fmt.Sprintf("SELECT %s.NEXTVAL FROM DUAL", name)).Scan(&next)
	return next, err
}

// ResetPKSequence drops and recreates the table's key sequence so it
// continues above the highest existing key. The drop/recreate pair is not
// atomic: a concurrent insert in the gap can take a key the recreated
// sequence will hand out again. Operators must quiesce writers first.
func (m *Migrator) ResetPKSequence(ctx context.Context, table, column, sequence string) error {
	tableName, err := quoteObject(table)
	if err != nil {
		return err
	}
	columnName, err := quoteObject(column)
	if err != nil {
		return err
	}
	sequenceName, err := quoteObject(sequence)
	if err != nil {
		return err
	}

	var maxKey sql.NullInt64
	if err := m.DB.QueryRowContext(ctx,
		fmt.Sprintf("SELECT MAX(%s) FROM %s", columnName, tableName)).Scan(&maxKey); err != nil {
		return err
	}

	start := m.SequenceStart
	if start <= 0 {
		start = 1
	}
	if maxKey.Valid {
		start = maxKey.Int64 + 1
	}

	m.Logger.Warn(ctx, "resetting sequence %s to %d; concurrent inserts on %s are unprotected during the reset",
		sequenceName, start, tableName)

	if _, err := m.DB.ExecContext(ctx, fmt.Sprintf("DROP SEQUENCE %s", sequenceName)); err != nil {
		return err
	}
	_, err = m.DB.ExecContext(ctx,
		fmt.Sprintf("CREATE SEQUENCE %s START WITH %d NOCACHE", sequenceName, start))
	return err
}
