package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orabridge/orabridge/dialect"
	"github.com/orabridge/orabridge/logger"
	"github.com/orabridge/orabridge/oratype"
	"github.com/orabridge/orabridge/schema"
)

type warnRecorder struct {
	logger.Interface
	warnings []string
}

func (l *warnRecorder) Warn(_ context.Context, msg string, data ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(msg, data...))
}

func nullStr(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }
func nullInt(n int64) sql.NullInt64   { return sql.NullInt64{Int64: n, Valid: true} }

func testMigrator() *Migrator {
	return New(Config{Types: oratype.NewRegistry(oratype.Config{EmulateBooleans: true})})
}

func TestAssembleColumns(t *testing.T) {
	m := testMigrator()

	rows := []columnRow{
		{ColumnName: "ID", DataType: "NUMBER", DataPrecision: nullInt(10), DataScale: nullInt(0), Nullable: "N", VirtualColumn: "NO"},
		{ColumnName: "NAME", DataType: "VARCHAR2", DataLength: nullInt(50), Nullable: "Y", VirtualColumn: "NO",
			DataDefault: nullStr("'unknown'"), Comments: nullStr("display name")},
		{ColumnName: "ACTIVE", DataType: "NUMBER", DataPrecision: nullInt(1), DataScale: nullInt(0), Nullable: "Y", VirtualColumn: "NO"},
		{ColumnName: "FULL_NAME", DataType: "VARCHAR2", DataLength: nullInt(101), Nullable: "Y", VirtualColumn: "YES"},
	}

	columns := m.assembleColumns(rows)
	require.Len(t, columns, 4)

	id := columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "NUMBER(10,0)", id.SQLType)
	assert.Equal(t, oratype.Integer{Precision: 10}, id.Type)
	assert.False(t, id.Nullable)
	require.NotNil(t, id.Scale)
	assert.Equal(t, 0, *id.Scale)

	name := columns[1]
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, "VARCHAR2(50)", name.SQLType)
	assert.Equal(t, oratype.String{Limit: 50}, name.Type)
	assert.True(t, name.Nullable)
	assert.Equal(t, "display name", name.Comment)
	got, ok := name.DefaultString()
	require.True(t, ok)
	assert.Equal(t, "unknown", got)

	active := columns[2]
	assert.Equal(t, oratype.Boolean{}, active.Type)

	assert.True(t, columns[3].Virtual)
}

func TestNativeTypeString(t *testing.T) {
	tests := []struct {
		name string
		row  columnRow
		want string
	}{
		{"number with precision and scale", columnRow{DataType: "NUMBER", DataPrecision: nullInt(10), DataScale: nullInt(2)}, "NUMBER(10,2)"},
		{"number precision only", columnRow{DataType: "NUMBER", DataPrecision: nullInt(5)}, "NUMBER(5)"},
		{"number star scale zero", columnRow{DataType: "NUMBER", DataScale: nullInt(0)}, "NUMBER(*,0)"},
		{"bare number", columnRow{DataType: "NUMBER"}, "NUMBER"},
		{"varchar2", columnRow{DataType: "VARCHAR2", DataLength: nullInt(30)}, "VARCHAR2(30)"},
		{"raw", columnRow{DataType: "RAW", DataLength: nullInt(16)}, "RAW(16)"},
		{"timestamp tz", columnRow{DataType: "TIMESTAMP(6) WITH TIME ZONE"}, "TIMESTAMP(6) WITH TIME ZONE"},
		{"clob", columnRow{DataType: "CLOB", DataLength: nullInt(4000)}, "CLOB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nativeTypeString(tt.row))
		})
	}
}

func TestAssembleIndexesDeduplicates(t *testing.T) {
	// 5 catalog rows spanning 2 indexes with 3 and 2 columns
	rows := []indexRow{
		{IndexName: "IDX_A", Uniqueness: "NONUNIQUE", ColumnName: "C1"},
		{IndexName: "IDX_A", Uniqueness: "NONUNIQUE", ColumnName: "C2"},
		{IndexName: "IDX_A", Uniqueness: "NONUNIQUE", ColumnName: "C3"},
		{IndexName: "IDX_B", Uniqueness: "UNIQUE", ColumnName: "C1"},
		{IndexName: "IDX_B", Uniqueness: "UNIQUE", ColumnName: "C4"},
	}

	indexes := assembleIndexes("users", rows, nil)
	require.Len(t, indexes, 2)

	assert.Equal(t, "idx_a", indexes[0].Name)
	assert.False(t, indexes[0].Unique)
	assert.Len(t, indexes[0].Columns, 3)
	assert.Equal(t, "c2", indexes[0].Columns[1].Name)

	assert.Equal(t, "idx_b", indexes[1].Name)
	assert.True(t, indexes[1].Unique)
	assert.Len(t, indexes[1].Columns, 2)
}

func TestAssembleIndexesFunctionalColumns(t *testing.T) {
	rows := []indexRow{
		{IndexName: "IDX_UPPER", Uniqueness: "NONUNIQUE", ColumnName: "SYS_NC00005$",
			ColumnExpression: nullStr(`UPPER("NAME")`)},
		{IndexName: "IDX_VCOL", Uniqueness: "NONUNIQUE", ColumnName: "FULL_NAME",
			ColumnExpression: nullStr(`"FIRST"||' '||"LAST"`)},
	}
	virtual := map[string]bool{"full_name": true}

	indexes := assembleIndexes("users", rows, virtual)
	require.Len(t, indexes, 2)

	// plain functional entry keeps its expression text
	assert.Equal(t, schema.IndexColumn{Expression: `UPPER("NAME")`}, indexes[0].Columns[0])
	// named virtual column entry uses the column name: recreating the
	// index from the re-derived expression is rejected by the server
	assert.Equal(t, schema.IndexColumn{Name: "full_name"}, indexes[1].Columns[0])
}

func TestAssembleIndexesDomainMetadata(t *testing.T) {
	rows := []indexRow{
		{IndexName: "IDX_TEXT", Uniqueness: "NONUNIQUE", IndexType: "DOMAIN",
			ItypOwner: nullStr("CTXSYS"), ItypName: nullStr("CONTEXT"),
			Parameters: nullStr("SYNC (ON COMMIT)"), ColumnName: "BODY"},
		{IndexName: "IDX_TS", Uniqueness: "NONUNIQUE", TablespaceName: nullStr("INDEX_TS"), ColumnName: "C1"},
	}

	indexes := assembleIndexes("articles", rows, nil)
	require.Len(t, indexes, 2)

	assert.Equal(t, "CTXSYS", indexes[0].TypeOwner)
	assert.Equal(t, "CONTEXT", indexes[0].Type)
	assert.Equal(t, "SYNC (ON COMMIT)", indexes[0].Parameters)
	assert.Empty(t, indexes[0].Tablespace)

	assert.Equal(t, "INDEX_TS", indexes[1].Tablespace)
}

func TestContextParamsPattern(t *testing.T) {
	source := `procedure idx_text_prc(rid in rowid, tlob in out nocopy clob) is
begin
  -- add_context_index_parameters transactional sync(on commit)
  null;
end;`

	match := contextParamsRe.FindStringSubmatch(source)
	require.NotNil(t, match)
	assert.Equal(t, "transactional sync(on commit)", match[1])
}

func TestAssembleSynonyms(t *testing.T) {
	rows := []synonymRow{
		{SynonymName: "EMP", TableOwner: nullStr("HR"), TableName: "EMPLOYEES"},
		{SynonymName: "RWHO", TableOwner: nullStr("SYS"), TableName: "V_$SESSION", DBLink: nullStr("REMOTE")},
	}

	synonyms := assembleSynonyms(rows)
	require.Len(t, synonyms, 2)
	assert.Equal(t, schema.SynonymDescriptor{Name: "emp", TableOwner: "hr", TableName: "employees"}, synonyms[0])
	assert.Equal(t, "REMOTE", synonyms[1].DBLink)
}

func TestQuoteObject(t *testing.T) {
	got, err := quoteObject("users_seq")
	require.NoError(t, err)
	assert.Equal(t, "USERS_SEQ", got)

	_, err = quoteObject("users_seq; DROP TABLE users")
	assert.Error(t, err)
}

func TestKeyColumn(t *testing.T) {
	t.Run("single column", func(t *testing.T) {
		log := &warnRecorder{Interface: logger.Discard}
		m := New(Config{Logger: log})
		assert.Equal(t, "id", m.keyColumn(context.Background(), "users", []string{"id"}))
		assert.Empty(t, log.warnings)
	})

	t.Run("no key", func(t *testing.T) {
		log := &warnRecorder{Interface: logger.Discard}
		m := New(Config{Logger: log})
		assert.Equal(t, "", m.keyColumn(context.Background(), "users", nil))
		assert.Empty(t, log.warnings)
	})

	t.Run("composite key warns and yields keyless", func(t *testing.T) {
		log := &warnRecorder{Interface: logger.Discard}
		m := New(Config{Logger: log})
		got := m.keyColumn(context.Background(), "order_lines", []string{"order_id", "line_no"})
		assert.Equal(t, "", got)
		require.Len(t, log.warnings, 1)
		assert.Contains(t, log.warnings[0], "composite primary key")
		assert.Contains(t, log.warnings[0], "order_lines")
	})
}

func TestResolveStrategy(t *testing.T) {
	tests := []struct {
		name      string
		binding   *schema.SequenceBinding
		keyColumn string
		triggered bool
		want      KeyStrategy
	}{
		{"no key at all", nil, "", false, NoKey},
		{"plain key prefetches", nil, "id", false, SequencePrefetch},
		{"enabled trigger wins over prefetch", nil, "id", true, TriggerPopulated},
		{"trigger-marked binding short-circuits", &schema.SequenceBinding{TriggerPopulated: true}, "", false, TriggerPopulated},
		{"binding without the mark defers to the catalog", &schema.SequenceBinding{Sequence: "users_seq"}, "id", false, SequencePrefetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveStrategy(tt.binding, tt.keyColumn, tt.triggered))
		})
	}
}

func TestResolveKeyStrategyTriggerMarkSkipsCatalog(t *testing.T) {
	// no DB configured: any catalog access would panic
	m := New(Config{Logger: logger.Discard})

	got, err := m.ResolveKeyStrategy(context.Background(), "users",
		&schema.SequenceBinding{Table: "users", Column: "id", TriggerPopulated: true})
	require.NoError(t, err)
	assert.Equal(t, TriggerPopulated, got)
}

func TestCreateIndexSQL(t *testing.T) {
	m := New(Config{Translator: dialect.Translator{
		DefaultTablespaces: map[dialect.ObjectKind]string{dialect.KindIndex: "INDEX_TS"},
	}})

	t.Run("plain", func(t *testing.T) {
		got, err := m.CreateIndexSQL(schema.IndexDescriptor{
			Table: "users", Name: "idx_users_name",
			Columns: []schema.IndexColumn{{Name: "name"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "CREATE INDEX IDX_USERS_NAME ON USERS (NAME) TABLESPACE INDEX_TS", got)
	})

	t.Run("unique with explicit tablespace", func(t *testing.T) {
		got, err := m.CreateIndexSQL(schema.IndexDescriptor{
			Table: "users", Name: "idx_users_email", Unique: true,
			Columns:    []schema.IndexColumn{{Name: "email"}},
			Tablespace: "HOT_TS",
		})
		require.NoError(t, err)
		assert.Equal(t, "CREATE UNIQUE INDEX IDX_USERS_EMAIL ON USERS (EMAIL) TABLESPACE HOT_TS", got)
	})

	t.Run("no configured default omits the clause", func(t *testing.T) {
		bare := New(Config{})
		got, err := bare.CreateIndexSQL(schema.IndexDescriptor{
			Table: "users", Name: "idx_users_name",
			Columns: []schema.IndexColumn{{Name: "name"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "CREATE INDEX IDX_USERS_NAME ON USERS (NAME)", got)
	})

	t.Run("functional expression passes through", func(t *testing.T) {
		got, err := m.CreateIndexSQL(schema.IndexDescriptor{
			Table: "users", Name: "idx_upper",
			Columns: []schema.IndexColumn{{Expression: `UPPER("NAME")`}},
		})
		require.NoError(t, err)
		assert.Equal(t, `CREATE INDEX IDX_UPPER ON USERS (UPPER("NAME")) TABLESPACE INDEX_TS`, got)
	})

	t.Run("domain index carries recovered parameters", func(t *testing.T) {
		got, err := m.CreateIndexSQL(schema.IndexDescriptor{
			Table: "articles", Name: "idx_text",
			Columns:             []schema.IndexColumn{{Name: "body"}},
			Type:                "CONTEXT",
			TypeOwner:           "CTXSYS",
			Parameters:          "SYNC (ON COMMIT)",
			StatementParameters: "transactional",
		})
		require.NoError(t, err)
		assert.Equal(t,
			"CREATE INDEX IDX_TEXT ON ARTICLES (BODY) INDEXTYPE IS CTXSYS.CONTEXT PARAMETERS ('SYNC (ON COMMIT) transactional')",
			got)
	})

	t.Run("unsafe name is rejected", func(t *testing.T) {
		_, err := m.CreateIndexSQL(schema.IndexDescriptor{
			Table: "users; DROP TABLE users", Name: "idx",
			Columns: []schema.IndexColumn{{Name: "name"}},
		})
		assert.Error(t, err)
	})

	t.Run("no columns is rejected", func(t *testing.T) {
		_, err := m.CreateIndexSQL(schema.IndexDescriptor{Table: "users", Name: "idx"})
		assert.Error(t, err)
	})
}

func TestKeyStrategyString(t *testing.T) {
	assert.Equal(t, "no-key", NoKey.String())
	assert.Equal(t, "trigger-populated", TriggerPopulated.String())
	assert.Equal(t, "sequence-prefetch", SequencePrefetch.String())
}
