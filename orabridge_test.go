package orabridge

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orabridge/orabridge/dialect"
	"github.com/orabridge/orabridge/errtranslator"
	"github.com/orabridge/orabridge/logger"
	"github.com/orabridge/orabridge/oratype"
)

func testAdapter(t *testing.T, cfg Config) *Adapter {
	t.Helper()
	db, err := sql.Open(DriverName, "scott/tiger@localhost:1521/XEPDB1")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if cfg.ServerVersion == "" {
		// pin the version so binding does not probe the (absent) server
		cfg.ServerVersion = "12.2.0.1.0"
	}
	cfg.Logger = logger.Discard

	a, err := New(db, cfg)
	require.NoError(t, err)
	return a
}

func TestNewRejectsNilDB(t *testing.T) {
	_, err := New(nil, Config{})
	assert.Error(t, err)
}

func TestAdapterName(t *testing.T) {
	a := testAdapter(t, Config{})
	assert.Equal(t, "oracle", a.Name())
}

func TestAdapterPinnedVersionDrivesDialect(t *testing.T) {
	a := testAdapter(t, Config{ServerVersion: "11.2.0.4.0"})
	assert.Equal(t, 11, a.ServerVersion().Major)
	assert.False(t, a.Translator().UseFetchFirst)

	a = testAdapter(t, Config{ServerVersion: "19.3.0.0.0"})
	assert.True(t, a.Translator().UseFetchFirst)
}

func TestAdapterBooleanEmulationReachesRegistry(t *testing.T) {
	a := testAdapter(t, Config{EmulateBooleans: true})
	typ := a.Types().Resolve("NUMBER(1)")
	assert.Equal(t, oratype.Boolean{}, typ)
}

func TestAdapterTablespacesReachTranslator(t *testing.T) {
	a := testAdapter(t, Config{
		DefaultTablespaces: map[dialect.ObjectKind]string{dialect.KindIndex: "INDEX_TS"},
	})
	assert.Equal(t, " TABLESPACE INDEX_TS", a.Translator().TablespaceClause(dialect.KindIndex))
	assert.Empty(t, a.Translator().TablespaceClause(dialect.KindTable))
}

func TestAdapterTranslateErr(t *testing.T) {
	a := testAdapter(t, Config{})

	err := a.TranslateErr(oraError{code: 1, msg: "ORA-00001: unique constraint violated"})
	assert.IsType(t, errtranslator.ErrDuplicatedKey{}, err)

	passthrough := oraError{code: 600, msg: "ORA-00600: internal error"}
	assert.Equal(t, passthrough, a.TranslateErr(passthrough))
}

func TestAdapterExplain(t *testing.T) {
	a := testAdapter(t, Config{})

	got := a.Explain("SELECT * FROM users WHERE id = :1 AND name = :2", int64(7), "jane")
	assert.Equal(t, "SELECT * FROM users WHERE id = 7 AND name = 'jane'", got)
}

func TestWriteLOBsRequiresTransport(t *testing.T) {
	a := testAdapter(t, Config{})
	err := a.WriteLOBs(context.Background(), "articles", "id", 1, nil)
	assert.Error(t, err)
}

type oraError struct {
	code int
	msg  string
}

func (e oraError) Error() string { return e.msg }
func (e oraError) Code() int     { return e.code }
