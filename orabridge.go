// Package orabridge is an Oracle adapter core for relational ORMs. It
// bundles the pieces an ORM binds to one connection: type resolution,
// data-dictionary introspection, statement rewriting, key-strategy
// detection, error classification and LOB writing.
package orabridge

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orabridge/orabridge/dialect"
	"github.com/orabridge/orabridge/errtranslator"
	"github.com/orabridge/orabridge/lob"
	"github.com/orabridge/orabridge/logger"
	"github.com/orabridge/orabridge/migrator"
	"github.com/orabridge/orabridge/oratype"
	"github.com/orabridge/orabridge/schema"

	_ "github.com/godror/godror"
)

// DriverName is the database/sql driver the adapter opens by default.
const DriverName = "godror"

// AdapterName identifies the dialect to callers that dispatch on it.
const AdapterName = "oracle"

// Config carries the per-connection knobs. The zero value is usable.
type Config struct {
	// EmulateBooleans treats NUMBER(1) columns as booleans.
	EmulateBooleans bool
	// EmulateBooleansFromStrings treats VARCHAR2(1)/CHAR(1) columns as
	// booleans stored as 'Y'/'N' instead.
	EmulateBooleansFromStrings bool

	// DefaultTablespaces routes created objects into named tablespaces.
	DefaultTablespaces map[dialect.ObjectKind]string

	// SequenceStart seeds recreated primary-key sequences on empty tables.
	// Zero means start with 1.
	SequenceStart int64

	// ServerVersion skips version detection when set, e.g. "12.1". Useful
	// against gateways that reject the version queries.
	ServerVersion string

	// LOBTransport acquires writable LOB locators from the driver. LOB
	// writes fail until one is configured.
	LOBTransport lob.Transport

	// Serialize dumps values of serialized columns before a LOB write.
	Serialize func(column schema.ColumnDescriptor, value interface{}) (string, error)

	Logger logger.Interface
}

// Adapter binds the dialect components to one open connection pool.
type Adapter struct {
	db      *sqlx.DB
	cfg     Config
	log     logger.Interface
	version ServerVersion

	types      *oratype.Registry
	translator dialect.Translator
	errs       errtranslator.OracleErrTranslator
	migrator   *migrator.Migrator
	lobs       *lob.Coordinator
}

// Open opens a godror connection pool for dsn and binds an Adapter to it.
func Open(dsn string, cfg Config) (*Adapter, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open oracle connection: %w", err)
	}
	return New(db, cfg)
}

// New binds an Adapter to an already open pool. The pool is probed once
// for the server version; detection failures are logged and the adapter
// falls back to the legacy pagination dialect.
func New(db *sql.DB, cfg Config) (*Adapter, error) {
	if db == nil {
		return nil, fmt.Errorf("orabridge: nil *sql.DB")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default
	}

	a := &Adapter{
		db:  sqlx.NewDb(db, DriverName),
		cfg: cfg,
		log: cfg.Logger,
		types: oratype.NewRegistry(oratype.Config{
			EmulateBooleans:            cfg.EmulateBooleans,
			EmulateBooleansFromStrings: cfg.EmulateBooleansFromStrings,
		}),
	}
	a.version = a.detectVersion(context.Background())
	a.translator = dialect.Translator{
		UseFetchFirst:      a.version.SupportsFetchFirst(),
		DefaultTablespaces: cfg.DefaultTablespaces,
	}
	a.migrator = migrator.New(migrator.Config{
		DB:            a.db,
		Logger:        a.log,
		Types:         a.types,
		Translator:    a.translator,
		SequenceStart: cfg.SequenceStart,
	})
	a.lobs = &lob.Coordinator{
		Transport: cfg.LOBTransport,
		Logger:    a.log,
		Serialize: cfg.Serialize,
	}
	return a, nil
}

// Name returns the dialect name.
func (a *Adapter) Name() string {
	return AdapterName
}

// DB exposes the wrapped pool.
func (a *Adapter) DB() *sqlx.DB {
	return a.db
}

// ServerVersion is the version detected (or configured) at bind time.
func (a *Adapter) ServerVersion() ServerVersion {
	return a.version
}

// Types is the connection's type registry.
func (a *Adapter) Types() *oratype.Registry {
	return a.types
}

// Migrator is the connection's dictionary introspector.
func (a *Adapter) Migrator() *migrator.Migrator {
	return a.migrator
}

// Translator is the connection's statement rewriter.
func (a *Adapter) Translator() dialect.Translator {
	return a.translator
}

// detectVersion reads the server version from the catalog, preferring
// PRODUCT_COMPONENT_VERSION and falling back to V$VERSION for accounts
// without access to it. A configured ServerVersion short-circuits both.
func (a *Adapter) detectVersion(ctx context.Context) ServerVersion {
	if a.cfg.ServerVersion != "" {
		v, err := ParseServerVersion(a.cfg.ServerVersion)
		if err == nil {
			return v
		}
		a.log.Warn(ctx, "configured server version %q is unparsable: %v", a.cfg.ServerVersion, err)
	}

	var banner string
	err := a.db.QueryRowContext(ctx,
		"SELECT VERSION FROM PRODUCT_COMPONENT_VERSION WHERE PRODUCT LIKE 'Oracle%'").Scan(&banner)
	if err != nil {
		err = a.db.QueryRowContext(ctx,
			"SELECT BANNER FROM V$VERSION WHERE BANNER LIKE 'Oracle%'").Scan(&banner)
	}
	if err == nil {
		if v, perr := ParseServerVersion(banner); perr == nil {
			return v
		}
	}

	a.log.Warn(ctx, "could not detect server version, assuming legacy pagination: %v", err)
	return ServerVersion{}
}

// Active reports whether the connection answers a trivial query. Errors
// are swallowed: an unreachable server is simply not active.
func (a *Adapter) Active(ctx context.Context) bool {
	var one int
	return a.db.QueryRowContext(ctx, "SELECT 1 "+SelectFromDummyTable()).Scan(&one) == nil
}

// TranslateErr maps a driver error into the structured taxonomy. Unknown
// codes pass through unchanged.
func (a *Adapter) TranslateErr(err error) error {
	return a.errs.Translate(err)
}

// Explain renders sql with its bind values inlined, for logging only.
func (a *Adapter) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, logger.OraBindVarRegexp, `'`, vars...)
}

// WriteLOBs streams changed LOB values into the identified row. It
// requires a configured LOBTransport.
func (a *Adapter) WriteLOBs(ctx context.Context, table, keyColumn string, key interface{}, changes []lob.Change) error {
	if a.cfg.LOBTransport == nil {
		return fmt.Errorf("orabridge: no LOB transport configured")
	}
	return a.lobs.WriteChanged(ctx, table, keyColumn, key, changes)
}
