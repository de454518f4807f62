// Package lob streams changed large-object values into their rows after an
// update. Oracle LOB columns are written through a locator obtained from a
// locking re-select, not through plain bind parameters.
package lob

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/orabridge/orabridge/logger"
	"github.com/orabridge/orabridge/oratype"
	"github.com/orabridge/orabridge/schema"
)

// Handle is a writable large-object locator supplied by the driver
// transport.
type Handle interface {
	io.Writer
}

// Transport performs the locking re-select and hands back a writable
// handle to the selected LOB. found is false when the row is gone, e.g.
// deleted between the triggering update and this write.
type Transport interface {
	SelectForUpdate(ctx context.Context, query string, args ...interface{}) (handle Handle, found bool, err error)
}

// Change is one updated large-object column with its new value.
type Change struct {
	Column schema.ColumnDescriptor
	Value  interface{}
}

// Coordinator writes changed LOB columns row by row. The locking read
// blocks concurrent writers to the same row until the owning transaction
// ends; that is the only synchronization this package relies on.
type Coordinator struct {
	Transport Transport
	// Logger traces every locking re-select. Nil falls back to the default.
	Logger logger.Interface
	// Serialize dumps a value whose logical type is a serializing
	// wrapper before it is written. Optional; defaults to fmt.Sprint.
	Serialize func(column schema.ColumnDescriptor, value interface{}) (string, error)
}

// WriteChanged re-selects each changed LOB column of the identified row
// for update and streams the new value into it. Blank values are skipped
// without touching the row. Returns ErrRecordNotFound when the locking
// re-select finds no row.
func (c *Coordinator) WriteChanged(ctx context.Context, table, keyColumn string, key interface{}, changes []Change) error {
	log := c.Logger
	if log == nil {
		log = logger.Default
	}

	for _, change := range changes {
		if !oratype.IsLOB(change.Column.Type) {
			continue
		}
		if isBlank(change.Value) {
			continue
		}

		data, err := c.encode(change)
		if err != nil {
			return err
		}

		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = :1 FOR UPDATE",
			schema.FoldCase(change.Column.Name), schema.FoldCase(table), schema.FoldCase(keyColumn))

		begin := time.Now()
		handle, found, err := c.Transport.SelectForUpdate(ctx, query, key)
		log.Trace(ctx, begin, func() (string, int64) { return query, -1 }, err)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("lob write on %s.%s for key %v: %w",
				table, change.Column.Name, key, logger.ErrRecordNotFound)
		}

		if _, err := handle.Write(data); err != nil {
			return fmt.Errorf("lob write on %s.%s: %w", table, change.Column.Name, err)
		}
	}
	return nil
}

// encode renders the new value with the column's binary or character
// semantics, dumping through the serializer when the logical type is a
// serializing wrapper.
func (c *Coordinator) encode(change Change) ([]byte, error) {
	value := change.Value

	if oratype.IsSerialized(change.Column.Type) {
		dump := c.Serialize
		if dump == nil {
			dump = func(_ schema.ColumnDescriptor, v interface{}) (string, error) {
				return fmt.Sprint(v), nil
			}
		}
		s, err := dump(change.Column, value)
		if err != nil {
			return nil, err
		}
		value = s
	}

	if oratype.IsCharacterLOB(change.Column.Type) {
		switch v := value.(type) {
		case string:
			return []byte(v), nil
		case []byte:
			return v, nil
		default:
			return []byte(fmt.Sprint(v)), nil
		}
	}

	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("cannot write %T into binary column %s", value, change.Column.Name)
	}
}

func isBlank(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	}
	return false
}
