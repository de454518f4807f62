package errtranslator

import "fmt"

// ErrTranslator turns driver level errors into the adapter's structured
// taxonomy. Codes outside the table pass through unchanged.
type ErrTranslator interface {
	Translate(err error) error
}

// ErrDuplicatedKey unique constraint violated (ORA-00001)
type ErrDuplicatedKey struct {
	Code    int
	Message string
}

func (e ErrDuplicatedKey) Error() string {
	return fmt.Sprintf("duplicated key not allowed, code: %v, message: %s", e.Code, e.Message)
}

// ErrNotNullViolation mandatory column set to NULL (ORA-01400)
type ErrNotNullViolation struct {
	Code    int
	Message string
}

func (e ErrNotNullViolation) Error() string {
	return fmt.Sprintf("not null constraint violated, code: %v, message: %s", e.Code, e.Message)
}

// ErrForeignKeyViolated integrity constraint violated, parent key not found (ORA-02291)
type ErrForeignKeyViolated struct {
	Code    int
	Message string
}

func (e ErrForeignKeyViolated) Error() string {
	return fmt.Sprintf("foreign key constraint violated, code: %v, message: %s", e.Code, e.Message)
}

// ErrValueTooLong value larger than the column allows (ORA-12899)
type ErrValueTooLong struct {
	Code    int
	Message string
}

func (e ErrValueTooLong) Error() string {
	return fmt.Sprintf("value too long for column, code: %v, message: %s", e.Code, e.Message)
}

// ErrStatementInvalid malformed SQL or missing object; covers the
// invalid-identifier, missing-relation and invalid-cursor code family.
type ErrStatementInvalid struct {
	Code    int
	Message string
}

func (e ErrStatementInvalid) Error() string {
	return fmt.Sprintf("statement invalid, code: %v, message: %s", e.Code, e.Message)
}

// ErrConnection the session or transport was lost
type ErrConnection struct {
	Code    int
	Message string
}

func (e ErrConnection) Error() string {
	return fmt.Sprintf("connection lost, code: %v, message: %s", e.Code, e.Message)
}
