package errtranslator

import (
	"regexp"
	"strconv"
)

const (
	codeUniqueViolation  = 1
	codeNotNullViolation = 1400
	codeFKViolation      = 2291
	codeValueTooLong     = 12899
)

// statementInvalidCodes is the missing-relation / invalid-identifier /
// invalid-cursor family.
var statementInvalidCodes = map[int]struct{}{
	900:  {}, // invalid SQL statement
	904:  {}, // invalid identifier
	942:  {}, // table or view does not exist
	955:  {}, // name is already used by an existing object
	1001: {}, // invalid cursor
	1418: {}, // specified index does not exist
}

// connectionCodes are errors raised when the session or its transport is gone.
var connectionCodes = map[int]struct{}{
	28:    {}, // session killed
	1012:  {}, // not logged on
	3113:  {}, // end-of-file on communication channel
	3114:  {}, // not connected to Oracle
	12528: {}, // listener blocking new connections
	12537: {}, // connection closed
	12541: {}, // no listener
}

var oraCodeRe = regexp.MustCompile(`ORA-(\d{5})`)

// OracleErrTranslator classifies ORA- error codes. The driver surfaces the
// numeric code either through a Code() accessor (godror) or only inside the
// message text, so both are consulted.
type OracleErrTranslator struct{}

type coder interface {
	Code() int
}

// ErrorCode extracts the ORA error code from err, 0 when none is found.
func ErrorCode(err error) int {
	if err == nil {
		return 0
	}
	if c, ok := err.(coder); ok {
		return c.Code()
	}
	if m := oraCodeRe.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code
	}
	return 0
}

// Translate maps err into the structured taxonomy. Unlisted codes fall
// through to the caller unchanged.
func (o *OracleErrTranslator) Translate(err error) error {
	if err == nil {
		return nil
	}

	code := ErrorCode(err)
	return o.TranslateCode(code, err)
}

// TranslateCode classifies a known numeric code, keeping err for the
// passthrough case.
func (o *OracleErrTranslator) TranslateCode(code int, err error) error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	switch code {
	case codeUniqueViolation:
		return ErrDuplicatedKey{Code: code, Message: msg}
	case codeNotNullViolation:
		return ErrNotNullViolation{Code: code, Message: msg}
	case codeFKViolation:
		return ErrForeignKeyViolated{Code: code, Message: msg}
	case codeValueTooLong:
		return ErrValueTooLong{Code: code, Message: msg}
	}

	if _, ok := statementInvalidCodes[code]; ok {
		return ErrStatementInvalid{Code: code, Message: msg}
	}
	if _, ok := connectionCodes[code]; ok {
		return ErrConnection{Code: code, Message: msg}
	}

	return err
}

// IsConnectionErr reports whether err classifies as a lost connection.
func IsConnectionErr(err error) bool {
	_, ok := connectionCodes[ErrorCode(err)]
	return ok
}
