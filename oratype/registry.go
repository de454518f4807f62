package oratype

import (
	"regexp"
	"strconv"
	"strings"
)

// Config holds the emulation toggles consulted during type resolution.
// The registry is constructed per adapter so two connections with different
// settings resolve independently.
type Config struct {
	// EmulateBooleans maps NUMBER(1) columns to Boolean.
	EmulateBooleans bool
	// EmulateBooleansFromStrings maps VARCHAR2(1) columns to Boolean
	// instead. Only consulted when EmulateBooleans is set.
	EmulateBooleansFromStrings bool
}

// Registry resolves native Oracle type strings into logical types. Patterns
// are evaluated in a fixed precedence order: timezone qualified timestamps
// before plain TIMESTAMP, national character types before the generic
// character types, and the boolean emulations before the numeric and string
// families they would otherwise fall into.
type Registry struct {
	cfg     Config
	entries []entry
}

type entry struct {
	pattern *regexp.Regexp
	build   func(native string, m []string) Type
}

var (
	numberRe   = regexp.MustCompile(`(?i)^(?:NUMBER|DECIMAL|NUMERIC)\s*(?:\((\*|\d+)\s*(?:,\s*(-?\d+)\s*)?\))?$`)
	limitRe    = regexp.MustCompile(`\((\d+)\)\s*$`)
	booleanRe  = regexp.MustCompile(`(?i)^NUMBER\s*\(\s*1\s*\)$`)
	charBoolRe = regexp.MustCompile(`(?i)^(?:VARCHAR2|CHAR)\s*\(\s*1(?:\s+(?:BYTE|CHAR))?\s*\)$`)
)

// NewRegistry builds a registry for the given configuration.
func NewRegistry(cfg Config) *Registry {
	r := &Registry{cfg: cfg}
	r.entries = []entry{
		{re(`(?i)TIMESTAMP\s*(?:\(\d+\))?\s+WITH\s+LOCAL\s+TIME\s+ZONE`), func(string, []string) Type { return TimestampLTZ{} }},
		{re(`(?i)TIMESTAMP\s*(?:\(\d+\))?\s+WITH\s+TIME\s+ZONE`), func(string, []string) Type { return TimestampTZ{} }},
		{re(`(?i)^TIMESTAMP`), func(string, []string) Type { return DateTime{} }},
		{re(`(?i)^DATE$`), func(string, []string) Type { return DateTime{} }},
		{re(`(?i)^NCLOB$`), func(string, []string) Type { return NText{} }},
		{re(`(?i)^(?:CLOB|LONG)$`), func(string, []string) Type { return Text{} }},
		{re(`(?i)^(?:NVARCHAR2|NCHAR)`), func(native string, _ []string) Type { return NString{Limit: extractLimit(native)} }},
		{re(`(?i)^(?:VARCHAR2|VARCHAR|CHAR|CHARACTER)`), func(native string, _ []string) Type { return String{Limit: extractLimit(native)} }},
		{re(`(?i)^(?:BINARY_FLOAT|BINARY_DOUBLE|FLOAT|DOUBLE\s+PRECISION|REAL)`), func(native string, _ []string) Type { return Float{Precision: extractLimit(native)} }},
		{re(`(?i)^LONG\s+RAW$`), func(string, []string) Type { return Raw{} }},
		{re(`(?i)^RAW`), func(native string, _ []string) Type { return Raw{Limit: extractLimit(native)} }},
		{re(`(?i)^(?:BLOB|BFILE)$`), func(string, []string) Type { return Binary{} }},
		{re(`(?i)^(?:BIGINT|SMALLINT|INTEGER|INT)$`), func(native string, _ []string) Type { return Integer{Limit: extractLimit(native)} }},
	}
	return r
}

func re(expr string) *regexp.Regexp { return regexp.MustCompile(expr) }

// Resolve maps a native type string, e.g. "NUMBER(10,2)" or
// "TIMESTAMP(6) WITH TIME ZONE", to its logical type.
func (r *Registry) Resolve(native string) Type {
	native = strings.TrimSpace(native)

	if r.cfg.EmulateBooleans {
		if r.cfg.EmulateBooleansFromStrings {
			if charBoolRe.MatchString(native) {
				return Boolean{FromString: true}
			}
		} else if booleanRe.MatchString(native) {
			return Boolean{}
		}
	}

	if m := numberRe.FindStringSubmatch(native); m != nil {
		return resolveNumber(native, m[1], m[2])
	}

	for _, e := range r.entries {
		if m := e.pattern.FindStringSubmatch(native); m != nil {
			return e.build(native, m)
		}
	}

	return Unknown{Native: native}
}

// resolveNumber dispatches NUMBER family types on the extracted scale:
// an explicit zero scale is integer-like, anything else stays decimal.
func resolveNumber(native, precStr, scaleStr string) Type {
	precision := 0
	if precStr != "" && precStr != "*" {
		precision, _ = strconv.Atoi(precStr)
	}

	if scaleStr == "" {
		// no scale given: NUMBER(n) defaults to scale 0, bare NUMBER is
		// an unconstrained decimal
		if precStr == "" {
			return Decimal{}
		}
		return Integer{Precision: precision, Limit: extractLimit(native)}
	}

	scale, _ := strconv.Atoi(scaleStr)
	if scale == 0 {
		return Integer{Precision: precision, Limit: extractLimit(native)}
	}
	return Decimal{Precision: precision, Scale: scale}
}

// extractLimit pulls the byte/digit limit out of a native type string. A
// bigint style name always reports 19; otherwise a trailing parenthesized
// numeral is the limit and its absence means "no limit".
func extractLimit(native string) int {
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(native)), "bigint") {
		return 19
	}
	if m := limitRe.FindStringSubmatch(native); m != nil {
		limit, _ := strconv.Atoi(m[1])
		return limit
	}
	return 0
}
