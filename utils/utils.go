package utils

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

var adapterSourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get the adapter source directory with various operating systems
	adapterSourceDir = sourceDir(file)
}

func sourceDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)

	s := filepath.Dir(dir)
	if filepath.Base(s) != "orabridge" {
		s = dir
	}
	return filepath.ToSlash(s) + "/"
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	// the second caller usually from adapter internal, so set i start from 2
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if ok && (!strings.HasPrefix(file, adapterSourceDir) || strings.HasSuffix(file, "_test.go")) {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}

	return ""
}

// CallerFrame returns the first stack frame outside the adapter source tree.
func CallerFrame() (frame runtime.Frame) {
	pcs := make([]uintptr, 15)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for f, more := frames.Next(); more; f, more = frames.Next() {
		if !strings.HasPrefix(f.File, adapterSourceDir) || strings.HasSuffix(f.File, "_test.go") {
			return f
		}
		frame = f
	}
	return frame
}

// IsUnquotedIdentifierChar reports whether c may appear in an unquoted Oracle
// identifier. Unquoted identifiers are stored upper case in the data
// dictionary; an identifier containing anything else must already be quoted
// and is passed through verbatim.
func IsUnquotedIdentifierChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		unicode.IsDigit(c) || c == '_' || c == '$' || c == '#'
}

// IsUnquotedIdentifier reports whether every rune of s is valid in an
// unquoted identifier. The empty string is not an identifier.
func IsUnquotedIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !IsUnquotedIdentifierChar(c) {
			return false
		}
	}
	return true
}
