package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

var normalPadding = cli.Default.Padding

// Indent indents apex log line to supplied level.
// It swaps the shared cli handler padding, so only call it from one goroutine.
func Indent(f func(s string), level int) func(string) {
	return func(s string) {
		cli.Default.Padding = normalPadding * level
		f(s)
		cli.Default.Padding = normalPadding
	}
}

// ConvertStrToInt converts an input string to uint64
func ConvertStrToInt(intStr string) (uint64, error) {
	intStr = strings.ToLower(intStr)

	if strings.ContainsAny(intStr, "xabcdef") {
		intStr = strings.ReplaceAll(intStr, "0x", "")
		intStr = strings.ReplaceAll(intStr, "x", "")
		if out, err := strconv.ParseUint(intStr, 16, 64); err == nil {
			return out, err
		}
		log.Warn("assuming given integer is in decimal")
	}
	return strconv.ParseUint(intStr, 10, 64)
}

// ParseToken parses a metadata token given as hex (0x06000001) or decimal.
func ParseToken(s string) (uint32, error) {
	v, err := ConvertStrToInt(s)
	if err != nil {
		return 0, fmt.Errorf("invalid token %q: %v", s, err)
	}
	if v > 0xFFFFFFFF {
		return 0, fmt.Errorf("invalid token %q: out of range", s)
	}
	return uint32(v), nil
}

// Pad creates left padding for printf members
func Pad(length int) string {
	if length > 0 {
		return strings.Repeat(" ", length)
	}
	return " "
}

// Unique returns the distinct strings of s, keeping the first occurrence order.
func Unique(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	var out []string
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ExpandInputs expands glob patterns in args and drops duplicates.
// Arguments without glob characters are kept as-is so missing files are reported later.
func ExpandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %v", arg, err)
		}
		if len(matches) == 0 {
			log.Warnf("No files match %s", arg)
		}
		paths = append(paths, matches...)
	}
	return Unique(paths), nil
}
