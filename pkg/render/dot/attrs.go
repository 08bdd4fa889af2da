package dot

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// attrs is an ordered DOT attribute list. Empty values are dropped so a
// theme can leave any colour or font unset.
type attrs []string

func (a attrs) set(key, value string) attrs {
	if value == "" {
		return a
	}
	return append(a, key+"="+quote(value))
}

func (a attrs) setFloat(key string, value float64) attrs {
	if value == 0 {
		return a
	}
	return a.set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

func (a attrs) setInt(key string, value int) attrs {
	if value == 0 {
		return a
	}
	return a.set(key, strconv.Itoa(value))
}

func (a attrs) String() string { return strings.Join(a, ", ") }

// writeStmts writes each attribute as its own graph-level statement.
func (a attrs) writeStmts(buf *bytes.Buffer, indent string) {
	for _, kv := range a {
		fmt.Fprintf(buf, "%s%s;\n", indent, kv)
	}
}

// quote renders s as a DOT double-quoted string.
func quote(s string) string {
	return `"` + escape(s, "") + `"`
}

// recordField escapes s for use inside a record label, where braces, bars
// and angle brackets are structural.
func recordField(s string) string {
	return escape(s, `{}|<>`)
}

// escape backslash-escapes quotes, backslashes and the given specials and
// turns newlines into the \n line break. Input that is already escaped is
// not special-cased, so escape must run exactly once per label fragment.
func escape(s, specials string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '"' || r == '\\' || strings.ContainsRune(specials, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// rawQuote quotes a label fragment that has already been escaped.
func rawQuote(s string) string { return `"` + s + `"` }

func (a attrs) setRaw(key, escaped string) attrs {
	return append(a, key+"="+rawQuote(escaped))
}
