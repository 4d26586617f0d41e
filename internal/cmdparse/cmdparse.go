// Package cmdparse splits shell command lines just far enough to find the
// program each segment runs. It understands pipes, && / || chains, semicolons,
// single and double quotes, and backslash escapes; nothing else.
package cmdparse

import "strings"

// Segment is one simple command of a pipeline or chain.
type Segment struct {
	Command string   // program name with quotes removed (e.g. "kubectl")
	Args    []string // remaining words, quotes removed
	Raw     string   // trimmed source text of the segment
}

// Parse splits line into Segments on unquoted |, ||, && and ;. Empty segments
// are dropped. Leading VAR=value assignments are not treated as the command.
func Parse(line string) []Segment {
	var segs []Segment
	for _, raw := range split(line) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		words := words(raw)
		for len(words) > 0 && isAssignment(words[0]) {
			words = words[1:]
		}
		seg := Segment{Raw: raw}
		if len(words) > 0 {
			seg.Command = words[0]
			seg.Args = words[1:]
		}
		segs = append(segs, seg)
	}
	return segs
}

// CommandName returns the program the first segment of line runs, or "" if
// there is none.
func CommandName(line string) string {
	for _, seg := range Parse(line) {
		if seg.Command != "" {
			return seg.Command
		}
	}
	return ""
}

// quoteState tracks quoting while scanning a command line byte by byte.
type quoteState struct {
	single, double, escaped bool
}

// step consumes ch and reports whether it is literal text outside any quote
// or escape (and therefore eligible to be an operator or separator).
func (q *quoteState) step(ch byte) (bare bool) {
	switch {
	case q.escaped:
		q.escaped = false
		return false
	case ch == '\\' && !q.single:
		q.escaped = true
		return false
	case ch == '\'' && !q.double:
		q.single = !q.single
		return false
	case ch == '"' && !q.single:
		q.double = !q.double
		return false
	}
	return !q.single && !q.double
}

// split cuts line at unquoted control operators.
func split(line string) []string {
	var parts []string
	var q quoteState
	start := 0
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if !q.step(ch) {
			continue
		}
		switch {
		case ch == ';', ch == '|' && !(i+1 < len(line) && line[i+1] == '|'):
			parts = append(parts, line[start:i])
			start = i + 1
		case (ch == '|' || ch == '&') && i+1 < len(line) && line[i+1] == ch:
			parts = append(parts, line[start:i])
			i++
			start = i + 1
		}
	}
	return append(parts, line[start:])
}

// words splits a segment on unquoted blanks and strips the quoting.
func words(s string) []string {
	var out []string
	var cur strings.Builder
	var q quoteState
	inWord := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		wasEscaped, wasQuoted := q.escaped, q.single || q.double
		bare := q.step(ch)
		switch {
		case bare && (ch == ' ' || ch == '\t'):
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		case wasEscaped:
			cur.WriteByte(ch)
			inWord = true
		case ch == '\\' && q.escaped:
			inWord = true
		case (ch == '\'' || ch == '"') && (q.single || q.double) != wasQuoted:
			inWord = true
		default:
			cur.WriteByte(ch)
			inWord = true
		}
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out
}

// isAssignment reports whether w looks like NAME=value.
func isAssignment(w string) bool {
	eq := strings.IndexByte(w, '=')
	if eq <= 0 {
		return false
	}
	for i := 0; i < eq; i++ {
		c := w[i]
		if c != '_' && (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return true
}
