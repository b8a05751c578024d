package asm

import (
	"strings"
)

// stmtKind discriminates the three statement shapes the grammar recognises.
type stmtKind int

const (
	stmtProperty stmtKind = iota
	stmtLabel
	stmtInstr
)

type statement struct {
	kind     stmtKind
	span     Span
	property string // .name / .comment
	value    string
	hasValue bool
	label    string
	mnemonic string
	operands []string
}

// lex turns source text into an ordered list of statements, stripping
// `#`-to-end-of-line comments (outside of quoted property values) and blank
// lines.
func lex(source string) ([]statement, error) {
	var stmts []statement
	lines := strings.Split(source, "\n")

	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ".") {
			stmt, err := parseProperty(trimmed, lineNo)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
			continue
		}

		line := stripComment(trimmed)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isLabelDecl(line) {
			stmts = append(stmts, statement{
				kind:  stmtLabel,
				span:  Span{Line: lineNo, Text: raw},
				label: strings.TrimSuffix(line, ":"),
			})
			continue
		}

		// A label may share its line with the instruction it labels.
		if sep := strings.IndexAny(line, " \t"); sep > 0 && isLabelDecl(line[:sep]) {
			stmts = append(stmts, statement{
				kind:  stmtLabel,
				span:  Span{Line: lineNo, Text: raw},
				label: strings.TrimSuffix(line[:sep], ":"),
			})
			line = strings.TrimSpace(line[sep:])
		}

		stmt, err := parseInstrLine(line, lineNo, raw)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func isLabelDecl(line string) bool {
	if !strings.HasSuffix(line, ":") {
		return false
	}
	ident := strings.TrimSuffix(line, ":")
	return ident != "" && !strings.ContainsAny(ident, " \t,")
}

func parseProperty(trimmed string, lineNo int) (statement, error) {
	span := Span{Line: lineNo, Text: trimmed}

	rest := trimmed[1:] // drop leading '.'
	nameEnd := strings.IndexAny(rest, " \t")
	var name, tail string
	if nameEnd < 0 {
		name, tail = rest, ""
	} else {
		name, tail = rest[:nameEnd], rest[nameEnd:]
	}

	tail = strings.TrimSpace(tail)
	if q := strings.IndexByte(tail, '"'); q < 0 {
		tail = strings.TrimSpace(stripComment(tail))
	} else if h := strings.IndexByte(tail[:q], '#'); h >= 0 {
		tail = strings.TrimSpace(tail[:h])
	}
	if tail == "" {
		return statement{kind: stmtProperty, span: span, property: name, hasValue: false}, nil
	}

	first := strings.IndexByte(tail, '"')
	if first < 0 {
		return statement{}, SyntaxError{Span: span, Message: "expected quoted string value"}
	}
	last := strings.IndexByte(tail[first+1:], '"')
	if last < 0 {
		return statement{}, SyntaxError{Span: span, Message: "unterminated string"}
	}
	value := tail[first+1 : first+1+last]

	return statement{kind: stmtProperty, span: span, property: name, value: value, hasValue: true}, nil
}

func parseInstrLine(line string, lineNo int, raw string) (statement, error) {
	span := Span{Line: lineNo, Text: raw}

	fields := strings.SplitN(line, " ", 2)
	mnemonic := strings.ToLower(fields[0])

	var operands []string
	if len(fields) > 1 {
		rest := strings.TrimSpace(fields[1])
		if rest != "" {
			for _, op := range strings.Split(rest, ",") {
				operands = append(operands, strings.TrimSpace(op))
			}
		}
	}

	return statement{
		kind:     stmtInstr,
		span:     span,
		mnemonic: mnemonic,
		operands: operands,
	}, nil
}
