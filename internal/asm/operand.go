package asm

import (
	"strconv"
	"strings"
)

// operandSyntax is the source-level shape of one operand, independent of
// which wire type it will ultimately fill.
type operandSyntax int

const (
	syntaxRegister operandSyntax = iota // rN
	syntaxDirect                        // %literal or %:label
	syntaxIndirect                      // bare literal or :label
)

// rawOperand is one parsed, not-yet-typed operand.
type rawOperand struct {
	syntax   operandSyntax
	register byte // valid when syntax == syntaxRegister

	isLabel bool
	label   string // valid when isLabel

	literal int64 // valid when !isLabel
}

// parseOperand classifies and parses the raw text of one operand position.
// Integer literals: an optional leading '-', then either a "0x"/"0X"
// hex run or a bare decimal run (SPEC_FULL.md §2c resolves the open
// question on hex literal convention this way).
func parseOperand(span Span, text string) (rawOperand, error) {
	if text == "" {
		return rawOperand{}, SyntaxError{Span: span, Message: "empty operand"}
	}

	switch {
	case strings.HasPrefix(text, "r"):
		n, err := strconv.ParseUint(text[1:], 10, 8)
		if err != nil {
			return rawOperand{}, SyntaxError{Span: span, Message: "invalid register " + text}
		}
		return rawOperand{syntax: syntaxRegister, register: byte(n)}, nil

	case strings.HasPrefix(text, "%:"):
		return rawOperand{syntax: syntaxDirect, isLabel: true, label: text[2:]}, nil

	case strings.HasPrefix(text, "%"):
		v, err := parseIntLiteral(text[1:])
		if err != nil {
			return rawOperand{}, SyntaxError{Span: span, Message: err.Error()}
		}
		return rawOperand{syntax: syntaxDirect, literal: v}, nil

	case strings.HasPrefix(text, ":"):
		return rawOperand{syntax: syntaxIndirect, isLabel: true, label: text[1:]}, nil

	default:
		v, err := parseIntLiteral(text)
		if err != nil {
			return rawOperand{}, SyntaxError{Span: span, Message: err.Error()}
		}
		return rawOperand{syntax: syntaxIndirect, literal: v}, nil
	}
}

func parseIntLiteral(text string) (int64, error) {
	negative := false
	if strings.HasPrefix(text, "-") {
		negative = true
		text = text[1:]
	}

	var magnitude int64
	var err error
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		var v uint64
		v, err = strconv.ParseUint(text[2:], 16, 64)
		magnitude = int64(v)
	} else {
		magnitude, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		return 0, err
	}

	if negative {
		return -magnitude, nil
	}
	return magnitude, nil
}
