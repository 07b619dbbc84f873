package app

import (
	"errors"
	"strings"
	"unicode"
)

// Tokenizer errors.
var (
	// ErrUnterminatedQuote is returned when a quote is not closed.
	ErrUnterminatedQuote = errors.New("no closing quotation")

	// ErrTrailingEscape is returned when a line ends in a bare backslash.
	ErrTrailingEscape = errors.New("no escaped character")
)

// Tokenize splits an input line into tokens with POSIX-shell-like rules:
// whitespace separates tokens, single quotes preserve everything
// literally, double quotes preserve whitespace while allowing \" and \\
// escapes, and a backslash outside quotes escapes the next character.
// There is no line-continuation support. An empty or all-whitespace line
// yields zero tokens.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false

	runes := []rune(line)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\\':
			i++
			if i >= len(runes) {
				return nil, ErrTrailingEscape
			}
			current.WriteRune(runes[i])
			inToken = true
			i++

		case r == '\'':
			i++
			closed := false
			for i < len(runes) {
				if runes[i] == '\'' {
					closed = true
					i++
					break
				}
				current.WriteRune(runes[i])
				i++
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}
			inToken = true

		case r == '"':
			i++
			closed := false
			for i < len(runes) {
				c := runes[i]
				if c == '"' {
					closed = true
					i++
					break
				}
				if c == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
					i++
					c = runes[i]
				}
				current.WriteRune(c)
				i++
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}
			inToken = true

		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
			i++

		default:
			current.WriteRune(r)
			inToken = true
			i++
		}
	}

	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
