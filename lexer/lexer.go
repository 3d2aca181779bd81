// Package lexer provides a whole-input convenience over scanner.Scanner:
// where the scanner is a pull interface meant for the parser to drive
// one token at a time, Tokenize drains it eagerly into a token.Tokens
// slice for callers that want the full stream up front (the printer's
// token dump, cmd/yamlcat's --tokens view).
package lexer

import (
	"github.com/nvksv/yaml-core/scanner"
	"github.com/nvksv/yaml-core/token"
)

// Tokenize scans src to completion and returns every token produced,
// including the StreamStart/StreamEnd bookends. A scan error truncates
// the returned slice at the point of failure; the error itself is
// discarded, matching the teacher's Tokenize signature (callers who
// need the error should drive a scanner.Scanner directly).
func Tokenize(src string) token.Tokens {
	s := scanner.NewFromString(src)
	var tokens token.Tokens
	for {
		tk, err := s.Next()
		if err != nil || tk == nil {
			break
		}
		tokens.Add(tk)
	}
	return tokens
}
