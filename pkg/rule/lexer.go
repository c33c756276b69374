// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rule

import (
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokLBrack
	tokRBrack
	tokColon
	tokPipe
	tokNumber
	tokTrue
	tokFalse
	tokTag     // #name
	tokNumTag  // $name
	tokHashL   // #[
	tokDollarL // $[
	tokIdent
	tokNot
	tokAnd
	tokOr
	tokEq
	tokNeq
	tokLt
	tokLe
	tokGt
	tokGe
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
)

var tokenText = map[tokenKind]string{
	tokEOF:     "end of rule",
	tokLParen:  "(",
	tokRParen:  ")",
	tokLBrack:  "[",
	tokRBrack:  "]",
	tokColon:   ":",
	tokPipe:    "|",
	tokHashL:   "#[",
	tokDollarL: "$[",
	tokNot:     "!",
	tokAnd:     "&&",
	tokOr:      "||",
	tokEq:      "=",
	tokNeq:     "!=",
	tokLt:      "<",
	tokLe:      "<=",
	tokGt:      ">",
	tokGe:      ">=",
	tokPlus:    "+",
	tokMinus:   "-",
	tokStar:    "*",
	tokSlash:   "/",
	tokPercent: "%",
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokTag:
		return "#" + t.text
	case tokNumTag:
		return "$" + t.text
	case tokNumber, tokIdent, tokTrue, tokFalse:
		return t.text
	}
	return tokenText[t.kind]
}

// twoChar holds the operators that are two bytes wide. The lexer tries them
// before the one byte operators.
var twoChar = map[string]tokenKind{
	"&&": tokAnd,
	"||": tokOr,
	"!=": tokNeq,
	"<=": tokLe,
	">=": tokGe,
}

var oneChar = map[byte]tokenKind{
	'(': tokLParen,
	')': tokRParen,
	'[': tokLBrack,
	']': tokRBrack,
	':': tokColon,
	'|': tokPipe,
	'!': tokNot,
	'=': tokEq,
	'<': tokLt,
	'>': tokGt,
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'%': tokPercent,
}

// tokenize splits rule text into tokens, always ending with tokEOF.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++

		case c == '#' || c == '$':
			start := i
			i++
			if i < len(src) && src[i] == '[' {
				kind := tokHashL
				if c == '$' {
					kind = tokDollarL
				}
				toks = append(toks, token{kind: kind, pos: start})
				i++
				continue
			}
			if i >= len(src) || !isIdentStart(src[i]) {
				return nil, syntaxErrorf(start, "expected tag name after %q", string(c))
			}
			end := scanName(src, i)
			kind := tokTag
			if c == '$' {
				kind = tokNumTag
			}
			toks = append(toks, token{kind: kind, text: src[i:end], pos: start})
			i = end

		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			tok, end, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = end

		case isIdentStart(c):
			end := i + 1
			for end < len(src) && isIdentPart(src[end]) {
				end++
			}
			word := src[i:end]
			kind := tokIdent
			switch word {
			case "true":
				kind = tokTrue
			case "false":
				kind = tokFalse
			}
			toks = append(toks, token{kind: kind, text: word, pos: i})
			i = end

		default:
			if i+1 < len(src) {
				if kind, ok := twoChar[src[i:i+2]]; ok {
					toks = append(toks, token{kind: kind, pos: i})
					i += 2
					continue
				}
			}
			if kind, ok := oneChar[c]; ok {
				toks = append(toks, token{kind: kind, pos: i})
				i++
				continue
			}
			return nil, syntaxErrorf(i, "unexpected character %q", string(c))
		}
	}

	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

// scanNumber reads digits with an optional fraction. A number running
// straight into a letter, or a trailing '.', is malformed.
func scanNumber(src string, start int) (token, int, error) {
	i := start
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		if i >= len(src) || !isDigit(src[i]) {
			return token{}, 0, syntaxErrorf(start, "malformed number %q", src[start:i])
		}
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (isIdentPart(src[i]) || src[i] == '.') {
		end := i
		for end < len(src) && (isIdentPart(src[end]) || src[end] == '.') {
			end++
		}
		return token{}, 0, syntaxErrorf(start, "malformed number %q", src[start:end])
	}

	text := src[start:i]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, 0, syntaxErrorf(start, "malformed number %q", text)
	}
	return token{kind: tokNumber, text: text, num: num, pos: start}, i, nil
}

// IsTagName reports whether name can follow '#' or '$' in rule text. A tag
// name starts with a letter or '_' and continues with letters, digits, '_'
// and '.'. A '-' always reads as minus.
func IsTagName(name string) bool {
	return name != "" && isIdentStart(name[0]) && scanName(name, 0) == len(name)
}

// scanName returns the end of a tag name starting at i. Tag names may contain
// dots so that namespaced tags such as "layer.3" work.
func scanName(src string, i int) int {
	for i < len(src) && (isIdentPart(src[i]) || src[i] == '.') {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
