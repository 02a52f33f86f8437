// Package command implements the pattern grammar, scope resolution, and
// priority/specificity dispatch: each command declares a pattern string,
// the dispatcher ranks candidates whose first literal matches the
// input, and the first candidate that parses cleanly executes.
package command

import (
	"strings"

	"duskward/pkg/engineerr"
)

// ArgType is the declared type of a pattern argument token.
type ArgType string

// Argument types a pattern token may declare.
const (
	ArgItem      ArgType = "item"
	ArgMob       ArgType = "mob"
	ArgObject    ArgType = "object"
	ArgDirection ArgType = "direction"
	ArgNumber    ArgType = "number"
	ArgWord      ArgType = "word"
	ArgText      ArgType = "text"
)

// Scope qualifies where a mob/item/object argument is resolved from.
type Scope string

// Scopes an argument can resolve candidates from.
const (
	ScopeInventory Scope = "inventory"
	ScopeRoom      Scope = "room"
	ScopeAll       Scope = "all"
)

// defaultScope returns the implicit scope for an argument type when the
// pattern does not qualify it with "@scope": mob defaults to @room,
// item defaults to @inventory.
func defaultScope(t ArgType) Scope {
	switch t {
	case ArgMob:
		return ScopeRoom
	case ArgItem:
		return ScopeInventory
	default:
		return ScopeAll
	}
}

// tokenKind distinguishes the three pattern-token shapes.
type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokQuoted
	tokArg
)

// token is one parsed pattern element.
type token struct {
	kind tokenKind

	// literal/quoted fields.
	words       []string // one word for a plain literal, several for a quoted phrase
	collapsible bool     // "~" suffix: input need only share a prefix

	// arg fields.
	name     string
	argType  ArgType
	optional bool
	scope    Scope
}

// Pattern is a parsed command pattern ready for matching against input.
type Pattern struct {
	Raw         string
	Tokens      []token
	Specificity int // count of literal/quoted tokens; more specific patterns are tried first
}

// ParsePattern tokenizes and validates a declared pattern string.
func ParsePattern(raw string) (*Pattern, error) {
	rawTokens, err := splitPatternTokens(raw)
	if err != nil {
		return nil, err
	}

	p := &Pattern{Raw: raw}
	for _, rt := range rawTokens {
		tok, err := parseToken(rt)
		if err != nil {
			return nil, err
		}
		if tok.kind == tokLiteral || tok.kind == tokQuoted {
			p.Specificity++
		}
		p.Tokens = append(p.Tokens, tok)
	}
	return p, nil
}

// splitPatternTokens splits a raw pattern string on whitespace, keeping
// single-quoted multi-word phrases (with an optional trailing "~")
// together as one raw token.
func splitPatternTokens(raw string) ([]string, error) {
	var out []string
	i := 0
	for i < len(raw) {
		for i < len(raw) && raw[i] == ' ' {
			i++
		}
		if i >= len(raw) {
			break
		}
		switch raw[i] {
		case '\'':
			end := strings.IndexByte(raw[i+1:], '\'')
			if end < 0 {
				return nil, engineerr.New(engineerr.ParseError, "unterminated quoted literal in pattern %q", raw)
			}
			end += i + 1
			tok := raw[i : end+1]
			i = end + 1
			if i < len(raw) && raw[i] == '~' {
				tok += "~"
				i++
			}
			out = append(out, tok)
		case '<':
			end := strings.IndexByte(raw[i:], '>')
			if end < 0 {
				return nil, engineerr.New(engineerr.ParseError, "unterminated argument token in pattern %q", raw)
			}
			out = append(out, raw[i:i+end+1])
			i += end + 1
		default:
			start := i
			for i < len(raw) && raw[i] != ' ' {
				i++
			}
			out = append(out, raw[start:i])
		}
	}
	return out, nil
}

func parseToken(raw string) (token, error) {
	switch {
	case strings.HasPrefix(raw, "'"):
		return parseQuotedToken(raw)
	case strings.HasPrefix(raw, "<"):
		return parseArgToken(raw)
	default:
		return parseLiteralToken(raw)
	}
}

func parseLiteralToken(raw string) (token, error) {
	collapsible := strings.HasSuffix(raw, "~")
	word := strings.TrimSuffix(raw, "~")
	if word == "" {
		return token{}, engineerr.New(engineerr.ParseError, "empty literal token")
	}
	return token{kind: tokLiteral, words: []string{strings.ToLower(word)}, collapsible: collapsible}, nil
}

func parseQuotedToken(raw string) (token, error) {
	collapsible := strings.HasSuffix(raw, "~")
	body := strings.TrimSuffix(raw, "~")
	body = strings.TrimSuffix(strings.TrimPrefix(body, "'"), "'")
	words := strings.Fields(strings.ToLower(body))
	if len(words) == 0 {
		return token{}, engineerr.New(engineerr.ParseError, "empty quoted literal")
	}
	return token{kind: tokQuoted, words: words, collapsible: collapsible}, nil
}

func parseArgToken(raw string) (token, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	parts := strings.SplitN(body, ":", 2)
	if len(parts) != 2 {
		return token{}, engineerr.New(engineerr.ParseError, "malformed argument token %q", raw)
	}
	name, spec := parts[0], parts[1]

	optional := strings.HasSuffix(spec, "?")
	spec = strings.TrimSuffix(spec, "?")

	scope := Scope("")
	typ := spec
	if at := strings.IndexByte(spec, '@'); at >= 0 {
		typ = spec[:at]
		scope = Scope(spec[at+1:])
	}

	argType := ArgType(typ)
	switch argType {
	case ArgItem, ArgMob, ArgObject, ArgDirection, ArgNumber, ArgWord, ArgText:
	default:
		return token{}, engineerr.New(engineerr.ParseError, "unknown argument type %q in %q", typ, raw)
	}
	if scope == "" {
		scope = defaultScope(argType)
	}

	return token{kind: tokArg, name: name, argType: argType, optional: optional, scope: scope}, nil
}
