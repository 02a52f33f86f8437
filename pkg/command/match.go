package command

import (
	"strconv"
	"strings"

	"duskward/pkg/coord"
)

// Args is the parsed argument map a matched pattern hands to execute,
// keyed by declared argument name. A missing key means an optional
// argument that had no value.
type Args map[string]any

// matchPattern tries to parse line against p in full, using ctx to
// resolve scoped mob/item/object fragments. aliases lists the command's
// registered alternate spellings: the leading literal token also
// accepts any of them, since candidates() already admitted the command
// on that basis and the line itself still carries whichever spelling
// the player actually typed. It reports the parsed args and whether
// the whole pattern consumed the whole line.
func matchPattern(p *Pattern, line string, ctx Context, aliases []string) (Args, bool) {
	words := strings.Fields(line)
	args := Args{}
	pos := 0

	for i, tok := range p.Tokens {
		switch tok.kind {
		case tokLiteral:
			if pos >= len(words) {
				return nil, false
			}
			matched := literalMatches(tok, words[pos])
			if !matched && i == 0 {
				matched = aliasMatches(aliases, words[pos])
			}
			if !matched {
				return nil, false
			}
			pos++
		case tokQuoted:
			if pos+len(tok.words) > len(words) {
				return nil, false
			}
			for i, w := range tok.words {
				if !wordMatches(w, words[pos+i], tok.collapsible) {
					return nil, false
				}
			}
			pos += len(tok.words)
		case tokArg:
			consumed, ok := matchArg(tok, words, pos, ctx, args)
			if !ok {
				if !tok.optional {
					return nil, false
				}
				args[tok.name] = nil
				continue
			}
			pos += consumed
		}
	}

	return args, pos == len(words)
}

func literalMatches(tok token, word string) bool {
	return wordMatches(tok.words[0], word, tok.collapsible)
}

// aliasMatches reports whether word is (a prefix of) any registered
// alias, mirroring candidates()'s own alias prefix-match so the word
// that got the command admitted as a candidate is also accepted here.
func aliasMatches(aliases []string, word string) bool {
	word = strings.ToLower(word)
	for _, alias := range aliases {
		if strings.HasPrefix(strings.ToLower(alias), word) && word != "" {
			return true
		}
	}
	return false
}

func wordMatches(pattern, word string, collapsible bool) bool {
	word = strings.ToLower(word)
	if collapsible {
		return strings.HasPrefix(pattern, word) && word != ""
	}
	return pattern == word
}

// matchArg attempts to consume one argument's worth of words starting
// at pos, returning how many words it consumed and whether it
// succeeded. The value (or its absence) is written into args.
func matchArg(tok token, words []string, pos int, ctx Context, args Args) (int, bool) {
	switch tok.argType {
	case ArgText:
		if pos >= len(words) {
			return 0, false
		}
		args[tok.name] = strings.Join(words[pos:], " ")
		return len(words) - pos, true

	case ArgWord:
		if pos >= len(words) {
			return 0, false
		}
		args[tok.name] = words[pos]
		return 1, true

	case ArgNumber:
		if pos >= len(words) {
			return 0, false
		}
		n, err := strconv.Atoi(words[pos])
		if err != nil {
			return 0, false
		}
		args[tok.name] = n
		return 1, true

	case ArgDirection:
		if pos >= len(words) {
			return 0, false
		}
		d, ok := coord.ParseDirection(words[pos])
		if !ok {
			return 0, false
		}
		args[tok.name] = d
		return 1, true

	case ArgItem, ArgMob, ArgObject:
		if pos >= len(words) {
			return 0, false
		}
		candidates := candidatesForScope(ctx, tok.scope)
		obj, ok := resolveFragment(candidates, scopeRoomBound(ctx, tok.scope), words[pos])
		if !ok {
			return 0, false
		}
		args[tok.name] = obj
		return 1, true

	default:
		return 0, false
	}
}
