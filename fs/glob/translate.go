package glob

import (
	"fmt"
	"strings"
)

// translate rewrites an fnmatch pattern into gobwas/glob syntax.
//
// gobwas/glob treats braces and backslashes as syntax and only accepts a
// single range or a plain list inside brackets, so every literal is
// escaped and every class is expanded to an escaped member list.
func translate(pattern string) (string, error) {
	var b strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*', '?':
			b.WriteRune(r)
		case '[':
			end, err := writeClass(&b, runes, i)
			if err != nil {
				return "", err
			}
			i = end
		default:
			writeLiteral(&b, r)
		}
	}

	return b.String(), nil
}

// writeClass writes the class starting at runes[start] and returns the
// index of its closing bracket.
func writeClass(b *strings.Builder, runes []rune, start int) (int, error) {
	i := start + 1
	negate := false
	if i < len(runes) && (runes[i] == '!' || runes[i] == '^') {
		negate = true
		i++
	}

	// A ] directly after the opening bracket is a member, not the end.
	end := -1
	for j := i; j < len(runes); j++ {
		if runes[j] == ']' && j > i {
			end = j
			break
		}
	}
	if end < 0 {
		return 0, fmt.Errorf("unterminated character class at offset %d", start)
	}

	members, err := expandClass(runes[i:end])
	if err != nil {
		return 0, err
	}

	b.WriteByte('[')
	if negate {
		b.WriteByte('!')
	}
	if len(members) == 1 && members[0] == '-' {
		// The lexer reads "\-" at the start of a class as a range.
		b.WriteString("---")
	} else {
		for _, m := range members {
			writeEscaped(b, m)
		}
	}
	b.WriteByte(']')

	return end, nil
}

func expandClass(body []rune) ([]rune, error) {
	var members []rune
	seen := make(map[rune]struct{})
	add := func(r rune) {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			members = append(members, r)
		}
	}

	for i := 0; i < len(body); i++ {
		lo := body[i]
		if i+2 < len(body) && body[i+1] == '-' {
			hi := body[i+2]
			if hi < lo {
				return nil, fmt.Errorf("invalid character range %c-%c", lo, hi)
			}
			if int(hi-lo) >= maxClassSize {
				return nil, fmt.Errorf("character range %c-%c is too large", lo, hi)
			}
			for r := lo; r <= hi; r++ {
				add(r)
			}
			i += 2
			continue
		}
		add(lo)
	}

	if len(members) > maxClassSize {
		return nil, fmt.Errorf("character class is too large")
	}

	// Keep a literal dash away from the first position.
	if len(members) > 1 && members[0] == '-' {
		members = append(members[1:], '-')
	}
	return members, nil
}

func writeLiteral(b *strings.Builder, r rune) {
	switch r {
	case '{', '}', '\\', ',', ']', '!', '-':
		writeEscaped(b, r)
	default:
		b.WriteRune(r)
	}
}

func writeEscaped(b *strings.Builder, r rune) {
	b.WriteByte('\\')
	b.WriteRune(r)
}
