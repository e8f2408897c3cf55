// Package glob compiles shell-style patterns over object keys.
//
// Patterns follow fnmatch rules rather than path rules: * matches any run
// of characters including "/", ? matches exactly one character, and
// [...] matches one character from a class, negated with a leading ! or ^.
// Braces and backslashes have no special meaning.
//
// A compiled Pattern is split into the literal prefix before the first
// metacharacter and a matcher for the remainder. The prefix is what a
// storage listing is narrowed by.
package glob

import (
	"strings"

	gg "github.com/gobwas/glob"

	"github.com/jmgilman/objfs/errors"
)

const magicChars = "*?["

// maxClassSize bounds the expansion of character ranges such as [a-z].
const maxClassSize = 4096

// Pattern is a compiled glob. It is immutable and safe for concurrent use.
type Pattern struct {
	raw    string
	prefix string
	// suffix is nil when the pattern has no metacharacters.
	suffix gg.Glob
}

// HasMagic reports whether s contains any glob metacharacter.
func HasMagic(s string) bool {
	return strings.ContainsAny(s, magicChars)
}

// Compile parses pattern. It fails with errors.CodeInvalidInput when a
// character class is malformed, for example when it is never closed.
func Compile(pattern string) (*Pattern, error) {
	idx := strings.IndexAny(pattern, magicChars)
	if idx < 0 {
		return &Pattern{raw: pattern, prefix: pattern}, nil
	}

	translated, err := translate(pattern[idx:])
	if err != nil {
		return nil, invalid(pattern, err.Error())
	}

	g, err := gg.Compile(translated)
	if err != nil {
		return nil, invalid(pattern, err.Error())
	}

	return &Pattern{raw: pattern, prefix: pattern[:idx], suffix: g}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern.
func (p *Pattern) String() string { return p.raw }

// LiteralPrefix returns the longest leading part of the pattern that
// contains no metacharacters.
func (p *Pattern) LiteralPrefix() string { return p.prefix }

// HasMagic reports whether the pattern contains metacharacters.
func (p *Pattern) HasMagic() bool { return p.suffix != nil }

// Match reports whether key matches the whole pattern.
func (p *Pattern) Match(key string) bool {
	rest, ok := strings.CutPrefix(key, p.prefix)
	if !ok {
		return false
	}
	return p.MatchSuffix(rest)
}

// MatchSuffix matches s against the part of the pattern after
// LiteralPrefix. Without metacharacters only the empty string matches.
func (p *Pattern) MatchSuffix(s string) bool {
	if p.suffix == nil {
		return s == ""
	}
	return p.suffix.Match(s)
}

func invalid(pattern, reason string) errors.Error {
	return errors.WithContext(
		errors.Newf(errors.CodeInvalidInput, "invalid glob %q: %s", pattern, reason),
		"pattern", pattern,
	)
}
