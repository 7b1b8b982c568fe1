// Package countries resolves country names to ISO 3166-1 alpha-3 codes.
// Resolution is fully offline: an embedded canonical table plus an alias
// table cover the spellings used by the source datasets, and operators can
// supply additional mappings through a YAML override file.
package countries

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Resolver maps country names to ISO3 codes. Lookups are keyed by a
// normalized form of the name, so case, diacritics, and punctuation do
// not affect matching.
type Resolver struct {
	byKey map[string]string
}

// overrideFile is the on-disk YAML shape for operator-supplied mappings.
type overrideFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// NewResolver builds a resolver from the embedded canonical and alias tables.
func NewResolver() *Resolver {
	resolver := &Resolver{byKey: make(map[string]string, len(canonicalNames)+len(aliasNames))}

	for name, code := range canonicalNames {
		resolver.byKey[NormalizeKey(name)] = code
	}
	for alias, code := range aliasNames {
		resolver.byKey[NormalizeKey(alias)] = code
	}

	return resolver
}

// AddOverride registers an additional name → code mapping. Overrides take
// precedence over the embedded tables.
func (resolver *Resolver) AddOverride(name, code string) {
	resolver.byKey[NormalizeKey(name)] = strings.ToUpper(strings.TrimSpace(code))
}

// LoadOverrides reads a YAML override file and registers its mappings.
// Returns the number of overrides loaded.
func (resolver *Resolver) LoadOverrides(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read override file: %w", err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse override file: %w", err)
	}

	for name, code := range file.Overrides {
		if name == "" || code == "" {
			return 0, fmt.Errorf("override file contains an empty name or code")
		}
		resolver.AddOverride(name, code)
	}

	return len(file.Overrides), nil
}

// Resolve maps a country name to its ISO3 code. The second return value
// reports whether the name matched; unmatched names are an accepted
// data-loss case for callers, not an error.
func (resolver *Resolver) Resolve(name string) (string, bool) {
	code, ok := resolver.byKey[NormalizeKey(name)]
	return code, ok
}

// Size returns the number of distinct lookup keys known to the resolver.
func (resolver *Resolver) Size() int {
	return len(resolver.byKey)
}

// diacriticStripper decomposes to NFD, removes combining marks, and
// recomposes, so "Côte d'Ivoire" and "Cote d'Ivoire" share one key.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey reduces a country name to its lookup key: diacritics
// stripped, lower case, punctuation folded to spaces, whitespace collapsed,
// and a leading "the " dropped.
func NormalizeKey(name string) string {
	stripped, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		stripped = name
	}

	var keyBuilder strings.Builder
	keyBuilder.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			keyBuilder.WriteRune(r)
		case r == '&':
			keyBuilder.WriteString(" and ")
		default:
			keyBuilder.WriteRune(' ')
		}
	}

	key := strings.Join(strings.Fields(keyBuilder.String()), " ")
	key = strings.TrimPrefix(key, "the ")
	return key
}
