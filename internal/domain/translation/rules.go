package translation

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	untilVerbRe  = regexp.MustCompile(`(?i)until\s+(\w+)\s+(fry|bake|cook|heat)`)
	onHeatVerbRe = regexp.MustCompile(`(?i)(on\s+\w+\s+heat)\s+(fry|bake|cook)`)
)

// Glossary is an ordered, longest-first substitution table
type Glossary struct {
	terms []Term
}

// NewGlossary merges dictionaries in order. A later entry with the same
// Korean key overrides the English of an earlier one but keeps its
// position. Keys are then ordered longest first, ties in merge order.
func NewGlossary(dicts ...[]Term) *Glossary {
	index := make(map[string]int)
	var merged []Term
	for _, d := range dicts {
		for _, t := range d {
			if i, ok := index[t.Korean]; ok {
				merged[i].English = t.English
				continue
			}
			index[t.Korean] = len(merged)
			merged = append(merged, t)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return utf8.RuneCountInString(merged[i].Korean) > utf8.RuneCountInString(merged[j].Korean)
	})
	return &Glossary{terms: merged}
}

// DefaultGlossary holds the kitchen terminology: phrases, verbs,
// ingredients and units
func DefaultGlossary() *Glossary {
	return NewGlossary(phraseTerms, verbTerms, ingredientTerms, unitTerms)
}

// Len returns the number of distinct keys
func (g *Glossary) Len() int {
	return len(g.terms)
}

// Apply replaces every occurrence of each key, longest keys first
func (g *Glossary) Apply(text string) string {
	for _, t := range g.terms {
		text = strings.ReplaceAll(text, t.Korean, t.English)
	}
	return text
}

// HasHangul reports whether s contains a Hangul syllable
func HasHangul(s string) bool {
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7AF {
			return true
		}
	}
	return false
}

// ApplyGrammar strips Korean particles and reorders the sentence so the
// cooking verb comes first
func ApplyGrammar(text string) string {
	result := text
	for _, p := range sortedParticles() {
		result = stripParticle(result, p)
	}

	result = collapseSpaces(result)
	result = frontVerb(result)
	result = untilVerbRe.ReplaceAllString(result, "${2} until ${1}")
	result = onHeatVerbRe.ReplaceAllString(result, "${2} ${1}")
	result = capitalizeFirst(result)
	result = collapseSpaces(result)

	if result != "" && !strings.ContainsAny(result[len(result)-1:], ".!?") {
		result += "."
	}
	return result
}

func sortedParticles() []string {
	out := append([]string(nil), particles...)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// stripParticle removes p wherever it is followed by whitespace or the
// end of the text
func stripParticle(s, p string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], p) {
			next := i + len(p)
			if next == len(s) {
				i = next
				continue
			}
			if r, _ := utf8.DecodeRuneInString(s[next:]); unicode.IsSpace(r) {
				i = next
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func frontVerb(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if !cookingVerbs[strings.ToLower(w)] {
			continue
		}
		if i == 0 {
			return s
		}
		out := make([]string, 0, len(words))
		out = append(out, w)
		out = append(out, words[:i]...)
		out = append(out, words[i+1:]...)
		return strings.Join(out, " ")
	}
	return s
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
