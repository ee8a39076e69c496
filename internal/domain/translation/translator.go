package translation

import (
	"context"

	"golang.org/x/text/unicode/norm"
)

// Provider names reported to clients
const (
	ProviderRuleBased = "Rule-based (Terminology + Grammar)"
	ProviderRefined   = "Rule-based + MyMemory"
)

// Result is the outcome of translating one text
type Result struct {
	Original         string `json:"original"`
	Step1            string `json:"step1,omitempty"`
	Step2            string `json:"step2,omitempty"`
	FinalTranslation string `json:"finalTranslation"`
	UsedAI           bool   `json:"usedAI"`
	Provider         string `json:"provider,omitempty"`
}

// Refiner polishes a rule-based translation with an external service
type Refiner interface {
	Refine(ctx context.Context, text string) (string, error)
}

// RuleTranslator translates kitchen instructions with a glossary and
// grammar rules
type RuleTranslator struct {
	glossary *Glossary
}

// NewRuleTranslator creates a translator with the default glossary
func NewRuleTranslator() *RuleTranslator {
	return &RuleTranslator{glossary: DefaultGlossary()}
}

// Translate runs terminology substitution then grammar rules. Text
// without Hangul is returned unchanged.
func (t *RuleTranslator) Translate(text string) Result {
	normalized := norm.NFC.String(text)
	if !HasHangul(normalized) {
		return Result{Original: text, FinalTranslation: text}
	}
	step1 := t.glossary.Apply(normalized)
	step2 := ApplyGrammar(step1)
	return Result{
		Original:         text,
		Step1:            step1,
		Step2:            step2,
		FinalTranslation: step2,
		Provider:         ProviderRuleBased,
	}
}

// IsEmpty reports whether there is nothing to translate. Whitespace-only
// text is not empty; it passes through untouched.
func IsEmpty(text string) bool {
	return text == ""
}
