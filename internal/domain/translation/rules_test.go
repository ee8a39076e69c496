package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestGlossary_LongestMatchFirst(t *testing.T) {
	g := DefaultGlossary()

	assert.Equal(t, "boneless chicken thigh", g.Apply("닭다리살"))
	assert.Equal(t, "minced garlic", g.Apply("다진 마늘"))
	assert.Equal(t, "fry until crispy", g.Apply("바삭하게 튀긴다"))
	assert.Equal(t, "mix well", g.Apply("잘 섞는다"))
}

func TestNewGlossary_OverrideKeepsPosition(t *testing.T) {
	g := NewGlossary(
		[]Term{{"가", "first"}, {"나", "second"}},
		[]Term{{"가", "override"}},
	)
	require.Equal(t, 2, g.Len())
	assert.Equal(t, "override second", g.Apply("가 나"))
}

func TestNewGlossary_StableForEqualLength(t *testing.T) {
	// "ab" is applied before "bc" because it was merged first
	g := NewGlossary([]Term{{"ab", "X"}, {"bc", "Y"}})
	assert.Equal(t, "Xc", g.Apply("abc"))
}

func TestApplyGrammar(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips particles before space and end", "chicken을 oil에 fry", "Fry chicken oil."},
		{"keeps particle inside word", "이것 mix", "Mix 이것."},
		{"verb already first", "mix salt와 sugar", "Mix salt sugar."},
		{"until pattern", "until crispy fry", "Fry until crispy."},
		{"keeps punctuation", "serve!", "Serve!"},
		{"collapses whitespace", "  put   water  ", "Put water."},
		{"no verb", "salt", "Salt."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyGrammar(tt.in))
		})
	}
}

func TestApplyGrammar_RewritePatterns(t *testing.T) {
	assert.Equal(t, "Add fry on medium heat.", ApplyGrammar("add on medium heat fry"))
	assert.Equal(t, "Add fry until golden.", ApplyGrammar("add until golden fry"))
	// the first cooking verb wins, even when it is part of a heat phrase
	assert.Equal(t, "Heat on medium cook.", ApplyGrammar("on medium heat cook"))
}

func TestRuleTranslator_Translate(t *testing.T) {
	tr := NewRuleTranslator()

	t.Run("non korean text passes through", func(t *testing.T) {
		res := tr.Translate("Fry the chicken")
		assert.Equal(t, "Fry the chicken", res.FinalTranslation)
		assert.Equal(t, "Fry the chicken", res.Original)
		assert.Empty(t, res.Step1)
		assert.Empty(t, res.Provider)
		assert.False(t, res.UsedAI)
	})

	t.Run("korean instruction", func(t *testing.T) {
		res := tr.Translate("닭다리살을 기름에 튀긴다")
		assert.Equal(t, "boneless chicken thigh을 oil에 fry", res.Step1)
		assert.Equal(t, "Fry boneless chicken thigh oil.", res.Step2)
		assert.Equal(t, res.Step2, res.FinalTranslation)
		assert.Equal(t, ProviderRuleBased, res.Provider)
	})

	t.Run("decomposed hangul is normalized", func(t *testing.T) {
		decomposed := norm.NFD.String("소금")
		res := tr.Translate(decomposed)
		assert.Equal(t, "Salt.", res.FinalTranslation)
		assert.Equal(t, decomposed, res.Original)
	})
}

func TestHasHangul(t *testing.T) {
	assert.True(t, HasHangul("abc 닭"))
	assert.False(t, HasHangul("abc"))
	assert.False(t, HasHangul("ㄱㄴ"))
}
