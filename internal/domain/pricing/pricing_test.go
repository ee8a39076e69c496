package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDefaultCountries(t *testing.T) {
	countries := DefaultCountries()
	require.Len(t, countries, 3)

	byCode := map[string]*Country{}
	for _, c := range countries {
		byCode[c.Code] = c
	}
	assert.Equal(t, "CAD", byCode["CA"].Currency)
	assert.Equal(t, "America/Toronto", byCode["CA"].Timezone)
	assert.Equal(t, "America/New_York", byCode["US"].Timezone)
	assert.Equal(t, "KRW", byCode["KR"].Currency)
}

func TestNewIngredientMaster(t *testing.T) {
	t.Run("defaults yield to 100", func(t *testing.T) {
		ing, err := NewIngredientMaster(IngredientInput{
			Category:    "Meat",
			KoreanName:  " 닭다리살 ",
			EnglishName: " Chicken Thigh ",
			Quantity:    dec("1000"),
			Unit:        "g",
		})
		require.NoError(t, err)
		assert.Equal(t, "Chicken Thigh", ing.EnglishName)
		assert.Equal(t, "닭다리살", ing.KoreanName)
		assert.True(t, ing.YieldRate.Equal(FullYield))
	})

	t.Run("requires english name", func(t *testing.T) {
		_, err := NewIngredientMaster(IngredientInput{KoreanName: "소금"})
		assert.ErrorContains(t, err, "English name is required")
	})

	t.Run("rejects yield above 100", func(t *testing.T) {
		_, err := NewIngredientMaster(IngredientInput{EnglishName: "Salt", YieldRate: dec("120")})
		assert.Error(t, err)
	})
}

func TestNewIngredientTemplate(t *testing.T) {
	salt, _ := NewIngredientMaster(IngredientInput{EnglishName: "Salt"})
	sugar, _ := NewIngredientMaster(IngredientInput{EnglishName: "Sugar"})
	country := uuid.New()

	t.Run("creates zero priced items in default currency", func(t *testing.T) {
		tpl, err := NewIngredientTemplate("Canada 2025", country, "", "", []*IngredientMaster{salt, sugar})
		require.NoError(t, err)

		assert.True(t, tpl.IsActive)
		require.Len(t, tpl.Items, 2)
		for _, item := range tpl.Items {
			assert.Equal(t, tpl.ID, item.TemplateID)
			assert.True(t, item.Price.IsZero())
			assert.Equal(t, "CAD", item.Currency)
		}
		assert.Equal(t, "CAD", tpl.FirstCurrency())
	})

	t.Run("uses given currency", func(t *testing.T) {
		tpl, err := NewIngredientTemplate("US", country, "", "USD", []*IngredientMaster{salt})
		require.NoError(t, err)
		assert.Equal(t, "USD", tpl.Items[0].Currency)
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewIngredientTemplate("  ", country, "", "", nil)
		assert.ErrorContains(t, err, "Template name is required")
	})

	t.Run("requires country", func(t *testing.T) {
		_, err := NewIngredientTemplate("X", uuid.Nil, "", "", nil)
		assert.ErrorContains(t, err, "Country ID is required")
	})
}

func TestIngredientTemplateItem_ApplyChange(t *testing.T) {
	actor := uuid.New()

	t.Run("records history when price changes", func(t *testing.T) {
		item := &IngredientTemplateItem{ID: uuid.New(), Price: dec("1.50"), Currency: "CAD"}
		p := dec("2.25")

		h, err := item.ApplyChange(PriceChange{Price: &p, ChangedBy: actor, Reason: "supplier increase"})
		require.NoError(t, err)
		require.NotNil(t, h)

		assert.True(t, h.OldPrice.Equal(dec("1.5")))
		assert.True(t, h.NewPrice.Equal(p))
		assert.Equal(t, "CAD", h.Currency)
		assert.Equal(t, actor, *h.ChangedBy)
		assert.Equal(t, item.ID, h.TemplateItemID)
		assert.True(t, item.Price.Equal(p))
	})

	t.Run("no history when price unchanged", func(t *testing.T) {
		item := &IngredientTemplateItem{ID: uuid.New(), Price: dec("3"), Currency: "CAD"}
		p := dec("3.00")
		y := dec("80")

		h, err := item.ApplyChange(PriceChange{Price: &p, YieldRate: &y, Currency: "usd"})
		require.NoError(t, err)
		assert.Nil(t, h)
		assert.Equal(t, "USD", item.Currency)
		assert.True(t, item.EffectiveYield().Equal(y))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		item := &IngredientTemplateItem{}
		p := dec("-1")
		_, err := item.ApplyChange(PriceChange{Price: &p})
		assert.Error(t, err)
	})
}

func TestEffectiveYield(t *testing.T) {
	ing := &IngredientMaster{YieldRate: dec("90")}

	assert.True(t, (&IngredientTemplateItem{}).EffectiveYield().Equal(FullYield))
	assert.True(t, (&IngredientTemplateItem{Ingredient: ing}).EffectiveYield().Equal(dec("90")))

	zero := decimal.Zero
	assert.True(t, (&IngredientTemplateItem{Ingredient: ing, YieldRate: &zero}).EffectiveYield().Equal(FullYield))
}

func TestVendor(t *testing.T) {
	v, err := NewVendor(VendorInput{Name: " Sysco ", Country: "ca", Email: "Sales@Sysco.com"})
	require.NoError(t, err)
	assert.True(t, v.IsActive)
	assert.Equal(t, "Sysco", v.Name)
	assert.Equal(t, "CA", v.Country)
	assert.Equal(t, "sales@sysco.com", v.Email)

	inactive := false
	require.NoError(t, v.Apply(VendorInput{Name: "Sysco", IsActive: &inactive}))
	assert.False(t, v.IsActive)

	_, err = NewVendor(VendorInput{})
	assert.ErrorContains(t, err, "Vendor name is required")
}
