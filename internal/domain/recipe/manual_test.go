package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuManual(t *testing.T) {
	groupID := uuid.New()
	m, err := NewMenuManual(ManualInput{Name: " Yangnyeom Chicken ", Yield: dec("10")}, &groupID, []IngredientInput{
		{Name: "chicken", Quantity: dec("1000"), Unit: "g", Section: "MAIN"},
		{Name: "sauce"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Yangnyeom Chicken", m.Name)
	assert.True(t, m.IsActive)
	assert.Equal(t, &groupID, m.GroupID)
	require.Len(t, m.Ingredients, 2)

	second := m.Ingredients[1]
	assert.Equal(t, DefaultUnit, second.Unit)
	assert.Equal(t, SectionMain, second.Section)
	assert.Equal(t, 1, second.SortOrder)
	assert.True(t, second.Quantity.IsZero())
	assert.Equal(t, m.ID, second.ManualID)
}

func TestMenuManual_Apply(t *testing.T) {
	m, err := NewMenuManual(ManualInput{Name: "A"}, nil, nil)
	require.NoError(t, err)

	inactive := false
	require.NoError(t, m.Apply(ManualInput{Name: "B", IsActive: &inactive}))
	assert.Equal(t, "B", m.Name)
	assert.False(t, m.IsActive)

	assert.ErrorContains(t, m.Apply(ManualInput{Name: ""}), "Manual name is required")
	assert.Error(t, m.Apply(ManualInput{Name: "C", Yield: dec("-1")}))
}

func TestManualGroup(t *testing.T) {
	g := NewDefaultGroup()
	assert.Equal(t, "Default", g.Name)
	assert.Equal(t, "Default manual group", g.Description)
	assert.Equal(t, "CAD", g.CurrencyOr("CAD"))

	tpl := uuid.New()
	usd := "usd"
	require.NoError(t, g.Apply(GroupUpdate{TemplateID: &tpl, Currency: &usd}))
	assert.Equal(t, tpl, *g.TemplateID)
	assert.Equal(t, "USD", g.CurrencyOr("CAD"))

	empty := " "
	assert.Error(t, g.Apply(GroupUpdate{Name: &empty}))

	var nilGroup *ManualGroup
	assert.Equal(t, "CAD", nilGroup.CurrencyOr("CAD"))
}
