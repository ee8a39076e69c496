package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/audit"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/domain/inventory"
	"github.com/storelaunch/backend/internal/domain/launch"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/domain/recipe"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIngredient(t *testing.T, repo *GormIngredientRepository, category, korean, english string) *pricing.IngredientMaster {
	t.Helper()
	ing, err := pricing.NewIngredientMaster(pricing.IngredientInput{
		Category:    category,
		KoreanName:  korean,
		EnglishName: english,
		Quantity:    decimal.NewFromInt(1),
		Unit:        "kg",
		YieldRate:   decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), ing))
	return ing
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormUserRepository(db.DB)

	user, err := identity.NewUser("Owner@Example.com", "secret1", "Owner", 4)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("finds by normalized email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, identity.RoleViewer, found.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup, err := identity.NewUser("owner@example.com", "secret1", "Other", 4)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("update persists role", func(t *testing.T) {
		require.NoError(t, user.AssignRole(identity.RoleAdmin))
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleAdmin, found.Role)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = repo.FindByEmail(ctx, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormResetTokenRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormResetTokenRepository(db.DB)
	userID := uuid.New()

	live, err := identity.NewPasswordResetToken(userID, time.Hour)
	require.NoError(t, err)
	expired, err := identity.NewPasswordResetToken(userID, -time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, expired))

	found, err := repo.FindByToken(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.DeleteByUserID(ctx, userID))
	_, err = repo.FindByToken(ctx, live.Token)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAuditLogRepository_FindByEntity(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormAuditLogRepository(db.DB)
	entityID := uuid.New()

	first, err := audit.NewLog("Store", entityID, audit.ActionCreate, uuid.New(), nil, map[string]string{"city": "Toronto"})
	require.NoError(t, err)
	second, err := audit.NewLog("Store", entityID, audit.ActionUpdate, uuid.Nil, nil, nil)
	require.NoError(t, err)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	other, err := audit.NewLog("Task", entityID, audit.ActionUpdate, uuid.Nil, nil, nil)
	require.NoError(t, err)
	for _, l := range []*audit.Log{first, second, other} {
		require.NoError(t, repo.Create(ctx, l))
	}

	logs, err := repo.FindByEntity(ctx, "Store", entityID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, audit.ActionUpdate, logs[0].Action)
	assert.Nil(t, logs[0].ChangedBy)
	assert.JSONEq(t, `{"city":"Toronto"}`, logs[1].AfterJSON)
}

func TestGormCountryRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormCountryRepository(db.DB)

	for _, c := range pricing.DefaultCountries() {
		require.NoError(t, repo.Upsert(ctx, c))
	}
	// seeding twice refreshes instead of failing
	for _, c := range pricing.DefaultCountries() {
		require.NoError(t, repo.Upsert(ctx, c))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ca, err := repo.FindByCode(ctx, "ca")
	require.NoError(t, err)
	assert.Equal(t, "CAD", ca.Currency)
	assert.Equal(t, "America/Toronto", ca.Timezone)
}

func TestGormIngredientTemplateRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	ingredients := NewGormIngredientRepository(db.DB)
	repo := NewGormIngredientTemplateRepository(db.DB)

	onion := mustIngredient(t, ingredients, "Vegetable", "양파", "Onion")
	beef := mustIngredient(t, ingredients, "Meat", "소고기", "Beef")
	garlic := mustIngredient(t, ingredients, "Vegetable", "마늘", "Garlic")

	masters, err := ingredients.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, masters, 3)
	assert.Equal(t, beef.ID, masters[0].ID)
	assert.Equal(t, garlic.ID, masters[1].ID)
	assert.Equal(t, onion.ID, masters[2].ID)

	tpl, err := pricing.NewIngredientTemplate("Toronto 2026", uuid.New(), "", "", masters)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tpl))

	t.Run("items are ordered by category then english name", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tpl.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 3)
		assert.Equal(t, "Beef", found.Items[0].Ingredient.EnglishName)
		assert.Equal(t, "Garlic", found.Items[1].Ingredient.EnglishName)
		assert.Equal(t, "Onion", found.Items[2].Ingredient.EnglishName)
		assert.Equal(t, "CAD", found.Items[0].Currency)
		assert.True(t, found.Items[0].Price.IsZero())
	})

	t.Run("price change writes history", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tpl.ID)
		require.NoError(t, err)
		item, err := repo.FindItem(ctx, tpl.ID, found.Items[0].ID)
		require.NoError(t, err)

		price := decimal.NewFromFloat(12.5)
		history, err := item.ApplyChange(pricing.PriceChange{Price: &price, ChangedBy: uuid.New(), Reason: "supplier"})
		require.NoError(t, err)
		require.NotNil(t, history)
		require.NoError(t, repo.SaveItemChange(ctx, item, history))

		reloaded, err := repo.FindItem(ctx, tpl.ID, item.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.Price.Equal(price))

		entries, err := repo.FindPriceHistory(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].NewPrice.Equal(price))
		assert.Equal(t, "supplier", entries[0].Reason)
	})

	t.Run("search matches korean and english names", func(t *testing.T) {
		items, err := repo.SearchItems(ctx, tpl.ID, "양", 10)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, onion.ID, items[0].IngredientID)

		items, err = repo.SearchItems(ctx, tpl.ID, "GAR", 10)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, garlic.ID, items[0].IngredientID)

		masters, err := ingredients.Search(ctx, "i", 10)
		require.NoError(t, err)
		assert.Len(t, masters, 2)
	})

	t.Run("list with and without items", func(t *testing.T) {
		all, err := repo.FindAll(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Empty(t, all[0].Items)

		all, err = repo.FindAll(ctx, true)
		require.NoError(t, err)
		assert.Len(t, all[0].Items, 3)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := repo.FindItem(ctx, tpl.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormVendorRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormVendorRepository(db.DB)

	for _, in := range []pricing.VendorInput{
		{Name: "Maple Produce", Category: "Produce", Country: "CA"},
		{Name: "Seoul Meats", Category: "Meat", Country: "KR"},
		{Name: "Apex Produce", Category: "Produce", Country: "ca"},
	} {
		v, err := pricing.NewVendor(in)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, v))
	}

	vendors, err := repo.FindAll(ctx, pricing.VendorFilter{Country: "ca", Category: "Produce"})
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Apex Produce", vendors[0].Name)

	require.NoError(t, repo.Delete(ctx, vendors[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, vendors[0].ID), shared.ErrNotFound)
}

func TestGormManualRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	groups := NewGormManualGroupRepository(db.DB)
	manuals := NewGormManualRepository(db.DB)
	versions := NewGormCostVersionRepository(db.DB)

	group := recipe.NewDefaultGroup()
	require.NoError(t, groups.Create(ctx, group))

	ingredientID := uuid.New()
	manual, err := recipe.NewMenuManual(recipe.ManualInput{Name: "Bulgogi", Yield: decimal.NewFromInt(4)}, &group.ID, []recipe.IngredientInput{
		{Name: "Sauce", Quantity: decimal.NewFromInt(50), Section: "SAUCE"},
		{Name: "Beef", IngredientID: &ingredientID, Quantity: decimal.NewFromInt(200)},
		{Name: "Onion", Quantity: decimal.NewFromInt(30)},
	})
	require.NoError(t, err)
	require.NoError(t, manuals.Create(ctx, manual))

	t.Run("find loads group and ordered ingredients", func(t *testing.T) {
		found, err := manuals.FindByID(ctx, manual.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Group)
		assert.Equal(t, recipe.DefaultGroupName, found.Group.Name)
		require.Len(t, found.Ingredients, 3)
		assert.Equal(t, "Beef", found.Ingredients[0].Name)
		assert.Equal(t, "Onion", found.Ingredients[1].Name)
		assert.Equal(t, "Sauce", found.Ingredients[2].Name)
	})

	t.Run("cost versions are replaced per template", func(t *testing.T) {
		templateID := uuid.New()
		prices := recipe.PriceMap{ingredientID: {Price: decimal.NewFromFloat(0.02), Currency: "CAD", YieldRate: decimal.NewFromInt(100)}}
		res := recipe.CostCalculator{}.Calculate(manual, prices)

		require.NoError(t, versions.Replace(ctx, recipe.NewCostVersion(manual.ID, templateID, "Toronto Cost", "CAD", res)))
		require.NoError(t, versions.Replace(ctx, recipe.NewCostVersion(manual.ID, templateID, "Toronto Cost", "CAD", res)))

		list, err := versions.FindByManual(ctx, manual.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].TotalCost.Equal(decimal.NewFromInt(4)))
		assert.Len(t, list[0].Lines, 3)

		byGroup, err := manuals.FindByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, byGroup, 1)
		require.Len(t, byGroup[0].CostVersions, 1)
		assert.Len(t, byGroup[0].CostVersions[0].Lines, 3)

		require.NoError(t, versions.DeleteByManualAndTemplate(ctx, manual.ID, templateID))
		list, err = versions.FindByManual(ctx, manual.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("update replaces ingredients", func(t *testing.T) {
		manual.ReplaceIngredients([]recipe.IngredientInput{{Name: "Pork", Quantity: decimal.NewFromInt(150)}})
		require.NoError(t, manuals.Update(ctx, manual))

		found, err := manuals.FindByID(ctx, manual.ID)
		require.NoError(t, err)
		require.Len(t, found.Ingredients, 1)
		assert.Equal(t, "Pork", found.Ingredients[0].Name)
	})

	t.Run("detach group then delete", func(t *testing.T) {
		require.NoError(t, manuals.DetachGroup(ctx, group.ID))
		list, err := manuals.FindAll(ctx, recipe.ManualQuery{GroupID: &group.ID})
		require.NoError(t, err)
		assert.Empty(t, list)

		require.NoError(t, groups.Delete(ctx, group.ID))
		require.NoError(t, manuals.Delete(ctx, manual.ID))
		_, err = manuals.FindByID(ctx, manual.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormManualGroupRepository_FindFirstByTemplate(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormManualGroupRepository(db.DB)
	templateID := uuid.New()

	older, err := recipe.NewManualGroup("Toronto", "", &templateID, "CAD")
	require.NoError(t, err)
	newer, err := recipe.NewManualGroup("Vancouver", "", &templateID, "CAD")
	require.NoError(t, err)
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))

	found, err := repo.FindFirstByTemplate(ctx, templateID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, found.ID)

	_, err = repo.FindFirstByTemplate(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestGormStoreRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	stores := NewGormStoreRepository(db.DB)
	tasks := NewGormTaskRepository(db.DB)
	actor := uuid.New()

	store, err := launch.NewStore(launch.StoreInput{Country: "CA", City: "Toronto"}, "America/Toronto", actor)
	require.NoError(t, err)
	open := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	store.PlannedOpenDate = launch.NewPlannedOpenDate(store.ID, open, launch.InitialDateReason, actor)
	require.NoError(t, stores.Create(ctx, store))

	t.Run("latest planned date is current", func(t *testing.T) {
		later := launch.NewPlannedOpenDate(store.ID, open.AddDate(0, 0, 14), "Permit delay", actor)
		later.CreatedAt = store.PlannedOpenDate.CreatedAt.Add(time.Second)
		require.NoError(t, stores.AddPlannedOpenDate(ctx, later))

		found, err := stores.FindByID(ctx, store.ID)
		require.NoError(t, err)
		require.NotNil(t, found.PlannedOpenDate)
		assert.Equal(t, "2026-12-15", found.PlannedOpenDate.Date.Format(launch.DateLayout))

		all, err := stores.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, later.ID, all[0].PlannedOpenDate.ID)

		history, err := stores.ListPlannedOpenDates(ctx, store.ID)
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("delete removes tasks", func(t *testing.T) {
		task, err := launch.NewManualTask(store.ID, launch.ManualTaskInput{Title: "Order signage", DueDate: open})
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))

		require.NoError(t, stores.Delete(ctx, store.ID))
		_, err = stores.FindByID(ctx, store.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = tasks.FindByID(ctx, task.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTaskRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	templates := NewGormLaunchTemplateRepository(db.DB)
	repo := NewGormTaskRepository(db.DB)
	storeID := uuid.New()
	open := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	tpl, err := launch.NewLaunchTemplate("Standard", "CA", []launch.TemplateTaskInput{
		{Phase: "Build", Title: "Sign lease", OffsetDays: -60},
		{Phase: "Open", Title: "Soft open", OffsetDays: -2, DurationDays: 2},
	})
	require.NoError(t, err)
	require.NoError(t, templates.Create(ctx, tpl))

	loaded, err := templates.FindByID(ctx, tpl.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 2)
	assert.Equal(t, "Sign lease", loaded.Tasks[0].Title)

	t.Run("generation is replaced on rerun", func(t *testing.T) {
		require.NoError(t, repo.ApplyGeneration(ctx, launch.PlanGeneration(storeID, loaded, open, nil)))
		existing, err := repo.FindByStore(ctx, storeID)
		require.NoError(t, err)
		require.Len(t, existing, 2)
		assert.Equal(t, "2026-10-02", existing[0].DueDate.Format(launch.DateLayout))
		assert.Equal(t, "2026-11-28", existing[1].StartDate.Format(launch.DateLayout))

		require.NoError(t, repo.ApplyGeneration(ctx, launch.PlanGeneration(storeID, loaded, open.AddDate(0, 0, 7), existing)))
		regenerated, err := repo.FindByStore(ctx, storeID)
		require.NoError(t, err)
		require.Len(t, regenerated, 2)
		assert.Equal(t, "2026-10-09", regenerated[0].DueDate.Format(launch.DateLayout))
	})

	t.Run("save all shifts tasks", func(t *testing.T) {
		list, err := repo.FindByStore(ctx, storeID)
		require.NoError(t, err)
		for _, task := range list {
			task.Shift(1)
		}
		require.NoError(t, repo.SaveAll(ctx, list))

		reloaded, err := repo.FindByID(ctx, list[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "2026-10-10", reloaded.DueDate.Format(launch.DateLayout))
	})

	t.Run("comments and checklist", func(t *testing.T) {
		list, err := repo.FindByStore(ctx, storeID)
		require.NoError(t, err)
		taskID := list[0].ID

		comment, err := launch.NewTaskComment(taskID, uuid.New(), "Landlord signed")
		require.NoError(t, err)
		require.NoError(t, repo.AddComment(ctx, comment))
		comments, err := repo.ListComments(ctx, taskID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "Landlord signed", comments[0].Content)

		item, err := launch.NewChecklistItem(taskID, "Scan copy", 0)
		require.NoError(t, err)
		require.NoError(t, repo.AddChecklistItem(ctx, item))
		item.SetCompleted(true)
		require.NoError(t, repo.UpdateChecklistItem(ctx, item))

		found, err := repo.FindChecklistItem(ctx, taskID, item.ID)
		require.NoError(t, err)
		assert.True(t, found.IsCompleted)

		_, err = repo.FindChecklistItem(ctx, uuid.New(), item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInventoryRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	groups := NewGormInventoryGroupRepository(db.DB)
	periods := NewGormInventoryPeriodRepository(db.DB)

	group, err := inventory.NewGroup("Downtown")
	require.NoError(t, err)
	require.NoError(t, groups.Create(ctx, group))

	exists, err := groups.ExistsByName(ctx, "Downtown")
	require.NoError(t, err)
	assert.True(t, exists)

	dup, err := inventory.NewGroup("Downtown")
	require.NoError(t, err)
	assert.ErrorIs(t, groups.Create(ctx, dup), shared.ErrAlreadyExists)

	t.Run("links upsert by pos menu name", func(t *testing.T) {
		first, err := inventory.NewPosMenuLink(group.ID, "Bulgogi Bowl", uuid.New())
		require.NoError(t, err)
		require.NoError(t, groups.UpsertLink(ctx, first))

		replacement := uuid.New()
		second, err := inventory.NewPosMenuLink(group.ID, "Bulgogi Bowl", replacement)
		require.NoError(t, err)
		require.NoError(t, groups.UpsertLink(ctx, second))

		links, err := groups.FindLinks(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, replacement, links[0].MenuManualID)
	})

	t.Run("period counts, sales and close", func(t *testing.T) {
		start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		period, err := inventory.NewPeriod(group.ID, start, start.AddDate(0, 0, 6), "")
		require.NoError(t, err)
		require.NoError(t, periods.Create(ctx, period))

		ingredientID := uuid.New()
		changed, err := period.UpsertCounts([]inventory.CountInput{{
			IngredientID:       ingredientID,
			OpeningStock:       decimal.NewFromInt(10),
			StockIn:            decimal.NewFromInt(5),
			ActualClosingStock: decimal.NewFromInt(8),
		}})
		require.NoError(t, err)
		require.NoError(t, periods.SaveItems(ctx, changed))

		links, err := groups.FindLinks(ctx, group.ID)
		require.NoError(t, err)
		sales, err := period.UpsertSales([]inventory.SalesInput{{PosMenuName: "Bulgogi Bowl", QuantitySold: decimal.NewFromInt(3)}}, links)
		require.NoError(t, err)
		require.NoError(t, periods.SaveSales(ctx, sales))

		loaded, err := periods.FindByID(ctx, period.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		require.Len(t, loaded.Sales, 1)

		// a second count overwrites the same row
		changed, err = loaded.UpsertCounts([]inventory.CountInput{{IngredientID: ingredientID, OpeningStock: decimal.NewFromInt(12)}})
		require.NoError(t, err)
		require.NoError(t, periods.SaveItems(ctx, changed))
		loaded, err = periods.FindByID(ctx, period.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		assert.True(t, loaded.Items[0].OpeningStock.Equal(decimal.NewFromInt(12)))

		require.NoError(t, loaded.Close())
		require.NoError(t, periods.UpdateStatus(ctx, loaded))
		list, err := periods.FindByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, inventory.PeriodClosed, list[0].Status)
	})
}
