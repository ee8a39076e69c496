package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/storelaunch/backend/internal/application/identity"
	importapp "github.com/storelaunch/backend/internal/application/import"
	inventoryapp "github.com/storelaunch/backend/internal/application/inventory"
	launchapp "github.com/storelaunch/backend/internal/application/launch"
	pricingapp "github.com/storelaunch/backend/internal/application/pricing"
	recipeapp "github.com/storelaunch/backend/internal/application/recipe"
	translationapp "github.com/storelaunch/backend/internal/application/translation"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/infrastructure/auth"
	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/storelaunch/backend/internal/infrastructure/event"
	"github.com/storelaunch/backend/internal/infrastructure/persistence"
	"github.com/storelaunch/backend/internal/infrastructure/storage"
	"github.com/storelaunch/backend/internal/interfaces/http/handler"
	"github.com/storelaunch/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

type testAPI struct {
	engine *gin.Engine
	jwt    *auth.JWTService
	users  *persistence.GormUserRepository
}

// newTestAPI wires the real services over an in-memory SQLite database
func newTestAPI(t *testing.T, authLimit int) *testAPI {
	t.Helper()
	log := zap.NewNop()

	db, err := persistence.Open(sqlite.Open(":memory:"), &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret-32-characters!",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "storelaunch-test",
			MaxRefreshCount:        5,
		},
	}
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewInMemoryTokenBlacklist()

	gdb := db.DB
	users := persistence.NewGormUserRepository(gdb)
	countries := persistence.NewGormCountryRepository(gdb)
	ingredients := persistence.NewGormIngredientRepository(gdb)
	priceTemplates := persistence.NewGormIngredientTemplateRepository(gdb)
	vendors := persistence.NewGormVendorRepository(gdb)
	manuals := persistence.NewGormManualRepository(gdb)
	manualGroups := persistence.NewGormManualGroupRepository(gdb)
	costs := persistence.NewGormCostVersionRepository(gdb)
	stores := persistence.NewGormStoreRepository(gdb)
	storeFiles := persistence.NewGormStoreFileRepository(gdb)
	tasks := persistence.NewGormTaskRepository(gdb)
	launchTemplates := persistence.NewGormLaunchTemplateRepository(gdb)
	audits := persistence.NewGormAuditLogRepository(gdb)

	bus := event.NewInMemoryEventBus(log)
	auditHandler := event.NewAuditHandler(audits, log)
	bus.Subscribe(auditHandler, auditHandler.EventTypes()...)

	objects, err := storage.NewLocalObjectStorage(t.TempDir())
	require.NoError(t, err)

	authCfg := identityapp.DefaultAuthServiceConfig()
	authCfg.BcryptCost = 4
	authService := identityapp.NewAuthService(users, persistence.NewGormResetTokenRepository(gdb),
		jwtService, blacklist, bus, authCfg, log)

	h := Handlers{
		Health:           handler.NewHealthHandler(db, cfg),
		Auth:             handler.NewAuthHandler(authService),
		Translation:      handler.NewTranslationHandler(translationapp.NewService(nil, nil, log)),
		TemplateDownload: handler.NewTemplateDownloadHandler(),
		Ingredient: handler.NewIngredientHandler(
			pricingapp.NewCountryService(countries, log),
			pricingapp.NewIngredientService(ingredients, priceTemplates, log),
			importapp.NewIngredientImportService(ingredients, log),
		),
		IngredientTemplate: handler.NewIngredientTemplateHandler(
			pricingapp.NewTemplateService(priceTemplates, ingredients, countries, log)),
		Vendor:         handler.NewVendorHandler(pricingapp.NewVendorService(vendors, log)),
		Manual:         handler.NewManualHandler(recipeapp.NewManualService(manuals, manualGroups, costs, priceTemplates, countries, log)),
		ManualGroup:    handler.NewManualGroupHandler(recipeapp.NewGroupService(manualGroups, manuals, costs, priceTemplates, log)),
		Store:          handler.NewStoreHandler(launchapp.NewStoreService(stores, tasks, countries, audits, bus, log)),
		Task:           handler.NewTaskHandler(launchapp.NewTaskService(tasks, stores, launchTemplates, bus, log)),
		LaunchTemplate: handler.NewLaunchTemplateHandler(launchapp.NewTemplateService(launchTemplates, log)),
		File:           handler.NewFileHandler(launchapp.NewFileService(storeFiles, stores, objects, log)),
		Inventory: handler.NewInventoryHandler(inventoryapp.NewInventoryService(
			persistence.NewGormInventoryGroupRepository(gdb),
			persistence.NewGormInventoryPeriodRepository(gdb),
			manuals, log)),
	}

	engine := gin.New()
	r := NewRouter(engine)
	RegisterAPI(r, h, Security{
		JWT:         jwtService,
		Blacklist:   blacklist,
		AuthLimiter: middleware.NewRateLimiter(authLimit, time.Minute),
		Logger:      log,
	})
	r.Setup()

	return &testAPI{engine: engine, jwt: jwtService, users: users}
}

// tokenFor issues an access token for a synthetic user with the given role
func (a *testAPI) tokenFor(t *testing.T, role identity.Role) string {
	t.Helper()
	pair, err := a.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  string(role) + "@example.com",
		Role:   string(role),
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestRoutes_PublicAndProtected(t *testing.T) {
	api := newTestAPI(t, 100)

	w := api.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/v1/auth/verify-reset-token?token=nope", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/api/v1/stores", "/api/v1/manuals", "/api/v1/inventory/groups", "/api/v1/auth/me"} {
		w = api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w = api.do(http.MethodGet, "/api/v1/stores", api.tokenFor(t, identity.RoleViewer), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_RoleGates(t *testing.T) {
	api := newTestAPI(t, 100)
	viewer := api.tokenFor(t, identity.RoleViewer)
	contributor := api.tokenFor(t, identity.RoleContributor)
	pm := api.tokenFor(t, identity.RolePM)
	admin := api.tokenFor(t, identity.RoleAdmin)

	store := map[string]any{"tempName": "Queen St", "country": "CA"}

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/stores", viewer, store).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/stores", contributor, store).Code)

	w := api.do(http.MethodPost, "/api/v1/stores", pm, store)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID       string `json:"id"`
		Timezone string `json:"timezone"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	require.NotEmpty(t, created.ID)

	w = api.do(http.MethodGet, "/api/v1/stores", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Len(t, list, 1)

	// Contributors pass the gate on task writes; the task itself is missing.
	missingTask := "/api/v1/tasks/" + uuid.NewString()
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPut, missingTask, viewer, map[string]any{"title": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPut, missingTask, contributor, map[string]any{"title": "x"}).Code)

	storePath := "/api/v1/stores/" + created.ID
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, storePath, pm, nil).Code)
	w = api.do(http.MethodDelete, storePath, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, storePath, viewer, nil).Code)
}

func TestRoutes_InvalidPathID(t *testing.T) {
	api := newTestAPI(t, 100)
	viewer := api.tokenFor(t, identity.RoleViewer)

	w := api.do(http.MethodGet, "/api/v1/manuals/not-a-uuid", viewer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Manual not found", env.Error.Message)
}

func TestRoutes_LoginLogoutFlow(t *testing.T) {
	api := newTestAPI(t, 100)

	user, err := identity.NewUser("pm@example.com", "secret123", "Pat", 4)
	require.NoError(t, err)
	require.NoError(t, user.AssignRole(identity.RolePM))
	require.NoError(t, api.users.Create(t.Context(), user))

	w := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "PM@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login handler.LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &login))
	assert.Equal(t, "PM", login.User.Role)
	token := login.Token.AccessToken

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/auth/me", token, nil).Code)
	assert.Equal(t, http.StatusCreated,
		api.do(http.MethodPost, "/api/v1/launch-templates", token, map[string]any{"name": "Default"}).Code)

	assert.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/auth/me", token, nil).Code)
}

func TestRoutes_AuthRateLimit(t *testing.T) {
	api := newTestAPI(t, 2)
	creds := map[string]string{"email": "nobody@example.com", "password": "wrong"}

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
	assert.Equal(t, http.StatusTooManyRequests, api.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)

	// refresh is not behind the auth limiter
	w := api.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
