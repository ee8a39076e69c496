package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/infrastructure/auth"
	"github.com/storelaunch/backend/internal/interfaces/http/handler"
	"github.com/storelaunch/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every API handler mounted under /api/v1
type Handlers struct {
	Health             *handler.HealthHandler
	Auth               *handler.AuthHandler
	Translation        *handler.TranslationHandler
	TemplateDownload   *handler.TemplateDownloadHandler
	Ingredient         *handler.IngredientHandler
	IngredientTemplate *handler.IngredientTemplateHandler
	Vendor             *handler.VendorHandler
	Manual             *handler.ManualHandler
	ManualGroup        *handler.ManualGroupHandler
	Store              *handler.StoreHandler
	Task               *handler.TaskHandler
	LaunchTemplate     *handler.LaunchTemplateHandler
	File               *handler.FileHandler
	Inventory          *handler.InventoryHandler
}

// Security holds what the route table needs to gate requests
type Security struct {
	JWT         *auth.JWTService
	Blacklist   auth.TokenBlacklist
	AuthLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// RegisterAPI mounts the full route table. Bearer auth runs for the whole
// prefix except the public auth and health paths; writes are role gated.
func RegisterAPI(r *Router, h Handlers, sec Security) {
	jwtCfg := middleware.DefaultJWTConfig(sec.JWT)
	jwtCfg.TokenBlacklist = sec.Blacklist
	jwtCfg.Logger = sec.Logger
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	role := func(roles []identity.Role) gin.HandlerFunc {
		return middleware.RequireRole(sec.Logger, roles...)
	}
	managers := role(middleware.Managers)
	contributors := role(middleware.Contributors)
	admins := role(middleware.Admins)

	authLimit := func(c *gin.Context) { c.Next() }
	if sec.AuthLimiter != nil {
		authLimit = middleware.AuthRateLimit(sec.AuthLimiter)
	}

	system := NewDomainGroup("system", "")
	system.GET("/health", h.Health.Check)
	system.POST("/translate", h.Translation.Translate)
	system.GET("/templates/download", h.TemplateDownload.Download)
	r.Register(system)

	authGroup := NewDomainGroup("auth", "/auth")
	authGroup.POST("/login", authLimit, h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.RefreshToken)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.GET("/me", h.Auth.GetCurrentUser)
	authGroup.POST("/forgot-password", authLimit, h.Auth.ForgotPassword)
	authGroup.GET("/verify-reset-token", h.Auth.VerifyResetToken)
	authGroup.POST("/reset-password", authLimit, h.Auth.ResetPassword)
	r.Register(authGroup)

	pricing := NewDomainGroup("pricing", "")
	pricing.GET("/countries", h.Ingredient.ListCountries)
	ingredients := pricing.Group("ingredients", "/ingredients")
	ingredients.GET("", h.Ingredient.List)
	ingredients.POST("", managers, h.Ingredient.Create)
	ingredients.GET("/search", h.Ingredient.Search)
	ingredients.POST("/import", managers, h.Ingredient.Import)
	templates := pricing.Group("ingredient-templates", "/ingredient-templates")
	templates.GET("", h.IngredientTemplate.List)
	templates.POST("", managers, h.IngredientTemplate.Create)
	templates.GET("/:id", h.IngredientTemplate.Get)
	templates.PUT("/:id/items/:itemId", managers, h.IngredientTemplate.UpdateItem)
	templates.GET("/:id/items/:itemId/history", h.IngredientTemplate.PriceHistory)
	vendors := pricing.Group("vendors", "/vendors")
	vendors.GET("", h.Vendor.List)
	vendors.POST("", managers, h.Vendor.Create)
	vendors.PUT("/:id", managers, h.Vendor.Update)
	vendors.DELETE("/:id", managers, h.Vendor.Delete)
	r.Register(pricing)

	recipe := NewDomainGroup("recipe", "")
	manuals := recipe.Group("manuals", "/manuals")
	manuals.GET("", h.Manual.List)
	manuals.POST("", managers, h.Manual.Create)
	manuals.GET("/:id", h.Manual.Get)
	manuals.PUT("/:id", managers, h.Manual.Update)
	manuals.DELETE("/:id", managers, h.Manual.Delete)
	manuals.POST("/:id/cost-versions", managers, h.Manual.CreateCostVersion)
	groups := recipe.Group("manual-groups", "/manual-groups")
	groups.GET("", h.ManualGroup.List)
	groups.POST("", managers, h.ManualGroup.Create)
	groups.GET("/:id", h.ManualGroup.Get)
	groups.PUT("/:id", managers, h.ManualGroup.Update)
	groups.DELETE("/:id", managers, h.ManualGroup.Delete)
	r.Register(recipe)

	launch := NewDomainGroup("launch", "")
	stores := launch.Group("stores", "/stores")
	stores.GET("", h.Store.List)
	stores.POST("", managers, h.Store.Create)
	stores.GET("/:id", h.Store.Get)
	stores.PUT("/:id", managers, h.Store.Update)
	stores.DELETE("/:id", admins, h.Store.Delete)
	stores.GET("/:id/planned-open-dates", h.Store.PlannedOpenDates)
	stores.POST("/:id/planned-open-dates", managers, h.Store.AddPlannedOpenDate)
	stores.GET("/:id/audit-logs", h.Store.AuditLogs)
	stores.GET("/:id/tasks", h.Task.List)
	stores.POST("/:id/tasks", managers, h.Task.Create)
	stores.POST("/:id/tasks/generate", managers, h.Task.Generate)
	stores.GET("/:id/files", h.File.List)
	stores.POST("/:id/files", managers, h.File.Upload)
	tasks := launch.Group("tasks", "/tasks")
	tasks.GET("/:id", h.Task.Get)
	tasks.PUT("/:id", contributors, h.Task.Update)
	tasks.POST("/:id/reschedule", contributors, h.Task.Reschedule)
	tasks.GET("/:id/comments", h.Task.Comments)
	tasks.POST("/:id/comments", contributors, h.Task.AddComment)
	tasks.GET("/:id/checklist", h.Task.Checklist)
	tasks.POST("/:id/checklist", contributors, h.Task.AddChecklistItem)
	tasks.PATCH("/:id/checklist/:itemId", contributors, h.Task.SetChecklistItem)
	launchTemplates := launch.Group("launch-templates", "/launch-templates")
	launchTemplates.GET("", h.LaunchTemplate.List)
	launchTemplates.POST("", managers, h.LaunchTemplate.Create)
	launchTemplates.GET("/:id", h.LaunchTemplate.Get)
	r.Register(launch)

	inv := NewDomainGroup("inventory", "/inventory")
	inv.GET("/groups", h.Inventory.ListGroups)
	inv.POST("/groups", managers, h.Inventory.CreateGroup)
	inv.GET("/groups/:id/periods", h.Inventory.ListPeriods)
	inv.POST("/groups/:id/periods", contributors, h.Inventory.CreatePeriod)
	inv.GET("/groups/:id/pos-links", h.Inventory.ListPosLinks)
	inv.POST("/groups/:id/pos-links", managers, h.Inventory.LinkPosMenu)
	inv.GET("/periods/:id", h.Inventory.GetPeriod)
	inv.PUT("/periods/:id/items", contributors, h.Inventory.UpsertItems)
	inv.PUT("/periods/:id/sales", contributors, h.Inventory.UpsertSales)
	inv.POST("/periods/:id/calculate", contributors, h.Inventory.Calculate)
	inv.POST("/periods/:id/close", managers, h.Inventory.Close)
	r.Register(inv)
}
