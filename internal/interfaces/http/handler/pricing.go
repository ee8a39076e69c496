package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	importapp "github.com/storelaunch/backend/internal/application/import"
	pricingapp "github.com/storelaunch/backend/internal/application/pricing"
	"github.com/storelaunch/backend/internal/domain/pricing"
)

// IngredientHandler serves countries and ingredient masters
type IngredientHandler struct {
	BaseHandler
	countries   *pricingapp.CountryService
	ingredients *pricingapp.IngredientService
	importer    *importapp.IngredientImportService
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(
	countries *pricingapp.CountryService,
	ingredients *pricingapp.IngredientService,
	importer *importapp.IngredientImportService,
) *IngredientHandler {
	return &IngredientHandler{countries: countries, ingredients: ingredients, importer: importer}
}

// ListCountries handles GET /countries
func (h *IngredientHandler) ListCountries(c *gin.Context) {
	countries, err := h.countries.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(countries, toCountryResponse))
}

// List handles GET /ingredients
func (h *IngredientHandler) List(c *gin.Context) {
	masters, err := h.ingredients.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapSlice(masters, toIngredientResponse))
}

// Create handles POST /ingredients
func (h *IngredientHandler) Create(c *gin.Context) {
	var req CreateIngredientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.ingredients.Create(c.Request.Context(), pricing.IngredientInput{
		Category:    req.Category,
		KoreanName:  req.KoreanName,
		EnglishName: req.EnglishName,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		YieldRate:   req.YieldRate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toIngredientResponse(m))
}

// Search handles GET /ingredients/search?q&limit&templateId
func (h *IngredientHandler) Search(c *gin.Context) {
	templateID, err := queryUUID(c, "templateId")
	if err != nil {
		h.NotFound(c, "Template not found")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := h.ingredients.Search(c.Request.Context(), pricingapp.SearchInput{
		Query:      c.Query("q"),
		Limit:      limit,
		TemplateID: templateID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Import handles POST /ingredients/import with a multipart "file" field
func (h *IngredientHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "File is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer f.Close()

	result, err := h.importer.Import(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
