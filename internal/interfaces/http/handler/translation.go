package handler

import (
	"github.com/gin-gonic/gin"
	translationapp "github.com/storelaunch/backend/internal/application/translation"
)

// TranslateRequest carries the Korean text to translate
type TranslateRequest struct {
	Text string `json:"text" binding:"max=10000"`
}

// TranslationHandler translates cooking instructions
type TranslationHandler struct {
	BaseHandler
	service *translationapp.Service
}

// NewTranslationHandler creates a new TranslationHandler
func NewTranslationHandler(service *translationapp.Service) *TranslationHandler {
	return &TranslationHandler{service: service}
}

// Translate handles POST /translate
func (h *TranslationHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Translate(c.Request.Context(), req.Text)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
