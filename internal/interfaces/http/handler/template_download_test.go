package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	importapp "github.com/storelaunch/backend/internal/application/import"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func downloadTemplate(query string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/templates/download", NewTemplateDownloadHandler().Download)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates/download"+query, nil))
	return w
}

func TestTemplateDownload_CSV(t *testing.T) {
	w := downloadTemplate("?type=vendors")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, importapp.ContentTypeCSV, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="vendors-template.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\ufeff# "))
}

func TestTemplateDownload_XLSX(t *testing.T) {
	w := downloadTemplate("?type=ingredients-master&format=xlsx")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, importapp.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ingredients-master-template.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "<Workbook")
}

func TestTemplateDownload_UnknownType(t *testing.T) {
	w := downloadTemplate("?type=nope")

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error          string   `json:"error"`
		AvailableTypes []string `json:"availableTypes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid template type", body.Error)
	assert.Len(t, body.AvailableTypes, 6)
	assert.Contains(t, body.AvailableTypes, "grocery-prices")
}
