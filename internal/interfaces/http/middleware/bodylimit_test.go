package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storelaunch/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), BodyLimit(limit))
	router.POST("/stores/:id/files", func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.String(http.StatusRequestEntityTooLarge, "limit %d", tooLarge.Limit)
				return
			}
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.String(http.StatusCreated, "%d", len(data))
	})
	router.GET("/stores/:id/files", func(c *gin.Context) {
		c.String(http.StatusOK, "[]")
	})
	return router
}

func multipartUpload(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "floorplan.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("p"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestBodyLimit_StoreFileUpload(t *testing.T) {
	t.Run("upload under the limit reaches the handler", func(t *testing.T) {
		router := newUploadRouter(4 << 10)
		body, contentType := multipartUpload(t, 512)
		size := body.Len()

		req := httptest.NewRequest(http.MethodPost, "/stores/s1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, strconv.Itoa(size), w.Body.String())
	})

	t.Run("declared size over the limit gets the error envelope", func(t *testing.T) {
		router := newUploadRouter(1 << 10)
		body, contentType := multipartUpload(t, 4<<10)

		req := httptest.NewRequest(http.MethodPost, "/stores/s1/files", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set(RequestIDHeader, "upload-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeTooLarge, resp.Error.Code)
		assert.Equal(t, "upload-42", resp.Error.RequestID)
		assert.Equal(t, "Request body exceeds maximum allowed size", resp.Error.Message)
	})

	t.Run("chunked body is cut off at the limit", func(t *testing.T) {
		router := newUploadRouter(64)
		req := httptest.NewRequest(http.MethodPost, "/stores/s1/files", strings.NewReader(strings.Repeat("x", 256)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "limit 64", w.Body.String())
	})

	t.Run("listing files has no body to limit", func(t *testing.T) {
		router := newUploadRouter(1)
		req := httptest.NewRequest(http.MethodGet, "/stores/s1/files", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
