package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doMultipart issues a multipart form request, optionally attaching an image
// part.
func (s *testServer) doMultipart(
	t *testing.T,
	method, path string,
	fields map[string]string,
	imageName string,
	cookies ...*http.Cookie,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	return rec
}

var widgetFields = map[string]string{
	"name":        "Widget",
	"sku":         "WID-001",
	"category":    "gadgets",
	"quantity":    "10",
	"price":       "19.99",
	"description": "a widget",
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	cookie := s.register(t, "Ann", "ann@x.com", "secret1")

	rec := s.doMultipart(t, http.MethodPost, "/products", widgetFields, "widget.png", cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, "10", body["quantity"])
	assert.Equal(t, "19.99", body["price"])

	image, ok := body["image"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "widget.png", image["fileName"])
}

func TestCreateProduct_WithoutImage(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	cookie := s.register(t, "Ann", "ann@x.com", "secret1")

	rec := s.doMultipart(t, http.MethodPost, "/products", widgetFields, "", cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProduct_MissingFields(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	cookie := s.register(t, "Ann", "ann@x.com", "secret1")

	rec := s.doMultipart(t, http.MethodPost, "/products", map[string]string{"name": "Widget"}, "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_RequiresAuth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.doMultipart(t, http.MethodPost, "/products", widgetFields, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductOwnership(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	annCookie := s.register(t, "Ann", "ann@x.com", "secret1")
	bobCookie := s.register(t, "Bob", "bob@x.com", "secret2")

	rec := s.doMultipart(t, http.MethodPost, "/products", widgetFields, "", annCookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	productID, ok := decodeBody(t, rec)["id"].(string)
	require.True(t, ok)

	// The owner sees it, the other user is refused, and a made-up ID is
	// missing for both.
	rec = s.do(t, http.MethodGet, "/products/"+productID, nil, annCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/products/"+productID, nil, bobCookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	missing := "ffffffffffffffffffffffff"
	rec = s.do(t, http.MethodGet, "/products/"+missing, nil, annCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodGet, "/products/"+missing, nil, bobCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Listings are scoped to the caller.
	rec = s.do(t, http.MethodGet, "/products", nil, bobCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String()[:2])
}

func TestUpdateProduct_Partial(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	cookie := s.register(t, "Ann", "ann@x.com", "secret1")

	rec := s.doMultipart(t, http.MethodPost, "/products", widgetFields, "", cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	productID, ok := decodeBody(t, rec)["id"].(string)
	require.True(t, ok)

	rec = s.doMultipart(t, http.MethodPatch, "/products/"+productID, map[string]string{"quantity": "25"}, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "25", body["quantity"])
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, "19.99", body["price"])
}

func TestDeleteProductEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	annCookie := s.register(t, "Ann", "ann@x.com", "secret1")
	bobCookie := s.register(t, "Bob", "bob@x.com", "secret2")

	rec := s.doMultipart(t, http.MethodPost, "/products", widgetFields, "", annCookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	productID, ok := decodeBody(t, rec)["id"].(string)
	require.True(t, ok)

	rec = s.do(t, http.MethodDelete, "/products/"+productID, nil, bobCookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodDelete, "/products/"+productID, nil, annCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/products/"+productID, nil, annCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
