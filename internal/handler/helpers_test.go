package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prasitsang/stockroom-api/internal/repository/memory"
	"github.com/prasitsang/stockroom-api/internal/usecase"
	"github.com/prasitsang/stockroom-api/shared/auth"
	"github.com/prasitsang/stockroom-api/shared/storage"
	"github.com/prasitsang/stockroom-api/shared/validator"
)

const testFrontendURL = "https://app.example.com"

type fakeNotifier struct {
	mu   sync.Mutex
	err  error
	body []string
}

func (f *fakeNotifier) Send(_, htmlBody, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.body = append(f.body, htmlBody)
	return nil
}

type fakeUploader struct{}

func (f *fakeUploader) Upload(
	_ context.Context,
	originalName, contentType string,
	size int64,
	_ io.Reader,
) (*storage.UploadResult, error) {
	return &storage.UploadResult{
		FileName: originalName,
		FilePath: "http://localhost:5000/uploads/" + originalName,
		FileType: contentType,
		FileSize: storage.FormatFileSize(size, 2),
		PublicID: "fake-public-id",
	}, nil
}

func (f *fakeUploader) Remove(_ context.Context, _ string) error {
	return nil
}

type testServer struct {
	router   http.Handler
	userRepo *memory.UserRepository
	notifier *fakeNotifier
	jwtAuth  auth.JWTAuthenticator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zerolog.Nop()

	validate, err := validator.New()
	require.NoError(t, err)

	jwtAuth := auth.NewJWTAuthenticator("test-secret", "stockroom-api", 24*time.Hour)
	userRepo := memory.NewUserRepository()
	tokenRepo := memory.NewPasswordResetTokenRepository()
	productRepo := memory.NewProductRepository()
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}

	accountUC := usecase.NewAccountUsecase(userRepo, jwtAuth)
	resetUC := usecase.NewPasswordResetUsecase(userRepo, tokenRepo, notifier, testFrontendURL, "noreply@example.com")
	productUC := usecase.NewProductUsecase(productRepo, uploader)
	contactUC := usecase.NewContactUsecase(userRepo, notifier, "support@example.com", "noreply@example.com")

	router := NewRouter(RouterParams{
		Logger:         &logger,
		FrontendURL:    testFrontendURL,
		UploadDir:      t.TempDir(),
		JWTAuth:        jwtAuth,
		UserRepo:       userRepo,
		UserHandler:    NewUserHandler(accountUC, resetUC, jwtAuth, validate, &logger),
		ProductHandler: NewProductHandler(productUC, uploader, validate, &logger),
		ContactHandler: NewContactHandler(contactUC, validate, &logger),
	})

	return &testServer{
		router:   router,
		userRepo: userRepo,
		notifier: notifier,
		jwtAuth:  jwtAuth,
	}
}

// do issues a JSON request against the in-process router.
func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	return rec
}

// register creates an account and returns its session cookie.
func (s *testServer) register(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	return sessionCookie(t, rec)
}

// sessionCookie pulls the session cookie out of a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}

	t.Fatal("no session cookie in response")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}
