package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/prasitsang/stockroom-api/internal/repository"
	"github.com/prasitsang/stockroom-api/shared/auth"
)

// RouterParams bundles everything the router needs.
type RouterParams struct {
	Logger         *zerolog.Logger
	FrontendURL    string
	UploadDir      string
	JWTAuth        auth.JWTAuthenticator
	UserRepo       repository.UserRepository
	UserHandler    *UserHandler
	ProductHandler *ProductHandler
	ContactHandler *ContactHandler
}

// NewRouter builds the HTTP surface. Protected routes sit behind the auth
// gate; everything responds JSON.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(*params.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request completed")
	}))
	r.Use(Recoverer(params.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{params.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	authenticate := Authenticate(params.JWTAuth, params.UserRepo, params.Logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	})

	r.Post("/register", params.UserHandler.Register)
	r.Post("/login", params.UserHandler.Login)
	r.Post("/logout", params.UserHandler.Logout)
	r.Get("/loginstatus", params.UserHandler.LoginStatus)
	r.Post("/forgotpassword", params.UserHandler.ForgotPassword)
	r.Put("/resetpassword/{resetToken}", params.UserHandler.ResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/profile", params.UserHandler.GetProfile)
		r.Put("/profile", params.UserHandler.UpdateProfile)
		r.Patch("/password", params.UserHandler.ChangePassword)

		r.Route("/products", func(r chi.Router) {
			r.Post("/", params.ProductHandler.CreateProduct)
			r.Get("/", params.ProductHandler.ListProducts)
			r.Get("/{id}", params.ProductHandler.GetProduct)
			r.Patch("/{id}", params.ProductHandler.UpdateProduct)
			r.Delete("/{id}", params.ProductHandler.DeleteProduct)
		})

		r.Post("/contact", params.ContactHandler.SendMessage)
	})

	// Uploaded product images are served statically.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(params.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}
