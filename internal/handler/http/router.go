package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tablerota/rota-backend-go/internal/handler/http/middleware"
	"github.com/tablerota/rota-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	shiftHandler ShiftHandler,
	holidayHandler HolidayHandler,
	employeeHandler EmployeeHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rota-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/today", shiftHandler.Today)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/", shiftHandler.SaveDay)
					r.Post("/another", shiftHandler.AddAnother)
					r.Put("/{id}", shiftHandler.Update)
					r.Delete("/{id}", shiftHandler.Delete)
				})
			})

			r.Route("/rota", func(r chi.Router) {
				r.Get("/{employeeID}", shiftHandler.RotaForEmployee)
				r.Get("/confirmed", shiftHandler.ConfirmedRota)
				r.Get("/all", shiftHandler.AllRota)
			})

			r.Route("/shift-requests", func(r chi.Router) {
				r.Post("/", shiftHandler.RequestShift)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/pending", shiftHandler.PendingRequests)
					r.Post("/{id}/accept", shiftHandler.AcceptRequest)
					r.Delete("/{id}", shiftHandler.DeclineRequest)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Post("/request", holidayHandler.Request)
				r.Get("/{employeeID}", holidayHandler.Years)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/pending", holidayHandler.Pending)
					r.Post("/decide", holidayHandler.Decide)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.GetByID)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{id}/read", notificationHandler.MarkRead)
				r.Get("/sse", notificationHandler.Stream)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
