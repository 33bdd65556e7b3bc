package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tablerota/rota-backend-go/internal/config"
	appHTTP "github.com/tablerota/rota-backend-go/internal/handler/http"
	"github.com/tablerota/rota-backend-go/internal/pkg/cron"
	"github.com/tablerota/rota-backend-go/internal/pkg/database"
	"github.com/tablerota/rota-backend-go/internal/pkg/jwt"
	"github.com/tablerota/rota-backend-go/internal/pkg/sse"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
	"github.com/tablerota/rota-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/tablerota/rota-backend-go/internal/service/auth"
	serviceEmployee "github.com/tablerota/rota-backend-go/internal/service/employee"
	serviceHoliday "github.com/tablerota/rota-backend-go/internal/service/holiday"
	serviceNotification "github.com/tablerota/rota-backend-go/internal/service/notification"
	serviceShift "github.com/tablerota/rota-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	accessDB, err := database.NewPostgreSQLDB(cfg.AccessDatabaseURL(), cfg.Access.MaxConns, cfg.Access.MinConns)
	if err != nil {
		fmt.Println("Error connecting to access database:", err)
		return
	}
	defer accessDB.Pool.Close()

	registry := tenant.NewRegistry(cfg.TenantDatabaseURL, cfg.Tenants.MaxConns, cfg.Tenants.MinConns)
	defer registry.Close()

	accountRepo := postgresql.NewAccountRepository(accessDB)
	employeeRepo := postgresql.NewEmployeeRepository(registry)
	shiftRepo := postgresql.NewShiftRepository(registry)
	shiftRequestRepo := postgresql.NewShiftRequestRepository(registry)
	holidayRequestRepo := postgresql.NewHolidayRequestRepository(registry)
	holidayYearRepo := postgresql.NewHolidayYearRepository(registry)
	notificationRepo := postgresql.NewNotificationRepository(registry)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	notificationService := serviceNotification.NewNotificationService(notificationRepo, hub, serviceNotification.Config{})
	defer notificationService.Shutdown()

	authService := serviceAuth.NewAuthService(accountRepo, jwtService)
	employeeService := serviceEmployee.NewEmployeeService(employeeRepo)
	shiftService := serviceShift.NewShiftService(registry, shiftRepo, shiftRequestRepo, employeeRepo, notificationService)
	holidayService := serviceHoliday.NewHolidayService(registry, holidayRequestRepo, holidayYearRepo, employeeRepo, notificationService)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("sweep-revoked-tokens", time.Hour, func(ctx context.Context) error {
		jwtService.SweepRevoked(7 * 24 * time.Hour)
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, authService)
	shiftHandler := appHTTP.NewShiftHandler(shiftService)
	holidayHandler := appHTTP.NewHolidayHandler(holidayService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeService)
	notificationHandler := appHTTP.NewNotificationHandler(notificationService, hub)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		shiftHandler,
		holidayHandler,
		employeeHandler,
		notificationHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
