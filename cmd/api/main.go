package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"textile-backend/internal/config"
	"textile-backend/internal/ctxkeys"
	"textile-backend/internal/database"
	"textile-backend/internal/handlers"
	"textile-backend/internal/middleware"
	"textile-backend/internal/storage"
)

func main() {
	// 1. Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to PostgreSQL and apply schema
	db := database.New(&cfg.DB)
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 3. Initialize file storage: R2 when configured, local disk otherwise
	var fileStore storage.Store
	if cfg.R2.Enabled() {
		fileStore, err = storage.NewR2Store(
			cfg.R2.AccountID, cfg.R2.AccessKey, cfg.R2.SecretKey,
			cfg.R2.Bucket, cfg.R2.PublicURL,
		)
		if err != nil {
			log.Fatalf("Failed to initialize R2 storage: %v", err)
		}
	} else {
		fileStore = storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	}

	// 4. Set up router with global middleware
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5. Initialize handlers with their dependencies
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret)
	employeeHandler := handlers.NewEmployeeHandler(db)
	departmentHandler := handlers.NewDepartmentHandler(db)
	attendanceHandler := handlers.NewAttendanceHandler(db)
	payrollHandler := handlers.NewPayrollHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	productionHandler := handlers.NewProductionHandler(db)
	projectHandler := handlers.NewProjectHandler(db)
	awardHandler := handlers.NewAwardHandler(db)
	enquiryHandler := handlers.NewEnquiryHandler(db)
	uploadHandler := handlers.NewUploadHandler(fileStore, cfg.Upload.Dir)

	// 6. Public routes (no authentication required)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Textile Manufacturing Management API"))
	})
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(db.Health())
	})

	r.Post("/api/auth/register", authHandler.Register)
	// Credential guessing gets throttled per IP.
	r.With(middleware.RateLimit(rate.Every(time.Minute/10), 10)).
		Post("/api/auth/login", authHandler.Login)

	// Public website content
	r.Get("/api/awards", awardHandler.List)
	r.Get("/api/awards/{id}", awardHandler.GetByID)
	r.Get("/api/orders/fabric-types", orderHandler.FabricTypes)
	r.Post("/api/enquiries", enquiryHandler.Create)

	// Serve uploaded files
	r.Get("/api/files/*", uploadHandler.ServeFile)

	// 7. Protected routes (require valid JWT)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		r.Get("/api/auth/profile", authHandler.Profile)
		r.Post("/api/auth/logout", authHandler.Logout)

		// Own HR data
		r.Get("/api/employees/profile", employeeHandler.Profile)
		r.Post("/api/attendance", attendanceHandler.Mark)
		r.Get("/api/attendance/employee/{employeeId}", attendanceHandler.ByEmployee)
		r.Get("/api/payroll", payrollHandler.List)
		r.Get("/api/payroll/{id}", payrollHandler.GetByID)

		// Orders and projects: clients are scoped to their own records
		// inside the handlers.
		r.Post("/api/orders", orderHandler.Create)
		r.Get("/api/orders", orderHandler.List)
		r.Get("/api/orders/{id}", orderHandler.GetByID)
		r.Get("/api/projects", projectHandler.List)
		r.Get("/api/projects/{id}", projectHandler.GetByID)

		// Production visibility for employees
		r.Get("/api/production", productionHandler.List)
		r.Get("/api/production/{id}", productionHandler.GetByID)

		// Departments are readable by any authenticated user
		r.Get("/api/departments", departmentHandler.List)
		r.Get("/api/departments/{id}", departmentHandler.GetByID)

		// Write operations restricted to admins
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(ctxkeys.RoleAdmin))

			r.Post("/api/upload", uploadHandler.Upload)

			r.Post("/api/employees", employeeHandler.Create)
			r.Get("/api/employees", employeeHandler.List)
			r.Get("/api/employees/{id}", employeeHandler.GetByID)
			r.Put("/api/employees/{id}", employeeHandler.Update)
			r.Delete("/api/employees/{id}", employeeHandler.Delete)

			r.Post("/api/departments", departmentHandler.Create)
			r.Put("/api/departments/{id}", departmentHandler.Update)
			r.Delete("/api/departments/{id}", departmentHandler.Delete)

			r.Get("/api/attendance", attendanceHandler.List)
			r.Put("/api/attendance/{id}", attendanceHandler.Update)
			r.Delete("/api/attendance/{id}", attendanceHandler.Delete)

			r.Post("/api/payroll", payrollHandler.Generate)
			r.Put("/api/payroll/{id}", payrollHandler.Update)
			r.Patch("/api/payroll/{id}/pay", payrollHandler.MarkPaid)
			r.Delete("/api/payroll/{id}", payrollHandler.Delete)

			r.Put("/api/orders/{id}", orderHandler.Update)
			r.Delete("/api/orders/{id}", orderHandler.Delete)

			r.Post("/api/production", productionHandler.Create)
			r.Put("/api/production/{id}", productionHandler.Update)
			r.Delete("/api/production/{id}", productionHandler.Delete)

			r.Post("/api/projects", projectHandler.Create)
			r.Put("/api/projects/{id}", projectHandler.Update)
			r.Delete("/api/projects/{id}", projectHandler.Delete)

			r.Post("/api/awards", awardHandler.Create)
			r.Put("/api/awards/{id}", awardHandler.Update)
			r.Delete("/api/awards/{id}", awardHandler.Delete)

			r.Get("/api/enquiries", enquiryHandler.List)
			r.Get("/api/enquiries/{id}", enquiryHandler.GetByID)
			r.Put("/api/enquiries/{id}", enquiryHandler.Update)
			r.Delete("/api/enquiries/{id}", enquiryHandler.Delete)
		})
	})

	// 8. Start server with graceful shutdown
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server started on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-done
	log.Println("Server stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
