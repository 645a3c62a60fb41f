package api

import (
	"bank-backoffice/internal/api/handler"
	mw "bank-backoffice/internal/api/middleware"
	"bank-backoffice/internal/config"
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/domain/loan"
	"context"
	"log/slog"
	"net/http"
	"time"

	_ "bank-backoffice/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Services struct {
	Customers       customer.CustomerService
	Loans           loan.LoanService
	AccountRequests accountrequest.Service
	Employees       employee.EmployeeService
	Auth            auth.Authenticator
	HealthChecks    map[string]handler.Pinger
}

// SetupRouter wires every route. ctx bounds background work started here, such as the
// rate limiter's sweeper.
func SetupRouter(ctx context.Context, svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	cookies := handler.CookieOptions{
		Secure:     cfg.Server.Auth.SecureCookie,
		CaptchaTTL: cfg.Server.Auth.CaptchaTTL,
	}

	setupMiddleware(router, svc.Auth, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(ctx, router, svc, cookies, cfg, logger)
	setupCustomerRoutes(router, svc, cookies, logger)
	setupEmployeeRoutes(router, svc, logger)
	router.Get("/health", handler.NewHealthHandler(svc.HealthChecks, logger).Health)
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, authenticator auth.Authenticator, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.MetricsMiddleware())
	router.Use(mw.Session(authenticator, logger))
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(ctx context.Context, router *chi.Mux, svc Services, cookies handler.CookieOptions,
	cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(svc.Auth, cookies, logger)
	signupHandler := handler.NewSignupHandler(svc.AccountRequests, logger)
	limiter := mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger)

	router.Get("/", authHandler.Home)
	router.Get("/logout", authHandler.Logout)
	router.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/customer_login", authHandler.CustomerLogin)
		r.Post("/employee_login", authHandler.EmployeeLogin)
		r.Post("/signup", signupHandler.Submit)
	})
	router.Get("/signup", signupHandler.Form)
}

func setupCustomerRoutes(router *chi.Mux, svc Services, cookies handler.CookieOptions, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc.Customers, svc.Loans, svc.Auth, cookies, logger)

	router.With(mw.RequireRoleAPI(auth.RoleCustomer, logger)).Get("/get_balance", h.Balance)

	router.Route("/customer", func(r chi.Router) {
		r.Use(mw.RequireRole(auth.RoleCustomer, logger))
		r.Get("/dashboard", h.Dashboard)
		r.Get("/view_details", h.ViewDetails)
		r.Get("/pending_requests", h.PendingRequests)
		r.Get("/transaction/{type}", h.TransactionForm)
		r.Post("/transaction/{type}", h.Transaction)
		r.Get("/apply_loan", h.ApplyLoanForm)
		r.Post("/apply_loan", h.ApplyLoan)
		r.Get("/repay_loan", h.RepayableLoans)
		r.Post("/repay_loan", h.RepayLoan)
		r.Post("/close_account", h.CloseAccount)
	})
}

func setupEmployeeRoutes(router *chi.Mux, svc Services, logger *slog.Logger) {
	h := handler.NewEmployeeHandler(svc.Employees, logger)

	router.Route("/employee", func(r chi.Router) {
		r.Use(mw.RequireRole(auth.RoleEmployee, logger))
		r.Get("/dashboard", h.Dashboard)
		r.Post("/handle_account_request/{id}/{action}", h.HandleAccountRequest)
		r.Post("/handle_loan_request/{id}/{action}", h.HandleLoanRequest)
		r.Get("/account", h.Account)
	})
}
