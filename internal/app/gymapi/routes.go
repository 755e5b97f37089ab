// Package gymapi предоставляет маршруты для основного приложения.
package gymapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/dparedesb/gymcontrol/internal/http/handlers/auth/login"
	"github.com/dparedesb/gymcontrol/internal/http/handlers/auth/register"
	classcreate "github.com/dparedesb/gymcontrol/internal/http/handlers/classes/create"
	classenroll "github.com/dparedesb/gymcontrol/internal/http/handlers/classes/enroll"
	classlist "github.com/dparedesb/gymcontrol/internal/http/handlers/classes/list"
	"github.com/dparedesb/gymcontrol/internal/http/handlers/health"
	membercreate "github.com/dparedesb/gymcontrol/internal/http/handlers/member/create"
	memberlist "github.com/dparedesb/gymcontrol/internal/http/handlers/member/list"
	memberread "github.com/dparedesb/gymcontrol/internal/http/handlers/member/read"
	memberremove "github.com/dparedesb/gymcontrol/internal/http/handlers/member/remove"
	memberupdate "github.com/dparedesb/gymcontrol/internal/http/handlers/member/update"
	membershipcreate "github.com/dparedesb/gymcontrol/internal/http/handlers/membershipop/create"
	membershiplist "github.com/dparedesb/gymcontrol/internal/http/handlers/membershipop/list"
	membershipread "github.com/dparedesb/gymcontrol/internal/http/handlers/membershipop/read"
	membershiprenew "github.com/dparedesb/gymcontrol/internal/http/handlers/membershipop/renew"
	membershipstatus "github.com/dparedesb/gymcontrol/internal/http/handlers/membershipop/setstatus"
	paymentcreate "github.com/dparedesb/gymcontrol/internal/http/handlers/payment/create"
	paymentlist "github.com/dparedesb/gymcontrol/internal/http/handlers/payment/list"
	paymentstatus "github.com/dparedesb/gymcontrol/internal/http/handlers/payment/setstatus"
	plancreate "github.com/dparedesb/gymcontrol/internal/http/handlers/plan/create"
	planlist "github.com/dparedesb/gymcontrol/internal/http/handlers/plan/list"
	planremove "github.com/dparedesb/gymcontrol/internal/http/handlers/plan/remove"
	planupdate "github.com/dparedesb/gymcontrol/internal/http/handlers/plan/update"
	reportpayment "github.com/dparedesb/gymcontrol/internal/http/handlers/report/paymentstatus"
	salecreate "github.com/dparedesb/gymcontrol/internal/http/handlers/sale/create"
	salelist "github.com/dparedesb/gymcontrol/internal/http/handlers/sale/list"
	"github.com/dparedesb/gymcontrol/internal/http/handlers/validate/bycedula"
	"github.com/dparedesb/gymcontrol/internal/http/handlers/validate/byholler"
	validationloglist "github.com/dparedesb/gymcontrol/internal/http/handlers/validationlog/list"
	"github.com/dparedesb/gymcontrol/internal/http/middlewarectx"
	authservice "github.com/dparedesb/gymcontrol/internal/services/auth"
	classservice "github.com/dparedesb/gymcontrol/internal/services/classsession"
	memberservice "github.com/dparedesb/gymcontrol/internal/services/member"
	membershipservice "github.com/dparedesb/gymcontrol/internal/services/membership"
	paymentservice "github.com/dparedesb/gymcontrol/internal/services/payment"
	planservice "github.com/dparedesb/gymcontrol/internal/services/plan"
	productcreate "github.com/dparedesb/gymcontrol/internal/http/handlers/product/create"
	productlist "github.com/dparedesb/gymcontrol/internal/http/handlers/product/list"
	productupdate "github.com/dparedesb/gymcontrol/internal/http/handlers/product/update"
	productservice "github.com/dparedesb/gymcontrol/internal/services/product"
	reportservice "github.com/dparedesb/gymcontrol/internal/services/report"
	saleservice "github.com/dparedesb/gymcontrol/internal/services/sale"
	validationservice "github.com/dparedesb/gymcontrol/internal/services/validation"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// Services — собранные сервисы приложения для регистрации маршрутов.
type Services struct {
	Auth       *authservice.AuthService
	Member     *memberservice.MemberService
	Plan       *planservice.PlanService
	Membership *membershipservice.MembershipService
	Payment    *paymentservice.PaymentService
	Product    *productservice.ProductService
	Sale       *saleservice.SaleService
	Class      *classservice.ClassService
	Report     *reportservice.ReportService
	Validation *validationservice.ValidationService
	Logs       *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Валидация на турникете: без JWT, но с ограничением частоты.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/validate/cedula/{cedula}", bycedula.New(logger, s.Validation).ServeHTTP)
			r.Get("/validate/holler/{holler}", byholler.New(logger, s.Validation).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RequireRole(logger, "staff", "admin"))

			r.Post("/members", membercreate.New(logger, s.Member).ServeHTTP)
			r.Get("/members", memberlist.New(logger, s.Member).ServeHTTP)
			r.Get("/members/{uid}", memberread.New(logger, s.Member).ServeHTTP)
			r.Put("/members/{uid}", memberupdate.New(logger, s.Member).ServeHTTP)
			r.Delete("/members/{uid}", memberremove.New(logger, s.Member).ServeHTTP)
			r.Get("/members/{uid}/payments", paymentlist.New(logger, s.Payment).ServeHTTP)

			r.Post("/memberships", membershipcreate.New(logger, s.Membership).ServeHTTP)
			r.Get("/memberships", membershiplist.New(logger, s.Membership).ServeHTTP)
			r.Get("/memberships/{id}", membershipread.New(logger, s.Membership).ServeHTTP)
			r.Post("/memberships/{id}/renew", membershiprenew.New(logger, s.Membership).ServeHTTP)
			r.Put("/memberships/{id}/status", membershipstatus.New(logger, s.Membership).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Put("/payments/{id}/status", paymentstatus.New(logger, s.Payment).ServeHTTP)

			r.Post("/products", productcreate.New(logger, s.Product).ServeHTTP)
			r.Get("/products", productlist.New(logger, s.Product).ServeHTTP)
			r.Put("/products/{id}", productupdate.New(logger, s.Product).ServeHTTP)

			r.Post("/sales", salecreate.New(logger, s.Sale).ServeHTTP)
			r.Get("/sales", salelist.New(logger, s.Sale).ServeHTTP)

			r.Post("/classes", classcreate.New(logger, s.Class).ServeHTTP)
			r.Get("/classes", classlist.New(logger, s.Class).ServeHTTP)
			r.Post("/classes/{id}/enroll", classenroll.New(logger, s.Class).ServeHTTP)

			r.Get("/reports/payment-status", reportpayment.New(logger, s.Report).ServeHTTP)
			r.Get("/validations", validationloglist.New(logger, s.Logs).ServeHTTP)

			// Административные операции
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, "admin"))
				r.Post("/plans", plancreate.New(logger, s.Plan).ServeHTTP)
				r.Put("/plans/{id}", planupdate.New(logger, s.Plan).ServeHTTP)
				r.Delete("/plans/{id}", planremove.New(logger, s.Plan).ServeHTTP)
			})
			r.Get("/plans", planlist.New(logger, s.Plan).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
