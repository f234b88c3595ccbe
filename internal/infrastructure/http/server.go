package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	handlers "github.com/guardlink/payment-service/internal/adapter/handler/http"
	"github.com/guardlink/payment-service/internal/config"
	"github.com/guardlink/payment-service/internal/domain/gateway"
	"github.com/guardlink/payment-service/internal/infrastructure/database"
	"github.com/guardlink/payment-service/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	repos   *database.Repositories
	gateway gateway.PaymentGateway
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, gw gateway.PaymentGateway) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:  cfg,
		logger:  logger,
		echo:    e,
		repos:   repos,
		gateway: gw,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	customerService := usecase.NewCustomerService(s.repos.CustomerMapping, s.gateway, s.logger)
	subscriptionService := usecase.NewSubscriptionService(s.gateway, s.logger)
	paymentService := usecase.NewPaymentService(s.repos.ListingPayment, s.gateway, s.config.Service.TestGuardianEmail, s.logger)
	payoutService := usecase.NewPayoutService(s.repos.CustomerMapping, s.repos.ListingPayment, s.gateway, s.config.Service.TestGuardianEmail, s.logger)

	customerHandler := handlers.NewCustomerHandler(s.logger, customerService, s.config.Service.StripePublishableKey)
	subscriptionHandler := handlers.NewSubscriptionHandler(s.logger, subscriptionService)
	paymentHandler := handlers.NewPaymentHandler(s.logger, paymentService)
	payoutHandler := handlers.NewPayoutHandler(s.logger, payoutService)

	api := s.echo.Group("/api/payments")

	api.GET("/config", customerHandler.GetConfig)
	api.POST("/create-customer", customerHandler.CreateCustomer)
	api.GET("/customer/:customerId", customerHandler.GetCustomer)

	api.GET("/prices", subscriptionHandler.ListPrices)
	api.POST("/create-subscription", subscriptionHandler.CreateSubscription)
	api.POST("/cancel-subscription", subscriptionHandler.CancelSubscription)

	api.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	api.POST("/create-hold", paymentHandler.CreateHold)
	api.POST("/release", paymentHandler.Release)
	api.POST("/release-payment", paymentHandler.Release)
	api.POST("/refund", paymentHandler.Refund)
	api.POST("/refund-payment", paymentHandler.Refund)

	api.GET("/payouts", payoutHandler.ListPayouts)
	api.GET("/user/payments", payoutHandler.GetUserPayments)
	api.GET("/connect/transfers/:guardianId", payoutHandler.GetGuardianTransfers)

	// Catch-all parameter route; must stay last so it cannot shadow the
	// static routes above.
	api.GET("/:paymentId", paymentHandler.GetPayment)
}
