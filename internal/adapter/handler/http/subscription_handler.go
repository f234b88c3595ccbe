package http

import (
	"net/http"

	"github.com/guardlink/payment-service/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	logger              *zap.Logger
	subscriptionService *usecase.SubscriptionService
}

func NewSubscriptionHandler(logger *zap.Logger, subscriptionService *usecase.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		logger:              logger,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) ListPrices(c echo.Context) error {
	prices, err := h.subscriptionService.ListPrices(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list prices", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"prices": prices})
}

func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	var req CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.subscriptionService.CreateSubscription(c.Request().Context(), req.CustomerID, req.PriceID)
	if err != nil {
		h.logger.Error("failed to create subscription",
			zap.String("customer_id", req.CustomerID),
			zap.String("price_id", req.PriceID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *SubscriptionHandler) CancelSubscription(c echo.Context) error {
	var req CancelSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	atPeriodEnd := true
	if req.AtPeriodEnd != nil {
		atPeriodEnd = *req.AtPeriodEnd
	}

	result, err := h.subscriptionService.CancelSubscription(c.Request().Context(), req.SubscriptionID, atPeriodEnd)
	if err != nil {
		h.logger.Error("failed to cancel subscription",
			zap.String("subscription_id", req.SubscriptionID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
