package http

import (
	"net/http"

	"github.com/guardlink/payment-service/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	logger          *zap.Logger
	customerService *usecase.CustomerService
	publishableKey  string
}

func NewCustomerHandler(logger *zap.Logger, customerService *usecase.CustomerService, publishableKey string) *CustomerHandler {
	return &CustomerHandler{
		logger:          logger,
		customerService: customerService,
		publishableKey:  publishableKey,
	}
}

// GetConfig exposes the publishable key the frontend needs to initialize
// Stripe Elements.
func (h *CustomerHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"publishableKey": h.publishableKey,
	})
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.customerService.CreateCustomer(c.Request().Context(), req.Email, req.UserID)
	if err != nil {
		h.logger.Error("failed to create customer",
			zap.String("email", req.Email),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customerID := c.Param("customerId")

	info, err := h.customerService.GetCustomerInfo(c.Request().Context(), customerID)
	if err != nil {
		h.logger.Error("failed to get customer info",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, info)
}
