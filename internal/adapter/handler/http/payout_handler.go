package http

import (
	"errors"
	"net/http"
	"strconv"

	domainErrors "github.com/guardlink/payment-service/internal/domain/errors"
	"github.com/guardlink/payment-service/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	defaultPayoutLimit       = 10
	defaultUserPaymentsLimit = 100
	defaultTransfersLimit    = 100
)

type PayoutHandler struct {
	logger        *zap.Logger
	payoutService *usecase.PayoutService
}

func NewPayoutHandler(logger *zap.Logger, payoutService *usecase.PayoutService) *PayoutHandler {
	return &PayoutHandler{
		logger:        logger,
		payoutService: payoutService,
	}
}

// ListPayouts serves the per-user payout view. Without a userId it falls back
// to the account-level payout list.
func (h *PayoutHandler) ListPayouts(c echo.Context) error {
	userID := c.QueryParam("userId")
	limit := queryLimit(c, defaultPayoutLimit)

	if userID == "" {
		payouts, err := h.payoutService.ListAccountPayouts(c.Request().Context(), limit)
		if err != nil {
			h.logger.Error("failed to list account payouts", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"payouts": payouts})
	}

	result, err := h.payoutService.ListPayouts(c.Request().Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list payouts",
			zap.String("user_id", userID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PayoutHandler) GetUserPayments(c echo.Context) error {
	userID := c.QueryParam("userId")
	customerID := c.QueryParam("customerId")
	limit := queryLimit(c, defaultUserPaymentsLimit)

	result, err := h.payoutService.ListUserPayments(c.Request().Context(), userID, customerID, limit)
	if err != nil {
		if errors.Is(err, domainErrors.ErrMissingIdentifier) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("failed to list user payments",
			zap.String("user_id", userID),
			zap.String("customer_id", customerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PayoutHandler) GetGuardianTransfers(c echo.Context) error {
	guardianID := c.Param("guardianId")
	limit := queryLimit(c, defaultTransfersLimit)

	result, err := h.payoutService.ListGuardianTransfers(c.Request().Context(), guardianID, limit)
	if err != nil {
		h.logger.Error("failed to list guardian transfers",
			zap.String("guardian_id", guardianID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func queryLimit(c echo.Context, fallback int) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
