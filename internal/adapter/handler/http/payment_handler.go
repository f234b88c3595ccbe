package http

import (
	"math"
	"net/http"

	"github.com/guardlink/payment-service/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	logger         *zap.Logger
	paymentService *usecase.PaymentService
}

func NewPaymentHandler(logger *zap.Logger, paymentService *usecase.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		logger:         logger,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.paymentService.CreatePaymentIntent(c.Request().Context(), req.Amount, req.Currency, req.CustomerID)
	if err != nil {
		h.logger.Error("failed to create payment intent", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// CreateHold creates the payment intent that holds funds for a listing until
// the job completes.
func (h *PaymentHandler) CreateHold(c echo.Context) error {
	var req CreateJobPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	amountCents := int64(math.Round(req.Amount))
	result, err := h.paymentService.CreateJobPayment(c.Request().Context(), req.JobID, amountCents, req.CustomerID, req.GuardianID)
	if err != nil {
		h.logger.Error("failed to create job payment",
			zap.String("job_id", req.JobID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	paymentID := c.Param("paymentId")

	details, err := h.paymentService.GetPayment(c.Request().Context(), paymentID)
	if err != nil {
		h.logger.Error("failed to get payment",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, details)
}

// Refund accepts either paymentIntentId or paymentId, since older clients
// send the latter.
func (h *PaymentHandler) Refund(c echo.Context) error {
	var req RefundPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	paymentIntentID := req.PaymentIntentID
	if paymentIntentID == "" {
		paymentIntentID = req.PaymentID
	}
	if paymentIntentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentIntentId is required"})
	}

	result, err := h.paymentService.RefundPayment(c.Request().Context(), paymentIntentID)
	if err != nil {
		h.logger.Error("failed to refund payment",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) Release(c echo.Context) error {
	var req ReleasePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.PaymentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentId is required"})
	}

	result, err := h.paymentService.ReleaseToGuardian(c.Request().Context(), req.PaymentID)
	if err != nil {
		h.logger.Error("failed to release payment",
			zap.String("payment_id", req.PaymentID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
