package http

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type CreateCustomerRequest struct {
	Email string `json:"email" validate:"required,email"`
	// UserID links the new Stripe customer to a local user when supplied.
	UserID int64 `json:"userId"`
}

type CreateSubscriptionRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
	PriceID    string `json:"priceId" validate:"required"`
}

type CancelSubscriptionRequest struct {
	SubscriptionID string `json:"subscriptionId" validate:"required"`
	// AtPeriodEnd defaults to true: immediate cancellation must be opted into.
	AtPeriodEnd *bool `json:"atPeriodEnd"`
}

type CreatePaymentIntentRequest struct {
	// Amount in major currency units; converted to cents downstream.
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Currency   string  `json:"currency"`
	CustomerID string  `json:"customerId"`
}

type CreateJobPaymentRequest struct {
	JobID string `json:"jobId" validate:"required"`
	// Amount already in minor currency units for this endpoint.
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	CustomerID string  `json:"customerId"`
	GuardianID string  `json:"guardianId"`
}

type ReleasePaymentRequest struct {
	PaymentID string `json:"paymentId"`
}

type RefundPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	PaymentID       string `json:"paymentId"`
}
