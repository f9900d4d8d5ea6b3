package handlers

import (
	"errors"

	domainErrors "krouai/internal/errors"
	"krouai/internal/services/payment"
	"krouai/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service  payment.Service
	validate *validator.Validate
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{
		service:  svc,
		validate: validator.New(),
	}
}

// respond maps domain errors to 400 and everything else to 500 with the
// raw error text, per the original API contract.
func respond(c *fiber.Ctx, err error) error {
	var de *domainErrors.DomainError
	if errors.As(err, &de) {
		return response.BadRequest(c, de.Message)
	}
	return response.ServerError(c, err.Error())
}

// CreatePayment issues a new KHQR payment for a credit package.
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var input struct {
		UserID   string `json:"user_id" validate:"required"`
		Package  string `json:"package"`
		Currency string `json:"currency" validate:"omitempty,oneof=KHR USD"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := h.validate.Struct(input); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if input.Package == "" {
		input.Package = "20"
	}

	result, err := h.service.CreatePayment(c.Context(), payment.CreatePaymentRequest{
		UserID:   input.UserID,
		Package:  input.Package,
		Currency: input.Currency,
	})
	if err != nil {
		return respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"qr_string":   result.QRString,
		"md5_hash":    result.MD5Hash,
		"deeplink":    result.Deeplink,
		"bill_number": result.BillNumber,
		"credits":     result.Credits,
		"amount":      result.Amount,
		"currency":    result.Currency,
	})
}

// CheckPayment polls the settlement status and, on the first paid check,
// credits the buyer.
func (h *PaymentHandler) CheckPayment(c *fiber.Ctx) error {
	var input struct {
		MD5Hash string `json:"md5_hash" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := h.validate.Struct(input); err != nil {
		return response.BadRequest(c, "md5_hash is required")
	}

	result, err := h.service.CheckPayment(c.Context(), input.MD5Hash)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(result)
}

// PaymentInfo is a passthrough to the Bakong transaction detail.
func (h *PaymentHandler) PaymentInfo(c *fiber.Ctx) error {
	var input struct {
		MD5Hash string `json:"md5_hash" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := h.validate.Struct(input); err != nil {
		return response.BadRequest(c, "md5_hash is required")
	}

	detail, err := h.service.GetPaymentInfo(c.Context(), input.MD5Hash)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"payment": detail,
	})
}

// GetCredits returns a user's balance and unlocked books.
func (h *PaymentHandler) GetCredits(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	credit, err := h.service.GetCredits(c.Context(), userID)
	if err != nil {
		return respond(c, err)
	}
	if credit == nil {
		return c.JSON(fiber.Map{
			"user_id":        userID,
			"credits":        0,
			"unlocked_books": []string{},
		})
	}
	return c.JSON(fiber.Map{
		"user_id":        credit.UserID,
		"credits":        credit.Credits,
		"unlocked_books": credit.UnlockedBooks,
	})
}
