package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	domainErrors "krouai/internal/errors"
	"krouai/internal/models"
	"krouai/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (*payment.CreatePaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CreatePaymentResult), args.Error(1)
}

func (m *MockPaymentService) CheckPayment(ctx context.Context, md5Hash string) (*payment.CheckPaymentResult, error) {
	args := m.Called(ctx, md5Hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckPaymentResult), args.Error(1)
}

func (m *MockPaymentService) GetPaymentInfo(ctx context.Context, md5Hash string) (map[string]interface{}, error) {
	args := m.Called(ctx, md5Hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockPaymentService) GetCredits(ctx context.Context, userID string) (*models.UserCredit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserCredit), args.Error(1)
}

func testApp(svc payment.Service) *fiber.App {
	app := fiber.New()
	h := NewPaymentHandler(svc)
	api := app.Group("/api")
	api.Post("/create-payment", h.CreatePayment)
	api.Post("/check-payment", h.CheckPayment)
	api.Post("/payment-info", h.PaymentInfo)
	api.Get("/credits/:user_id", h.GetCredits)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, map[string]interface{}, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	json.Unmarshal(data, &decoded)
	return resp.StatusCode, decoded, nil
}

func TestCreatePaymentHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CreatePayment", mock.Anything, payment.CreatePaymentRequest{
			UserID:   "user-1",
			Package:  "50",
			Currency: "KHR",
		}).Return(&payment.CreatePaymentResult{
			QRString:   "000201...",
			MD5Hash:    "abc123",
			Deeplink:   "https://bakong.page.link/x",
			BillNumber: "KROU17000000001A2B",
			Credits:    50,
			Amount:     4500,
			Currency:   "KHR",
		}, nil)

		status, body, err := postJSON(testApp(svc), "/api/create-payment",
			`{"user_id":"user-1","package":"50","currency":"KHR"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "abc123", body["md5_hash"])
		assert.Equal(t, float64(4500), body["amount"])
		assert.Equal(t, float64(50), body["credits"])
		svc.AssertExpectations(t)
	})

	t.Run("package defaults to 20", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CreatePayment", mock.Anything, payment.CreatePaymentRequest{
			UserID:  "user-1",
			Package: "20",
		}).Return(&payment.CreatePaymentResult{Credits: 20, Amount: 2000, Currency: "KHR"}, nil)

		status, _, err := postJSON(testApp(svc), "/api/create-payment", `{"user_id":"user-1"}`)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, status)
		svc.AssertExpectations(t)
	})

	t.Run("missing user_id is 400 without a service call", func(t *testing.T) {
		svc := new(MockPaymentService)
		status, body, err := postJSON(testApp(svc), "/api/create-payment", `{"package":"20"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.NotEmpty(t, body["error"])
		svc.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	})

	t.Run("unknown package is 400", func(t *testing.T) {
		// The handler leaves package validation to the catalog lookup in the
		// service, so the request must reach it.
		svc := new(MockPaymentService)
		svc.On("CreatePayment", mock.Anything, payment.CreatePaymentRequest{
			UserID:  "user-1",
			Package: "999",
		}).Return(nil, domainErrors.ErrInvalidPackage)

		status, body, err := postJSON(testApp(svc), "/api/create-payment",
			`{"user_id":"user-1","package":"999"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid package", body["error"])
		svc.AssertExpectations(t)
	})

	t.Run("domain error from the service is 400", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CreatePayment", mock.Anything, mock.Anything).
			Return(nil, domainErrors.ErrInvalidPackage)

		status, body, err := postJSON(testApp(svc), "/api/create-payment",
			`{"user_id":"user-1","package":"20"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid package", body["error"])
	})

	t.Run("downstream failure is 500", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		status, body, err := postJSON(testApp(svc), "/api/create-payment",
			`{"user_id":"user-1","package":"20"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.NotEmpty(t, body["error"])
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		svc := new(MockPaymentService)
		status, _, err := postJSON(testApp(svc), "/api/create-payment", `{not json`)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestCheckPaymentHandler(t *testing.T) {
	t.Run("settlement result passes through", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CheckPayment", mock.Anything, "abc123").Return(&payment.CheckPaymentResult{
			Status:       "PAID",
			CreditsAdded: 50,
			Message:      "Successfully added 50 credits!",
		}, nil)

		status, body, err := postJSON(testApp(svc), "/api/check-payment", `{"md5_hash":"abc123"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "PAID", body["status"])
		assert.Equal(t, float64(50), body["credits_added"])
	})

	t.Run("unpaid omits credits and message", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CheckPayment", mock.Anything, "abc123").
			Return(&payment.CheckPaymentResult{Status: "UNPAID"}, nil)

		status, body, err := postJSON(testApp(svc), "/api/check-payment", `{"md5_hash":"abc123"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "UNPAID", body["status"])
		_, hasCredits := body["credits_added"]
		assert.False(t, hasCredits)
	})

	t.Run("missing hash is 400", func(t *testing.T) {
		svc := new(MockPaymentService)
		status, body, err := postJSON(testApp(svc), "/api/check-payment", `{}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "md5_hash is required", body["error"])
		svc.AssertNotCalled(t, "CheckPayment", mock.Anything, mock.Anything)
	})
}

func TestPaymentInfoHandler(t *testing.T) {
	t.Run("passthrough detail", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("GetPaymentInfo", mock.Anything, "abc123").
			Return(map[string]interface{}{"hash": "abc123"}, nil)

		status, body, err := postJSON(testApp(svc), "/api/payment-info", `{"md5_hash":"abc123"}`)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["success"])
		detail := body["payment"].(map[string]interface{})
		assert.Equal(t, "abc123", detail["hash"])
	})

	t.Run("missing hash is 400", func(t *testing.T) {
		svc := new(MockPaymentService)
		status, _, err := postJSON(testApp(svc), "/api/payment-info", `{}`)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestGetCreditsHandler(t *testing.T) {
	t.Run("existing balance", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("GetCredits", mock.Anything, "user-1").Return(&models.UserCredit{
			UserID:        "user-1",
			Credits:       60,
			UnlockedBooks: []string{"book-1"},
		}, nil)

		req := httptest.NewRequest("GET", "/api/credits/user-1", nil)
		resp, err := testApp(svc).Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(60), body["credits"])
	})

	t.Run("unknown user reads as zero", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("GetCredits", mock.Anything, "ghost").Return(nil, nil)

		req := httptest.NewRequest("GET", "/api/credits/ghost", nil)
		resp, err := testApp(svc).Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(0), body["credits"])
	})
}

func TestHealthHandler(t *testing.T) {
	app := fiber.New()
	h := NewHealthHandler(map[string]HealthChecker{
		"database": func() error { return nil },
		"redis":    func() error { return assert.AnError },
	})
	app.Get("/health", h.HealthCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	services := body["services"].(map[string]interface{})
	assert.Equal(t, "connected", services["database"])
	assert.Equal(t, "unreachable", services["redis"])
}
