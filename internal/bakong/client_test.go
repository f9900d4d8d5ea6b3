package bakong

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransaction(t *testing.T) {
	tests := []struct {
		name         string
		responseCode int
		want         string
	}{
		{name: "settled transaction is paid", responseCode: 0, want: StatusPaid},
		{name: "unknown transaction is unpaid", responseCode: 1, want: StatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/check_transaction_by_md5", r.URL.Path)
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "abc123", body["md5"])

				json.NewEncoder(w).Encode(map[string]interface{}{
					"responseCode":    tt.responseCode,
					"responseMessage": "ok",
				})
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "test-token")
			status, err := client.CheckTransaction(context.Background(), "abc123")
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestCheckTransactionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	_, err := client.CheckTransaction(context.Background(), "abc123")
	assert.Error(t, err)
}

func TestCheckTransactionRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-token")
	_, err := client.CheckTransaction(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestGetTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 0,
			"data": map[string]interface{}{
				"hash":        "abc123",
				"amount":      4500,
				"currency":    "KHR",
				"fromAccount": "buyer@bank",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	detail, err := client.GetTransaction(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", detail["hash"])
	assert.Equal(t, "KHR", detail["currency"])
}

func TestGenerateDeeplink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generate_deeplink_by_qr", r.URL.Path)

		var body struct {
			QR         string     `json:"qr"`
			SourceInfo SourceInfo `json:"sourceInfo"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "000201...", body.QR)
		assert.Equal(t, "KrouAI", body.SourceInfo.AppName)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 0,
			"data":         map[string]string{"shortLink": "https://bakong.page.link/abc"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	link, err := client.GenerateDeeplink(context.Background(), "000201...", SourceInfo{AppName: "KrouAI"})
	require.NoError(t, err)
	assert.Equal(t, "https://bakong.page.link/abc", link)
}

func TestGenerateDeeplinkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode":    1,
			"responseMessage": "invalid qr",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	_, err := client.GenerateDeeplink(context.Background(), "garbage", SourceInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid qr")
}
