package services

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettings map[string]string

func (s stubSettings) Get(key string) (string, error) {
	return s[key], nil
}

// gatewayRecorder captures outbound requests to a fake messaging API.
type gatewayRecorder struct {
	status  int
	body    string
	queries []url.Values
}

func (g *gatewayRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.queries = append(g.queries, r.URL.Query())
		status := g.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(g.body))
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":      "919876543210",
		"09876543211":     "919876543211",
		"919876543210":    "919876543210",
		"+91 98765-43210": "919876543210",
		"0123456789":      "910123456789",
	}

	for input, want := range cases {
		assert.Equal(t, want, NormalizePhone(input), "input %q", input)
	}
}

func TestSendMessageWithoutToken(t *testing.T) {
	recorder := &gatewayRecorder{}
	server := httptest.NewServer(recorder.handler())
	defer server.Close()

	svc := NewWhatsAppService(stubSettings{}, server.URL)

	err := svc.SendMessage("9876543210", "hello")
	require.ErrorIs(t, err, ErrTokenNotConfigured)
	assert.Contains(t, err.Error(), "not configured")
	assert.Empty(t, recorder.queries, "no network call should be attempted")
}

func TestSendMessageQueryParams(t *testing.T) {
	recorder := &gatewayRecorder{body: `{"status":"sent"}`}
	server := httptest.NewServer(recorder.handler())
	defer server.Close()

	svc := NewWhatsAppService(stubSettings{SettingTokenKey: "secret-token"}, server.URL)

	require.NoError(t, svc.SendMessage("9876543210", "hello there"))

	require.Len(t, recorder.queries, 1)
	query := recorder.queries[0]
	assert.Equal(t, "919876543210", query.Get("receiver"))
	assert.Equal(t, "hello there", query.Get("msgtext"))
	assert.Equal(t, "secret-token", query.Get("token"))
	assert.Empty(t, query.Get("mediaUrl"))
}

func TestSendMediaIncludesMediaURL(t *testing.T) {
	recorder := &gatewayRecorder{}
	server := httptest.NewServer(recorder.handler())
	defer server.Close()

	svc := NewWhatsAppService(stubSettings{SettingTokenKey: "tok"}, server.URL)

	require.NoError(t, svc.SendMedia("9876543210", "pic", "https://cdn.example.com/a.jpg"))

	require.Len(t, recorder.queries, 1)
	assert.Equal(t, "https://cdn.example.com/a.jpg", recorder.queries[0].Get("mediaUrl"))
}

func TestSendMessageRemoteFailure(t *testing.T) {
	recorder := &gatewayRecorder{status: http.StatusBadGateway, body: `{"message":"invalid token"}`}
	server := httptest.NewServer(recorder.handler())
	defer server.Close()

	svc := NewWhatsAppService(stubSettings{SettingTokenKey: "tok"}, server.URL)

	err := svc.SendMessage("9876543210", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestNotifyOwnerSkippedWithoutOwnerPhone(t *testing.T) {
	recorder := &gatewayRecorder{}
	server := httptest.NewServer(recorder.handler())
	defer server.Close()

	svc := NewWhatsAppService(stubSettings{SettingTokenKey: "tok"}, server.URL)

	notification := OrderNotification{
		OrderID:       "abc",
		Items:         []OrderItemNotification{{Name: "6N40 Rice Polisher", Price: 45000, Quantity: 1, Subtotal: 45000}},
		TotalAmount:   45000,
		CustomerPhone: "9876543210",
		PlacedAt:      time.Now(),
	}

	require.NoError(t, svc.NotifyOwnerNewOrder(notification))
	assert.Empty(t, recorder.queries)
}

func TestNotifyOwnerNewOrderGoesToOwnerPhone(t *testing.T) {
	recorder := &gatewayRecorder{}
	server := httptest.NewServer(recorder.handler())
	defer server.Close()

	svc := NewWhatsAppService(stubSettings{
		SettingTokenKey:      "tok",
		SettingOwnerPhoneKey: "9000000000",
	}, server.URL)

	notification := OrderNotification{
		OrderID:       "abc",
		Items:         []OrderItemNotification{{Name: "Rubber Roll 10 inch", Price: 4200, Quantity: 2, Subtotal: 8400}},
		TotalAmount:   8400,
		CustomerPhone: "9876543210",
		PlacedAt:      time.Now(),
	}

	require.NoError(t, svc.NotifyOwnerNewOrder(notification))

	require.Len(t, recorder.queries, 1)
	query := recorder.queries[0]
	assert.Equal(t, "919000000000", query.Get("receiver"))
	assert.Contains(t, query.Get("msgtext"), "Rubber Roll 10 inch")
	assert.Contains(t, query.Get("msgtext"), "8,400")
}

func TestConfirmOrderToCustomerCartListsAllItems(t *testing.T) {
	recorder := &gatewayRecorder{}
	server := httptest.NewServer(recorder.handler())
	defer server.Close()

	svc := NewWhatsAppService(stubSettings{SettingTokenKey: "tok"}, server.URL)

	notification := OrderNotification{
		OrderID: "abc",
		Items: []OrderItemNotification{
			{Name: "Rice Mill Screen 1mm", Price: 1200, Quantity: 2, Subtotal: 2400},
			{Name: "Chaff Cutter Blade set", Price: 850, Quantity: 1, Subtotal: 850},
		},
		TotalAmount:   3250,
		CustomerPhone: "9876543210",
	}

	require.NoError(t, svc.ConfirmOrderToCustomer(notification))

	require.Len(t, recorder.queries, 1)
	text := recorder.queries[0].Get("msgtext")
	assert.Contains(t, text, "1. Rice Mill Screen 1mm × 2 = ₹2,400")
	assert.Contains(t, text, "2. Chaff Cutter Blade set × 1 = ₹850")
	assert.Contains(t, text, "3,250")
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		850:     "850",
		1200:    "1,200",
		62000:   "62,000",
		1234567: "1,234,567",
	}

	for amount, want := range cases {
		assert.Equal(t, want, FormatAmount(amount))
	}
}
