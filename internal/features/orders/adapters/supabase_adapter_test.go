package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repair-tracker/internal/core/config"
	"repair-tracker/internal/core/phone"
	"repair-tracker/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *SupabaseAdapter {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.StoreConfig{
		URL:           server.URL,
		AnonKey:       "anon_test",
		OrdersTable:   "orders",
		ProfilesTable: "profiles",
	}
	return NewSupabaseAdapter(cfg, phone.NewNormalizer("DO"))
}

// TestSupabaseAdapter_FindOrders_Token verifies the token filter, credentials and mapping
// of a row whose nested objects are JSON-encoded strings.
func TestSupabaseAdapter_FindOrders_Token(t *testing.T) {
	mockResponse := `[{
		"id": 42,
		"public_tracking_id": "3f2b8c1e-6d4a-4b7e-9c21-0a5d7e9f1b23",
		"status": "Ready for pickup",
		"user_id": "c0ffee00-0000-4000-8000-000000000001",
		"createdAt": "2024-05-01T10:00:00.000Z",
		"problemDescription": "Pantalla rota",
		"customer": "{\"firstName\":\"Ana\",\"lastName\":\"Pérez\",\"idCard\":\"00112345678\",\"phone\":\"809-555-1234\",\"address\":\"Calle 1\"}",
		"device": "{\"brand\":\"Samsung\",\"model\":\"A52\",\"color\":\"Negro\",\"password\":\"1234\"}",
		"finance": "{\"repairCost\":\"2500\",\"deposit\":1000,\"pendingBalance\":1500}",
		"accessories": "{\"cargador\":true,\"funda\":false}",
		"photos": "https://cdn.example.com/1.jpg, https://cdn.example.com/2.jpg,"
	}]`

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/orders", r.URL.Path)
		assert.Equal(t, "eq.3f2b8c1e-6d4a-4b7e-9c21-0a5d7e9f1b23", r.URL.Query().Get("public_tracking_id"))
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "anon_test", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon_test", r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockResponse))
	})

	orders, err := adapter.FindOrders(context.Background(), domain.ByToken{Token: "3f2b8c1e-6d4a-4b7e-9c21-0a5d7e9f1b23"})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "42", order.ID)
	assert.Equal(t, "3f2b8c1e-6d4a-4b7e-9c21-0a5d7e9f1b23", order.TrackingToken)
	assert.Equal(t, "Ready for pickup", order.Status)
	assert.Equal(t, "c0ffee00-0000-4000-8000-000000000001", order.OwnerID)
	assert.Equal(t, "Pantalla rota", order.ProblemDescription)
	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Equal(order.CreatedAt))

	assert.Equal(t, "Ana", order.Customer.FirstName)
	assert.Equal(t, "Pérez", order.Customer.LastName)
	assert.Equal(t, "00112345678", order.Customer.IDCard)
	assert.Equal(t, "809-555-1234", order.Customer.Phone)
	assert.Equal(t, "+18095551234", order.Customer.PhoneE164)

	assert.Equal(t, "Samsung", order.Device.Brand)
	assert.Equal(t, "1234", order.Device.UnlockCode)

	require.NotNil(t, order.Finance)
	require.NotNil(t, order.Finance.RepairCost)
	assert.Equal(t, 2500.0, *order.Finance.RepairCost)
	assert.Equal(t, 1000.0, *order.Finance.Deposit)
	assert.Equal(t, 1500.0, *order.Finance.PendingBalance)

	assert.Equal(t, map[string]any{"cargador": true, "funda": false}, order.Accessories)
	assert.Equal(t, []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}, order.Photos)
}

// TestSupabaseAdapter_FindOrders_NativeObjects verifies rows whose nested objects are JSON columns.
func TestSupabaseAdapter_FindOrders_NativeObjects(t *testing.T) {
	mockResponse := `[{
		"id": "A-7",
		"status": "In Repair",
		"created_at": "2024-06-02T08:30:00+00:00",
		"customer": {"firstName": "Luis", "idCard": 40212345678, "phone": "8295550000"},
		"device": {"brand": "Apple", "model": "iPhone 12"},
		"finance": null,
		"accessories": null,
		"photos": ["https://cdn.example.com/a.jpg"]
	}]`

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.1234", r.URL.Query().Get("id"))
		w.Write([]byte(mockResponse))
	})

	orders, err := adapter.FindOrders(context.Background(), domain.ByExactID{ID: "1234"})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "A-7", order.ID)
	assert.Equal(t, "40212345678", order.Customer.IDCard)
	assert.Equal(t, "Apple", order.Device.Brand)
	assert.Nil(t, order.Finance)
	assert.Nil(t, order.Accessories)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, order.Photos)
	assert.True(t, time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC).Equal(order.CreatedAt))
}

// TestSupabaseAdapter_FindOrders_OwnerFields verifies the OR filter on nested owner fields.
func TestSupabaseAdapter_FindOrders_OwnerFields(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t,
			`(customer->>idCard.eq."26888999",customer->>phone.ilike."*26888999*")`,
			r.URL.Query().Get("or"),
		)
		w.Write([]byte(`[{"id": 1, "status": "Received"}, {"id": 2, "status": "Delivered"}]`))
	})

	orders, err := adapter.FindOrders(context.Background(), domain.ByOwnerFields{IDCard: "26888999", PhoneFragment: "26888999"})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1", orders[0].ID)
	assert.Equal(t, "2", orders[1].ID)
	assert.Empty(t, orders[0].Photos)
	assert.NotNil(t, orders[0].Photos)
}

func TestSupabaseAdapter_FindOrders_Empty(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	orders, err := adapter.FindOrders(context.Background(), domain.ByExactID{ID: "9"})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSupabaseAdapter_FindOrders_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{name: "Unauthorized", status: http.StatusUnauthorized, body: `{"message":"Invalid API key"}`, contains: "status: 401"},
		{name: "Server error", status: http.StatusInternalServerError, body: ``, contains: "status: 500"},
		{name: "Not an array", status: http.StatusOK, body: `{"message":"oops"}`, contains: "failed to decode response"},
		{name: "Malformed JSON", status: http.StatusOK, body: `[{"id":`, contains: "failed to decode response"},
		{name: "Bad embedded object", status: http.StatusOK, body: `[{"id":1,"customer":"{not json"}]`, contains: "failed to decode response"},
		{name: "Missing id", status: http.StatusOK, body: `[{"status":"Received"}]`, contains: "invalid order record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			orders, err := adapter.FindOrders(context.Background(), domain.ByExactID{ID: "1"})
			require.Error(t, err)
			assert.Nil(t, orders)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSupabaseAdapter_FindOrders_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	adapter := NewSupabaseAdapter(config.StoreConfig{URL: server.URL, OrdersTable: "orders"}, nil)

	_, err := adapter.FindOrders(context.Background(), domain.Classify("001-1234567-8"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute request")
	assert.NotContains(t, err.Error(), "001-1234567-8")
	assert.NotContains(t, err.Error(), "idCard")
	assert.NotContains(t, err.Error(), server.URL)
}

func TestSupabaseAdapter_ShopName(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
			assert.Equal(t, "eq.owner-1", r.URL.Query().Get("id"))
			assert.Equal(t, "shop_name", r.URL.Query().Get("select"))
			w.Write([]byte(`[{"shop_name":"TecnoFix"}]`))
		})

		name, err := adapter.ShopName(context.Background(), "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "TecnoFix", name)
	})

	t.Run("NoProfile", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})

		name, err := adapter.ShopName(context.Background(), "owner-1")
		require.NoError(t, err)
		assert.Empty(t, name)
	})
}

func TestSupabaseAdapter_HealthCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			w.Write([]byte(`[{"id":1}]`))
		})
		assert.NoError(t, adapter.HealthCheck(context.Background()))
	})

	t.Run("Rejected", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		err := adapter.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "health check failed")
	})
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, quote("plain"))
	assert.Equal(t, `"a,b.(c)"`, quote("a,b.(c)"))
	assert.Equal(t, `"say \"hi\""`, quote(`say "hi"`))
	assert.Equal(t, `"back\\slash"`, quote(`back\slash`))
}

func TestFilterFor_EscapesWildcards(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "*", want: `(customer->>idCard.eq."*")`},
		{raw: "***", want: `(customer->>idCard.eq."***")`},
		{raw: "%", want: `(customer->>idCard.eq."%",customer->>phone.ilike."*\\%*")`},
		{raw: "_", want: `(customer->>idCard.eq."_",customer->>phone.ilike."*\\_*")`},
		{raw: "55*12", want: `(customer->>idCard.eq."55*12",customer->>phone.ilike."*5512*")`},
		{raw: `a\b`, want: `(customer->>idCard.eq."a\\b",customer->>phone.ilike."*a\\\\b*")`},
		{raw: "809-555", want: `(customer->>idCard.eq."809-555",customer->>phone.ilike."*809-555*")`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q := domain.Classify(tt.raw)
			require.Equal(t, domain.QueryKindOwnerFields, q.Kind())

			params, err := filterFor(q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Get("or"))
		})
	}
}

func TestLikeEscape(t *testing.T) {
	assert.Equal(t, "5551234", likeEscape("5551234"))
	assert.Equal(t, "", likeEscape("**"))
	assert.Equal(t, `100\%`, likeEscape("100%"))
	assert.Equal(t, `a\_b`, likeEscape("a_b"))
	assert.Equal(t, `a\\b`, likeEscape(`a\b`))
}
