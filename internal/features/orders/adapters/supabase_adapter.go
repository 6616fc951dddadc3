package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"repair-tracker/internal/core/config"
	"repair-tracker/internal/core/httpclient"
	"repair-tracker/internal/core/phone"
	"repair-tracker/internal/core/validator"
	"repair-tracker/internal/features/orders/domain"
)

const (
	restPath = "/rest/v1/"

	columnID            = "id"
	columnTrackingToken = "public_tracking_id"
	fieldOwnerIDCard    = "customer->>idCard"
	fieldOwnerPhone     = "customer->>phone"
)

// SupabaseAdapter implements the OrderStore and ShopDirectory ports using the
// Supabase REST (PostgREST) interface.
type SupabaseAdapter struct {
	// client is the HTTP client used for API requests; it carries the credentials.
	client *http.Client
	// config holds the Supabase connection details.
	config config.StoreConfig
	// phones formats customer phone numbers.
	phones *phone.Normalizer
	// validate checks decoded records.
	validate *validator.Validator
}

// NewSupabaseAdapter creates a new instance of SupabaseAdapter.
func NewSupabaseAdapter(cfg config.StoreConfig, phones *phone.Normalizer) *SupabaseAdapter {
	headers := http.Header{}
	headers.Set("apikey", cfg.AnonKey)
	headers.Set("Authorization", "Bearer "+cfg.AnonKey)
	headers.Set("Accept", "application/json")

	return &SupabaseAdapter{
		client:   httpclient.NewClient(cfg.Timeout(), headers),
		config:   cfg,
		phones:   phones,
		validate: validator.New(),
	}
}

// FindOrders issues one read for q and maps every returned row to a domain Order.
func (a *SupabaseAdapter) FindOrders(ctx context.Context, q domain.Query) ([]domain.Order, error) {
	params, err := filterFor(q)
	if err != nil {
		return nil, err
	}
	params.Set("select", "*")

	var rows []supabaseOrder
	if err := a.get(ctx, a.config.OrdersTable, params, &rows); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order := a.mapToDomain(row)
		if err := a.validate.Struct(order); err != nil {
			return nil, fmt.Errorf("invalid order record: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// ShopName looks up the shop name on the owner's profile.
func (a *SupabaseAdapter) ShopName(ctx context.Context, ownerID string) (string, error) {
	params := url.Values{}
	params.Set("id", "eq."+ownerID)
	params.Set("select", "shop_name")

	var profiles []struct {
		ShopName string `json:"shop_name"`
	}
	if err := a.get(ctx, a.config.ProfilesTable, params, &profiles); err != nil {
		return "", err
	}

	if len(profiles) == 0 {
		return "", nil
	}
	return profiles[0].ShopName, nil
}

// HealthCheck verifies that the store is reachable and the key is accepted.
func (a *SupabaseAdapter) HealthCheck(ctx context.Context) error {
	params := url.Values{}
	params.Set("select", columnID)
	params.Set("limit", "1")

	var rows []json.RawMessage
	if err := a.get(ctx, a.config.OrdersTable, params, &rows); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// filterFor translates a query descriptor into PostgREST filter parameters.
func filterFor(q domain.Query) (url.Values, error) {
	params := url.Values{}

	switch v := q.(type) {
	case domain.ByExactID:
		params.Set(columnID, "eq."+v.ID)
	case domain.ByToken:
		params.Set(columnTrackingToken, "eq."+v.Token)
	case domain.ByOwnerFields:
		conditions := []string{fieldOwnerIDCard + ".eq." + quote(v.IDCard)}
		if fragment := likeEscape(v.PhoneFragment); fragment != "" {
			conditions = append(conditions, fieldOwnerPhone+".ilike."+quote("*"+fragment+"*"))
		}
		params.Set("or", "("+strings.Join(conditions, ",")+")")
	default:
		return nil, fmt.Errorf("unsupported query type %T", q)
	}

	return params, nil
}

// quote wraps a value in double quotes so PostgREST reserved characters
// (commas, dots, parentheses) are taken literally.
func quote(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `"` + value + `"`
}

// likeEscape makes a fragment match literally inside an ilike pattern.
// PostgREST turns every * into % and has no escape for it, so * is dropped;
// a fragment with nothing else left yields "" and no phone condition.
func likeEscape(fragment string) string {
	fragment = strings.ReplaceAll(fragment, "*", "")
	fragment = strings.ReplaceAll(fragment, `\`, `\\`)
	fragment = strings.ReplaceAll(fragment, "%", `\%`)
	fragment = strings.ReplaceAll(fragment, "_", `\_`)
	return fragment
}

// get performs a GET on a table and decodes the JSON array response into out.
func (a *SupabaseAdapter) get(ctx context.Context, table string, params url.Values, out any) error {
	endpoint := strings.TrimRight(a.config.URL, "/") + restPath + table + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		// The request URL carries the filter values; keep them out of the error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// mapToDomain converts a raw Supabase row into a domain Order.
func (a *SupabaseAdapter) mapToDomain(row supabaseOrder) domain.Order {
	customer := row.Customer.Value
	device := row.Device.Value

	order := domain.Order{
		ID:                 string(row.ID),
		TrackingToken:      row.PublicTrackingID,
		Status:             strings.TrimSpace(row.Status),
		OwnerID:            string(row.UserID),
		CreatedAt:          row.createdAt(),
		ProblemDescription: row.ProblemDescription,
		Customer: domain.Customer{
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			IDCard:    string(customer.IDCard),
			Phone:     string(customer.Phone),
			Address:   customer.Address,
		},
		Device: domain.Device{
			Brand:      device.Brand,
			Model:      device.Model,
			Color:      device.Color,
			UnlockCode: device.Password,
		},
		Accessories: row.Accessories.Value,
		Photos:      []string(row.Photos),
	}

	if order.Photos == nil {
		order.Photos = []string{}
	}

	if a.phones != nil {
		if e164, ok := a.phones.E164(order.Customer.Phone); ok {
			order.Customer.PhoneE164 = e164
		}
	}

	if row.Finance.Set {
		f := row.Finance.Value
		order.Finance = &domain.Finance{
			RepairCost:     f.RepairCost.ptr(),
			Deposit:        f.Deposit.ptr(),
			PendingBalance: f.PendingBalance.ptr(),
		}
	}

	return order
}
