package addresses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"freight-broker-service/internal/domain"
)

// Profile is the address profile of a shipper as served by the profile
// service.
type Profile struct {
	PickUp   domain.Address `json:"pick_up_address"`
	Delivery domain.Address `json:"delivery_address"`
}

// StatusError reports a non-2xx response from the profile service.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("profile service responded %d", e.Code)
}

// HTTPGateway fetches shipper address profiles from the profile service.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
}

// NewHTTPGateway creates an address gateway against baseURL. A nil
// client falls back to http.DefaultClient.
func NewHTTPGateway(client *http.Client, baseURL string) *HTTPGateway {
	if baseURL == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{client: client, baseURL: baseURL}
}

// DefaultAddresses fetches the shipper's default pick-up and delivery
// addresses.
func (g *HTTPGateway) DefaultAddresses(ctx context.Context, shipperID int64) (domain.Address, domain.Address, error) {
	url := fmt.Sprintf("%s/shippers/%d/addresses", g.baseURL, shipperID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Address{}, domain.Address{}, fmt.Errorf("address gateway: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Address{}, domain.Address{}, fmt.Errorf("address gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Address{}, domain.Address{}, StatusError{Code: resp.StatusCode}
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return domain.Address{}, domain.Address{}, fmt.Errorf("address gateway: decode: %w", err)
	}
	return p.PickUp, p.Delivery, nil
}
