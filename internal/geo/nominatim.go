package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/agrocampo/api/internal/metrics"
)

// Place is the human-readable result of a reverse geocode lookup.
type Place struct {
	City  string
	State string
}

// ReverseGeocoder resolves coordinates into a place name.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (Place, error)
}

// NominatimClient reverse-geocodes through a Nominatim-compatible API.
type NominatimClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewNominatimClient creates a client for the given base URL.
func NewNominatimClient(baseURL string, client *http.Client) *NominatimClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &NominatimClient{baseURL: baseURL, client: client, circuit: cb}
}

type nominatimResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		State        string `json:"state"`
		Region       string `json:"region"`
	} `json:"address"`
}

// Reverse looks up the address components for a coordinate pair. The city
// is extracted with city → town → village → municipality preference; the
// state falls back to region.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("format", "json")

	u := fmt.Sprintf("%s/reverse?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Place{}, err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var payload nominatimResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
			return nil, decodeErr
		}
		return payload, nil
	})
	if err != nil {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return Place{}, err
	}

	payload := result.(nominatimResponse)
	metrics.GeocodeLookups.WithLabelValues("ok").Inc()
	return extractPlace(payload), nil
}

func extractPlace(payload nominatimResponse) Place {
	addr := payload.Address

	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}
	if city == "" {
		city = addr.Municipality
	}

	state := addr.State
	if state == "" {
		state = addr.Region
	}

	return Place{City: city, State: state}
}
