// Package geocode resolves free-text addresses to coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/pkg/apperror"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

	noLocation = "Could not find location for the specified address."
)

// Geocoder turns an address into a coordinate pair.
type Geocoder interface {
	Coordinates(ctx context.Context, address string) (entity.Location, error)
}

// GoogleGeocoder calls the Google Geocoding API.
type GoogleGeocoder struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewGoogleGeocoder(apiKey, baseURL string) *GoogleGeocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleGeocoder{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location entity.Location `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Coordinates returns the location of the first match. An address with no
// match yields a 422 validation error; transport failures are returned as is.
func (g *GoogleGeocoder) Coordinates(ctx context.Context, address string) (entity.Location, error) {
	if strings.TrimSpace(address) == "" {
		return entity.Location{}, apperror.Validation(noLocation)
	}
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return entity.Location{}, err
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return entity.Location{}, fmt.Errorf("geocode request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return entity.Location{}, fmt.Errorf("geocode status %d", resp.StatusCode)
	}

	var out googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entity.Location{}, fmt.Errorf("geocode decode: %w", err)
	}
	if out.Status == "ZERO_RESULTS" || (out.Status == "OK" && len(out.Results) == 0) {
		return entity.Location{}, apperror.Validation(noLocation)
	}
	if out.Status != "OK" {
		return entity.Location{}, fmt.Errorf("geocode: %s %s", out.Status, out.ErrorMessage)
	}
	return out.Results[0].Geometry.Location, nil
}

// Static always answers with the same location. Used when no API key is
// configured and in tests.
type Static struct {
	Location entity.Location
}

func (s Static) Coordinates(_ context.Context, address string) (entity.Location, error) {
	if strings.TrimSpace(address) == "" {
		return entity.Location{}, apperror.Validation(noLocation)
	}
	return s.Location, nil
}
