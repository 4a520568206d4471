package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tarelfish/tarel-api/apperrors"
)

const addressLookupTimeout = 5 * time.Second

// AutocompleteParams mirrors the getAddress.io autocomplete surface. Filter
// and location fields, when present, are sent as a JSON body on a POST;
// plain lookups go out as GET.
type AutocompleteParams struct {
	Term         string
	Top          *int
	IncludeAll   *bool
	ShowPostcode *bool
	Template     string

	FilterCounty      string
	FilterCountry     string
	FilterLocality    string
	FilterDistrict    string
	FilterTownOrCity  string
	FilterPostcode    string
	FilterResidential *bool

	RadiusKm        *float64
	RadiusLatitude  *float64
	RadiusLongitude *float64

	LocationLatitude  *float64
	LocationLongitude *float64
}

// AddressService proxies address autocomplete/get calls to getAddress.io,
// attaching the API key and normalizing upstream failures.
type AddressService struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewAddressService(baseURL, apiKey string) *AddressService {
	return &AddressService{
		client:  resty.New().SetTimeout(addressLookupTimeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (s *AddressService) requireKey() error {
	if s.apiKey == "" {
		return apperrors.Internal("Address lookup service is not configured", nil)
	}
	return nil
}

func (s *AddressService) perform(ctx context.Context, method, path string, params map[string]string, body any) (map[string]any, error) {
	req := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, s.baseURL+path)
	if err != nil {
		return nil, apperrors.Upstream("Address service is unavailable", err)
	}

	if resp.StatusCode() >= 400 {
		detail := "Address lookup failed"
		if strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
			var upstream struct {
				Message string `json:"Message"`
			}
			if json.Unmarshal(resp.Body(), &upstream) == nil && upstream.Message != "" {
				detail = upstream.Message
			}
		} else if text := strings.TrimSpace(string(resp.Body())); text != "" {
			detail = text
		}
		return nil, &apperrors.Error{
			Kind:    apperrors.KindUpstream,
			Message: detail,
			Status:  resp.StatusCode(),
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, apperrors.Upstream("Address service returned malformed data", err)
	}
	return payload, nil
}

func (s *AddressService) Autocomplete(ctx context.Context, params AutocompleteParams) (map[string]any, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}
	term := strings.TrimSpace(params.Term)
	if len(term) < 2 {
		return nil, apperrors.Validation("term must be at least 2 characters")
	}

	query := map[string]string{"api-key": s.apiKey}
	if params.Top != nil {
		if *params.Top < 1 || *params.Top > 20 {
			return nil, apperrors.Validation("top must be between 1 and 20")
		}
		query["top"] = strconv.Itoa(*params.Top)
	}
	if params.IncludeAll != nil {
		query["all"] = strconv.FormatBool(*params.IncludeAll)
	}
	if params.ShowPostcode != nil {
		query["show-postcode"] = strconv.FormatBool(*params.ShowPostcode)
	}
	if params.Template != "" {
		query["template"] = params.Template
	}

	filter := map[string]any{}
	if params.FilterCounty != "" {
		filter["county"] = params.FilterCounty
	}
	if params.FilterCountry != "" {
		filter["country"] = params.FilterCountry
	}
	if params.FilterLocality != "" {
		filter["locality"] = params.FilterLocality
	}
	if params.FilterDistrict != "" {
		filter["district"] = params.FilterDistrict
	}
	if params.FilterTownOrCity != "" {
		filter["town_or_city"] = params.FilterTownOrCity
	}
	if params.FilterPostcode != "" {
		filter["postcode"] = params.FilterPostcode
	}
	if params.FilterResidential != nil {
		filter["residential"] = *params.FilterResidential
	}

	if params.RadiusKm != nil || params.RadiusLatitude != nil || params.RadiusLongitude != nil {
		if params.RadiusKm == nil || params.RadiusLatitude == nil || params.RadiusLongitude == nil {
			return nil, apperrors.Validation("radius_km, radius_latitude, and radius_longitude must all be provided together")
		}
		filter["radius"] = map[string]float64{
			"km":        *params.RadiusKm,
			"latitude":  *params.RadiusLatitude,
			"longitude": *params.RadiusLongitude,
		}
	}

	var location map[string]float64
	if params.LocationLatitude != nil || params.LocationLongitude != nil {
		if params.LocationLatitude == nil || params.LocationLongitude == nil {
			return nil, apperrors.Validation("Both location_latitude and location_longitude are required when using location biasing")
		}
		location = map[string]float64{
			"latitude":  *params.LocationLatitude,
			"longitude": *params.LocationLongitude,
		}
	}

	var body map[string]any
	if len(filter) > 0 || location != nil {
		body = map[string]any{}
		if len(filter) > 0 {
			body["filter"] = filter
		}
		if location != nil {
			body["location"] = location
		}
	}

	method := "GET"
	if body != nil {
		method = "POST"
	}

	return s.perform(ctx, method, "/autocomplete/"+url.PathEscape(term), query, body)
}

func (s *AddressService) Get(ctx context.Context, id string) (map[string]any, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if len(id) < 3 {
		return nil, apperrors.Validation("id must be at least 3 characters")
	}
	return s.perform(ctx, "GET", "/get/"+url.PathEscape(id), map[string]string{"api-key": s.apiKey}, nil)
}
