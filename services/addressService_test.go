package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarelfish/tarel-api/apperrors"
)

func TestAutocompleteRequiresKey(t *testing.T) {
	svc := NewAddressService("https://example.invalid", "")

	_, err := svc.Autocomplete(context.Background(), AutocompleteParams{Term: "10 Downing"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}

func TestAutocompleteValidation(t *testing.T) {
	svc := NewAddressService("https://example.invalid", "key")
	ctx := context.Background()

	_, err := svc.Autocomplete(ctx, AutocompleteParams{Term: "x"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	top := 50
	_, err = svc.Autocomplete(ctx, AutocompleteParams{Term: "10 Downing", Top: &top})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	km := 5.0
	_, err = svc.Autocomplete(ctx, AutocompleteParams{Term: "10 Downing", RadiusKm: &km})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	lat := 55.95
	_, err = svc.Autocomplete(ctx, AutocompleteParams{Term: "10 Downing", LocationLatitude: &lat})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAutocompleteForwardsUpstreamResponse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/autocomplete/10%20Downing", r.URL.EscapedPath())
		assert.Equal(t, "secret", r.URL.Query().Get("api-key"))
		assert.Equal(t, "5", r.URL.Query().Get("top"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"suggestions": []map[string]any{{"address": "10 Downing Street", "id": "abc123"}},
		})
	}))
	defer upstream.Close()

	svc := NewAddressService(upstream.URL, "secret")
	top := 5
	result, err := svc.Autocomplete(context.Background(), AutocompleteParams{Term: "10 Downing", Top: &top})
	require.NoError(t, err)
	assert.Contains(t, result, "suggestions")
}

func TestAutocompletePostsWhenFiltered(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		filter, ok := body["filter"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Edinburgh", filter["town_or_city"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"suggestions": []any{}})
	}))
	defer upstream.Close()

	svc := NewAddressService(upstream.URL, "secret")
	_, err := svc.Autocomplete(context.Background(), AutocompleteParams{
		Term:             "Shore Road",
		FilterTownOrCity: "Edinburgh",
	})
	require.NoError(t, err)
}

func TestUpstreamErrorsKeepStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"Message": "Address not found"})
	}))
	defer upstream.Close()

	svc := NewAddressService(upstream.URL, "secret")
	_, err := svc.Get(context.Background(), "missing-id")
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindUpstream, appErr.Kind)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Address not found", appErr.Message)
}

func TestUpstreamUnreachableIsBadGateway(t *testing.T) {
	svc := NewAddressService("http://127.0.0.1:1", "secret")

	_, err := svc.Get(context.Background(), "abc123")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
}

func TestGetValidatesID(t *testing.T) {
	svc := NewAddressService("https://example.invalid", "secret")

	_, err := svc.Get(context.Background(), " ab ")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
