package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/geo"
	"github.com/agrocampo/api/internal/handler"
)

type stubGeocoder struct {
	place geo.Place
	err   error
}

func (s *stubGeocoder) Reverse(ctx context.Context, lat, lon float64) (geo.Place, error) {
	return s.place, s.err
}

func newLocationHandler(geocoder geo.ReverseGeocoder) *handler.LocationHandler {
	resolver := geo.NewResolver(geocoder, geo.NewLocationStore(), time.Second)
	return handler.NewLocationHandler(resolver)
}

func locationRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(encoded))
	}
	req.Header.Set(handler.HeaderUserID, "user-1")
	return req
}

func TestLocationHandler_ManualRoundTrip(t *testing.T) {
	handler.InitValidator()

	h := newLocationHandler(&stubGeocoder{})

	t.Run("Empty Store Is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleGet(w, locationRequest(t, http.MethodGet, "/api/v1/location", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Set Manual Then Get", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleSetManual(w, locationRequest(t, http.MethodPut, "/api/v1/location", handler.SetLocationRequest{
			City:  "Uberlândia",
			State: "MG",
		}))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		h.HandleGet(w, locationRequest(t, http.MethodGet, "/api/v1/location", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var loc domain.LocationSnapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))
		assert.Equal(t, "Uberlândia", loc.City)
		assert.Equal(t, "MG", loc.State)
		assert.True(t, loc.IsCustomSet)
	})

	t.Run("Clear Then Get", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleClear(w, locationRequest(t, http.MethodDelete, "/api/v1/location", nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		h.HandleGet(w, locationRequest(t, http.MethodGet, "/api/v1/location", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLocationHandler_Resolve(t *testing.T) {
	handler.InitValidator()

	t.Run("Coordinates Resolve To Snapshot", func(t *testing.T) {
		h := newLocationHandler(&stubGeocoder{place: geo.Place{City: "Patos de Minas", State: "MG"}})

		w := httptest.NewRecorder()
		lat, lon := -18.58, -46.51
		h.HandleResolve(w, locationRequest(t, http.MethodPost, "/api/v1/location/resolve", handler.ResolveLocationRequest{
			Latitude:  &lat,
			Longitude: &lon,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		var resolution geo.Resolution
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolution))
		assert.Equal(t, geo.StatusResolved, resolution.Status)
		require.NotNil(t, resolution.Location)
		assert.Equal(t, "Patos de Minas", resolution.Location.City)
	})

	t.Run("Device Failure Is A 200 State", func(t *testing.T) {
		h := newLocationHandler(&stubGeocoder{})

		w := httptest.NewRecorder()
		h.HandleResolve(w, locationRequest(t, http.MethodPost, "/api/v1/location/resolve", handler.ResolveLocationRequest{
			Failure: geo.FailurePermissionDenied,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		var resolution geo.Resolution
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolution))
		assert.Equal(t, geo.StatusDenied, resolution.Status)
		assert.NotEmpty(t, resolution.Reason)
	})

	t.Run("Missing Coordinates", func(t *testing.T) {
		h := newLocationHandler(&stubGeocoder{})

		w := httptest.NewRecorder()
		h.HandleResolve(w, locationRequest(t, http.MethodPost, "/api/v1/location/resolve", handler.ResolveLocationRequest{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp handler.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "latitude")
	})
}
