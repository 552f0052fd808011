package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/handler"
)

type fakeFarmService struct {
	farms       []domain.Farm
	getErr      error
	createCalls int
	createErr   error
	deleted     []string
}

func (f *fakeFarmService) List(ctx context.Context, userID string) ([]domain.Farm, error) {
	return f.farms, nil
}

func (f *fakeFarmService) Get(ctx context.Context, userID, id string) (*domain.Farm, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.farms {
		if f.farms[i].ID == id {
			return &f.farms[i], nil
		}
	}
	return nil, domain.ErrFarmNotFound
}

func (f *fakeFarmService) Create(ctx context.Context, userID string, farm *domain.Farm) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	farm.ID = "farm-new"
	farm.UserID = userID
	return nil
}

func (f *fakeFarmService) Update(ctx context.Context, userID, id string, update domain.FarmUpdate) (*domain.Farm, error) {
	return f.Get(ctx, userID, id)
}

func (f *fakeFarmService) Delete(ctx context.Context, userID, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newFarmRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(handler.HeaderUserID, "user-1")
	return req
}

func TestFarmHandler_Create(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name            string
		body            interface{}
		userHeader      bool
		expectedStatus  int
		expectedCalls   int
		expectedField   string
		expectedMessage string
	}{
		{
			name: "Success",
			body: handler.CreateFarmRequest{
				Nome:        "Fazenda Boa Vista",
				Localizacao: "Uberaba/MG",
				AreaTotal:   120,
			},
			userHeader:     true,
			expectedStatus: http.StatusCreated,
			expectedCalls:  1,
		},
		{
			name: "Missing Localizacao Rejected Before Service",
			body: handler.CreateFarmRequest{
				Nome: "Fazenda Sem Endereco",
			},
			userHeader:     true,
			expectedStatus: http.StatusBadRequest,
			expectedCalls:  0,
			expectedField:  "localizacao",
		},
		{
			name:            "Malformed JSON",
			body:            "{not json",
			userHeader:      true,
			expectedStatus:  http.StatusBadRequest,
			expectedCalls:   0,
			expectedMessage: "invalid request body",
		},
		{
			name: "Missing User Header",
			body: handler.CreateFarmRequest{
				Nome:        "Fazenda Boa Vista",
				Localizacao: "Uberaba/MG",
			},
			userHeader:     false,
			expectedStatus: http.StatusUnauthorized,
			expectedCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeFarmService{}
			h := handler.NewFarmHandler(svc)

			req := newFarmRequest(t, http.MethodPost, "/api/v1/farms", tt.body)
			if !tt.userHeader {
				req.Header.Del(handler.HeaderUserID)
			}
			w := httptest.NewRecorder()

			h.HandleCreate(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, svc.createCalls)

			if tt.expectedField != "" {
				var resp handler.ValidationErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(t, resp.Fields, tt.expectedField)
			}
			if tt.expectedMessage != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), tt.expectedMessage)
			}
		})
	}
}

func TestFarmHandler_Get(t *testing.T) {
	handler.InitValidator()

	svc := &fakeFarmService{farms: []domain.Farm{{ID: "farm-1", Nome: "Sitio Primavera", UserID: "user-1"}}}
	h := handler.NewFarmHandler(svc)

	t.Run("Found", func(t *testing.T) {
		req := newFarmRequest(t, http.MethodGet, "/api/v1/farms/farm-1", nil)
		req = withURLParam(req, "id", "farm-1")
		w := httptest.NewRecorder()

		h.HandleGet(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var farm domain.Farm
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &farm))
		assert.Equal(t, "Sitio Primavera", farm.Nome)
	})

	t.Run("Not Found", func(t *testing.T) {
		req := newFarmRequest(t, http.MethodGet, "/api/v1/farms/missing", nil)
		req = withURLParam(req, "id", "missing")
		w := httptest.NewRecorder()

		h.HandleGet(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Farm not found")
	})

	t.Run("Not Owner", func(t *testing.T) {
		denied := &fakeFarmService{getErr: domain.ErrNotOwner}
		h := handler.NewFarmHandler(denied)

		req := newFarmRequest(t, http.MethodGet, "/api/v1/farms/farm-1", nil)
		req = withURLParam(req, "id", "farm-1")
		w := httptest.NewRecorder()

		h.HandleGet(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
