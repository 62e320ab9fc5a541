package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusUnprocessableEntity},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeAddressMissing, http.StatusUnprocessableEntity},
		{ErrCodeSellerAddressMissing, http.StatusUnprocessableEntity},
		{ErrCodeShippingUnavailable, http.StatusServiceUnavailable},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"INVALID_CATEGORY", http.StatusUnprocessableEntity},
		{"INVALID_IMAGES", http.StatusUnprocessableEntity},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainSentinelsHaveStatus(t *testing.T) {
	sentinels := []*shared.DomainError{
		shared.ErrNotFound,
		shared.ErrAlreadyExists,
		shared.ErrInvalidInput,
		shared.ErrUnauthorized,
		shared.ErrForbidden,
		shared.ErrInvalidState,
		shared.ErrInsufficientStock,
		shared.ErrAddressMissing,
		shared.ErrSellerAddressMissing,
		shared.ErrShippingUnavailable,
	}
	for _, e := range sentinels {
		assert.NotEqual(t, http.StatusInternalServerError, GetHTTPStatus(e.Code), e.Code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 31, 2, 15)

	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, 2, resp.Meta.Page)
}

func TestNewPaginatedResponse(t *testing.T) {
	page := shared.NewPaginated([]string{"a"}, 16, 2, 15)

	resp := NewPaginatedResponse(page)

	assert.Equal(t, []string{"a"}, resp.Data)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(16), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Data tidak valid", "req-1", []ValidationDetail{
		{Field: "name", Message: "name wajib diisi"},
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, false, decoded["success"])
	errInfo := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeValidation, errInfo["code"])
	assert.Equal(t, "req-1", errInfo["request_id"])
	details := errInfo["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "name", details[0].(map[string]any)["field"])
	_, hasData := decoded["data"]
	assert.False(t, hasData)
}

func TestRegionIDRequest(t *testing.T) {
	id, ok := RegionIDRequest{ID: "12"}.Int()
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	_, ok = RegionIDRequest{ID: "abc"}.Int()
	assert.False(t, ok)

	_, ok = RegionIDRequest{ID: "-3"}.Int()
	assert.False(t, ok)
}
