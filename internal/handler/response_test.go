package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"naijatax/internal/domain"
	"naijatax/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("%w: amount", domain.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{fmt.Errorf("income x: %w", domain.ErrInvalidRecord), http.StatusUnprocessableEntity, "INVALID_RECORD"},
		{domain.ErrUnsupportedCategory, http.StatusUnprocessableEntity, "UNSUPPORTED_CATEGORY"},
		{domain.ErrRateTableNotFound, http.StatusUnprocessableEntity, "RATE_TABLE_NOT_FOUND"},
		{domain.ErrInvalidRateTable, http.StatusInternalServerError, "INVALID_RATE_TABLE"},
		{domain.ErrInvalidFilingTransition, http.StatusConflict, "INVALID_FILING_TRANSITION"},
		{domain.ErrDuplicateRecord, http.StatusConflict, "DUPLICATE_RECORD"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_InternalMessageHidden(t *testing.T) {
	_, _, msg := handler.MapDomainError(errors.New("pq: password authentication failed"))
	assert.NotContains(t, msg, "password")
}
