package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrVariationNotFound, http.StatusNotFound},
		{models.ErrProductNotFound, http.StatusNotFound},
		{models.ErrOrderNotFound, http.StatusNotFound},
		{models.ErrCategoryNotFound, http.StatusNotFound},
		{models.ErrAddressNotFound, http.StatusNotFound},
		{models.ErrUnavailable, http.StatusBadRequest},
		{models.ErrIngredientUnavailable, http.StatusBadRequest},
		{models.ErrObligatoryIngredient, http.StatusBadRequest},
		{models.ErrInvalidStatus, http.StatusBadRequest},
		{models.ErrAlreadyExists, http.StatusBadRequest},
		{models.ErrValidation, http.StatusBadRequest},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrPermissionDenied, http.StatusForbidden},
		{models.ErrUserInactive, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}

func TestErrorStatus_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: Mussarela", models.ErrObligatoryIngredient)
	assert.Equal(t, http.StatusBadRequest, errorStatus(wrapped))

	twice := fmt.Errorf("pricing line 2: %w", wrapped)
	assert.Equal(t, http.StatusBadRequest, errorStatus(twice))
}

func TestWriteServiceError_MasksInternalErrors(t *testing.T) {
	log := testLogger()
	reqCtx := &logger.RequestContext{Method: "GET", Path: "/pedidos/1"}

	rec := httptest.NewRecorder()
	writeServiceError(log, rec, reqCtx, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "erro interno do servidor", body["error"])
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestWriteServiceError_KeepsDomainMessages(t *testing.T) {
	log := testLogger()
	reqCtx := &logger.RequestContext{Method: "DELETE", Path: "/pedidos/7"}

	rec := httptest.NewRecorder()
	writeServiceError(log, rec, reqCtx, fmt.Errorf("%w: id 7", models.ErrOrderNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "pedido nao encontrado")
}
