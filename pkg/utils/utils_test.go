package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "service-tracker/pkg/errors"
)

func TestCanonicalPhone(t *testing.T) {
	cases := map[string]string{
		"+90 (532) 123-45-67": "05321234567",
		"0532 123 45 67":      "05321234567",
		"  ":                  "",
		"Ahmet 123":           "Ahmet123",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalPhone(in), in)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1.234,50 ₺", FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-0,30 ₺", FormatMoney(decimal.RequireFromString("-0.3")))
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("1234")
	require.NoError(t, err)
	assert.NoError(t, ComparePasswords(hash, "1234"))
	assert.Error(t, ComparePasswords(hash, "4321"))
}

func respond(t *testing.T, err error) (int, HTTPResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, ErrorResponse(c, err, zap.NewNop()))
	var body HTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorResponse(t *testing.T) {
	code, body := respond(t, apperrors.NewNotFoundError("Запись не найдена"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, body.Status)
	assert.Equal(t, "Запись не найдена", body.Message)

	code, _ = respond(t, fmt.Errorf("get: %w", apperrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = respond(t, apperrors.NewInvalidInputError("плохой id: %s", "x"))
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = respond(t, errors.New("redis: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Внутренняя ошибка сервера", body.Message)
}

func TestSuccessResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SuccessResponse(c, map[string]int{"count": 2}, "ok", http.StatusOK))
	assert.JSONEq(t, `{"status":true,"message":"ok","body":{"count":2}}`, rec.Body.String())
}
