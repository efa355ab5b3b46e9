package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeJSON_Valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.io","password":"12345678"}`))

	var body signupBody
	require.NoError(t, DecodeJSON(r, &body))
	assert.Equal(t, "a@b.io", body.Email)
}

func TestDecodeJSON_ValidationUsesJSONNames(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"123"}`))

	var body signupBody
	err := DecodeJSON(r, &body)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be a valid email", verr.Fields["email"])
	assert.Equal(t, "must be at least 8", verr.Fields["password"])
	assert.Equal(t, "validation failed: email must be a valid email, password must be at least 8", err.Error())
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.io","password":"12345678","role":"admin"}`))

	var body signupBody
	err := DecodeJSON(r, &body)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "x"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"x"}`, rec.Body.String())
}
