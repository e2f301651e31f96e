package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sastaease/storefront-backend/api/middleware"
	"github.com/sastaease/storefront-backend/internal/session"
)

func TestSessionCurrentSignedOut(t *testing.T) {
	handler := SessionCurrent(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data sessionResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SignedIn {
		t.Fatal("expected signed-out body")
	}
}

func TestSessionCurrentSignedIn(t *testing.T) {
	handler := SessionCurrent(nil)
	sess := &session.Session{
		UserID:    uuid.New(),
		Email:     "shopper@example.com",
		Token:     "token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), sess))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data sessionResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.SignedIn {
		t.Fatal("expected signed-in body")
	}
	if envelope.Data.UserID != sess.UserID.String() {
		t.Fatalf("unexpected user id %q", envelope.Data.UserID)
	}
	if envelope.Data.ExpiresAt == nil {
		t.Fatal("expected expiry forwarded")
	}
}
