// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eduai/principal-server/pkg/conf"
	"github.com/golang-jwt/jwt/v5"
)

func authConfig() *conf.Config {
	c := conf.Config{}
	c.JWT.SecretKey = "test-secret"
	c.JWT.Admin = map[string]string{"admin": "adminpass"}
	return &c
}

// login posts credentials and returns the response
func login(t *testing.T, config *conf.Config, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest("POST", "/dashdata/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	Login(config)(rr, req)
	return rr
}

func TestLogin(t *testing.T) {

	config := authConfig()
	rr := login(t, config, "admin", "adminpass")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected code %d, got %d", http.StatusOK, rr.Code)
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Token == "" {
		t.Error("Expected a token in the login response")
	}
	if out.User.Name != "admin" {
		t.Errorf("Expected user name admin, got %s", out.User.Name)
	}

	// the token is also set as a cookie
	cookieSet := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" && c.Value == out.Token {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Error("Expected a token cookie in the login response")
	}
}

func TestLoginBadCredentials(t *testing.T) {

	config := authConfig()
	rr := login(t, config, "admin", "wrong")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected code %d, got %d", http.StatusUnauthorized, rr.Code)
	}

	rr = login(t, config, "nobody", "adminpass")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected code %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestLoginBadPayload(t *testing.T) {

	config := authConfig()
	req := httptest.NewRequest("POST", "/dashdata/login", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	Login(config)(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected code %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

// protect wraps a trivial handler with the authentication middleware
func protect(config *conf.Config) http.Handler {
	return AuthMiddleware(config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func authError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var out map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return out["error"]
}

func TestAuthMiddleware(t *testing.T) {

	config := authConfig()

	// fetch a valid token via the login handler
	rr := login(t, config, "admin", "adminpass")
	if rr.Code != http.StatusOK {
		t.Fatalf("Login failed with code %d", rr.Code)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}

	// a bearer token gives access
	req := httptest.NewRequest("GET", "/dashdata/data", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	rr = httptest.NewRecorder()
	protect(config).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected code %d with a bearer token, got %d", http.StatusOK, rr.Code)
	}

	// the token cookie gives access too
	req = httptest.NewRequest("GET", "/dashdata/data", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: out.Token})
	rr = httptest.NewRecorder()
	protect(config).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected code %d with a token cookie, got %d", http.StatusOK, rr.Code)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {

	config := authConfig()
	req := httptest.NewRequest("GET", "/dashdata/data", nil)
	rr := httptest.NewRecorder()
	protect(config).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected code %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if msg := authError(t, rr); msg != "No authentication token provided" {
		t.Errorf("Unexpected error message %q", msg)
	}
}

func TestAuthMiddlewareBadToken(t *testing.T) {

	config := authConfig()

	// a malformed token is rejected
	req := httptest.NewRequest("GET", "/dashdata/data", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	protect(config).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected code %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if msg := authError(t, rr); msg != "Token is malformed" {
		t.Errorf("Unexpected error message %q", msg)
	}

	// a token signed with another key is rejected
	claims := &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest("GET", "/dashdata/data", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rr = httptest.NewRecorder()
	protect(config).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected code %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if msg := authError(t, rr); msg != "Invalid token signature" {
		t.Errorf("Unexpected error message %q", msg)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {

	config := authConfig()
	claims := &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWT.SecretKey))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/dashdata/data", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := httptest.NewRecorder()
	protect(config).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected code %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if msg := authError(t, rr); msg != "Token has expired" {
		t.Errorf("Unexpected error message %q", msg)
	}
}
