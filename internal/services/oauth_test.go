package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGithubProviderExchangeCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostFormValue("code") != "good-code" {
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad_verification_code"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "gh-token"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gh-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"email": "Dev@Example.com",
			"name":  "Ana Souza",
			"login": "anasouza",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	provider := &githubProvider{
		httpClient:   srv.Client(),
		clientID:     "id",
		clientSecret: "secret",
		tokenURL:     srv.URL + "/token",
		userURL:      srv.URL + "/user",
	}

	identity, err := provider.ExchangeCode(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if identity.Email != "Dev@Example.com" {
		t.Fatalf("email = %q", identity.Email)
	}
	if identity.FirstName != "Ana" || identity.LastName != "Souza" {
		t.Fatalf("name split: %q %q", identity.FirstName, identity.LastName)
	}

	if _, err := provider.ExchangeCode(context.Background(), "bad-code"); err == nil {
		t.Fatal("ExchangeCode with rejected code succeeded")
	}
}

func TestNewGithubProviderRequiresCredentials(t *testing.T) {
	if _, err := NewGithubProvider(nil, "", "secret"); err == nil {
		t.Fatal("missing client id accepted")
	}
	if _, err := NewGithubProvider(nil, "id", ""); err == nil {
		t.Fatal("missing client secret accepted")
	}
	if _, err := NewGithubProvider(nil, "id", "secret"); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
}
