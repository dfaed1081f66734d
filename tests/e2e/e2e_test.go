//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

type messageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Code    string `json:"code"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Status  string `json:"status"`
}

type placeSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type placeDetail struct {
	Place struct {
		ID            int64   `json:"id"`
		Name          string  `json:"name"`
		AverageRating float64 `json:"average_rating"`
		TotalReviews  int64   `json:"total_reviews"`
	} `json:"place"`
}

type listCreated struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type listUsers struct {
	Users []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
	} `json:"users"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("PLACES_BASE_URL", "http://localhost:5000")
	suffix := strings.ToLower(ulid.Make().String())

	username := "e2e-" + suffix
	token := registerAndLogin(t, baseURL, username, "e2e-password")

	placeName := "E2E Cafe " + suffix
	var created messageResponse
	status := doJSON(t, http.MethodPost, baseURL+"/api/place-data", "", map[string]any{
		"place_id":     "e2e/" + suffix,
		"display_name": placeName,
		"lat":          "55.7558",
		"lon":          "37.6173",
		"address":      "Red Square 1",
		"categories":   []string{"cafe"},
		"description":  "End-to-end test place",
		"work_hours":   "10:00-22:00",
		"url":          "https://example.com",
		"phone":        "+7 000 000-00-00",
	}, &created)
	if status != http.StatusCreated || created.Status != "success" {
		t.Fatalf("create place: status=%d body=%+v", status, created)
	}

	var search struct {
		Places []placeSummary `json:"places"`
		Status string         `json:"status"`
	}
	status = doJSON(t, http.MethodGet, baseURL+"/api/places?name="+url.QueryEscape(suffix), "", nil, &search)
	if status != http.StatusOK || len(search.Places) != 1 {
		t.Fatalf("search place: status=%d places=%+v", status, search.Places)
	}
	placeID := search.Places[0].ID

	userID := userIDFromList(t, baseURL, token, username)

	for _, score := range []int{3, 4} {
		status = doJSON(t, http.MethodPost, baseURL+"/api/review", "", map[string]any{
			"id_place":     strconv.FormatInt(placeID, 10),
			"id_user":      userID,
			"review_text":  "Nice",
			"review_score": strconv.Itoa(score),
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("add review: status=%d", status)
		}
	}

	var detail placeDetail
	status = doJSON(t, http.MethodGet, baseURL+"/api/place/"+strconv.FormatInt(placeID, 10), "", nil, &detail)
	if status != http.StatusOK {
		t.Fatalf("get place: status=%d", status)
	}
	if detail.Place.AverageRating != 3.5 || detail.Place.TotalReviews != 2 {
		t.Errorf("rating = %v over %d reviews, want 3.5 over 2", detail.Place.AverageRating, detail.Place.TotalReviews)
	}
}

// userIDFromList creates a list and reads the caller's ID from its members.
func userIDFromList(t *testing.T, baseURL, token, username string) int64 {
	t.Helper()

	var list listCreated
	status := doJSON(t, http.MethodPost, baseURL+"/api/lists", token, map[string]string{"list_name": "e2e"}, &list)
	if status != http.StatusCreated {
		t.Fatalf("create list: status=%d", status)
	}

	var users listUsers
	status = doJSON(t, http.MethodGet, baseURL+"/api/lists/"+strconv.FormatInt(list.ID, 10)+"/users", "", nil, &users)
	if status != http.StatusOK {
		t.Fatalf("list users: status=%d", status)
	}
	for _, u := range users.Users {
		if u.Username == username {
			if !u.IsAdmin {
				t.Errorf("list creator should be admin")
			}
			return u.ID
		}
	}
	t.Fatalf("creator %s missing from list members %+v", username, users.Users)
	return 0
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func registerAndLogin(t *testing.T, baseURL, username, password string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": password}

	if status := doJSON(t, http.MethodPost, baseURL+"/api/register", "", creds, nil); status != http.StatusCreated {
		t.Fatalf("register: status=%d", status)
	}

	var login loginResponse
	if status := doJSON(t, http.MethodPost, baseURL+"/api/login", "", creds, &login); status != http.StatusOK {
		t.Fatalf("login: status=%d", status)
	}
	if login.Token == "" {
		t.Fatal("login returned no token")
	}
	return login.Token
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}

// TestE2ELoginRateLimiting needs the server to run with Redis configured.
func TestE2ELoginRateLimiting(t *testing.T) {
	baseURL := envOrDefault("PLACES_BASE_URL", "http://localhost:5000")

	client := &http.Client{Timeout: 10 * time.Second}
	payload := []byte(`{"username":"e2e-nobody","password":"wrong"}`)

	var limited *http.Response
	for i := 0; i < 50; i++ {
		req, err := http.NewRequest(http.MethodPost, baseURL+"/api/login", bytes.NewReader(payload))
		if err != nil {
			t.Fatalf("create request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if i == 0 && resp.Header.Get("X-RateLimit-Limit") == "" {
			resp.Body.Close()
			t.Skip("server runs without rate limiting")
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = resp
			break
		}
		resp.Body.Close()
	}

	if limited == nil {
		t.Fatal("expected 429 after exhausting the login burst")
	}
	defer limited.Body.Close()

	if limited.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header on 429 response")
	}
	if remaining := limited.Header.Get("X-RateLimit-Remaining"); remaining != "0" {
		t.Errorf("expected X-RateLimit-Remaining=0, got %s", remaining)
	}

	var errResp messageResponse
	if err := json.NewDecoder(limited.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode 429 response: %v", err)
	}
	if errResp.Code != "RATE_LIMITED" || errResp.Status != "error" {
		t.Errorf("unexpected 429 body: %+v", errResp)
	}
}

// TestE2ENoTokenEcho validates that responses never echo a presented token.
func TestE2ENoTokenEcho(t *testing.T) {
	baseURL := envOrDefault("PLACES_BASE_URL", "http://localhost:5000")
	client := &http.Client{Timeout: 10 * time.Second}

	fake := "eyJhbGciOiJIUzI1NiJ9." + strings.Repeat("x", 32) + ".sig"
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/lists", nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Authorization", fake)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("invalid token status = %d, want 500 (or 401 with STRICT_TOKEN_ERRORS)", resp.StatusCode)
	}
	if strings.Contains(string(body), fake) {
		t.Error("SECURITY: error response echoed the presented token")
	}
}
