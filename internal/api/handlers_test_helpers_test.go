package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"pulseboard/internal/db"
	"pulseboard/internal/models"
	"pulseboard/internal/services"
)

type testEnv struct {
	app          *fiber.App
	accounts     *services.AccountService
	repositories *db.Repositories
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "pulseboard-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	repositories := db.NewRepositories(database)
	accounts := services.NewAccountService(repositories.Accounts)
	settings := services.NewSettingsService(repositories.Settings)
	status := services.NewStatusService(repositories.Ingestion, repositories.Vitals, repositories.Settings, time.UTC)

	handler := NewHandler(accounts, settings, status, []byte("test-secret-key"), time.UTC)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)

	return &testEnv{app: app, accounts: accounts, repositories: repositories}
}

func (env *testEnv) createAccount(t *testing.T, email string, password string, role string) models.Account {
	t.Helper()
	account, err := env.accounts.CreateAccount(email, password, "Test User", "tester", role)
	if err != nil {
		t.Fatalf("create account %s: %v", email, err)
	}
	return account
}

func (env *testEnv) seedIngestion(t *testing.T, subjectID string, stage string, date string) {
	t.Helper()
	day, err := services.ParseAPIDate(date, time.UTC)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	record := models.IngestionRecord{SubjectID: subjectID, Stage: stage, Date: day, BatchID: "test-batch"}
	if err := env.repositories.Ingestion.Create(&record); err != nil {
		t.Fatalf("seed ingestion record: %v", err)
	}
}

func jsonRequest(t *testing.T, method string, target string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return request
}

func decodeBody(t *testing.T, response *http.Response, out any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func (env *testEnv) login(t *testing.T, email string, password string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": email,
		"password": password,
	})
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", response.StatusCode)
	}

	payload := struct {
		AccessToken string `json:"access_token"`
	}{}
	decodeBody(t, response, &payload)
	if payload.AccessToken == "" {
		t.Fatalf("expected access token in login response")
	}
	return payload.AccessToken
}

func withBearer(request *http.Request, token string) *http.Request {
	request.Header.Set("Authorization", "Bearer "+token)
	return request
}
