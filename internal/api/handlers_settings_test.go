package api

import (
	"net/http"
	"testing"
)

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")
	token := env.login(t, "test@gmail.com", "TestPassw0rd!")

	request := withBearer(jsonRequest(t, http.MethodGet, "/api/user-settings", nil), token)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}

	settings := struct {
		UserCountLogic  string `json:"user_count_logic"`
		CustomUserCount *int   `json:"custom_user_count"`
		Theme           string `json:"theme"`
	}{}
	decodeBody(t, response, &settings)
	if settings.UserCountLogic != "raw_files" || settings.Theme != "light" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	request = withBearer(jsonRequest(t, http.MethodPost, "/api/user-settings", map[string]any{
		"user_count_logic":  "custom_input",
		"custom_user_count": 25,
		"theme":             "light",
	}), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("save settings failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	decodeBody(t, response, &settings)
	if settings.CustomUserCount == nil || *settings.CustomUserCount != 25 {
		t.Fatalf("expected stored custom count, got %+v", settings)
	}

	request = withBearer(jsonRequest(t, http.MethodGet, "/api/user-settings", nil), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	decodeBody(t, response, &settings)
	if settings.UserCountLogic != "custom_input" || settings.CustomUserCount == nil || *settings.CustomUserCount != 25 {
		t.Fatalf("expected persisted settings, got %+v", settings)
	}
}

func TestSettingsValidationErrors(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")
	token := env.login(t, "test@gmail.com", "TestPassw0rd!")

	request := withBearer(jsonRequest(t, http.MethodPost, "/api/user-settings", map[string]any{
		"user_count_logic": "custom_input",
	}), token)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("save settings failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing custom count, got %d", response.StatusCode)
	}
}
