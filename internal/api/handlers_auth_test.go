package api

import (
	"net/http"
	"testing"
)

func TestLoginReturnsBearerToken(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")

	token := env.login(t, "test@gmail.com", "TestPassw0rd!")
	if token == "" {
		t.Fatalf("expected token")
	}
}

func TestLoginRejectsInvalidCredentials(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "test@gmail.com",
		"password": "WrongPassw0rd!",
	})
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}

func TestLoginBlocksAccountsPendingPasswordChange(t *testing.T) {
	env := newTestApp(t)
	account := env.createAccount(t, "forced@example.com", "TestPassw0rd!", "")

	temporary, err := env.accounts.IssueTemporaryPassword(account.ID)
	if err != nil {
		t.Fatalf("issue temporary password: %v", err)
	}

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "forced@example.com",
		"password": temporary,
	})
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", response.StatusCode)
	}

	payload := struct {
		MustChangePassword bool `json:"must_change_password"`
	}{}
	decodeBody(t, response, &payload)
	if !payload.MustChangePassword {
		t.Fatalf("expected must_change_password flag")
	}
}

func TestProfileRequiresAuthentication(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")

	request := jsonRequest(t, http.MethodGet, "/api/auth/profile", nil)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("profile request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", response.StatusCode)
	}

	request = jsonRequest(t, http.MethodGet, "/api/auth/profile", nil)
	request.Header.Set("Authorization", "Bearer not-a-real-token")
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("profile request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", response.StatusCode)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")
	token := env.login(t, "test@gmail.com", "TestPassw0rd!")

	request := withBearer(jsonRequest(t, http.MethodPut, "/api/auth/profile", map[string]any{
		"full_name": "Renamed User",
		"nickname":  "renamed",
	}), token)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	profile := struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Nickname string `json:"nickname"`
	}{}
	decodeBody(t, response, &profile)
	if profile.FullName != "Renamed User" || profile.Nickname != "renamed" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.Email != "test@gmail.com" {
		t.Fatalf("expected unchanged email, got %q", profile.Email)
	}
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")
	token := env.login(t, "test@gmail.com", "TestPassw0rd!")

	request := withBearer(jsonRequest(t, http.MethodPut, "/api/auth/profile/password", map[string]any{
		"current_password": "WrongPassw0rd!",
		"new_password":     "NextPassw0rd!",
	}), token)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong current password, got %d", response.StatusCode)
	}

	request = withBearer(jsonRequest(t, http.MethodPut, "/api/auth/profile/password", map[string]any{
		"current_password": "TestPassw0rd!",
		"new_password":     "NextPassw0rd!",
	}), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	env.login(t, "test@gmail.com", "NextPassw0rd!")
}

func TestCheckUserAndResetPassword(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "test@gmail.com", "TestPassw0rd!", "")

	request := jsonRequest(t, http.MethodPost, "/api/auth/check-user", map[string]any{
		"username": "nobody@example.com",
	})
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("check-user failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", response.StatusCode)
	}

	request = jsonRequest(t, http.MethodPost, "/api/auth/check-user", map[string]any{
		"username": "test@gmail.com",
	})
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("check-user failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for known user, got %d", response.StatusCode)
	}

	request = jsonRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]any{
		"username":     "test@gmail.com",
		"new_password": "FreshPassw0rd!",
	})
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("reset-password failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	env.login(t, "test@gmail.com", "FreshPassw0rd!")
}

func TestResetPasswordRateLimited(t *testing.T) {
	env := newTestApp(t)

	for attempt := 0; attempt < resetAttemptLimit; attempt++ {
		request := jsonRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]any{
			"username":     "nobody@example.com",
			"new_password": "FreshPassw0rd!",
		})
		response, err := env.app.Test(request, -1)
		if err != nil {
			t.Fatalf("reset-password failed: %v", err)
		}
		response.Body.Close()
		if response.StatusCode != http.StatusNotFound {
			t.Fatalf("attempt %d: expected 404, got %d", attempt, response.StatusCode)
		}
	}

	request := jsonRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]any{
		"username":     "nobody@example.com",
		"new_password": "FreshPassw0rd!",
	})
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("reset-password failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated failures, got %d", response.StatusCode)
	}
}

func TestPasswordRequirementsIsPublic(t *testing.T) {
	env := newTestApp(t)

	request := jsonRequest(t, http.MethodGet, "/api/auth/password-requirements", nil)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("password-requirements failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 without a token, got %d", response.StatusCode)
	}

	payload := struct {
		Requirements []string `json:"requirements"`
	}{}
	decodeBody(t, response, &payload)
	if len(payload.Requirements) == 0 {
		t.Fatalf("expected requirement lines")
	}
}
