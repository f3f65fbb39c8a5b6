package api

import (
	"fmt"
	"net/http"
	"testing"

	"pulseboard/internal/models"
)

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "viewer@example.com", "TestPassw0rd!", models.RoleViewer)
	token := env.login(t, "viewer@example.com", "TestPassw0rd!")

	request := withBearer(jsonRequest(t, http.MethodGet, "/api/admin/users", nil), token)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", response.StatusCode)
	}
}

func TestAdminUserCRUD(t *testing.T) {
	env := newTestApp(t)
	env.createAccount(t, "admin@example.com", "AdminPassw0rd!", models.RoleAdmin)
	token := env.login(t, "admin@example.com", "AdminPassw0rd!")

	request := withBearer(jsonRequest(t, http.MethodPost, "/api/admin/users", map[string]any{
		"username":  "new@example.com",
		"password":  "TestPassw0rd!",
		"full_name": "New User",
		"nickname":  "new",
	}), token)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", response.StatusCode)
	}

	created := struct {
		Success bool `json:"success"`
		User    struct {
			ID       uint   `json:"id"`
			Email    string `json:"email"`
			FullName string `json:"full_name"`
		} `json:"user"`
	}{}
	decodeBody(t, response, &created)
	if !created.Success || created.User.Email != "new@example.com" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	// Duplicate email conflicts.
	request = withBearer(jsonRequest(t, http.MethodPost, "/api/admin/users", map[string]any{
		"username": "new@example.com",
		"password": "TestPassw0rd!",
	}), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("duplicate create failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", response.StatusCode)
	}

	listPayload := struct {
		Success bool `json:"success"`
		Users   []struct {
			Email string `json:"email"`
		} `json:"users"`
	}{}
	request = withBearer(jsonRequest(t, http.MethodGet, "/api/admin/users", nil), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	decodeBody(t, response, &listPayload)
	if len(listPayload.Users) != 2 {
		t.Fatalf("expected admin plus created user, got %d", len(listPayload.Users))
	}

	request = withBearer(jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", created.User.ID), map[string]any{
		"full_name": "Edited User",
		"nickname":  "edited",
	}), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("update user failed: %v", err)
	}
	updated := struct {
		User struct {
			FullName string `json:"full_name"`
		} `json:"user"`
	}{}
	decodeBody(t, response, &updated)
	if updated.User.FullName != "Edited User" {
		t.Fatalf("expected edited name, got %+v", updated)
	}

	request = withBearer(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", created.User.ID), nil), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	request = withBearer(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", created.User.ID), nil), token)
	response, err = env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("double delete failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", response.StatusCode)
	}
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	env := newTestApp(t)
	admin := env.createAccount(t, "admin@example.com", "AdminPassw0rd!", models.RoleAdmin)
	token := env.login(t, "admin@example.com", "AdminPassw0rd!")

	request := withBearer(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.ID), nil), token)
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("self delete failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for self delete, got %d", response.StatusCode)
	}
}
