package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

func TestUserHandler_List_FlagsDeactivated(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, page, limit int) (*ports.ListUsersResult, error) {
			if page != 0 || limit != 0 {
				t.Fatalf("expected unset paging, got %d/%d", page, limit)
			}
			return &ports.ListUsersResult{
				Items: []*domain.User{
					{ID: "u1", Username: "live", PasswordHash: "$2a$10$x", Role: domain.RoleAdmin},
					{ID: "u2", Username: "gone", PasswordHash: "$2a$10$y", Role: domain.RoleCustomer, Lifecycle: domain.LifecycleDeactivated},
				},
				Pagination: ports.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 2, ItemsPerPage: 10},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(http.MethodGet, "/users", nil)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	var resp struct {
		Data struct {
			Users []map[string]any `json:"users"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Data.Users))
	}
	if resp.Data.Users[0]["is_deleted"] != false || resp.Data.Users[1]["is_deleted"] != true {
		t.Fatalf("unexpected is_deleted flags: %+v", resp.Data.Users)
	}
	if resp.Data.Users[1]["username"] != "gone" {
		t.Fatalf("embedded public fields missing: %+v", resp.Data.Users[1])
	}
}
