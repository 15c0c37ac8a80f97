package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

const (
	partnerID = "7d8f3c1e-5a7b-4c2d-9e0f-1a2b3c4d5e6f"
	ownerID   = "0b9e8d7c-6b5a-4f3e-8d2c-1b0a9f8e7d6c"
)

func TestPartnerHandler_List_PassesQuery(t *testing.T) {
	stub := &stubPartnerService{
		listFn: func(_ context.Context, in ports.ListPartnersInput) (*ports.ListPartnersResult, error) {
			want := ports.ListPartnersInput{Search: "kopi", Status: "active", SortBy: "mitra_name", SortOrder: "ASC", Page: 2, Limit: 5}
			if in != want {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListPartnersResult{
				Items:      []*domain.Partner{{ID: partnerID, MitraName: "Kopi Kita"}},
				Pagination: ports.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 11, ItemsPerPage: 5},
			}, nil
		},
	}
	handler := NewPartnerHandler(stub)

	c, rec := newContext(http.MethodGet, "/partners?page=2&limit=5&search=kopi&status=active&sort_by=mitra_name&sort_order=ASC", nil)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Data struct {
			Partners   []map[string]any `json:"partners"`
			Pagination map[string]any   `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data.Partners) != 1 || resp.Data.Partners[0]["mitra_name"] != "Kopi Kita" {
		t.Fatalf("unexpected partners: %+v", resp.Data.Partners)
	}
	if resp.Data.Pagination["total_items"] != float64(11) || resp.Data.Pagination["current_page"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", resp.Data.Pagination)
	}
}

func TestPartnerHandler_List_RejectsBadPage(t *testing.T) {
	handler := NewPartnerHandler(&stubPartnerService{})

	for _, q := range []string{"page=abc", "page=0", "limit=-3"} {
		c, _ := newContext(http.MethodGet, "/partners?"+q, nil)
		var ve *ValidationError
		if err := handler.List(c); !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", q, err)
		}
	}
}

func TestPartnerHandler_Get_InvalidID(t *testing.T) {
	handler := NewPartnerHandler(&stubPartnerService{})

	c, _ := newContext(http.MethodGet, "/partners/nope", nil)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	var ve *ValidationError
	if err := handler.Get(c); !errors.As(err, &ve) || ve.Errors[0].Field != "id" {
		t.Fatalf("expected id ValidationError, got %v", err)
	}
}

func TestPartnerHandler_Create(t *testing.T) {
	stub := &stubPartnerService{
		createFn: func(_ context.Context, in ports.CreatePartnerInput) (*domain.Partner, error) {
			if in.UserID != ownerID || in.MitraName != "Kopi Kita" || in.Contact != "" || in.Status != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Partner{ID: partnerID, OwnerID: in.UserID, MitraName: in.MitraName, Contact: domain.DefaultPartnerContact, Status: domain.PartnerPending}, nil
		},
	}
	handler := NewPartnerHandler(stub)

	body := `{"user_id":"` + ownerID + `","mitra_name":"Kopi Kita","address":"Jl. Merdeka 1"}`
	c, rec := newContext(http.MethodPost, "/partners", strings.NewReader(body))
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Partner created successfully") || !strings.Contains(rec.Body.String(), `"status":"pending"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPartnerHandler_Create_Validation(t *testing.T) {
	stub := &stubPartnerService{
		createFn: func(context.Context, ports.CreatePartnerInput) (*domain.Partner, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPartnerHandler(stub)

	body := `{"user_id":"not-a-uuid","mitra_name":"K","address":"x","status":"archived"}`
	c, _ := newContext(http.MethodPost, "/partners", strings.NewReader(body))

	var ve *ValidationError
	if err := handler.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, fe := range ve.Errors {
		fields[fe.Field] = true
	}
	for _, f := range []string{"user_id", "mitra_name", "status"} {
		if !fields[f] {
			t.Fatalf("expected error on %s, got %+v", f, ve.Errors)
		}
	}
}

func TestPartnerHandler_Create_Conflict(t *testing.T) {
	stub := &stubPartnerService{
		createFn: func(context.Context, ports.CreatePartnerInput) (*domain.Partner, error) {
			return nil, domain.ErrPartnerExists
		},
	}
	handler := NewPartnerHandler(stub)

	body := `{"user_id":"` + ownerID + `","mitra_name":"Kopi Kita","address":"Jl. Merdeka 1"}`
	c, _ := newContext(http.MethodPost, "/partners", strings.NewReader(body))
	if err := handler.Create(c); !errors.Is(err, domain.ErrPartnerExists) {
		t.Fatalf("expected ErrPartnerExists, got %v", err)
	}
}

func TestPartnerHandler_Update_OnlyProvidedFields(t *testing.T) {
	stub := &stubPartnerService{
		updateFn: func(_ context.Context, id string, u domain.PartnerUpdate) (*domain.Partner, error) {
			if id != partnerID {
				t.Fatalf("unexpected id %q", id)
			}
			if u.MitraName != nil || u.Address != nil || u.Contact == nil || *u.Contact != "0812" ||
				u.Status == nil || *u.Status != domain.PartnerActive {
				t.Fatalf("unexpected update: %+v", u)
			}
			return &domain.Partner{ID: id, Contact: *u.Contact, Status: *u.Status}, nil
		},
	}
	handler := NewPartnerHandler(stub)

	c, rec := newContext(http.MethodPut, "/partners/"+partnerID, strings.NewReader(`{"contact":"0812","status":"active"}`))
	c.SetParamNames("id")
	c.SetParamValues(partnerID)
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Partner updated successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPartnerHandler_Delete(t *testing.T) {
	var deleted string
	stub := &stubPartnerService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewPartnerHandler(stub)

	c, rec := newContext(http.MethodDelete, "/partners/"+partnerID, nil)
	c.SetParamNames("id")
	c.SetParamValues(partnerID)
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != partnerID || !strings.Contains(rec.Body.String(), "Partner deleted successfully") {
		t.Fatalf("unexpected result: %q %s", deleted, rec.Body.String())
	}
}

func TestPartnerHandler_AttachAndDetachStaff(t *testing.T) {
	pid := partnerID
	stub := &stubPartnerService{
		attachFn: func(_ context.Context, p, u string) (*domain.User, error) {
			if p != partnerID || u != ownerID {
				t.Fatalf("unexpected ids %s %s", p, u)
			}
			return &domain.User{ID: u, Role: domain.RoleStaff, PartnerID: &pid}, nil
		},
		detachFn: func(_ context.Context, p, u string) (*domain.User, error) {
			return &domain.User{ID: u, Role: domain.RoleCustomer}, nil
		},
	}
	handler := NewPartnerHandler(stub)

	c, rec := newContext(http.MethodPost, "/partners/"+partnerID+"/staff", strings.NewReader(`{"user_id":"`+ownerID+`"}`))
	c.SetParamNames("id")
	c.SetParamValues(partnerID)
	if err := handler.AttachStaff(c); err != nil {
		t.Fatalf("attach error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"role":"staff"`) {
		t.Fatalf("unexpected attach body: %s", rec.Body.String())
	}

	c, rec = newContext(http.MethodDelete, "/partners/"+partnerID+"/staff/"+ownerID, nil)
	c.SetParamNames("id", "user_id")
	c.SetParamValues(partnerID, ownerID)
	if err := handler.DetachStaff(c); err != nil {
		t.Fatalf("detach error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"role":"customer"`) {
		t.Fatalf("unexpected detach body: %s", rec.Body.String())
	}
}

func TestPartnerHandler_DetachStaff_InvalidUserID(t *testing.T) {
	handler := NewPartnerHandler(&stubPartnerService{})

	c, _ := newContext(http.MethodDelete, "/partners/x/staff/y", nil)
	c.SetParamNames("id", "user_id")
	c.SetParamValues(partnerID, "y")

	var ve *ValidationError
	if err := handler.DetachStaff(c); !errors.As(err, &ve) || ve.Errors[0].Field != "user_id" {
		t.Fatalf("expected user_id ValidationError, got %v", err)
	}
}
