package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mitrahub/auth-api/internal/core/ports"
)

func TestListFilter(t *testing.T) {
	f := listFilter(ports.ListPartnersFilter{Search: "a.b", Status: "active"})

	if v, ok := f["deleted_at"]; !ok || v != nil {
		t.Fatalf("expected live filter, got %v", f["deleted_at"])
	}
	if f["status"] != "active" {
		t.Fatalf("status filter missing: %v", f)
	}

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected 3 search clauses, got %v", f["$or"])
	}
	re := or[0].(bson.M)["mitra_name"].(primitive.Regex)
	if re.Pattern != `a\.b` || re.Options != "i" {
		t.Fatalf("search must be escaped and case-insensitive, got %+v", re)
	}
}

func TestListFilter_NoSearch(t *testing.T) {
	f := listFilter(ports.ListPartnersFilter{})
	if _, ok := f["$or"]; ok {
		t.Fatalf("unexpected $or without search")
	}
	if _, ok := f["status"]; ok {
		t.Fatalf("unexpected status without filter")
	}
}

func TestListSort(t *testing.T) {
	d := listSort(ports.ListPartnersFilter{SortBy: "mitra_name", SortDesc: true})
	if len(d) != 2 || d[0].Key != "mitra_name" || d[0].Value != -1 || d[1].Key != "_id" {
		t.Fatalf("unexpected sort: %v", d)
	}
}
