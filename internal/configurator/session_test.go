package configurator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gemdesk/internal/rpcclient"
	"github.com/gemdesk/internal/variantkey"
)

func TestSessionLoadsCatalogOnce(t *testing.T) {
	backend := &fakeBackend{
		styles:  map[uint][]Dimension{1: {{ID: 1, CategoryID: 1, Name: "Solitaire"}}, 2: {}},
		metals:  map[uint][]Dimension{1: {{ID: 5, CategoryID: 1, Name: "Gold"}}},
		catalog: &AttributeCatalog{},
	}
	session := NewSession(backend)
	if _, err := session.NewDraft(); !errors.Is(err, ErrNoCategory) {
		t.Fatalf("draft without category should fail, got %v", err)
	}
	if err := session.SelectCategory(context.Background(), Category{ID: 1, Name: "Rings"}); err != nil {
		t.Fatalf("select category failed: %v", err)
	}
	if len(session.Styles()) != 1 || len(session.Metals()) != 1 || session.Catalog() == nil {
		t.Fatalf("bundle not loaded: styles=%v metals=%v", session.Styles(), session.Metals())
	}
	if err := session.SelectCategory(context.Background(), Category{ID: 2, Name: "Earrings"}); err != nil {
		t.Fatalf("select second category failed: %v", err)
	}
	if backend.catalogHits != 1 {
		t.Fatalf("catalog should load once per session, got %d", backend.catalogHits)
	}
	category, ok := session.Category()
	if !ok || category.ID != 2 || len(session.Styles()) != 0 {
		t.Fatalf("session should switch to second category, got %+v", category)
	}
}

func TestSessionSelectCategoryError(t *testing.T) {
	backend := &fakeBackend{failStyles: errors.New("boom"), catalog: &AttributeCatalog{}}
	session := NewSession(backend)
	if err := session.SelectCategory(context.Background(), Category{ID: 1}); err == nil {
		t.Fatalf("style failure should propagate")
	}
	if _, ok := session.Category(); ok {
		t.Fatalf("failed load must not switch category")
	}
}

func TestRPCBackendRoundTrip(t *testing.T) {
	var created Submission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doAll":
			var params rpcclient.Params
			_ = json.NewDecoder(r.Body).Decode(&params)
			switch params.Table {
			case "categories":
				_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Rings","slug":"rings"}]}`))
			case "category_styles":
				if params.Where["category_id"] != float64(1) {
					t.Errorf("unexpected where: %v", params.Where)
				}
				_, _ = w.Write([]byte(`{"success":true,"data":[{"id":3,"category_id":1,"name":"Halo"}]}`))
			default:
				_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
			}
		case "/api/v1/admin/attributes":
			_, _ = w.Write([]byte(`{"status_code":0,"msg":"success","data":{"size":{"type":"size","options":[{"id":21,"option_name":"6","option_value":"6","size_mm":"16.5"}]}}}`))
		case "/api/v1/admin/products":
			_ = json.NewDecoder(r.Body).Decode(&created)
			_, _ = w.Write([]byte(`{"status_code":0,"msg":"success","data":{"id":42}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := rpcclient.New(rpcclient.Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	backend := NewRPCBackend(client)
	session := NewSession(backend)
	categories, err := session.Categories(context.Background())
	if err != nil || len(categories) != 1 {
		t.Fatalf("list categories failed: %v %v", categories, err)
	}
	if err := session.SelectCategory(context.Background(), categories[0]); err != nil {
		t.Fatalf("select category failed: %v", err)
	}
	if len(session.Styles()) != 1 || session.Styles()[0].Name != "Halo" {
		t.Fatalf("unexpected styles: %+v", session.Styles())
	}
	size := session.Catalog().Size.Options
	if len(size) != 1 || !size[0].SizeMM.Valid || size[0].SizeMM.Decimal.String() != "16.5" {
		t.Fatalf("unexpected size options: %+v", size)
	}

	draft, _ := session.NewDraft()
	draft.Name = "Halo Ring"
	_ = draft.SelectSize(variantkey.Block{}, 21, true)
	draft.SetPricing(variantkey.New(0, 0, 21), Pricing{OriginalPrice: money("7200"), DiscountPercentage: money("10")})
	id, err := session.Save(context.Background(), draft)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("unexpected product id %d", id)
	}
	if created.Name != "Halo Ring" || len(created.Variants) != 1 || created.Variants[0].SizeOptionID != 21 {
		t.Fatalf("unexpected submission: %+v", created)
	}
	if created.Variants[0].MetalOptionID != nil || !created.Variants[0].DiscountPercentage.Equal(*money("10")) {
		t.Fatalf("unexpected variant row: %+v", created.Variants[0])
	}
}
