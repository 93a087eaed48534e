package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTableRepositoryTest(t *testing.T) (*GormTableRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewTableRepository(db, DefaultTables()), db
}

func TestTableRepositoryRegistry(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	tables := repo.Tables()
	joined := strings.Join(tables, ",")
	for _, want := range []string{"attributes", "attribute_options", "products", "product_variants", "homepage_sections", "collection_category", "users"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("table %s should be registered, got %v", want, tables)
		}
	}
	if strings.Contains(joined, "settings") {
		t.Fatalf("settings must not be exposed")
	}
	spec, ok := repo.Spec("users")
	if !ok {
		t.Fatalf("users spec missing")
	}
	if spec.Allows(constants.RPCActionInsert) || spec.Allows(constants.RPCActionDelete) {
		t.Fatalf("users must not allow insert/delete")
	}
	if _, err := repo.Get("nope", TableQuery{}); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("unknown table should fail, got %v", err)
	}
}

func TestTableRepositoryInsertAndGet(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	id, err := repo.Insert("categories", map[string]interface{}{
		"name":       "Rings",
		"slug":       "rings",
		"sort_order": float64(3),
		"id":         float64(99),
	})
	if err != nil {
		t.Fatalf("insert category failed: %v", err)
	}
	if id == 0 || id == 99 {
		t.Fatalf("insert id should be generated, got %d", id)
	}

	rows, err := repo.Get("categories", TableQuery{Where: map[string]interface{}{"id": float64(id)}})
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	categories, ok := rows.([]models.Category)
	if !ok || len(categories) != 1 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if categories[0].Name != "Rings" || categories[0].SortOrder != 3 {
		t.Fatalf("unexpected category: %+v", categories[0])
	}
}

func TestTableRepositoryInsertJSONColumn(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	id, err := repo.Insert("products", map[string]interface{}{
		"category_id": float64(1),
		"name":        "Solitaire Ring",
		"slug":        "solitaire-ring",
		"product_details": map[string]interface{}{
			"description":   "classic",
			"price":         "5000",
			"originalPrice": "5500",
			"discount":      "10",
			"featured":      []interface{}{"bestseller"},
			"has_variants":  true,
		},
	})
	if err != nil {
		t.Fatalf("insert product failed: %v", err)
	}

	rows, err := repo.Get("products", TableQuery{Where: map[string]interface{}{"id": id}})
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	products := rows.([]models.Product)
	details := products[0].ProductDetails.Data()
	if details.Description != "classic" || details.Price.String() != "5000.00" || !details.HasVariants {
		t.Fatalf("unexpected details: %+v", details)
	}
	if len(details.Featured) != 1 || details.Featured[0] != "bestseller" {
		t.Fatalf("unexpected featured: %+v", details.Featured)
	}
}

func TestTableRepositoryRejectsUnknownColumns(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	if _, err := repo.Insert("categories", map[string]interface{}{"name": "x", "bogus": 1}); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("unknown insert column should fail, got %v", err)
	}
	if _, err := repo.Get("categories", TableQuery{Where: map[string]interface{}{"bogus": 1}}); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("unknown where column should fail, got %v", err)
	}
	if _, err := repo.Get("categories", TableQuery{OrderBy: "name sideways"}); !errors.Is(err, ErrInvalidOrderBy) {
		t.Fatalf("invalid order_by should fail, got %v", err)
	}
	if _, err := repo.Get("categories", TableQuery{OrderBy: "name; DROP TABLE categories"}); err == nil {
		t.Fatalf("injected order_by should fail")
	}
}

func TestTableRepositoryUpdateRequiresWhere(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	if _, err := repo.Update("categories", nil, map[string]interface{}{"name": "x"}); !errors.Is(err, ErrWhereRequired) {
		t.Fatalf("update without where should fail, got %v", err)
	}
	if _, err := repo.Delete("categories", map[string]interface{}{}); !errors.Is(err, ErrWhereRequired) {
		t.Fatalf("delete without where should fail, got %v", err)
	}
	if _, err := repo.SoftDelete("products", nil); !errors.Is(err, ErrWhereRequired) {
		t.Fatalf("soft delete without where should fail, got %v", err)
	}
}

func TestTableRepositoryUpdateOrderAndLimit(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	for _, name := range []string{"Rings", "Earrings", "Bangles"} {
		if _, err := repo.Insert("categories", map[string]interface{}{"name": name, "slug": strings.ToLower(name)}); err != nil {
			t.Fatalf("insert %s failed: %v", name, err)
		}
	}
	affected, err := repo.Update("categories",
		map[string]interface{}{"slug": "rings"},
		map[string]interface{}{"sort_order": float64(9)},
	)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	rows, err := repo.Get("categories", TableQuery{OrderBy: "sort_order DESC, name ASC", Limit: 2})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	categories := rows.([]models.Category)
	if len(categories) != 2 {
		t.Fatalf("limit want 2 got %d", len(categories))
	}
	if categories[0].Name != "Rings" || categories[1].Name != "Bangles" {
		t.Fatalf("unexpected order: %s, %s", categories[0].Name, categories[1].Name)
	}
}

func TestTableRepositorySoftDeleteHidesRows(t *testing.T) {
	repo, db := setupTableRepositoryTest(t)

	id, err := repo.Insert("faqs", map[string]interface{}{"question": "Q?", "answer": "A", "is_active": true})
	if err != nil {
		t.Fatalf("insert faq failed: %v", err)
	}
	affected, err := repo.SoftDelete("faqs", map[string]interface{}{"id": id})
	if err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("soft delete affected want 1 got %d", affected)
	}

	rows, err := repo.Get("faqs", TableQuery{})
	if err != nil {
		t.Fatalf("get faqs failed: %v", err)
	}
	if len(rows.([]models.FAQ)) != 0 {
		t.Fatalf("soft deleted faq should be hidden")
	}

	var flag int
	if err := db.Raw("SELECT is_deleted FROM faqs WHERE id = ?", id).Scan(&flag).Error; err != nil {
		t.Fatalf("read flag failed: %v", err)
	}
	if flag != 1 {
		t.Fatalf("is_deleted want 1 got %d", flag)
	}
}

func TestTableRepositorySoftDeleteUnsupported(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	if _, err := repo.SoftDelete("categories", map[string]interface{}{"id": 1}); !errors.Is(err, ErrSoftDeleteUnsupported) {
		t.Fatalf("categories soft delete should be unsupported, got %v", err)
	}
}

func TestTableRepositoryHardDelete(t *testing.T) {
	repo, db := setupTableRepositoryTest(t)

	id, err := repo.Insert("blogs", map[string]interface{}{"title": "Care", "slug": "care"})
	if err != nil {
		t.Fatalf("insert blog failed: %v", err)
	}
	if _, err := repo.Delete("blogs", map[string]interface{}{"id": id}); err != nil {
		t.Fatalf("delete blog failed: %v", err)
	}
	var count int64
	if err := db.Unscoped().Model(&models.Blog{}).Count(&count).Error; err != nil {
		t.Fatalf("count blogs failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("hard delete should remove row, count=%d", count)
	}
}

func TestTableRepositoryUserWritableColumns(t *testing.T) {
	repo, db := setupTableRepositoryTest(t)

	user := models.User{Email: "v@vendor.test", PasswordHash: "hash", UserType: constants.UserTypeVendor}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if _, err := repo.Update("users", map[string]interface{}{"id": user.ID}, map[string]interface{}{"user_type": "admin"}); !errors.Is(err, ErrColumnNotWritable) {
		t.Fatalf("user_type must not be writable, got %v", err)
	}
	if _, err := repo.Update("users", map[string]interface{}{"id": user.ID}, map[string]interface{}{"business_name": "Gems Co"}); err != nil {
		t.Fatalf("update business name failed: %v", err)
	}
}

func TestNormalizeWhereValue(t *testing.T) {
	got, err := normalizeWhereValue(float64(7))
	if err != nil || got != int64(7) {
		t.Fatalf("whole float should become int64, got %#v err=%v", got, err)
	}
	got, err = normalizeWhereValue(1.5)
	if err != nil || got != 1.5 {
		t.Fatalf("fraction should stay float, got %#v err=%v", got, err)
	}
	list, err := normalizeWhereValue([]interface{}{float64(1), float64(2)})
	if err != nil {
		t.Fatalf("list should be accepted: %v", err)
	}
	if items := list.([]interface{}); len(items) != 2 || items[0] != int64(1) {
		t.Fatalf("unexpected list: %#v", items)
	}
	if _, err := normalizeWhereValue(map[string]interface{}{"a": 1}); !errors.Is(err, ErrInvalidWhere) {
		t.Fatalf("object should be rejected, got %v", err)
	}
}

func TestTableRepositoryRejectsDuplicateVariantCombo(t *testing.T) {
	repo, db := setupTableRepositoryTest(t)

	row := map[string]interface{}{
		"product_id":      float64(1),
		"metal_option_id": float64(3),
		"size_option_id":  float64(7),
		"original_price":  float64(5000),
	}
	first, err := repo.Insert("product_variants", row)
	if err != nil {
		t.Fatalf("insert variant failed: %v", err)
	}
	if _, err := repo.Insert("product_variants", row); !errors.Is(err, ErrVariantComboExists) {
		t.Fatalf("duplicate variant with empty diamond should fail, got %v", err)
	}

	// 尺寸不同则是新组合
	other := map[string]interface{}{
		"product_id":      float64(1),
		"metal_option_id": float64(3),
		"size_option_id":  float64(8),
		"original_price":  float64(5200),
	}
	if _, err := repo.Insert("product_variants", other); err != nil {
		t.Fatalf("variant with new size should insert: %v", err)
	}

	var count int64
	if err := db.Model(&models.ProductVariant{}).Where("product_id = ? AND size_option_id = ?", 1, 7).Count(&count).Error; err != nil {
		t.Fatalf("count variants failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("combination should be stored once, got %d", count)
	}

	if _, err := repo.Update("product_variants", map[string]interface{}{"id": first}, map[string]interface{}{"size_option_id": float64(8)}); !errors.Is(err, ErrColumnNotWritable) {
		t.Fatalf("combination columns should be insert only, got %v", err)
	}
	if _, err := repo.Update("product_variants", map[string]interface{}{"id": first}, map[string]interface{}{"discount_price": "4500"}); err != nil {
		t.Fatalf("price update should pass: %v", err)
	}
}

func TestTableRepositoryVariantInsertRequiresKeys(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	if _, err := repo.Insert("product_variants", map[string]interface{}{"product_id": float64(1)}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("variant without size should fail, got %v", err)
	}
}

func TestTableRepositoryHomepageTablesSoftDeleteOnly(t *testing.T) {
	repo, _ := setupTableRepositoryTest(t)

	for _, table := range []string{"homepage_sections", "collection_category"} {
		spec, ok := repo.Spec(table)
		if !ok {
			t.Fatalf("%s spec missing", table)
		}
		if spec.Allows(constants.RPCActionDelete) {
			t.Fatalf("%s must not allow hard delete", table)
		}
		if !spec.Allows(constants.RPCActionSoftDelete) {
			t.Fatalf("%s should allow soft delete", table)
		}
	}
}

func TestTableRepositorySoftDeleteSectionCascades(t *testing.T) {
	repo, db := setupTableRepositoryTest(t)

	sectionID, err := repo.Insert("homepage_sections", map[string]interface{}{"name": "Shop by style", "type": constants.SectionTypeCategoryHighlight, "enabled": true})
	if err != nil {
		t.Fatalf("insert section failed: %v", err)
	}
	otherID, err := repo.Insert("homepage_sections", map[string]interface{}{"name": "Bridal", "type": constants.SectionTypeCategoryHighlight, "enabled": true})
	if err != nil {
		t.Fatalf("insert other section failed: %v", err)
	}
	for i, sid := range []uint{sectionID, sectionID, otherID} {
		if _, err := repo.Insert("collection_category", map[string]interface{}{"section_id": sid, "category_id": i + 1, "item_index": i}); err != nil {
			t.Fatalf("insert collection category failed: %v", err)
		}
	}

	affected, err := repo.SoftDelete("homepage_sections", map[string]interface{}{"id": sectionID})
	if err != nil {
		t.Fatalf("soft delete section failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("soft delete affected want 1 got %d", affected)
	}

	var flag int
	if err := db.Raw("SELECT is_deleted FROM homepage_sections WHERE id = ?", sectionID).Scan(&flag).Error; err != nil {
		t.Fatalf("read section flag failed: %v", err)
	}
	if flag != 1 {
		t.Fatalf("section is_deleted want 1 got %d", flag)
	}

	var deleted, live int64
	db.Unscoped().Model(&models.CollectionCategory{}).Where("section_id = ? AND is_deleted = 1", sectionID).Count(&deleted)
	db.Model(&models.CollectionCategory{}).Count(&live)
	if deleted != 2 || live != 1 {
		t.Fatalf("collection categories should follow section, deleted=%d live=%d", deleted, live)
	}
}

func TestTableRepositoryProductDeleteRemovesVariants(t *testing.T) {
	repo, db := setupTableRepositoryTest(t)

	productID, err := repo.Insert("products", map[string]interface{}{"category_id": float64(1), "name": "Band", "slug": "band"})
	if err != nil {
		t.Fatalf("insert product failed: %v", err)
	}
	if _, err := repo.Insert("product_variants", map[string]interface{}{"product_id": productID, "size_option_id": float64(7)}); err != nil {
		t.Fatalf("insert variant failed: %v", err)
	}

	if _, err := repo.SoftDelete("products", map[string]interface{}{"id": productID}); err != nil {
		t.Fatalf("soft delete product failed: %v", err)
	}
	var count int64
	db.Model(&models.ProductVariant{}).Where("product_id = ?", productID).Count(&count)
	if count != 0 {
		t.Fatalf("variants should be removed with product, got %d", count)
	}
}
