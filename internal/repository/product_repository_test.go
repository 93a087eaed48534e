package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gemdesk/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate product/variant failed: %v", err)
	}
	return NewProductRepository(db), db
}

func productDetails(description string) datatypes.JSONType[models.ProductDetails] {
	return datatypes.NewJSONType(models.ProductDetails{
		Description: description,
		Price:       models.MustMoney("100"),
	})
}

func uintPtr(v uint) *uint {
	return &v
}

func TestProductRepositoryListSearchesDescription(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	for _, p := range []*models.Product{
		{CategoryID: 1, Name: "Solitaire", Slug: "solitaire", ProductDetails: productDetails("single brilliant stone")},
		{CategoryID: 2, Name: "Jhumka", Slug: "jhumka", ProductDetails: productDetails("temple earrings")},
	} {
		if err := repo.Create(p); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	rows, total, err := repo.List(ProductListFilter{Search: "brilliant"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Slug != "solitaire" {
		t.Fatalf("unexpected search result: total=%d rows=%+v", total, rows)
	}

	rows, total, err = repo.List(ProductListFilter{CategoryID: 2})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "jhumka" {
		t.Fatalf("unexpected category result: total=%d", total)
	}
}

func TestProductRepositoryVariantsLifecycle(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)

	product := &models.Product{CategoryID: 1, Name: "Band", Slug: "band"}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variants := []models.ProductVariant{
		{ProductID: product.ID, MetalOptionID: uintPtr(3), SizeOptionID: 7, OriginalPrice: models.MustMoney("5000"), DiscountPrice: models.MustMoney("5000")},
		{ProductID: product.ID, MetalOptionID: uintPtr(4), SizeOptionID: 7, OriginalPrice: models.MustMoney("4000"), DiscountPrice: models.MustMoney("3600")},
	}
	if err := repo.CreateVariants(variants); err != nil {
		t.Fatalf("create variants failed: %v", err)
	}
	if variants[0].ID == 0 || variants[1].ID == 0 {
		t.Fatalf("variant ids should be assigned")
	}

	loaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if loaded == nil || len(loaded.Variants) != 2 {
		t.Fatalf("product should preload 2 variants, got %+v", loaded)
	}

	err = repo.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.DeleteVariants(product.ID); err != nil {
			return err
		}
		return txRepo.Delete(product.ID)
	})
	if err != nil {
		t.Fatalf("delete tx failed: %v", err)
	}

	var variantCount, productCount int64
	db.Model(&models.ProductVariant{}).Count(&variantCount)
	db.Unscoped().Model(&models.Product{}).Count(&productCount)
	if variantCount != 0 || productCount != 0 {
		t.Fatalf("delete should remove rows, variants=%d products=%d", variantCount, productCount)
	}
}

func TestProductRepositoryCreateVariantsRejectsNullCombo(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)

	first := []models.ProductVariant{{ProductID: 1, MetalOptionID: uintPtr(3), SizeOptionID: 7}}
	if err := repo.CreateVariants(first); err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	dup := []models.ProductVariant{{ProductID: 1, MetalOptionID: uintPtr(3), SizeOptionID: 7}}
	if err := repo.CreateVariants(dup); !errors.Is(err, ErrVariantComboExists) {
		t.Fatalf("same combo with empty diamond should fail, got %v", err)
	}
	// 同一尺寸下金属为空与金属为 3 是不同组合
	bare := []models.ProductVariant{{ProductID: 1, SizeOptionID: 7}}
	if err := repo.CreateVariants(bare); err != nil {
		t.Fatalf("variant without metal should insert: %v", err)
	}
	if err := repo.CreateVariants([]models.ProductVariant{{ProductID: 1, SizeOptionID: 7}}); !errors.Is(err, ErrVariantComboExists) {
		t.Fatalf("duplicate all-empty combo should fail, got %v", err)
	}

	var count int64
	db.Model(&models.ProductVariant{}).Where("product_id = ?", 1).Count(&count)
	if count != 2 {
		t.Fatalf("variants want 2 got %d", count)
	}
}

func TestProductRepositoryGetByIDMissing(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	product, err := repo.GetByID(404)
	if err != nil {
		t.Fatalf("get missing product should not error: %v", err)
	}
	if product != nil {
		t.Fatalf("missing product should be nil")
	}
}
