package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newAttributeServiceForTest(t *testing.T) (*AttributeService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := newServiceTestDB(t)
	publisher := &recordingPublisher{}
	return NewAttributeService(repository.NewAttributeRepository(db), publisher, 0), db, publisher
}

func TestAttributeAddOptionCreatesFamilyLazily(t *testing.T) {
	svc, db, publisher := newAttributeServiceForTest(t)
	ctx := context.Background()

	gold, err := svc.AddOption(ctx, AttributeOptionInput{Type: "metal", Name: "Yellow Gold 18K"})
	if err != nil {
		t.Fatalf("add metal option failed: %v", err)
	}
	if gold.OptionValue != "yellow-gold-18k" {
		t.Fatalf("unexpected option value: %s", gold.OptionValue)
	}
	if _, err := svc.AddOption(ctx, AttributeOptionInput{Type: "metal", Name: "Silver"}); err != nil {
		t.Fatalf("add second metal option failed: %v", err)
	}

	var attributes []models.Attribute
	if err := db.Find(&attributes).Error; err != nil {
		t.Fatalf("list attributes failed: %v", err)
	}
	if len(attributes) != 1 || attributes[0].Type != constants.AttributeTypeMetal || attributes[0].Name != "Metal" {
		t.Fatalf("expected one lazily created metal attribute, got %+v", attributes)
	}

	catalog, err := svc.Catalog(ctx)
	if err != nil {
		t.Fatalf("load catalog failed: %v", err)
	}
	if len(catalog.Metal.Options) != 2 || catalog.Metal.Options[0].OptionName != "Yellow Gold 18K" {
		t.Fatalf("unexpected metal family: %+v", catalog.Metal)
	}
	if catalog.Diamond.Name != "Diamond" || len(catalog.Diamond.Options) != 0 {
		t.Fatalf("empty diamond family should still be present: %+v", catalog.Diamond)
	}
	if got := publisher.types(); len(got) != 2 || got[0] != constants.EventCatalogChanged {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestAttributeSizeMMRules(t *testing.T) {
	svc, _, _ := newAttributeServiceForTest(t)
	ctx := context.Background()
	mm := decimal.RequireFromString("16.5")

	if _, err := svc.AddOption(ctx, AttributeOptionInput{Type: "size", Name: "6"}); !errors.Is(err, ErrSizeMMRequired) {
		t.Fatalf("size without mm should fail, got %v", err)
	}
	if _, err := svc.AddOption(ctx, AttributeOptionInput{Type: "diamond", Name: "VVS", SizeMM: &mm}); !errors.Is(err, ErrSizeMMNotAllowed) {
		t.Fatalf("diamond with mm should fail, got %v", err)
	}
	if _, err := svc.AddOption(ctx, AttributeOptionInput{Type: "gemstone", Name: "Ruby"}); !errors.Is(err, ErrAttributeTypeInvalid) {
		t.Fatalf("unknown type should fail, got %v", err)
	}
	size, err := svc.AddOption(ctx, AttributeOptionInput{Type: "size", Name: "6", SizeMM: &mm})
	if err != nil {
		t.Fatalf("add size failed: %v", err)
	}
	if !size.SizeMM.Valid || size.SizeMM.Decimal.String() != "16.5" {
		t.Fatalf("unexpected size_mm: %+v", size.SizeMM)
	}
}

func TestAttributeRenameKeepsOptionValue(t *testing.T) {
	svc, _, _ := newAttributeServiceForTest(t)
	ctx := context.Background()

	option, err := svc.AddOption(ctx, AttributeOptionInput{Type: "metal", Name: "Rose Gold"})
	if err != nil {
		t.Fatalf("add option failed: %v", err)
	}
	updated, err := svc.UpdateOption(ctx, option.ID, "Rose Gold 14K", nil)
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if updated.OptionName != "Rose Gold 14K" || updated.OptionValue != "rose-gold" {
		t.Fatalf("rename should keep slug, got %+v", updated)
	}
}

func TestAttributeDeleteOptionInUse(t *testing.T) {
	svc, db, _ := newAttributeServiceForTest(t)
	ctx := context.Background()
	mm := decimal.NewFromInt(16)

	size, err := svc.AddOption(ctx, AttributeOptionInput{Type: "size", Name: "6", SizeMM: &mm})
	if err != nil {
		t.Fatalf("add size failed: %v", err)
	}
	variant := models.ProductVariant{ProductID: 1, SizeOptionID: size.ID, OriginalPrice: models.MustMoney("100")}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	if err := svc.DeleteOption(ctx, size.ID); !errors.Is(err, ErrAttributeOptionInUse) {
		t.Fatalf("delete used option should fail, got %v", err)
	}
	if err := db.Delete(&models.ProductVariant{}, variant.ID).Error; err != nil {
		t.Fatalf("delete variant failed: %v", err)
	}
	if err := svc.DeleteOption(ctx, size.ID); err != nil {
		t.Fatalf("delete unused option failed: %v", err)
	}
	if err := svc.DeleteOption(ctx, size.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing option should be not found, got %v", err)
	}
}
