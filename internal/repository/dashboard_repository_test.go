package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate dashboard models failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func TestGetOverviewCountsLiveRows(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	if err := db.Create(&models.Category{Name: "Rings", Slug: "rings"}).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	products := []models.Product{
		{CategoryID: 1, Name: "Solitaire", Slug: "solitaire"},
		{CategoryID: 1, Name: "Halo", Slug: "halo"},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("create products failed: %v", err)
	}
	if err := db.Delete(&products[1]).Error; err != nil {
		t.Fatalf("soft delete product failed: %v", err)
	}

	sections := []models.HomepageSection{
		{Name: "Hero", Type: constants.SectionTypeHero, Enabled: true, OrderPosition: 0},
		{Name: "Collections", Type: constants.SectionTypeCollection, Enabled: false, OrderPosition: 1},
	}
	if err := db.Create(&sections).Error; err != nil {
		t.Fatalf("create sections failed: %v", err)
	}

	vendors := []models.User{
		{Email: "a@vendor.test", PasswordHash: "x", UserType: constants.UserTypeVendor, VendorStatus: constants.VendorStatusPending},
		{Email: "b@vendor.test", PasswordHash: "x", UserType: constants.UserTypeVendor, VendorStatus: constants.VendorStatusApproved, IsVerified: true},
	}
	if err := db.Create(&vendors).Error; err != nil {
		t.Fatalf("create vendors failed: %v", err)
	}

	if err := db.Create(&models.Enquiry{Name: "Asha", Status: constants.EnquiryStatusNew}).Error; err != nil {
		t.Fatalf("create enquiry failed: %v", err)
	}

	orders := []models.Order{
		{OrderNo: "GD-1", CustomerName: "A", Status: constants.OrderStatusPending, TotalAmount: models.MustMoney("100")},
		{OrderNo: "GD-2", CustomerName: "B", Status: constants.OrderStatusDelivered, TotalAmount: models.MustMoney("250.50")},
		{OrderNo: "GD-3", CustomerName: "C", Status: constants.OrderStatusDelivered, TotalAmount: models.MustMoney("49.50")},
	}
	if err := db.Create(&orders).Error; err != nil {
		t.Fatalf("create orders failed: %v", err)
	}

	overview, err := repo.GetOverview()
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.Products != 1 {
		t.Fatalf("products want 1 got %d", overview.Products)
	}
	if overview.LiveSections != 2 || overview.EnabledSections != 1 {
		t.Fatalf("sections want 2/1 got %d/%d", overview.LiveSections, overview.EnabledSections)
	}
	if overview.PendingVendors != 1 {
		t.Fatalf("pending vendors want 1 got %d", overview.PendingVendors)
	}
	if overview.NewEnquiries != 1 {
		t.Fatalf("new enquiries want 1 got %d", overview.NewEnquiries)
	}
	if overview.OrdersByStatus[constants.OrderStatusDelivered] != 2 || overview.OrdersByStatus[constants.OrderStatusPending] != 1 {
		t.Fatalf("unexpected order counts: %+v", overview.OrdersByStatus)
	}
	if overview.DeliveredRevenue != 300 {
		t.Fatalf("delivered revenue want 300 got %v", overview.DeliveredRevenue)
	}
}

func TestGetOrderTrendsSkipsCancelled(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	now := time.Now()

	orders := []models.Order{
		{OrderNo: "GD-T1", CustomerName: "A", Status: constants.OrderStatusPending, TotalAmount: models.MustMoney("10")},
		{OrderNo: "GD-T2", CustomerName: "B", Status: constants.OrderStatusCancelled, TotalAmount: models.MustMoney("20")},
	}
	if err := db.Create(&orders).Error; err != nil {
		t.Fatalf("create orders failed: %v", err)
	}

	rows, err := repo.GetOrderTrends(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("get trends failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("trend rows want 1 got %d", len(rows))
	}
	if rows[0].Total != 1 {
		t.Fatalf("trend total want 1 got %d", rows[0].Total)
	}
}
