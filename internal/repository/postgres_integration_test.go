//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupIntegrationDB 按环境变量初始化集成测试数据库。
func setupIntegrationDB(t *testing.T, envKey string, open func(dsn string) gorm.Dialector) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv(envKey))
	if dsn == "" {
		t.Skipf("skip integration test: %s is empty", envKey)
	}

	db, err := gorm.Open(open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open integration db failed: %v", err)
	}

	all := models.AllModels()
	_ = db.Migrator().DropTable(all...)
	if err := db.AutoMigrate(all...); err != nil {
		t.Fatalf("migrate integration models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(all...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func integrationDialects() map[string]func(t *testing.T) *gorm.DB {
	return map[string]func(t *testing.T) *gorm.DB{
		"postgres": func(t *testing.T) *gorm.DB {
			return setupIntegrationDB(t, "TEST_POSTGRES_DSN", postgres.Open)
		},
		"mysql": func(t *testing.T) *gorm.DB {
			return setupIntegrationDB(t, "TEST_MYSQL_DSN", mysql.Open)
		},
	}
}

func TestIntegrationProductJSONSearch(t *testing.T) {
	for name, setup := range integrationDialects() {
		t.Run(name, func(t *testing.T) {
			db := setup(t)
			products := NewProductRepository(db)

			product := &models.Product{CategoryID: 1, Name: "Halo Ring", Slug: "halo-ring"}
			product.ProductDetails = productDetails("vintage milgrain band")
			if err := products.Create(product); err != nil {
				t.Fatalf("create product failed: %v", err)
			}

			rows, total, err := products.List(ProductListFilter{Search: "milgrain", Page: 1, PageSize: 10})
			if err != nil {
				t.Fatalf("list products failed: %v", err)
			}
			if total != 1 || len(rows) != 1 {
				t.Fatalf("json search want 1 got total=%d len=%d", total, len(rows))
			}
		})
	}
}

func TestIntegrationTableRepositoryRoundTrip(t *testing.T) {
	for name, setup := range integrationDialects() {
		t.Run(name, func(t *testing.T) {
			db := setup(t)
			repo := NewTableRepository(db, DefaultTables())

			id, err := repo.Insert("homepage_sections", map[string]interface{}{
				"name":           "Hero",
				"type":           constants.SectionTypeHero,
				"enabled":        true,
				"order_position": float64(0),
				"section_data":   map[string]interface{}{"title": "Welcome", "items": []interface{}{}},
			})
			if err != nil {
				t.Fatalf("insert section failed: %v", err)
			}
			if _, err := repo.Update("homepage_sections",
				map[string]interface{}{"id": id},
				map[string]interface{}{"section_data": map[string]interface{}{"title": "Updated"}},
			); err != nil {
				t.Fatalf("update section failed: %v", err)
			}
			rows, err := repo.Get("homepage_sections", TableQuery{Where: map[string]interface{}{"id": id}})
			if err != nil {
				t.Fatalf("get section failed: %v", err)
			}
			sections := rows.([]models.HomepageSection)
			if len(sections) != 1 || sections[0].SectionData.Data().Title != "Updated" {
				t.Fatalf("unexpected sections: %+v", sections)
			}
		})
	}
}

func TestIntegrationDashboardTrends(t *testing.T) {
	for name, setup := range integrationDialects() {
		t.Run(name, func(t *testing.T) {
			db := setup(t)
			order := &models.Order{OrderNo: "GD-INT-1", CustomerName: "A", Status: constants.OrderStatusPending, TotalAmount: models.MustMoney("12.50")}
			if err := db.Create(order).Error; err != nil {
				t.Fatalf("create order failed: %v", err)
			}
			now := time.Now()
			rows, err := NewDashboardRepository(db).GetOrderTrends(now.Add(-time.Hour), now.Add(time.Hour))
			if err != nil {
				t.Fatalf("get trends failed: %v", err)
			}
			if len(rows) != 1 || rows[0].Total != 1 {
				t.Fatalf("unexpected trends: %+v", rows)
			}
		})
	}
}
