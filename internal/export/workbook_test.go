package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/gemdesk/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

func TestWriteOrdersWorkbook(t *testing.T) {
	orders := []models.Order{
		{
			OrderNo:       "GD-1001",
			CustomerName:  "Asha",
			CustomerEmail: "asha@example.com",
			Items: datatypes.JSONSlice[models.OrderItem]{
				{ProductID: 1, Name: "Solitaire Ring", Quantity: 1, UnitPrice: models.MustMoney("5000")},
			},
			TotalAmount: models.MustMoney("5000"),
			Status:      "pending",
			CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, OrdersSheet(orders)); err != nil {
		t.Fatalf("write workbook failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Orders")
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[0][0] != "Order No" || rows[1][0] != "GD-1001" || rows[1][5] != "5000.00" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if rows[1][7] != "2026-03-01 10:00:00" {
		t.Fatalf("unexpected created at: %s", rows[1][7])
	}
}

func TestEnquiriesSheetProductColumn(t *testing.T) {
	productID := uint(7)
	sheet := EnquiriesSheet([]models.Enquiry{
		{ID: 1, Name: "A", ProductID: &productID, Status: "new"},
		{ID: 2, Name: "B", Status: "closed"},
	})
	if sheet.Rows[0][4] != "7" || sheet.Rows[1][4] != "" {
		t.Fatalf("unexpected product column: %v / %v", sheet.Rows[0][4], sheet.Rows[1][4])
	}
}

func TestFileName(t *testing.T) {
	got := FileName("orders", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if got != "orders-20260102-030405.xlsx" {
		t.Fatalf("unexpected file name: %s", got)
	}
}
