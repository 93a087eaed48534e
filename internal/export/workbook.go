package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gemdesk/internal/models"

	"github.com/xuri/excelize/v2"
)

const timeLayout = "2006-01-02 15:04:05"

// Sheet 导出表格定义
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// WriteWorkbook 将单个工作表写为 XLSX
func WriteWorkbook(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := strings.TrimSpace(sheet.Name)
	if name == "" {
		name = "Sheet1"
	}
	if name != "Sheet1" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for col, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, header); err != nil {
			return err
		}
	}
	if len(sheet.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return err
		}
		if err := f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return err
		}
	}
	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

// OrdersSheet 订单导出表
func OrdersSheet(orders []models.Order) Sheet {
	rows := make([][]interface{}, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, []interface{}{
			order.OrderNo,
			order.CustomerName,
			order.CustomerEmail,
			order.CustomerPhone,
			len(order.Items),
			order.TotalAmount.String(),
			order.Status,
			order.CreatedAt.Format(timeLayout),
		})
	}
	return Sheet{
		Name:    "Orders",
		Headers: []string{"Order No", "Customer", "Email", "Phone", "Items", "Total", "Status", "Created At"},
		Rows:    rows,
	}
}

// EnquiriesSheet 询价导出表
func EnquiriesSheet(enquiries []models.Enquiry) Sheet {
	rows := make([][]interface{}, 0, len(enquiries))
	for _, enquiry := range enquiries {
		productID := ""
		if enquiry.ProductID != nil {
			productID = fmt.Sprintf("%d", *enquiry.ProductID)
		}
		rows = append(rows, []interface{}{
			enquiry.ID,
			enquiry.Name,
			enquiry.Email,
			enquiry.Phone,
			productID,
			enquiry.Message,
			enquiry.Status,
			enquiry.CreatedAt.Format(timeLayout),
		})
	}
	return Sheet{
		Name:    "Enquiries",
		Headers: []string{"ID", "Name", "Email", "Phone", "Product ID", "Message", "Status", "Created At"},
		Rows:    rows,
	}
}

// FileName 生成带时间戳的导出文件名
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, now.Format("20060102-150405"))
}
