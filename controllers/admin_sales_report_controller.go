package controllers

import (
	"fmt"
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

type salesReportData struct {
	From           time.Time
	To             time.Time
	Orders         []models.Order
	TotalOrders    int64
	GrossAmount    int64
	CouponDiscount int64
	PointsDiscount int64
	NetAmount      int64
}

// reportPeriod resolves the requested period to a [from, to) interval.
// Supported: daily, weekly, monthly, custom (with from/to query params).
func reportPeriod(c *gin.Context) (time.Time, time.Time, string, error) {
	period := c.DefaultQuery("period", "daily")
	now := time.Now()
	switch period {
	case "daily":
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 0, 1), period, nil
	case "weekly":
		from := now.AddDate(0, 0, -7)
		return from, now, period, nil
	case "monthly":
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 1, 0), period, nil
	case "custom":
		from, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			return time.Time{}, time.Time{}, period, fmt.Errorf("invalid from date")
		}
		to, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			return time.Time{}, time.Time{}, period, fmt.Errorf("invalid to date")
		}
		return from, to.AddDate(0, 0, 1), period, nil
	default:
		return time.Time{}, time.Time{}, period, fmt.Errorf("unknown period %s", period)
	}
}

func buildSalesReport(from, to time.Time) (*salesReportData, error) {
	var orders []models.Order
	if err := config.DB.
		Where("created_at >= ? AND created_at < ? AND payment_status = ?", from, to, models.PaymentStatusPaid).
		Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}

	report := &salesReportData{From: from, To: to, Orders: orders}
	for _, order := range orders {
		report.TotalOrders++
		report.GrossAmount += order.TotalBeforeDiscount
		report.CouponDiscount += order.CouponDiscount
		report.PointsDiscount += order.PointsDiscount
		report.NetAmount += order.FinalAmount
	}
	return report, nil
}

// GetSalesReport returns the aggregate numbers as JSON.
func GetSalesReport(c *gin.Context) {
	utils.LogInfo("GetSalesReport called")

	from, to, period, err := reportPeriod(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	report, err := buildSalesReport(from, to)
	if err != nil {
		utils.LogError("Failed to build sales report: %v", err)
		utils.InternalServerError(c, "Failed to build sales report", err.Error())
		return
	}

	utils.Success(c, "Sales report generated", gin.H{
		"period":          period,
		"from":            report.From,
		"to":              report.To,
		"total_orders":    report.TotalOrders,
		"gross_amount":    report.GrossAmount,
		"coupon_discount": report.CouponDiscount,
		"points_discount": report.PointsDiscount,
		"net_amount":      report.NetAmount,
	})
}

// DownloadSalesReportExcel streams the same report as an xlsx workbook.
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	from, to, period, err := reportPeriod(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	report, err := buildSalesReport(from, to)
	if err != nil {
		utils.LogError("Failed to build sales report: %v", err)
		utils.InternalServerError(c, "Failed to build sales report", err.Error())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.InternalServerError(c, "Failed to generate report", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(fmt.Sprintf("%s Sales Report", utils.AppName))
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString(fmt.Sprintf("Period: %s to %s",
		report.From.Format("02 Jan 2006"), report.To.AddDate(0, 0, -1).Format("02 Jan 2006")))
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, h := range []string{"Order Code", "Date", "Payment Method", "Gross", "Coupon Discount", "Points Discount", "Net"} {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, order := range report.Orders {
		row := sheet.AddRow()
		row.AddCell().SetString(order.OrderCode)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(order.PaymentMethod)
		row.AddCell().SetInt64(order.TotalBeforeDiscount)
		row.AddCell().SetInt64(order.CouponDiscount)
		row.AddCell().SetInt64(order.PointsDiscount)
		row.AddCell().SetInt64(order.FinalAmount)
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString(fmt.Sprintf("Total orders: %d", report.TotalOrders))
	summaryRow.AddCell().SetString("")
	summaryRow.AddCell().SetString("")
	summaryRow.AddCell().SetInt64(report.GrossAmount)
	summaryRow.AddCell().SetInt64(report.CouponDiscount)
	summaryRow.AddCell().SetInt64(report.PointsDiscount)
	summaryRow.AddCell().SetInt64(report.NetAmount)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.xlsx", period))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write sales report: %v", err)
	}
}
