package controllers

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

func formatVND(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	n := len(s)
	if n <= 3 {
		return s + " VND"
	}
	var buf bytes.Buffer
	pre := n % 3
	if pre > 0 {
		buf.WriteString(s[:pre])
	}
	for i := pre; i < n; i += 3 {
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String() + " VND"
}

// DownloadInvoice renders the order invoice as a PDF. Only completed or
// paid orders have an invoice.
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order id", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems.Food").Preload("Address").
		Where("id = ? AND user_id = ?", id, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentStatus != models.PaymentStatusPaid && order.Status != models.OrderStatusCompleted {
		utils.Conflict(c, "Invoice is available after payment", gin.H{"payment_status": order.PaymentStatus})
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, utils.AppName)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Tax Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice for order %s", order.OrderCode))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s %s", user.FirstName, user.LastName))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Deliver to: %s, %s, %s", order.Address.Line1, order.Address.District, order.Address.City))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 8, "Total", "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.OrderItems {
		pdf.CellFormat(70, 8, item.Food.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, formatVND(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 8, formatVND(item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	rows := []struct {
		label  string
		amount int64
	}{
		{"Subtotal:", order.SubtotalAmount},
		{"Shipping:", order.ShippingFee},
		{"Coupon discount:", -order.CouponDiscount},
		{"Points discount:", -order.PointsDiscount},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(135, 8, row.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(45, 8, formatVND(row.amount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(135, 10, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(45, 10, formatVND(order.FinalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s. Thank you for ordering with %s!", time.Now().Format("02 Jan 2006"), utils.AppName))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render invoice for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", order.OrderCode))
	c.Data(200, "application/pdf", buf.Bytes())
}
