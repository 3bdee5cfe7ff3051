package orderControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/mstrendzz/ecommerce-api/utils"
)

// GET /api/orders/export-excel (admin)
// Exports the filtered order set; accepts the same filters as getAllOrders.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := OrderListFilters{
			Status:      c.Query("status"),
			ProductName: c.Query("productName"),
			DateFrom:    c.Query("dateFrom"),
			DateTo:      c.Query("dateTo"),
			SearchTerm:  c.Query("searchTerm"),
			SortBy:      c.DefaultQuery("sortBy", "orderDate"),
			SortOrder:   c.DefaultQuery("sortOrder", "desc"),
			Page:        1,
			Limit:       10000, // full export, not a page
		}

		orders, _, err := ListAllOrders(db, filters)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Username", "Email", "Status", "PaymentStatus",
			"TotalAmount", "ShippingAddress", "Items", "OrderDate",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			if o.User != nil {
				row.AddCell().SetValue(o.User.Username)
				row.AddCell().SetValue(o.User.Email)
			} else {
				row.AddCell().SetValue("")
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(o.ShippingAddress)

			var items []string
			for _, item := range o.Items {
				items = append(items, item.Title+" x"+strconv.Itoa(item.Quantity))
			}
			row.AddCell().SetValue(strings.Join(items, ", "))
			row.AddCell().SetValue(o.OrderDate.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
