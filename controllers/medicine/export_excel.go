package medicineControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

// GET /api/medicines/export-excel
func ExportMedicinesToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var medicines []models.Medicine
		if err := db.Order("id").Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Medicines")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Name", "Brand", "Description", "Price", "Stock", "Liked", "Image"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, m := range medicines {
			row := sheet.AddRow()
			row.AddCell().SetValue(m.ID)
			row.AddCell().SetValue(m.Name)
			row.AddCell().SetValue(m.Brand)
			row.AddCell().SetValue(m.Description)
			row.AddCell().SetValue(m.Price)
			row.AddCell().SetValue(m.Stock)
			row.AddCell().SetValue(m.Liked)
			row.AddCell().SetValue(m.Image)
		}

		c.Header("Content-Disposition", "attachment; filename=medicines.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
