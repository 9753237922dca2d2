package export

import (
	"fmt"
	"time"

	"taller_web/internal/domain/entities"

	"github.com/xuri/excelize/v2"
)

var laborHeaders = []string{"Descripción", "Horas", "Fecha"}
var partHeaders = []string{"Código", "Descripción", "Cantidad", "Garantía", "Costo unit.", "Total"}

// WorkOrderSheet renders a printable work-order spreadsheet from the order
// snapshot: header block, labor table, parts table, totals. Warranty parts
// go out at zero cost.
func WorkOrderSheet(o entities.Order) (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := "Orden"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Orden de servicio %s", o.Code))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", "Estado")
	f.SetCellValue(sheet, "B2", string(o.Status))
	f.SetCellValue(sheet, "A3", "Ingreso")
	f.SetCellValue(sheet, "B3", string(o.IntakeType))
	f.SetCellValue(sheet, "C3", o.IntakeReason)
	f.SetCellValue(sheet, "A4", "Fecha ingreso")
	f.SetCellValue(sheet, "B4", o.IntakeDate.Format(time.RFC3339))
	if o.ExitDate != nil {
		f.SetCellValue(sheet, "A5", "Fecha salida")
		f.SetCellValue(sheet, "B5", o.ExitDate.Format(time.RFC3339))
	}

	if o.Client != nil {
		f.SetCellValue(sheet, "A7", "Cliente")
		f.SetCellValue(sheet, "B7", o.Client.Name)
		f.SetCellValue(sheet, "C7", o.Client.Company)
		f.SetCellValue(sheet, "D7", o.Client.Phone)
	}
	if o.Equipment != nil {
		f.SetCellValue(sheet, "A8", "Equipo")
		f.SetCellValue(sheet, "B8", fmt.Sprintf("%s %s", o.Equipment.Brand, o.Equipment.Model))
		f.SetCellValue(sheet, "C8", fmt.Sprintf("Serial: %s", o.Equipment.Serial))
	}
	if o.Site != nil {
		f.SetCellValue(sheet, "A9", "Sede")
		f.SetCellValue(sheet, "B9", o.Site.Name)
		f.SetCellValue(sheet, "C9", o.Site.City)
	}
	if o.Technician != nil {
		f.SetCellValue(sheet, "A10", "Técnico")
		f.SetCellValue(sheet, "B10", o.Technician.Name)
	}

	row := 12
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Mano de obra")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	row++
	for i, h := range laborHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	for _, l := range o.Labor {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.Description)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.Hours)
		if !l.CreatedAt.IsZero() {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), l.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total horas")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), o.LaborTotalHours())

	row += 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Repuestos")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	row++
	for i, h := range partHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	for _, p := range o.Parts {
		row++
		if p.Part != nil {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Part.Code)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Part.Description)
		}
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Quantity)
		warranty := "No"
		if p.IsWarranty {
			warranty = "Sí"
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), warranty)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.UnitCost())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.Total())
	}
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total repuestos")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), o.PartsTotal())

	colWidths := []float64{32, 16, 20, 10, 12, 12}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("orden_%s.xlsx", o.Code)
	return f, filename, nil
}
