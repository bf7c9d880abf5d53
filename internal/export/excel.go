package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"atelier/internal/model"
)

// ReservationsWorkbook builds the admin xlsx report for a date range.
func ReservationsWorkbook(bookings []model.Booking, from, to string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Réservations"
	f.SetSheetName("Sheet1", sheet)

	header := []string{"Date", "Heure", "Nom", "Prénom", "Téléphone", "Type"}
	for i, col := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, b := range bookings {
		kind := "Client"
		if b.Kind == model.BookingAdminBlock {
			kind = "Bloqué"
		}
		row := []any{b.Date, b.Time, b.LastName, b.FirstName, b.Phone, kind}
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	summary := fmt.Sprintf("Période %s — %s : %d lignes", from, to, len(bookings))
	cell, _ := excelize.CoordinatesToCellName(1, len(bookings)+3)
	_ = f.SetCellValue(sheet, cell, summary)

	return f, nil
}
