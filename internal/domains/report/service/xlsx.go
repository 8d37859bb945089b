package service

import (
	"fmt"
	"salon/internal/domains/booking/model"
	"salon/internal/domains/report/model/dto"
	statusModel "salon/internal/domains/status/model"

	"github.com/xuri/excelize/v2"
)

const (
	sheetBookings = "Bookings"
	sheetSummary  = "Summary"
	defaultSheet  = "Sheet1"
)

var bookingHeaders = []string{
	"Booking No", "Created At", "Booking Date", "Booking Time", "Customer", "Email", "Phone", "Address",
	"Service", "Sub Service", "Product", "Artist", "Status", "Price", "Qty", "Total",
}

// buildWorkbook renders the filtered bookings and their summary as an xlsx file.
func buildWorkbook(rows []model.Booking, summary dto.SummaryResponse, artistName func(id *int64) string, normalizer *statusModel.Normalizer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetBookings)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetActiveSheet(index)

	if err = f.DeleteSheet(defaultSheet); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err = writeRow(f, sheetBookings, 1, toAny(bookingHeaders)); err != nil {
		return nil, err
	}

	last, _ := excelize.CoordinatesToCellName(len(bookingHeaders), 1)
	_ = f.SetCellStyle(sheetBookings, "A1", last, header)

	for i, row := range rows {
		values := []any{
			row.BookingNo,
			row.CreatedAt.Format("2006-01-02 15:04"),
			row.BookingDate,
			row.BookingTime,
			row.Name,
			row.Email,
			row.PhoneNo,
			row.Address,
			row.ServiceName,
			row.SubService,
			row.ProductName,
			artistName(row.ArtistID),
			normalizer.Label(row.Status),
			row.Price.InexactFloat64(),
			row.Qty,
			row.Total().InexactFloat64(),
		}

		if err = writeRow(f, sheetBookings, i+2, values); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(sheetBookings, "A", "D", 14)
	_ = f.SetColWidth(sheetBookings, "E", "M", 22)
	_ = f.SetColWidth(sheetBookings, "N", "P", 14)

	if err = writeSummary(f, summary, header); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, summary dto.SummaryResponse, header int) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]any{
		{"Bookings", summary.TotalBookings},
		{"Orders", summary.TotalOrders},
		{"Revenue", summary.Revenue.InexactFloat64()},
		{},
		{"Status", "Count"},
	}

	for _, status := range summary.ByStatus {
		rows = append(rows, []any{status.Label, status.Count})
	}

	rows = append(rows, []any{}, []any{"Artist", "Bookings", "Done", "Revenue"})
	artistHeader := len(rows)

	for _, artist := range summary.ByArtist {
		rows = append(rows, []any{artist.Name, artist.Bookings, artist.Done, artist.Revenue.InexactFloat64()})
	}

	for i, values := range rows {
		if err := writeRow(f, sheetSummary, i+1, values); err != nil {
			return err
		}
	}

	_ = f.SetCellStyle(sheetSummary, "A5", "B5", header)
	_ = f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", artistHeader), fmt.Sprintf("D%d", artistHeader), header)
	_ = f.SetColWidth(sheetSummary, "A", "A", 25)

	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}

	if err = f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}

	return nil
}

func toAny(values []string) []any {
	res := make([]any, len(values))
	for i, v := range values {
		res[i] = v
	}

	return res
}
