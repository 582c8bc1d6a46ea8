package report

import (
	"io"

	"carrental-backend/internal/domain"
)

// ContentType is the media type of the produced documents.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var contractColumns = []string{
	"ID", "Request", "Renter", "ID document", "License", "Second driver",
	"Vehicle", "Category", "Plate", "Start", "End", "Days", "Day rate", "Total", "Status", "Created",
}

// WriteContracts renders one row per contract.
func WriteContracts(out io.Writer, contracts []domain.Contract) error {
	w := NewWorkbook()
	defer w.Close()

	if err := w.AddSheet("Contracts"); err != nil {
		return err
	}
	if err := w.WriteHeader(contractColumns); err != nil {
		return err
	}
	for _, c := range contracts {
		var requestID any
		if c.RequestID != nil {
			requestID = *c.RequestID
		}
		second := ""
		if c.SecondDriver != nil {
			second = c.SecondDriver.Name
		}
		row := []any{
			c.ID, requestID, c.Renter.Name, c.Renter.IDDocument, c.Renter.License, second,
			c.VehicleName, c.Category, c.Plate, c.StartDate, c.EndDate, c.Days, c.DayRate, c.Total,
			string(c.Status), c.CreatedOn,
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	_, err := w.WriteTo(out)
	return err
}

// WriteInvoice renders an invoice as a two-column sheet.
func WriteInvoice(out io.Writer, inv *domain.Invoice) error {
	w := NewWorkbook()
	defer w.Close()

	if err := w.AddSheet("Invoice " + inv.Number); err != nil {
		return err
	}
	rows := [][]any{
		{"Invoice", inv.Number},
		{"Issued on", inv.IssuedOn},
		{"Customer", inv.Request.Name},
		{"Phone", inv.Request.Phone},
		{"Email", inv.Request.Email},
		{"City", inv.Request.City},
		{"Vehicle", inv.VehicleName},
		{"Category", inv.Category},
		{"Plate", inv.Plate},
		{"Start", inv.Request.StartDate},
		{"End", inv.Request.EndDate},
		{"Days", inv.Days},
		{"Day rate", inv.DayRate},
		{"Total", inv.Total},
	}
	for _, r := range rows {
		if err := w.WriteRow(r); err != nil {
			return err
		}
	}
	_, err := w.WriteTo(out)
	return err
}
