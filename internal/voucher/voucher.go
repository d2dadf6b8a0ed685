// Package voucher renders the printable booking confirmation handed to drivers.
package voucher

import (
	"fmt"
	"io"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"github.com/nekogravitycat/transfer-booking-backend/internal/booking"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

const dateTimeLayout = "02/01/2006 15:04"

// Renderer draws A4 vouchers. It holds no per-request state and is safe for concurrent use.
type Renderer struct {
	company  string
	phone    string
	compress bool
}

func NewRenderer(company, phone string) *Renderer {
	return &Renderer{company: company, phone: phone, compress: true}
}

type row struct {
	label, value string
}

func (r *Renderer) rows(b *booking.Booking) []row {
	vehicle := string(b.VehicleType)
	if c, ok := pricing.Lookup(b.VehicleType); ok {
		vehicle = c.Label
	}

	rows := []row{
		{"Reserva", b.ID},
		{"Estado", string(b.Status)},
		{"Cliente", b.CustomerName},
		{"Teléfono", b.CustomerPhone},
		{"Email", b.CustomerEmail},
		{"Origen", b.Origin},
		{"Destino", b.Destination},
		{"Recogida", b.PickupDate.In(booking.OperatorZone).Format(dateTimeLayout)},
	}
	if b.ReturnDate != nil {
		rows = append(rows, row{"Regreso", b.ReturnDate.In(booking.OperatorZone).Format(dateTimeLayout)})
	}
	rows = append(rows,
		row{"Pasajeros", strconv.Itoa(b.Passengers)},
		row{"Vehículo", vehicle},
		row{"Servicio", b.ServiceType.Label()},
		row{"Precio", pricing.FormatUSD(b.EstimatedPrice)},
	)
	return rows
}

// Render writes the voucher PDF for b to w.
func (r *Renderer) Render(w io.Writer, b *booking.Booking) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle("Voucher "+b.ID, true)
	pdf.SetAuthor(r.company, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(r.company))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr("Confirmación de reserva · "+r.phone))
	pdf.Ln(12)

	for _, rw := range r.rows(b) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, tr(rw.label), "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, tr(rw.value), "B", 1, "L", false, 0, "")
	}

	if b.SpecialRequests != nil {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, tr("Solicitudes especiales"))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(*b.SpecialRequests), "", "", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr("Precio estimado en USD. Presente este voucher al conductor al momento de la recogida."), "", "", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render voucher: %w", err)
	}
	return nil
}
