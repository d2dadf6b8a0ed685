// Package notification turns stored bookings and contact messages into operator
// alerts and hands them to an outbound Sender without blocking the request.
package notification

import (
	"strconv"
	"strings"
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/booking"
	"github.com/nekogravitycat/transfer-booking-backend/internal/contact"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

// Brand appears in every message header.
const Brand = "Dominican Transport Pro"

const (
	dateLayout     = "02/01/2006"
	timeLayout     = "15:04"
	dateTimeLayout = "02/01/2006 15:04"
)

func localDateTime(t time.Time) string {
	t = t.In(booking.OperatorZone)
	return t.Format(dateLayout) + " a las " + t.Format(timeLayout)
}

func vehicleLabel(code pricing.VehicleCode) string {
	if c, ok := pricing.Lookup(code); ok {
		return c.Label
	}
	return string(code)
}

// FormatBooking renders the WhatsApp alert for a new booking. The record is
// expected to be validated already; nothing is checked here.
func FormatBooking(b booking.Booking) string {
	var sb strings.Builder

	sb.WriteString("🚗 *NUEVA RESERVA - " + Brand + "*\n\n")
	sb.WriteString("📅 *Fecha:* " + localDateTime(b.PickupDate) + "\n")
	if b.ReturnDate != nil {
		sb.WriteString("🔁 *Regreso:* " + localDateTime(*b.ReturnDate) + "\n")
	}
	sb.WriteString("👥 *Pasajeros:* " + strconv.Itoa(b.Passengers) + "\n")
	sb.WriteString("📍 *Origen:* " + b.Origin + "\n")
	sb.WriteString("📍 *Destino:* " + b.Destination + "\n")
	sb.WriteString("🚙 *Vehículo:* " + vehicleLabel(b.VehicleType) + "\n")
	sb.WriteString("🔄 *Servicio:* " + b.ServiceType.Label() + "\n")
	sb.WriteString("💰 *Precio:* " + pricing.FormatUSD(b.EstimatedPrice) + "\n\n")

	sb.WriteString("👤 *Cliente:*\n")
	sb.WriteString("• Nombre: " + b.CustomerName + "\n")
	sb.WriteString("• Email: " + b.CustomerEmail + "\n")
	sb.WriteString("• Teléfono: " + b.CustomerPhone + "\n\n")

	if b.SpecialRequests != nil && *b.SpecialRequests != "" {
		sb.WriteString("📝 *Solicitudes especiales:* " + *b.SpecialRequests + "\n\n")
	}

	sb.WriteString("🆔 " + b.ID + "\n")
	sb.WriteString("#Reserva #DominicanTransport")
	return sb.String()
}

// FormatContact renders the alert for a contact form message.
func FormatContact(m contact.Message) string {
	var sb strings.Builder

	sb.WriteString("📞 *NUEVO MENSAJE DE CONTACTO - " + Brand + "*\n\n")
	sb.WriteString("👤 *Cliente:* " + m.Name + "\n")
	sb.WriteString("📧 *Email:* " + m.Email + "\n")
	if m.Phone != nil && *m.Phone != "" {
		sb.WriteString("📱 *Teléfono:* " + *m.Phone + "\n")
	}
	sb.WriteString("🎯 *Servicio de interés:* " + m.ServiceInterest + "\n\n")

	sb.WriteString("💬 *Mensaje:*\n" + m.Message + "\n\n")

	received := "Ahora"
	if !m.CreatedAt.IsZero() {
		received = m.CreatedAt.In(booking.OperatorZone).Format(dateTimeLayout)
	}
	sb.WriteString("⏰ *Recibido:* " + received + "\n\n")

	sb.WriteString("#Contacto #DominicanTransport")
	return sb.String()
}
