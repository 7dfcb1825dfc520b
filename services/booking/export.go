package booking

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"grambazaar/models"
	"grambazaar/utils"
)

var exportHeader = []string{
	"Booking ID", "Customer", "Email", "Items", "Total Amount", "Status", "Date", "Payment Status",
}

// exportZone pins export dates to Indian Standard Time.
var exportZone = time.FixedZone("IST", 5*3600+1800)

// ExportBookingsCSV writes the filtered admin booking list as CSV.
func (s *DefaultBookingService) ExportBookingsCSV(ctx context.Context, status string, w io.Writer) error {
	bookings, err := s.listForAdmin(ctx, status)
	if err != nil {
		return err
	}

	return writeBookingsCSV(w, bookings)
}

func writeBookingsCSV(w io.Writer, bookings []models.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return utils.Internal("Failed to write export", err)
	}
	for i := range bookings {
		if err := cw.Write(exportRow(&bookings[i])); err != nil {
			return utils.Internal("Failed to write export", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return utils.Internal("Failed to write export", err)
	}
	return nil
}

func exportRow(b *models.Booking) []string {
	customer, email := "User Deleted", "N/A"
	if b.User != nil {
		customer, email = b.User.Name, b.User.Email
	}

	items := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, fmt.Sprintf("%d × %s (₹%s)", it.Quantity, it.Name, rupees(it.Price)))
	}

	return []string{
		b.ID,
		customer,
		email,
		strings.Join(items, "; "),
		"₹" + rupees(b.TotalAmount),
		string(b.Status),
		b.CreatedAt.In(exportZone).Format("2/1/2006"),
		string(b.PaymentStatus),
	}
}

func rupees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
