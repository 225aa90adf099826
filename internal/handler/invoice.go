package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/phpdave11/gofpdf"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/service"
)

// InvoiceHandler exposes invoice queries, the payment transition and a
// printable PDF rendition.
type InvoiceHandler struct {
	Invoices *service.InvoiceService
	Bookings *service.BookingService
}

func NewInvoiceHandler(inv *service.InvoiceService, b *service.BookingService) *InvoiceHandler {
	return &InvoiceHandler{Invoices: inv, Bookings: b}
}

// List returns the caller's invoices, or every invoice for admins.
func (h *InvoiceHandler) List(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	invoices, err := h.Invoices.ListForCaller(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"invoices": invoices})
}

// ListUnpaid returns every unpaid invoice. Admin only.
func (h *InvoiceHandler) ListUnpaid(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	invoices, err := h.Invoices.ListUnpaid(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"invoices": invoices})
}

// Get returns one invoice.
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	invoiceID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	inv, err := h.Invoices.GetByID(ctx, id, invoiceID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// MarkPaid records a payment against an unpaid invoice.
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	invoiceID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	inv, err := h.Invoices.MarkPaid(ctx, id, invoiceID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// PrintPDF streams a one-page PDF rendition of the invoice. Same
// visibility rules as Get.
func (h *InvoiceHandler) PrintPDF(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	invoiceID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	inv, err := h.Invoices.GetByID(ctx, id, invoiceID)
	if err != nil {
		return serviceError(c, err)
	}
	booking, err := h.Bookings.GetByID(ctx, id, inv.BookingID)
	if err != nil {
		return serviceError(c, err)
	}

	pdf := buildInvoicePDF(inv, booking)
	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, inv.ID))
	c.Response().WriteHeader(http.StatusOK)
	return pdf.Output(c.Response().Writer)
}

func buildInvoicePDF(inv model.Invoice, b model.Booking) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, fmt.Sprintf("Invoice #%d", inv.ID))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(45, 8, label)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, value)
		pdf.Ln(8)
	}
	line("Booking", fmt.Sprintf("#%d (room %d)", b.ID, b.RoomID))
	line("Billed to", fmt.Sprintf("user #%d", inv.UserID))
	line("Time window", fmt.Sprintf("%s - %s",
		b.StartTime.Format("2006-01-02 15:04"), b.EndTime.Format("15:04 MST")))
	line("Issued", inv.CreatedAt.Format("2006-01-02"))
	line("Due", inv.DueDate.Format("2006-01-02"))
	line("Status", inv.Status)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Amount due: %.2f", float64(inv.AmountCents)/100))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format(time.RFC1123)))
	return pdf
}
