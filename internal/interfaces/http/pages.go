package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/webapp-acceptance/internal/application/dto"
	"github.com/jhoicas/webapp-acceptance/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// pageData datos que reciben las plantillas; cada página usa solo una parte.
type pageData struct {
	Title      string
	Errors     []string
	Info       []string
	VAT        string
	Customer   *dto.CustomerDTO
	Customers  []dto.CustomerDTO
	Addresses  []dto.AddressDTO
	Sales      []saleView
	Deliveries []dto.SaleDeliveryDTO
	Fields     []reportField
}

type reportField struct {
	Label string
	Value string
}

// saleView venta tal como se muestra: fecha ISO, total con un decimal, estado "O"/"C".
type saleView struct {
	ID          int
	Date        string
	Total       string
	Status      string
	CustomerVAT int
}

func toSaleViews(sales dto.SalesDTO) []saleView {
	out := make([]saleView, 0, len(sales.Sales))
	for _, s := range sales.Sales {
		out = append(out, saleView{
			ID:          s.ID,
			Date:        s.Date.Format("2006-01-02"),
			Total:       s.Total.StringFixed(1),
			Status:      s.Status,
			CustomerVAT: s.CustomerVAT,
		})
	}
	return out
}

func (h *PageHandler) render(c *fiber.Ctx, name string, data pageData) error {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// intParam lee un entero de la query o del formulario; ok=false si falta o no es número.
func intParam(c *fiber.Ctx, name string) (int, bool) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// userMessage traduce errores de dominio al texto que muestra la página.
// Un error que no es de dominio se propaga como fallo interno.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrDuplicateVAT):
		return "Customer already exists", true
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "Customer not found", true
	case errors.Is(err, domain.ErrSaleNotFound):
		return "Sale not found", true
	case errors.Is(err, domain.ErrAddressNotFound):
		return "Address not found", true
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input", true
	case errors.Is(err, domain.ErrApplication):
		return err.Error(), true
	default:
		return "", false
	}
}
