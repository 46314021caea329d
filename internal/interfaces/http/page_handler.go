package http

import (
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/webapp-acceptance/internal/application/dto"
	"github.com/jhoicas/webapp-acceptance/internal/application/service"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// PageHandler controladores de páginas HTML sobre el canal de servicios.
// Los errores de dominio se muestran en la página con status 200, como hace la aplicación real.
type PageHandler struct {
	customers *service.CustomerService
	sales     *service.SaleService
	tmpl      *template.Template
	log       *logger.Logger
}

// NewPageHandler construye el handler con las plantillas embebidas.
func NewPageHandler(customers *service.CustomerService, sales *service.SaleService, log *logger.Logger) (*PageHandler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PageHandler{customers: customers, sales: sales, tmpl: tmpl, log: log}, nil
}

// Static páginas sin datos: índice y formularios de alta.
func (h *PageHandler) Static(name, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.render(c, name, pageData{Title: title})
	}
}

// fail muestra el error de dominio en la página name, o lo propaga si no es de dominio.
func (h *PageHandler) fail(c *fiber.Ctx, name string, data pageData, err error) error {
	msg, ok := userMessage(err)
	if !ok {
		return err
	}
	h.log.Debug().Err(err).Str("path", c.Path()).Msg("error de aplicación")
	data.Errors = append(data.Errors, msg)
	return h.render(c, name, data)
}

// AddCustomer GET|POST AddCustomerPageController (vat, designation, phone)
func (h *PageHandler) AddCustomer(c *fiber.Ctx) error {
	data := pageData{Title: "Customer Info"}
	vat, okVat := intParam(c, "vat")
	phone, okPhone := intParam(c, "phone")
	designation := c.FormValue("designation")
	if !okVat {
		data.Errors = append(data.Errors, "Invalid VAT number")
	}
	if !okPhone {
		data.Errors = append(data.Errors, "Invalid phone number")
	}
	if len(data.Errors) > 0 {
		return h.render(c, "report.html", data)
	}
	if err := h.customers.AddCustomer(c.UserContext(), vat, designation, phone); err != nil {
		return h.fail(c, "report.html", data, err)
	}
	data.Info = []string{"Customer added"}
	data.Fields = []reportField{
		{"Designation", designation},
		{"Phone", strconv.Itoa(phone)},
		{"VAT", strconv.Itoa(vat)},
	}
	return h.render(c, "report.html", data)
}

// RemoveCustomer GET RemoveCustomerPageController muestra el formulario; con vat, borra.
func (h *PageHandler) RemoveCustomer(c *fiber.Ctx) error {
	data := pageData{Title: "Remove Customer"}
	if vat, ok := intParam(c, "vat"); ok {
		if err := h.customers.RemoveCustomer(c.UserContext(), vat); err != nil {
			msg, domainErr := userMessage(err)
			if !domainErr {
				return err
			}
			data.Errors = append(data.Errors, msg)
		} else {
			data.Info = []string{"Customer " + strconv.Itoa(vat) + " removed"}
		}
	} else if c.FormValue("vat") != "" {
		data.Errors = append(data.Errors, "Invalid VAT number")
	}
	all, err := h.customers.GetAllCustomers(c.UserContext())
	if err != nil {
		return err
	}
	data.Customers = all.Customers
	return h.render(c, "removeCustomer.html", data)
}

// GetCustomer GET GetCustomerPageController?vat=
func (h *PageHandler) GetCustomer(c *fiber.Ctx) error {
	data := pageData{Title: "Customer Info", VAT: c.FormValue("vat")}
	vat, ok := intParam(c, "vat")
	if !ok {
		if data.VAT != "" {
			data.Errors = append(data.Errors, "Invalid VAT number")
		}
		return h.render(c, "customerInfo.html", data)
	}
	cust, err := h.customers.GetCustomerByVat(c.UserContext(), vat)
	if err != nil {
		return h.fail(c, "customerInfo.html", data, err)
	}
	data.Customer = &cust
	addrs, err := h.customers.GetAllAddresses(c.UserContext(), vat)
	if err != nil {
		return h.fail(c, "customerInfo.html", data, err)
	}
	data.Addresses = addrs.Addresses
	return h.render(c, "customerInfo.html", data)
}

// GetAllCustomers GET GetAllCustomersPageController
func (h *PageHandler) GetAllCustomers(c *fiber.Ctx) error {
	all, err := h.customers.GetAllCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "customers.html", pageData{Title: "All Customers", Customers: all.Customers})
}

// AddAddressToCustomer GET|POST AddAddressToCustomerPageController
func (h *PageHandler) AddAddressToCustomer(c *fiber.Ctx) error {
	data := pageData{Title: "Customer Address", VAT: c.FormValue("vat")}
	vat, ok := intParam(c, "vat")
	if !ok {
		data.Errors = append(data.Errors, "Invalid VAT number")
		return h.render(c, "report.html", data)
	}
	in := dto.AddressDTO{
		Address:    c.FormValue("address"),
		Door:       c.FormValue("door"),
		PostalCode: c.FormValue("postalCode"),
		Locality:   c.FormValue("locality"),
	}
	if _, err := h.customers.AddAddressToCustomer(c.UserContext(), vat, in); err != nil {
		return h.fail(c, "report.html", data, err)
	}
	data.Info = []string{"Address added"}
	data.Fields = []reportField{
		{"VAT", strconv.Itoa(vat)},
		{"Address", in.Address},
		{"Door", in.Door},
		{"Postal Code", in.PostalCode},
		{"Locality", in.Locality},
	}
	return h.render(c, "report.html", data)
}

// AddSale GET|POST AddSalePageController (customerVat)
func (h *PageHandler) AddSale(c *fiber.Ctx) error {
	data := pageData{Title: "Sales Info", VAT: c.FormValue("customerVat")}
	vat, ok := intParam(c, "customerVat")
	if !ok {
		data.Errors = append(data.Errors, "Invalid VAT number")
		return h.render(c, "sales.html", data)
	}
	if _, err := h.sales.AddSale(c.UserContext(), vat); err != nil {
		return h.fail(c, "sales.html", data, err)
	}
	sales, err := h.sales.GetSaleByCustomerVat(c.UserContext(), vat)
	if err != nil {
		return h.fail(c, "sales.html", data, err)
	}
	data.Info = []string{"Sale added"}
	data.Sales = toSaleViews(sales)
	return h.render(c, "sales.html", data)
}

// GetSales GET GetSalePageController?customerVat=
func (h *PageHandler) GetSales(c *fiber.Ctx) error {
	data := pageData{Title: "Sales Info", VAT: c.FormValue("customerVat")}
	vat, ok := intParam(c, "customerVat")
	if !ok {
		return h.render(c, "sales.html", data)
	}
	sales, err := h.sales.GetSaleByCustomerVat(c.UserContext(), vat)
	if err != nil {
		return h.fail(c, "sales.html", data, err)
	}
	data.Sales = toSaleViews(sales)
	return h.render(c, "sales.html", data)
}

// UpdateSaleStatus GET lista todas las ventas; con id, cierra esa venta antes de listar.
func (h *PageHandler) UpdateSaleStatus(c *fiber.Ctx) error {
	data := pageData{Title: "Close Sale"}
	if id, ok := intParam(c, "id"); ok {
		if err := h.sales.UpdateSale(c.UserContext(), id); err != nil {
			msg, domainErr := userMessage(err)
			if !domainErr {
				return err
			}
			data.Errors = append(data.Errors, msg)
		} else {
			data.Info = []string{"Sale " + strconv.Itoa(id) + " closed"}
		}
	}
	all, err := h.sales.GetAllSales(c.UserContext())
	if err != nil {
		return err
	}
	data.Sales = toSaleViews(all)
	return h.render(c, "saleStatus.html", data)
}

// AddSaleDelivery GET ?vat= muestra direcciones y ventas del cliente; con addr_id y sale_id, registra la entrega.
func (h *PageHandler) AddSaleDelivery(c *fiber.Ctx) error {
	data := pageData{Title: "Sale Delivery", VAT: c.FormValue("vat")}
	addrID, okAddr := intParam(c, "addr_id")
	saleID, okSale := intParam(c, "sale_id")
	if okAddr && okSale {
		if _, err := h.sales.AddSaleDelivery(c.UserContext(), saleID, addrID); err != nil {
			msg, domainErr := userMessage(err)
			if !domainErr {
				return err
			}
			data.Errors = append(data.Errors, msg)
		} else {
			data.Info = []string{"Sale delivery added"}
		}
	}

	vat, ok := intParam(c, "vat")
	if !ok {
		return h.render(c, "saleDelivery.html", data)
	}
	addrs, err := h.customers.GetAllAddresses(c.UserContext(), vat)
	if err != nil {
		return h.fail(c, "saleDelivery.html", data, err)
	}
	sales, err := h.sales.GetSaleByCustomerVat(c.UserContext(), vat)
	if err != nil {
		return h.fail(c, "saleDelivery.html", data, err)
	}
	data.Addresses = addrs.Addresses
	data.Sales = toSaleViews(sales)
	return h.render(c, "saleDelivery.html", data)
}

// GetSaleDeliveries GET GetSaleDeliveryPageController?vat=
func (h *PageHandler) GetSaleDeliveries(c *fiber.Ctx) error {
	data := pageData{Title: "Sale Deliveries", VAT: c.FormValue("vat")}
	vat, ok := intParam(c, "vat")
	if !ok {
		return h.render(c, "deliveries.html", data)
	}
	list, err := h.sales.GetSalesDeliveryByVat(c.UserContext(), vat)
	if err != nil {
		return h.fail(c, "deliveries.html", data, err)
	}
	data.Deliveries = list.SalesDelivery
	return h.render(c, "deliveries.html", data)
}
