// Package webapp recorre las páginas de la aplicación de clientes y ventas como lo haría un
// usuario: parte del índice, sigue enlaces, llena formularios y lee las tablas resultantes.
package webapp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jhoicas/webapp-acceptance/internal/browser"
)

// Enlaces del índice.
const (
	LinkAddCustomer    = "addCustomer.html"
	LinkGetCustomer    = "GetCustomerPageController"
	LinkAllCustomers   = "GetAllCustomersPageController"
	LinkRemoveCustomer = "RemoveCustomerPageController"
	LinkAddAddress     = "addAddressToCustomer.html"
	LinkAddSale        = "addSale.html"
	LinkGetSales       = "GetSalePageController"
	LinkCloseSale      = "UpdateSaleStatusPageController"
	LinkAddDelivery    = "AddSaleDeliveryPageController"
	LinkGetDeliveries  = "GetSaleDeliveryPageController"
)

// Títulos de los formularios de alta.
const (
	TitleIndex       = "VVS webappdemo"
	TitleAddCustomer = "Enter Name"
	TitleAddAddress  = "Enter Address"
	TitleAddSale     = "New Sale"
)

// ErrUnexpectedPage la navegación llegó a una página distinta de la esperada.
var ErrUnexpectedPage = errors.New("página inesperada")

// Client opera la aplicación a partir de su índice.
type Client struct {
	b     browser.Browser
	index *browser.Page
}

// New carga el índice en baseURL (que debe terminar en "/") y exige que responda 200.
func New(ctx context.Context, b browser.Browser, baseURL string) (*Client, error) {
	index, err := b.Open(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("webapp: índice %s: %w", baseURL, err)
	}
	if index.StatusCode != 200 {
		return nil, fmt.Errorf("webapp: índice %s respondió %d", baseURL, index.StatusCode)
	}
	return &Client{b: b, index: index}, nil
}

// Index página de inicio cargada al crear el cliente.
func (c *Client) Index() *browser.Page { return c.index }

// Browser navegador subyacente.
func (c *Client) Browser() browser.Browser { return c.b }

// Follow abre el enlace del índice cuyo href es link.
func (c *Client) Follow(ctx context.Context, link string) (*browser.Page, error) {
	ref, err := c.index.AnchorByHref(link)
	if err != nil {
		return nil, err
	}
	return c.b.Open(ctx, ref)
}

func (c *Client) open(ctx context.Context, link string, params url.Values) (*browser.Page, error) {
	ref, err := c.index.AnchorByHref(link)
	if err != nil {
		return nil, err
	}
	return c.b.Get(ctx, ref, params)
}

func (c *Client) followTitled(ctx context.Context, link, title string) (*browser.Page, error) {
	p, err := c.Follow(ctx, link)
	if err != nil {
		return nil, err
	}
	if got := p.Title(); got != title {
		return nil, fmt.Errorf("%w: %s tiene título %q, se esperaba %q", ErrUnexpectedPage, link, got, title)
	}
	return p, nil
}

// submitFirst llena el primer formulario de p con pairs y lo envía.
func (c *Client) submitFirst(ctx context.Context, p *browser.Page, pairs ...string) (*browser.Page, error) {
	f, err := p.Form(0)
	if err != nil {
		return nil, err
	}
	if err := f.Fill(pairs...); err != nil {
		return nil, err
	}
	return c.b.Submit(ctx, f)
}

// AddCustomer da de alta un cliente desde el formulario "Enter Name".
func (c *Client) AddCustomer(ctx context.Context, vat, designation, phone string) (*browser.Page, error) {
	p, err := c.followTitled(ctx, LinkAddCustomer, TitleAddCustomer)
	if err != nil {
		return nil, err
	}
	return c.submitFirst(ctx, p, "vat", vat, "designation", designation, "phone", phone)
}

// RemoveCustomer elimina el cliente vat.
func (c *Client) RemoveCustomer(ctx context.Context, vat string) (*browser.Page, error) {
	p, err := c.Follow(ctx, LinkRemoveCustomer)
	if err != nil {
		return nil, err
	}
	return c.submitFirst(ctx, p, "vat", vat)
}

// AddAddressToCustomer agrega una dirección al cliente vat.
func (c *Client) AddAddressToCustomer(ctx context.Context, vat string, a AddressRow) (*browser.Page, error) {
	p, err := c.followTitled(ctx, LinkAddAddress, TitleAddAddress)
	if err != nil {
		return nil, err
	}
	return c.submitFirst(ctx, p,
		"vat", vat,
		"address", a.Address,
		"door", a.Door,
		"postalCode", a.PostalCode,
		"locality", a.Locality,
	)
}

// AddSaleToCustomer abre una venta nueva para el cliente vat.
func (c *Client) AddSaleToCustomer(ctx context.Context, vat string) (*browser.Page, error) {
	p, err := c.followTitled(ctx, LinkAddSale, TitleAddSale)
	if err != nil {
		return nil, err
	}
	return c.submitFirst(ctx, p, "customerVat", vat)
}

// CustomerInfoPage página del cliente vat con sus direcciones.
func (c *Client) CustomerInfoPage(ctx context.Context, vat string) (*browser.Page, error) {
	return c.open(ctx, LinkGetCustomer, url.Values{"vat": {vat}})
}

// CustomerSalePage ventas del cliente vat.
func (c *Client) CustomerSalePage(ctx context.Context, vat string) (*browser.Page, error) {
	return c.open(ctx, LinkGetSales, url.Values{"customerVat": {vat}})
}

// DeliveriesPage entregas del cliente vat.
func (c *Client) DeliveriesPage(ctx context.Context, vat string) (*browser.Page, error) {
	return c.open(ctx, LinkGetDeliveries, url.Values{"vat": {vat}})
}

// rows decodifica la tabla id de p; una tabla ausente equivale a ninguna fila.
func rows[T any](p *browser.Page, id string, decode func([]string) (T, error)) ([]T, error) {
	t, ok := p.TableByID(id)
	if !ok {
		return nil, nil
	}
	return browser.Collect(browser.Records(t, decode))
}

// Customers lista completa de clientes.
func (c *Client) Customers(ctx context.Context) ([]CustomerRow, error) {
	p, err := c.Follow(ctx, LinkAllCustomers)
	if err != nil {
		return nil, err
	}
	return rows(p, TableClients, decodeCustomer)
}

// Addresses direcciones del cliente vat.
func (c *Client) Addresses(ctx context.Context, vat string) ([]AddressRow, error) {
	p, err := c.CustomerInfoPage(ctx, vat)
	if err != nil {
		return nil, err
	}
	return rows(p, TableAddressList, decodeAddress)
}

// Sales ventas del cliente vat.
func (c *Client) Sales(ctx context.Context, vat string) ([]SaleRow, error) {
	p, err := c.CustomerSalePage(ctx, vat)
	if err != nil {
		return nil, err
	}
	return rows(p, TableSaleList, decodeSale)
}

// AllSales todas las ventas, tal como las muestra la página de cierre.
func (c *Client) AllSales(ctx context.Context) ([]SaleRow, error) {
	p, err := c.Follow(ctx, LinkCloseSale)
	if err != nil {
		return nil, err
	}
	return rows(p, TableSaleList, decodeSale)
}

// ExistingSaleIDs ids de las ventas del cliente vat.
func (c *Client) ExistingSaleIDs(ctx context.Context, vat string) ([]int, error) {
	sales, err := c.Sales(ctx, vat)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// AddAndGetSale crea una venta para vat y devuelve la fila que no existía antes.
func (c *Client) AddAndGetSale(ctx context.Context, vat string) (SaleRow, error) {
	before, err := c.ExistingSaleIDs(ctx, vat)
	if err != nil {
		return SaleRow{}, err
	}
	if _, err := c.AddSaleToCustomer(ctx, vat); err != nil {
		return SaleRow{}, err
	}
	after, err := c.Sales(ctx, vat)
	if err != nil {
		return SaleRow{}, err
	}
	for _, s := range after {
		if !slices.Contains(before, s.ID) {
			return s, nil
		}
	}
	return SaleRow{}, fmt.Errorf("%w: venta nueva del cliente %s", browser.ErrNotFound, vat)
}

// CloseSale cierra la venta id.
func (c *Client) CloseSale(ctx context.Context, id int) (*browser.Page, error) {
	p, err := c.Follow(ctx, LinkCloseSale)
	if err != nil {
		return nil, err
	}
	return c.submitFirst(ctx, p, "id", strconv.Itoa(id))
}

// DeliveryForm página de alta de entregas de un cliente: sus direcciones y ventas.
type DeliveryForm struct {
	Page      *browser.Page
	Addresses []AddressOption
	Sales     []SaleRow
}

// AddSaleDeliveryPage abre la página de entregas del cliente vat.
func (c *Client) AddSaleDeliveryPage(ctx context.Context, vat string) (*DeliveryForm, error) {
	p, err := c.open(ctx, LinkAddDelivery, url.Values{"vat": {vat}})
	if err != nil {
		return nil, err
	}
	addrs, err := rows(p, TableAddressList, decodeAddressOption)
	if err != nil {
		return nil, err
	}
	sales, err := rows(p, TableSaleList, decodeSale)
	if err != nil {
		return nil, err
	}
	return &DeliveryForm{Page: p, Addresses: addrs, Sales: sales}, nil
}

// AddressID id de la dirección con ese texto y puerta.
func (f *DeliveryForm) AddressID(address, door string) (int, error) {
	for _, a := range f.Addresses {
		if a.Address == address && a.Door == door {
			return a.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: dirección %q %q", browser.ErrNotFound, address, door)
}

// AddSaleDelivery envía el formulario de entregas con la dirección y la venta indicadas.
func (c *Client) AddSaleDelivery(ctx context.Context, form *DeliveryForm, addressID, saleID int) (*browser.Page, error) {
	return c.submitFirst(ctx, form.Page,
		"addr_id", strconv.Itoa(addressID),
		"sale_id", strconv.Itoa(saleID),
	)
}

// Deliveries entregas del cliente vat.
func (c *Client) Deliveries(ctx context.Context, vat string) ([]DeliveryRow, error) {
	p, err := c.DeliveriesPage(ctx, vat)
	if err != nil {
		return nil, err
	}
	return rows(p, TableDeliveryList, decodeDelivery)
}

// ExistingDeliveryIDs ids de las entregas del cliente vat.
func (c *Client) ExistingDeliveryIDs(ctx context.Context, vat string) ([]int, error) {
	ds, err := c.Deliveries(ctx, vat)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(ds))
	for _, d := range ds {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// HasMessage indica si la página muestra msg (mensaje informativo o de error).
func HasMessage(p *browser.Page, msg string) bool {
	return strings.Contains(p.Text(), msg)
}
