package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/webapp-acceptance/internal/application/service"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// DefaultContextPath prefijo bajo el que la aplicación real publica sus páginas.
const DefaultContextPath = "/VVS_webappdemo"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Customers   *service.CustomerService
	Sales       *service.SaleService
	ContextPath string
	Log         *logger.Logger
}

// NewApp construye la aplicación Fiber completa: middlewares y páginas bajo el context path.
func NewApp(appName string, deps RouterDeps) (*fiber.App, error) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               appName,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
		StrictRouting:         true,
		ErrorHandler:          errorHandler(deps.Log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Log))

	if err := Router(app, deps); err != nil {
		return nil, err
	}
	return app, nil
}

// Router registra las páginas del front end.
func Router(app *fiber.App, deps RouterDeps) error {
	h, err := NewPageHandler(deps.Customers, deps.Sales, deps.Log)
	if err != nil {
		return err
	}

	prefix := "/" + strings.Trim(deps.ContextPath, "/")
	if prefix == "/" {
		prefix = ""
	}
	// Sin barra final las URLs relativas de las páginas no resolverían bajo el prefijo.
	if prefix != "" {
		app.Get(prefix, func(c *fiber.Ctx) error {
			return c.Redirect(prefix+"/", fiber.StatusMovedPermanently)
		})
	}

	pages := app.Group(prefix, NoStore())

	index := h.Static("index.html", "VVS webappdemo")
	pages.Get("/", index)
	pages.Get("/index.html", index)
	pages.Get("/addCustomer.html", h.Static("addCustomer.html", "Enter Name"))
	pages.Get("/addAddressToCustomer.html", h.Static("addAddressToCustomer.html", "Enter Address"))
	pages.Get("/addSale.html", h.Static("addSale.html", "New Sale"))

	// Los controladores aceptan GET y POST.
	handle := func(path string, fn fiber.Handler) {
		pages.Get(path, fn)
		pages.Post(path, fn)
	}
	handle("/AddCustomerPageController", h.AddCustomer)
	handle("/RemoveCustomerPageController", h.RemoveCustomer)
	handle("/GetCustomerPageController", h.GetCustomer)
	handle("/GetAllCustomersPageController", h.GetAllCustomers)
	handle("/AddAddressToCustomerPageController", h.AddAddressToCustomer)
	handle("/AddSalePageController", h.AddSale)
	handle("/GetSalePageController", h.GetSales)
	handle("/UpdateSaleStatusPageController", h.UpdateSaleStatus)
	handle("/AddSaleDeliveryPageController", h.AddSaleDelivery)
	handle("/GetSaleDeliveryPageController", h.GetSaleDeliveries)
	return nil
}
