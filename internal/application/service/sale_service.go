package service

import (
	"context"
	"time"

	"github.com/jhoicas/webapp-acceptance/internal/application/dto"
	"github.com/jhoicas/webapp-acceptance/internal/domain"
	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
)

// SaleService operaciones sobre ventas y entregas.
type SaleService struct {
	repos repository.Repos
	now   func() time.Time
}

// SaleOption configura un SaleService.
type SaleOption func(*SaleService)

// WithClock fija el reloj usado para la fecha de las ventas nuevas.
func WithClock(now func() time.Time) SaleOption {
	return func(s *SaleService) { s.now = now }
}

// NewSaleService construye el servicio.
func NewSaleService(repos repository.Repos, opts ...SaleOption) *SaleService {
	s := &SaleService{repos: repos, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddSale abre una venta para el cliente con fecha de hoy y total cero. Devuelve su id.
func (s *SaleService) AddSale(ctx context.Context, vat int) (int, error) {
	if !domain.ValidVAT(vat) {
		return 0, domain.ErrInvalidInput
	}
	c, err := s.repos.Customers.GetByVAT(ctx, vat)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, domain.ErrCustomerNotFound
	}
	sale := entity.NewSale(vat, today(s.now()))
	if err := s.repos.Sales.Create(ctx, sale); err != nil {
		return 0, err
	}
	return sale.ID, nil
}

// UpdateSale cierra la venta. ErrSaleNotFound si no existe.
func (s *SaleService) UpdateSale(ctx context.Context, id int) error {
	sale, err := s.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrSaleNotFound
	}
	sale.Close()
	return s.repos.Sales.UpdateStatus(ctx, sale.ID, sale.Status)
}

// HasSale indica si existe la venta.
func (s *SaleService) HasSale(ctx context.Context, id int) (bool, error) {
	sale, err := s.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return sale != nil, nil
}

// GetSaleByCustomerVat ventas de un cliente; vacío si no tiene o ya no existe.
func (s *SaleService) GetSaleByCustomerVat(ctx context.Context, vat int) (dto.SalesDTO, error) {
	if !domain.ValidVAT(vat) {
		return dto.SalesDTO{}, domain.ErrInvalidInput
	}
	list, err := s.repos.Sales.ListByCustomer(ctx, vat)
	if err != nil {
		return dto.SalesDTO{}, err
	}
	return toSalesDTO(list), nil
}

// GetAllSales todas las ventas.
func (s *SaleService) GetAllSales(ctx context.Context) (dto.SalesDTO, error) {
	list, err := s.repos.Sales.List(ctx)
	if err != nil {
		return dto.SalesDTO{}, err
	}
	return toSalesDTO(list), nil
}

// AddSaleDelivery registra la entrega de una venta en una dirección. El NIF de la entrega
// es el del dueño de la venta. Devuelve el id asignado.
func (s *SaleService) AddSaleDelivery(ctx context.Context, saleID, addressID int) (int, error) {
	sale, err := s.repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return 0, err
	}
	if sale == nil {
		return 0, domain.ErrSaleNotFound
	}
	addr, err := s.repos.Addresses.GetByID(ctx, addressID)
	if err != nil {
		return 0, err
	}
	if addr == nil {
		return 0, domain.ErrAddressNotFound
	}
	d := &entity.SaleDelivery{SaleID: sale.ID, AddressID: addr.ID, CustomerVAT: sale.CustomerVAT}
	if err := s.repos.Deliveries.Create(ctx, d); err != nil {
		return 0, err
	}
	return d.ID, nil
}

// GetSalesDeliveryByVat entregas registradas con ese NIF.
func (s *SaleService) GetSalesDeliveryByVat(ctx context.Context, vat int) (dto.SalesDeliveryDTO, error) {
	if !domain.ValidVAT(vat) {
		return dto.SalesDeliveryDTO{}, domain.ErrInvalidInput
	}
	list, err := s.repos.Deliveries.ListByCustomer(ctx, vat)
	if err != nil {
		return dto.SalesDeliveryDTO{}, err
	}
	out := dto.SalesDeliveryDTO{SalesDelivery: make([]dto.SaleDeliveryDTO, 0, len(list))}
	for _, d := range list {
		out.SalesDelivery = append(out.SalesDelivery, dto.SaleDeliveryDTO{
			ID:          d.ID,
			SaleID:      d.SaleID,
			AddressID:   d.AddressID,
			CustomerVAT: d.CustomerVAT,
		})
	}
	return out, nil
}

func toSalesDTO(list []*entity.Sale) dto.SalesDTO {
	out := dto.SalesDTO{Sales: make([]dto.SaleDTO, 0, len(list))}
	for _, s := range list {
		out.Sales = append(out.Sales, dto.SaleDTO{
			ID:          s.ID,
			Date:        s.Date,
			Total:       s.Total,
			Status:      string(s.Status),
			CustomerVAT: s.CustomerVAT,
		})
	}
	return out
}

func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
