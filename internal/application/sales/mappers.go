package sales

import (
	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
)

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	details := make([]dto.SaleDetailResponse, len(s.Details))
	for i, d := range s.Details {
		details[i] = dto.SaleDetailResponse{
			ID:        d.ID,
			Product:   d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal(),
		}
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		Customer:      s.CustomerID,
		Date:          s.Date,
		SaleType:      s.SaleType,
		PaymentMethod: s.PaymentMethod,
		DeliveryState: s.DeliveryState,
		PaymentState:  s.PaymentState,
		Total:         s.Total,
		PaidAmount:    s.PaidAmount,
		SaleDetails:   details,
	}
}

func toReturnResponse(r *entity.Return) *dto.ReturnResponse {
	details := make([]dto.ReturnDetailResponse, len(r.Details))
	for i, d := range r.Details {
		details[i] = dto.ReturnDetailResponse{
			ID:        d.ID,
			Product:   d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal(),
		}
	}
	return &dto.ReturnResponse{
		ID:            r.ID,
		Sale:          r.SaleID,
		Customer:      r.CustomerID,
		Date:          r.Date,
		Amount:        r.Amount,
		ReturnDetails: details,
	}
}

func toCollectResponse(c *entity.Collect) dto.CollectResponse {
	return dto.CollectResponse{
		ID:       c.ID,
		Customer: c.CustomerID,
		Sale:     c.SaleID,
		Amount:   c.Amount,
		Date:     c.Date,
	}
}

func toPendingCustomerResponse(p repository.PendingCustomer) dto.PendingCustomerResponse {
	return dto.PendingCustomerResponse{
		Customer:     p.CustomerID,
		Name:         p.Name,
		PhoneNumber:  p.PhoneNumber,
		Address:      p.Address,
		CustomerType: p.CustomerType,
		Balance:      p.Balance,
	}
}
