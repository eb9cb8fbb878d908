package dto

import "github.com/jhoicas/kawok-pos/internal/domain/entity"

// FromProduct convierte la entidad en respuesta.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		BuyPrice:     p.BuyPrice,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
		ImagePath:    p.ImagePath,
		DateIn:       p.DateIn,
		DateOut:      p.DateOut,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromProducts convierte una lista (nunca devuelve nil).
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromMovement convierte un movimiento.
func FromMovement(m *entity.StockMovement) MovementResponse {
	out := MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Qty:           m.Qty,
		Delta:         m.Delta,
		Note:          m.Note,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
	if m.ProductName != "" {
		out.Product = &ProductRef{ID: m.ProductID, Name: m.ProductName, SKU: m.ProductSKU}
	}
	if m.UserName != "" {
		out.User = &UserRef{ID: m.CreatedBy, Name: m.UserName}
	}
	return out
}

// FromMovements convierte una lista de movimientos.
func FromMovements(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromSale convierte una venta con sus líneas.
func FromSale(s *entity.Sale) SaleResponse {
	out := SaleResponse{
		ID:            s.ID,
		InvoiceNo:     s.InvoiceNo,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		PaidAmount:    s.PaidAmount,
		ChangeAmount:  s.ChangeAmount,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		Items:         make([]SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		item := SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		}
		if it.ProductName != "" {
			item.Product = &ProductRef{ID: it.ProductID, Name: it.ProductName, SKU: it.ProductSKU}
		}
		out.Items = append(out.Items, item)
	}
	if s.UserName != "" {
		out.User = &UserRef{ID: s.CreatedBy, Name: s.UserName}
	}
	return out
}

// FromSales convierte una lista de ventas.
func FromSales(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromSale(s))
	}
	return out
}

// FromOpname convierte un conteo con sus líneas.
func FromOpname(o *entity.StockOpname) OpnameResponse {
	out := OpnameResponse{
		ID:          o.ID,
		PerformedBy: o.PerformedBy,
		Date:        o.Date,
		Adjusted:    o.Adjusted,
		Items:       make([]OpnameItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		item := OpnameItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			CountedQty: it.CountedQty,
			SystemQty:  it.SystemQty,
			Diff:       it.Diff,
		}
		if it.ProductName != "" {
			item.Product = &ProductRef{ID: it.ProductID, Name: it.ProductName, SKU: it.ProductSKU}
		}
		out.Items = append(out.Items, item)
	}
	if o.PerformerName != "" {
		out.User = &UserRef{ID: o.PerformedBy, Name: o.PerformerName}
	}
	return out
}

// FromUser convierte un usuario.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}
