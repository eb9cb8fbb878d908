package dto

import (
	"time"

	"github.com/jhoicas/kawok-pos/internal/domain"
)

// Límites de paginación.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y tope de limit.
func (p PageRequest) Normalize(defaultLimit int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset desplazamiento para la consulta.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination calcula el número de páginas.
func NewPagination(p PageRequest, total int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// dateLayout formato de fromDate/toDate en query params.
const dateLayout = "2006-01-02"

// ParseDateRange interpreta fromDate/toDate (YYYY-MM-DD, UTC).
// toDate es inclusivo: el límite devuelto es el inicio del día siguiente (exclusivo).
func ParseDateRange(fromDate, toDate string) (from, to *time.Time, err error) {
	v := &domain.ValidationError{}
	if fromDate != "" {
		t, perr := time.Parse(dateLayout, fromDate)
		if perr != nil {
			v.Add("fromDate", "formato esperado YYYY-MM-DD")
		} else {
			from = &t
		}
	}
	if toDate != "" {
		t, perr := time.Parse(dateLayout, toDate)
		if perr != nil {
			v.Add("toDate", "formato esperado YYYY-MM-DD")
		} else {
			end := t.AddDate(0, 0, 1)
			to = &end
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
