// Package query normaliza los criterios de listado (rango de fechas, búsqueda,
// rango de totales, ordenamiento, paginación) en filtros tipados que consumen
// por igual los listados de ventas, devoluciones y cobranza.
//
// Contrato: un valor desconocido o malformado produce ErrInvalidFilter (nunca
// se ignora en silencio); min_total > max_total o start_date > end_date
// producen ErrInvalidRange; las claves de ordenamiento se restringen a una
// lista blanca por entidad.
package query

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lapanasystem/lapana-api/internal/domain"
)

// DateLayout formato aceptado para fechas en query params.
const DateLayout = "2006-01-02"

// Ordering clave de orden con dirección. El signo "-" delante de la clave
// indica descendente (estilo ?ordering=-total).
type Ordering struct {
	Key  string
	Desc bool
}

// Page límite y desplazamiento ya saneados.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage aplica los valores por defecto (limit 20, máx 100).
func DefaultPage(limit, offset int) Page {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// DateRange rango [Start, End] inclusivo. Punteros nil = sin límite.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// TotalRange rango [Min, Max] sobre el total. Punteros nil = sin límite.
type TotalRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// ParseOrdering valida una clave de ordenamiento contra la lista blanca de la
// entidad. Acepta "" (sin orden explícito, el repo aplica su orden natural),
// "clave" o "-clave".
func ParseOrdering(raw string, allowed ...string) (Ordering, error) {
	if raw == "" {
		return Ordering{}, nil
	}
	o := Ordering{Key: raw}
	if strings.HasPrefix(raw, "-") {
		o.Key = raw[1:]
		o.Desc = true
	}
	for _, k := range allowed {
		if o.Key == k {
			return o, nil
		}
	}
	return Ordering{}, domain.ErrInvalidFilter
}

// ParseDate interpreta una fecha YYYY-MM-DD. Vacío devuelve nil.
func ParseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	return &t, nil
}

// ParseDateRange construye el rango desde start/end y/o una fecha puntual.
// Una fecha puntual (date) cubre el día completo e ignora hora. start > end
// produce ErrInvalidRange.
func ParseDateRange(start, end, date string) (DateRange, error) {
	if date != "" {
		day, err := ParseDate(date)
		if err != nil {
			return DateRange{}, err
		}
		endOfDay := day.Add(24*time.Hour - time.Nanosecond)
		return DateRange{Start: day, End: &endOfDay}, nil
	}
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	if s != nil && e != nil && s.After(*e) {
		return DateRange{}, domain.ErrInvalidRange
	}
	if e != nil {
		// Rango inclusivo: el límite superior cubre el día completo.
		endOfDay := e.Add(24*time.Hour - time.Nanosecond)
		e = &endOfDay
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseTotalRange construye el rango de totales. Un valor no numérico produce
// ErrInvalidFilter; min > max produce ErrInvalidRange.
func ParseTotalRange(minRaw, maxRaw string) (TotalRange, error) {
	var r TotalRange
	if minRaw != "" {
		d, err := decimal.NewFromString(minRaw)
		if err != nil {
			return TotalRange{}, domain.ErrInvalidFilter
		}
		r.Min = &d
	}
	if maxRaw != "" {
		d, err := decimal.NewFromString(maxRaw)
		if err != nil {
			return TotalRange{}, domain.ErrInvalidFilter
		}
		r.Max = &d
	}
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return TotalRange{}, domain.ErrInvalidRange
	}
	return r, nil
}
