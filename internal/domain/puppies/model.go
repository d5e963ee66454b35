package puppies

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Puppy es un registro del dataset. Inmutable una vez cargado.
type Puppy struct {
	ID          string
	Name        string
	Description string

	ImageURL string   // opcional
	Age      *float64 // años (fraccional), opcional
	Location string   // opcional
}

// AgeMonths redondea la edad a meses. ok=false si no hay edad o no es finita.
func (p Puppy) AgeMonths() (int, bool) {
	if p.Age == nil {
		return 0, false
	}
	a := *p.Age
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, false
	}
	return int(math.Round(a * 12)), true
}

// Meta arma la línea "N months • location" del detalle.
// 0 meses se omite igual que una edad ausente.
func (p Puppy) Meta() string {
	parts := make([]string, 0, 2)
	if m, ok := p.AgeMonths(); ok && m != 0 {
		if m == 1 {
			parts = append(parts, "1 month")
		} else {
			parts = append(parts, strconv.Itoa(m)+" months")
		}
	}
	if loc := strings.TrimSpace(p.Location); loc != "" {
		parts = append(parts, loc)
	}
	return strings.Join(parts, " • ")
}

// Initial se usa como placeholder cuando no hay imagen.
func (p Puppy) Initial() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// Page es el resultado de un fetch paginado.
// NextCursor vacío = dataset agotado.
type Page struct {
	Data       []Puppy
	NextCursor string
}

func (p Page) HasMore() bool { return p.NextCursor != "" }

// PageRequest son los parámetros de un fetch. Limit <= 0 usa DefaultLimit.
type PageRequest struct {
	Cursor string
	Limit  int
}

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

func (r PageRequest) normalized() PageRequest {
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	r.Cursor = strings.TrimSpace(r.Cursor)
	return r
}

// SameDataset compara dos datasets registro a registro, en orden.
func SameDataset(a, b []Puppy) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !samePuppy(a[i], b[i]) {
			return false
		}
	}
	return true
}

func samePuppy(a, b Puppy) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Description != b.Description ||
		a.ImageURL != b.ImageURL || a.Location != b.Location {
		return false
	}
	if a.Age == nil || b.Age == nil {
		return a.Age == nil && b.Age == nil
	}
	return *a.Age == *b.Age
}
