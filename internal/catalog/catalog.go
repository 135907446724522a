package catalog

import (
	"errors"
	"fmt"
)

// ErrTramiteNotFound is returned by Get for an unknown trámite id.
var ErrTramiteNotFound = errors.New("tramite not found")

// InputKind classifies the input expected for a field.
type InputKind string

const (
	KindText   InputKind = "text"
	KindEmail  InputKind = "email"
	KindTel    InputKind = "tel"
	KindNumber InputKind = "number"
	KindDate   InputKind = "date"
)

// Field defines one question the flow must ask for a trámite.
type Field struct {
	ID          string
	Label       string
	Kind        InputKind
	Placeholder string
}

// Tramite describes one paperwork request available in the catalog.
// Instances are immutable after catalog load.
type Tramite struct {
	ID          string
	Name        string
	Description string
	PriceCOP    int64
	Benefit     string
	Fields      []Field
}

// Catalog is a read-only lookup over the available trámites.
type Catalog struct {
	tramites []Tramite
	byID     map[string]int
}

func New(tramites []Tramite) *Catalog {
	byID := make(map[string]int, len(tramites))
	for i, t := range tramites {
		byID[t.ID] = i
	}

	return &Catalog{tramites: tramites, byID: byID}
}

// Default returns a catalog loaded with the built-in trámites.
func Default() *Catalog {
	return New(tramites)
}

func (c *Catalog) List() []Tramite {
	out := make([]Tramite, len(c.tramites))
	copy(out, c.tramites)

	return out
}

func (c *Catalog) Get(id string) (Tramite, error) {
	i, ok := c.byID[id]
	if !ok {
		return Tramite{}, fmt.Errorf("%w: %q", ErrTramiteNotFound, id)
	}

	return c.tramites[i], nil
}
