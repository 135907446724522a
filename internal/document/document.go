package document

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/payment"
)

// Document is the deliverable issued once a paid flow completes.
type Document struct {
	Reference   string
	TramiteName string
	IssuedAt    time.Time
	Receipt     string
}

// Stage is one step of the generation progress shown to the user.
// Pacing only; the flow does not depend on it.
type Stage struct {
	Percent int
	Label   string
}

// Stages returns the generation progress script in order.
func Stages() []Stage {
	return []Stage{
		{Percent: 10, Label: "Preparando..."},
		{Percent: 45, Label: "Consultando sistemas..."},
		{Percent: 80, Label: "Generando PDF..."},
		{Percent: 100, Label: "Documento listo"},
	}
}

var copPrinter = message.NewPrinter(language.Spanish)

// FormatCOP renders a peso amount the way receipts show it.
func FormatCOP(amount int64) string {
	return copPrinter.Sprintf("$ %d COP", amount)
}

// Receipt renders the deterministic pricing breakdown for a trámite.
// Same inputs always produce the same text.
func Receipt(t catalog.Tramite, fee int64, taxRate float64) string {
	tax := payment.Tax(t.PriceCOP, fee, taxRate)
	total := payment.ComputeTotal(t.PriceCOP, fee, taxRate)

	var b strings.Builder

	fmt.Fprintf(&b, "Trámite: %s\n", t.Name)
	fmt.Fprintf(&b, "Valor del trámite: %s\n", FormatCOP(t.PriceCOP))
	fmt.Fprintf(&b, "Tarifa de servicio: %s\n", FormatCOP(fee))
	fmt.Fprintf(&b, "IVA (%.0f%%): %s\n", taxRate*100, FormatCOP(tax))
	fmt.Fprintf(&b, "Total pagado: %s\n", FormatCOP(total))

	return b.String()
}

// Build assembles the issued document for a completed flow.
func Build(reference string, t catalog.Tramite, fee int64, taxRate float64, issuedAt time.Time) Document {
	return Document{
		Reference:   reference,
		TramiteName: t.Name,
		IssuedAt:    issuedAt,
		Receipt:     Receipt(t, fee, taxRate),
	}
}
