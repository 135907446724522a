package view

import (
	"time"

	"github.com/tramitefacil/tramitefacil/internal/document"
)

// FormatAmount renders a peso amount the way the receipt does.
func FormatAmount(cop int64) string {
	return document.FormatCOP(cop)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
