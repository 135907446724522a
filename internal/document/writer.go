package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Render produces the full text of the issued document. Same document,
// same text.
func Render(doc Document) string {
	var b strings.Builder

	b.WriteString("TRÁMITE FÁCIL\n")
	b.WriteString("Documento oficial\n\n")

	fmt.Fprintf(&b, "Referencia: %s\n", doc.Reference)
	fmt.Fprintf(&b, "Fecha de expedición: %s\n\n", doc.IssuedAt.Format("2006-01-02"))

	b.WriteString(doc.Receipt)

	return b.String()
}

// Save writes the issued document to outputDir so the user keeps a
// copy after the session ends. Returns the written path.
func Save(outputDir string, doc Document) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, doc.Reference+".txt")

	if err := os.WriteFile(path, []byte(Render(doc)), 0o644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}

	return path, nil
}
