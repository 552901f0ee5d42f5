package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/cotizador/internal/domain"
)

// FormatRecommendation renders the assistant reply and the suggested items.
// deterministic marks suggestions produced without the model.
func FormatRecommendation(rec domain.Recommendation, deterministic bool) string {
	var b strings.Builder
	if deterministic {
		b.WriteString(StyleYellow.Render("[sin asistente]") + " ")
	}
	b.WriteString(StyleFg.Render(rec.Message) + "\n")
	for _, it := range rec.Items {
		fmt.Fprintf(&b, "  %s %s %s", StyleGreen.Render("+"), it.ID, Dim(string(it.Type)))
		if it.Reason != "" {
			b.WriteString(Dim(" · " + it.Reason))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatRecommendationResult reports what applying a recommendation did.
func FormatRecommendationResult(applied, notFound []string, rejected map[string]error) string {
	var b strings.Builder
	if len(applied) > 0 {
		b.WriteString(StyleGreen.Render("Aplicado:") + " " + strings.Join(applied, ", ") + "\n")
	}
	if len(notFound) > 0 {
		b.WriteString(StyleYellow.Render("No encontrado en el catálogo:") + " " + strings.Join(notFound, ", ") + "\n")
	}
	ids := make([]string, 0, len(rejected))
	for id := range rejected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&b, "%s %s: %v\n", StyleRed.Render("Rechazado:"), id, rejected[id])
	}
	return b.String()
}
