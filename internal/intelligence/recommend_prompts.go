package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/domain"
)

const recommendSystemPreamble = `Eres un asistente comercial que ayuda a preparar propuestas de servicios.
Lee la necesidad del cliente y sugiere servicios del catálogo.

Responde SOLO con un objeto JSON con estos campos:
- message: respuesta breve para el comercial, en español
- items: array de objetos {id, type, reason}
  - id: DEBE ser un id de la lista de abajo, copiado exactamente
  - type: uno de [%s]
  - reason: una frase explicando la sugerencia

REGLAS:
1. Nunca inventes ids; si nada encaja, devuelve items vacío y explica por qué en message
2. Como máximo un elemento de tipo %s
3. Sin markdown ni texto fuera del objeto JSON`

// buildRecommendSystemPrompt lists the catalog entries selectable in mode.
// Puntual offers packages and standard services; mensual offers plans and
// the services their budget can be spent on.
func buildRecommendSystemPrompt(store *catalog.Store, mode domain.SaleMode) string {
	cat := store.Catalog()
	var b strings.Builder

	switch mode {
	case domain.ModeMensual:
		fmt.Fprintf(&b, recommendSystemPreamble, "plan, plan-service", domain.ItemPlan)
		b.WriteString("\n\n## Planes mensuales\n")
		for _, p := range cat.Plans {
			fmt.Fprintf(&b, "- id=%s type=plan nombre=%q precio=%.2f puntos=%d", p.ID, p.Name, p.Price, p.Points)
			writeDescription(&b, p.Description)
		}
		b.WriteString("\n## Servicios del plan (consumen puntos)\n")
		for _, it := range cat.PlanServices() {
			fmt.Fprintf(&b, "- id=%s type=plan-service nombre=%q puntos=%d", it.ID, it.Name, it.PointCost)
			writeDescription(&b, it.Description)
		}
	default:
		fmt.Fprintf(&b, recommendSystemPreamble, "package, standard", domain.ItemPackage)
		b.WriteString("\n\nUn paquete excluye cualquier servicio individual.\n")
		for _, c := range cat.Categories {
			t := domain.ItemStandard
			if c.IsExclusive {
				t = domain.ItemPackage
			}
			fmt.Fprintf(&b, "\n## %s\n", c.Name)
			for _, it := range c.Items {
				fmt.Fprintf(&b, "- id=%s type=%s nombre=%q precio=%.2f", it.ID, t, it.Name, it.Price)
				writeDescription(&b, it.Description)
			}
		}
	}
	return b.String()
}

func writeDescription(b *strings.Builder, desc string) {
	if desc = strings.TrimSpace(desc); desc != "" {
		fmt.Fprintf(b, " descripción=%q", desc)
	}
	b.WriteString("\n")
}
