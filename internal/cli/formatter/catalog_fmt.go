package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/domain"
)

// FormatCatalog renders every category and the plans as tables.
func FormatCatalog(cat *domain.Catalog, money *Money) string {
	var b strings.Builder
	for _, c := range cat.Categories {
		title := c.Name
		if c.IsExclusive {
			title += " (paquetes)"
		}
		b.WriteString(Header(title) + "\n")
		rows := make([][]string, 0, len(c.Items))
		for _, it := range c.Items {
			pts := ""
			if it.PointCost > 0 {
				pts = fmt.Sprintf("%d", it.PointCost)
			}
			rows = append(rows, []string{Dim(it.ID), it.Name, money.Plain(it.Price), pts})
		}
		b.WriteString(Table{
			Headers:    []string{"ID", "SERVICIO", "PRECIO", "PUNTOS"},
			Rows:       rows,
			RightAlign: map[int]bool{2: true, 3: true},
		}.Render())
		b.WriteString("\n")
	}

	if len(cat.Plans) > 0 {
		b.WriteString(Header("Planes mensuales") + "\n")
		rows := make([][]string, 0, len(cat.Plans))
		for _, p := range cat.Plans {
			rows = append(rows, []string{Dim(p.ID), p.Name, money.Plain(p.Price), fmt.Sprintf("%d", p.Points)})
		}
		b.WriteString(Table{
			Headers:    []string{"ID", "PLAN", "PRECIO/MES", "PUNTOS"},
			Rows:       rows,
			RightAlign: map[int]bool{2: true, 3: true},
		}.Render())
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatLocalServices renders the user-defined local services.
func FormatLocalServices(items []domain.CatalogItem, money *Money) string {
	if len(items) == 0 {
		return Dim("No hay servicios locales.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		pts := ""
		if it.PointCost > 0 {
			pts = fmt.Sprintf("%d", it.PointCost)
		}
		rows = append(rows, []string{it.ID, it.Name, money.Plain(it.Price), pts, Truncate(it.Description, 40)})
	}
	return Table{
		Headers:    []string{"ID", "SERVICIO", "PRECIO", "PUNTOS", "DESCRIPCIÓN"},
		Rows:       rows,
		RightAlign: map[int]bool{2: true, 3: true},
	}.Render()
}
