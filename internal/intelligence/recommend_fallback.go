package intelligence

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/domain"
)

// maxDeterministicItems caps the keyword matches returned without a model.
const maxDeterministicItems = 5

// DeterministicRecommend matches the words of brief against the names and
// descriptions of the entries selectable in mode. At most one exclusive
// entry is suggested, the best scoring one.
func DeterministicRecommend(brief string, store *catalog.Store, mode domain.SaleMode) domain.Recommendation {
	terms := briefTerms(brief)
	if len(terms) == 0 {
		return domain.Recommendation{Message: "Sin sugerencias automáticas."}
	}

	type scored struct {
		ref  domain.RecommendedItem
		hits int
	}
	var matches []scored
	consider := func(id, name, desc string, t domain.ItemType) {
		text := strings.ToLower(name + " " + desc)
		var hit []string
		for _, term := range terms {
			if strings.Contains(text, term) {
				hit = append(hit, term)
			}
		}
		if len(hit) == 0 {
			return
		}
		matches = append(matches, scored{
			ref: domain.RecommendedItem{
				ID:     id,
				Type:   t,
				Reason: "coincide con: " + strings.Join(hit, ", "),
			},
			hits: len(hit),
		})
	}

	cat := store.Catalog()
	if mode == domain.ModeMensual {
		for _, p := range cat.Plans {
			consider(p.ID, p.Name, p.Description, domain.ItemPlan)
		}
		for _, it := range cat.PlanServices() {
			consider(it.ID, it.Name, it.Description, domain.ItemPlanService)
		}
	} else {
		for _, c := range cat.Categories {
			t := domain.ItemStandard
			if c.IsExclusive {
				t = domain.ItemPackage
			}
			for _, it := range c.Items {
				consider(it.ID, it.Name, it.Description, t)
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].hits > matches[j].hits
	})

	rec := domain.Recommendation{}
	exclusive := false
	for _, m := range matches {
		if len(rec.Items) == maxDeterministicItems {
			break
		}
		if m.ref.Type.IsExclusive() {
			if exclusive {
				continue
			}
			exclusive = true
		}
		rec.Items = append(rec.Items, m.ref)
	}

	if len(rec.Items) == 0 {
		rec.Message = "No encontré servicios del catálogo relacionados con la consulta."
		return rec
	}
	rec.Message = fmt.Sprintf("Servicios del catálogo relacionados con la consulta (%d):", len(rec.Items))
	return rec
}

// briefTerms lowercases brief and keeps words of three or more letters,
// without duplicates.
func briefTerms(brief string) []string {
	words := strings.FieldsFunc(strings.ToLower(brief), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := map[string]bool{}
	var out []string
	for _, w := range words {
		if len([]rune(w)) < 3 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
