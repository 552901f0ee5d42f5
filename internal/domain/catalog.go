package domain

import "sort"

// LocalCategoryKey is the synthetic category holding user-added local services.
const LocalCategoryKey = "local"

// CatalogItem is a sellable service. PointCost is zero for items that are
// not usable under a plan budget.
type CatalogItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	PointCost   int     `json:"pointCost,omitempty" yaml:"pointCost,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Category groups catalog items. Exclusive categories hold one-of-N packages.
type Category struct {
	Key         string        `json:"-" yaml:"-"`
	Name        string        `json:"name" yaml:"name"`
	IsExclusive bool          `json:"isExclusive" yaml:"isExclusive"`
	Items       []CatalogItem `json:"items" yaml:"items"`
}

// Plan is a monthly subscription with a points budget.
type Plan struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Points      int     `json:"points" yaml:"points"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Catalog is the session-immutable set of categories and plans.
type Catalog struct {
	Categories []Category
	Plans      []Plan
}

// NewCatalog builds a Catalog from a keyed category map. Categories are
// ordered by key so iteration is deterministic.
func NewCatalog(categories map[string]Category, plans []Plan) *Catalog {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := &Catalog{Plans: plans}
	for _, k := range keys {
		cat := categories[k]
		cat.Key = k
		c.Categories = append(c.Categories, cat)
	}
	return c
}

// FindItem returns the item with the given id and the category holding it.
func (c *Catalog) FindItem(id string) (*CatalogItem, *Category) {
	for i := range c.Categories {
		cat := &c.Categories[i]
		for j := range cat.Items {
			if cat.Items[j].ID == id {
				return &cat.Items[j], cat
			}
		}
	}
	return nil, nil
}

// FindPackage returns the item only if it belongs to an exclusive category.
func (c *Catalog) FindPackage(id string) *CatalogItem {
	item, cat := c.FindItem(id)
	if item == nil || !cat.IsExclusive {
		return nil
	}
	return item
}

// FindStandard returns the item only if it belongs to a non-exclusive category.
func (c *Catalog) FindStandard(id string) *CatalogItem {
	item, cat := c.FindItem(id)
	if item == nil || cat.IsExclusive {
		return nil
	}
	return item
}

// FindPlan returns the plan with the given id, or nil.
func (c *Catalog) FindPlan(id string) *Plan {
	for i := range c.Plans {
		if c.Plans[i].ID == id {
			return &c.Plans[i]
		}
	}
	return nil
}

// PlanServices returns every item of every non-exclusive category, in
// category order. These are the services a plan budget can be spent on.
func (c *Catalog) PlanServices() []CatalogItem {
	var out []CatalogItem
	for _, cat := range c.Categories {
		if cat.IsExclusive {
			continue
		}
		out = append(out, cat.Items...)
	}
	return out
}

// WithLocal returns a copy of the catalog with the given local services
// appended as the non-exclusive "local" category. The receiver is unchanged.
func (c *Catalog) WithLocal(local []CatalogItem) *Catalog {
	out := &Catalog{
		Categories: make([]Category, 0, len(c.Categories)+1),
		Plans:      c.Plans,
	}
	for _, cat := range c.Categories {
		if cat.Key == LocalCategoryKey {
			continue
		}
		out.Categories = append(out.Categories, cat)
	}
	if len(local) > 0 {
		out.Categories = append(out.Categories, Category{
			Key:   LocalCategoryKey,
			Name:  "Servicios locales",
			Items: append([]CatalogItem(nil), local...),
		})
	}
	return out
}
