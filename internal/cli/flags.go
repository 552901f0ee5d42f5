package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/spf13/pflag"
)

// customFlag collects repeated --custom "Name=Price" values.
type customFlag struct {
	items []customItem
}

type customItem struct {
	Name  string
	Price float64
}

var _ pflag.Value = (*customFlag)(nil)

func (f *customFlag) String() string {
	parts := make([]string, len(f.items))
	for i, it := range f.items {
		parts[i] = fmt.Sprintf("%s=%g", it.Name, it.Price)
	}
	return strings.Join(parts, ",")
}

func (f *customFlag) Set(v string) error {
	i := strings.LastIndex(v, "=")
	if i <= 0 {
		return fmt.Errorf("expected Name=Price, got %q", v)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(v[i+1:]), 64)
	if err != nil {
		return fmt.Errorf("invalid price in %q: %w", v, err)
	}
	f.items = append(f.items, customItem{Name: strings.TrimSpace(v[:i]), Price: price})
	return nil
}

func (f *customFlag) Type() string { return "name=price" }

// tierFlag collects repeated --tier "Name=id1,id2" values.
type tierFlag struct {
	tiers []tierSpec
}

type tierSpec struct {
	Name string
	IDs  []string
}

var _ pflag.Value = (*tierFlag)(nil)

func (f *tierFlag) String() string {
	parts := make([]string, len(f.tiers))
	for i, t := range f.tiers {
		parts[i] = t.Name + "=" + strings.Join(t.IDs, ",")
	}
	return strings.Join(parts, ";")
}

func (f *tierFlag) Set(v string) error {
	name, list, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected Name=id1,id2, got %q", v)
	}
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("tier %q has no services", name)
	}
	f.tiers = append(f.tiers, tierSpec{Name: strings.TrimSpace(name), IDs: ids})
	return nil
}

func (f *tierFlag) Type() string { return "name=ids" }

// modeFlag accepts only the known sale modes.
type modeFlag struct {
	mode domain.SaleMode
}

var _ pflag.Value = (*modeFlag)(nil)

func (f *modeFlag) String() string { return string(f.mode) }

func (f *modeFlag) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	if !domain.ValidSaleModes[v] {
		return fmt.Errorf("unknown mode %q (use %s or %s)", v, domain.ModePuntual, domain.ModeMensual)
	}
	f.mode = domain.SaleMode(v)
	return nil
}

func (f *modeFlag) Type() string { return "mode" }

// parseIndex parses a proposal list index argument.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid proposal index %q", arg)
	}
	return i, nil
}
