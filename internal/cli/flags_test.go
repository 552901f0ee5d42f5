package cli

import (
	"testing"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFlag_Set(t *testing.T) {
	var f customFlag
	require.NoError(t, f.Set("Fotos de producto=120.5"))
	require.NoError(t, f.Set("Dominio = 15"))
	require.NoError(t, f.Set("a=b=3"))

	require.Len(t, f.items, 3)
	assert.Equal(t, customItem{Name: "Fotos de producto", Price: 120.5}, f.items[0])
	assert.Equal(t, customItem{Name: "Dominio", Price: 15}, f.items[1])
	assert.Equal(t, customItem{Name: "a=b", Price: 3}, f.items[2])
	assert.Equal(t, "Fotos de producto=120.5,Dominio=15,a=b=3", f.String())
}

func TestCustomFlag_Invalid(t *testing.T) {
	var f customFlag
	assert.Error(t, f.Set("Fotos"))
	assert.Error(t, f.Set("=10"))
	assert.Error(t, f.Set("Fotos=diez"))
	assert.Empty(t, f.items)
}

func TestTierFlag_Set(t *testing.T) {
	var f tierFlag
	require.NoError(t, f.Set("Básico=blog"))
	require.NoError(t, f.Set("Pro = blog, shop ,"))

	require.Len(t, f.tiers, 2)
	assert.Equal(t, tierSpec{Name: "Pro", IDs: []string{"blog", "shop"}}, f.tiers[1])
	assert.Equal(t, "Básico=blog;Pro=blog,shop", f.String())

	assert.Error(t, f.Set("Vacío="))
	assert.Error(t, f.Set("sin-igual"))
	assert.Error(t, f.Set("=blog"))
}

func TestModeFlag_Set(t *testing.T) {
	var f modeFlag
	require.NoError(t, f.Set(" Mensual "))
	assert.Equal(t, domain.ModeMensual, f.mode)
	assert.Error(t, f.Set("anual"))
	assert.Equal(t, domain.ModeMensual, f.mode)
}

func TestParseIndex(t *testing.T) {
	i, err := parseIndex("2")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = parseIndex("-1")
	assert.Error(t, err)
	_, err = parseIndex("dos")
	assert.Error(t, err)
}
