package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		minStock int
		want     StockStatus
	}{
		{"zero stock is out regardless of threshold", 0, 5, StatusOutOfStock},
		{"zero stock with zero threshold", 0, 0, StatusOutOfStock},
		{"below threshold", 3, 5, StatusLowStock},
		{"exactly at threshold is low", 5, 5, StatusLowStock},
		{"one above threshold is in stock", 6, 5, StatusInStock},
		{"positive stock with zero threshold", 1, 0, StatusInStock},
		{"large stock", 10000, 5, StatusInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stock, tt.minStock))
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	// Same inputs, same answer, every time.
	for i := 0; i < 100; i++ {
		assert.Equal(t, StatusLowStock, Classify(5, 5))
	}
}

func TestProductStatus(t *testing.T) {
	p := &Product{Stock: 0, MinStock: 5}
	assert.Equal(t, StatusOutOfStock, p.Status())

	p.Stock = 4
	assert.Equal(t, StatusLowStock, p.Status())

	p.Stock = 12
	assert.Equal(t, StatusInStock, p.Status())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Camisetas", "camisetas"},
		{"Ropa de Bebé", "ropa-de-bebe"},
		{"  Pantalones   Cortos  ", "pantalones-cortos"},
		{"Niños & Niñas", "ninos-ninas"},
		{"---", ""},
		{"", ""},
		{"Año 2024!", "ano-2024"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Camisetas", "3T", "RED")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "CAM", parts[0])
	assert.Equal(t, "3", parts[1], "size code strips the T marker")
	assert.Equal(t, "RED", parts[2])
	assert.Len(t, parts[3], 8)
	assert.Equal(t, strings.ToUpper(parts[3]), parts[3])
}

func TestGenerateSKUInfantSize(t *testing.T) {
	sku := GenerateSKU("Vestidos", "0-3m", "BLUE")
	assert.True(t, strings.HasPrefix(sku, "VES-03m-BLU-"), "got %s", sku)
}

func TestGenerateSKUUnique(t *testing.T) {
	a := GenerateSKU("Camisetas", "M", "RED")
	b := GenerateSKU("Camisetas", "M", "RED")
	assert.NotEqual(t, a, b)
}

func TestGenerateSKUEmptyCategory(t *testing.T) {
	sku := GenerateSKU("", "XL", "BLACK")
	assert.True(t, strings.HasPrefix(sku, "GEN-XL-BLA-"), "got %s", sku)
}

func TestProductMarshalJSON(t *testing.T) {
	p := Product{
		SKU:      "CAM-3-RED-ABCD1234",
		Name:     "Camiseta básica",
		Size:     "3T",
		Color:    "RED",
		Price:    150,
		Cost:     100,
		Stock:    4,
		MinStock: 5,
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "LOW_STOCK", got["stock_status"])
	assert.Equal(t, true, got["is_low_stock"])
	assert.Equal(t, false, got["is_out_of_stock"])
	assert.Equal(t, "3 años", got["size_display"])
	assert.Equal(t, "Rojo", got["color_display"])
	assert.InDelta(t, 50.0, got["profit_margin"], 0.001)
}

func TestProductMarshalJSONNoCost(t *testing.T) {
	p := Product{SKU: "X", Size: "M", Color: "RED", Price: 100, Stock: 10, MinStock: 5}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "IN_STOCK", got["stock_status"])
	_, hasMargin := got["profit_margin"]
	assert.False(t, hasMargin, "margin is omitted when cost is unknown")
}

func TestProfitMargin(t *testing.T) {
	p := &Product{Price: 150, Cost: 100}
	m := p.ProfitMargin()
	require.NotNil(t, m)
	assert.InDelta(t, 50.0, *m, 0.001)

	p.Cost = 0
	assert.Nil(t, p.ProfitMargin())
}

func TestValidSizeAndColor(t *testing.T) {
	assert.True(t, ValidSize("0-3m"))
	assert.True(t, ValidSize("8T"))
	assert.True(t, ValidSize("XL"))
	assert.False(t, ValidSize("XXL"))
	assert.False(t, ValidSize(""))

	assert.True(t, ValidColor("MULTICOLOR"))
	assert.True(t, ValidColor("NAVY"))
	assert.False(t, ValidColor("rojo"))
	assert.False(t, ValidColor(""))
}
