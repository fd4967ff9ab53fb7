package catalog

import (
	"strings"
	"testing"

	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testCatalogYaml = `
men:
  - id: 2
    name: Trail Shoe
    price: "80"
    image: men/2.jpg
  - id: 1
    name: Runner
    price: "50"
    image: men/1.jpg
kids:
  - id: 1
    name: Mini Runner
    price: "20.5"
    image: kids/1.jpg
`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(strings.NewReader(testCatalogYaml))
	require.NoError(t, err)
	return c
}

func TestGet(t *testing.T) {
	c := loadTestCatalog(t)

	p, err := c.Get("men", 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Runner", p.Name)
	require.Equal(t, Men, p.Category)
	require.True(t, decimal.NewFromInt(50).Equal(p.Price))

	p, err = c.Get("women", 1)
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = c.Get("men", 99)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestGetUnknownCategory(t *testing.T) {
	c := loadTestCatalog(t)

	p, err := c.Get("pets", 1)
	require.Nil(t, p)
	require.Error(t, err)
	require.Equal(t, errs.NotFoundCode, errs.CodeOf(err))
}

func TestListIsOrderedAndCopied(t *testing.T) {
	c := loadTestCatalog(t)

	list, err := c.List("men")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 1, list[0].ID)
	require.Equal(t, 2, list[1].ID)

	list[0].Name = "changed"
	again, err := c.List("men")
	require.NoError(t, err)
	require.Equal(t, "Runner", again[0].Name)
}

func TestSearch(t *testing.T) {
	c := loadTestCatalog(t)

	res := c.Search("RUNNER", 0)
	require.Len(t, res, 2)
	require.Equal(t, Men, res[0].Category)
	require.Equal(t, Kids, res[1].Category)

	res = c.Search("runner", 1)
	require.Len(t, res, 1)

	require.Empty(t, c.Search("boot", 5))
}

func TestLoadRejectsBadData(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "unknown category", yaml: "pets:\n  - id: 1\n    name: x\n    price: \"1\"\n"},
		{name: "duplicate id", yaml: "men:\n  - id: 1\n    name: a\n    price: \"1\"\n  - id: 1\n    name: b\n    price: \"2\"\n"},
		{name: "negative price", yaml: "men:\n  - id: 1\n    name: a\n    price: \"-1\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.yaml))
			require.Error(t, err)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)

	for _, cat := range c.Categories() {
		list, err := c.List(string(cat))
		require.NoError(t, err)
		require.NotEmpty(t, list)
	}
}
