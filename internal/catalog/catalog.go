package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Category string

const (
	Men   Category = "men"
	Women Category = "women"
	Kids  Category = "kids"
)

var categories = []Category{Men, Women, Kids}

const DefaultSearchLimit = 5

func IsValidCategory(c string) bool {
	switch Category(c) {
	case Men, Women, Kids:
		return true
	default:
		return false
	}
}

// ParseCategory 未知分類視為 NotFound，不是 panic
func ParseCategory(c string) (Category, error) {
	if !IsValidCategory(c) {
		return "", errs.NotFound(fmt.Sprintf("category %q not found", c))
	}
	return Category(c), nil
}

type Product struct {
	ID       int             `yaml:"id" json:"id"`
	Category Category        `yaml:"-" json:"category"`
	Name     string          `yaml:"name" json:"name"`
	Price    decimal.Decimal `yaml:"price" json:"price"`
	Image    string          `yaml:"image" json:"image"`
}

// Lookup 結帳、購物車只需要的唯讀能力
type Lookup interface {
	Get(category string, id int) (*Product, error)
}

// Catalog 啟動時載入一次，之後不可變
type Catalog struct {
	products map[Category]map[int]Product
	ordered  map[Category][]Product
}

// Get 商品不存在回傳 (nil, nil)，分類不存在回傳 NotFound
func (c *Catalog) Get(category string, id int) (*Product, error) {
	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	p, ok := c.products[cat][id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *Catalog) List(category string) ([]Product, error) {
	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	res := make([]Product, len(c.ordered[cat]))
	copy(res, c.ordered[cat])
	return res, nil
}

func (c *Catalog) Categories() []Category {
	res := make([]Category, len(categories))
	copy(res, categories)
	return res
}

// Search 商品名稱不分大小寫包含 query，依 men/women/kids 順序取前 limit 筆
func (c *Catalog) Search(query string, limit int) []Product {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	res := make([]Product, 0, limit)
	for _, cat := range categories {
		for _, p := range c.ordered[cat] {
			if strings.Contains(strings.ToLower(p.Name), q) {
				res = append(res, p)
				if len(res) == limit {
					return res
				}
			}
		}
	}
	return res
}

type catalogFile map[string][]Product

// Load 解析 yaml 並檢查資料
// 錯誤:
//   - 未知分類
//   - 重複商品 id
//   - 負數價格
func Load(r io.Reader) (*Catalog, error) {
	var raw catalogFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		products: make(map[Category]map[int]Product, len(categories)),
		ordered:  make(map[Category][]Product, len(categories)),
	}
	for _, cat := range categories {
		c.products[cat] = map[int]Product{}
	}

	for name, items := range raw {
		if !IsValidCategory(name) {
			return nil, fmt.Errorf("unknown category %q in catalog", name)
		}
		cat := Category(name)
		for _, p := range items {
			if _, dup := c.products[cat][p.ID]; dup {
				return nil, fmt.Errorf("duplicate product %s/%d", cat, p.ID)
			}
			if p.Price.IsNegative() {
				return nil, fmt.Errorf("product %s/%d has negative price", cat, p.ID)
			}
			p.Category = cat
			c.products[cat][p.ID] = p
			c.ordered[cat] = append(c.ordered[cat], p)
		}
		sort.Slice(c.ordered[cat], func(i, j int) bool {
			return c.ordered[cat][i].ID < c.ordered[cat][j].ID
		})
	}
	return c, nil
}

// LoadFile path 為空時使用內建商品資料
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Load(bytes.NewReader(defaultCatalog))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

var _ Lookup = (*Catalog)(nil)
