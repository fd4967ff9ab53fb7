package cart

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
)

type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// Line 購物車一筆資料，(Category, ProductID, Size) 為唯一鍵
type Line struct {
	Category  string `json:"category"`
	ProductID int    `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (l Line) sameKey(category string, productID int, size string) bool {
	return l.Category == category && l.ProductID == productID && l.Size == size
}

// Cart 依加入順序排列
type Cart struct {
	Lines []Line `json:"lines"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// MaxSizeLength 與 order_items.size 欄位長度一致
const MaxSizeLength = 10

// ValidateLine size 檢查在數量之前
func ValidateLine(size string, qty int) error {
	size = strings.TrimSpace(size)
	if size == "" {
		return errs.Validation("please select a size")
	}
	if utf8.RuneCountInString(size) > MaxSizeLength {
		return errs.Validation(fmt.Sprintf("size must be at most %d characters", MaxSizeLength))
	}
	if qty < 1 {
		return errs.Validation("quantity must be at least 1")
	}
	return nil
}

// Add 相同鍵值合併數量，否則附加到最後
func (c *Cart) Add(category string, productID int, size string, qty int) error {
	if err := ValidateLine(size, qty); err != nil {
		return err
	}
	size = strings.TrimSpace(size)

	for i := range c.Lines {
		if c.Lines[i].sameKey(category, productID, size) {
			c.Lines[i].Quantity += qty
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{Category: category, ProductID: productID, Size: size, Quantity: qty})
	return nil
}

// Remove 找不到時不做事
func (c *Cart) Remove(category string, productID int, size string) {
	for i := range c.Lines {
		if c.Lines[i].sameKey(category, productID, size) {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity 減少時最低為 1
func (c *Cart) UpdateQuantity(category string, productID int, size string, direction Direction) error {
	if direction != Increase && direction != Decrease {
		return errs.Validation("action must be increase or decrease")
	}
	for i := range c.Lines {
		if !c.Lines[i].sameKey(category, productID, size) {
			continue
		}
		switch direction {
		case Increase:
			c.Lines[i].Quantity++
		case Decrease:
			if c.Lines[i].Quantity > 1 {
				c.Lines[i].Quantity--
			}
		}
		return nil
	}
	return nil
}

// Deduct 扣掉結帳時讀到的數量，扣完的項目移除
// 讀取之後才加入的項目或數量會留在購物車
func (c *Cart) Deduct(lines []Line) {
	for _, l := range lines {
		for i := range c.Lines {
			if !c.Lines[i].sameKey(l.Category, l.ProductID, l.Size) {
				continue
			}
			if c.Lines[i].Quantity > l.Quantity {
				c.Lines[i].Quantity -= l.Quantity
			} else {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			}
			break
		}
	}
}

func (c *Cart) Snapshot() []Line {
	res := make([]Line, len(c.Lines))
	copy(res, c.Lines)
	return res
}

func (c *Cart) Clear() {
	c.Lines = nil
}
