package cart

type WishlistEntry struct {
	Category  string `json:"category"`
	ProductID int    `json:"product_id"`
}

// Wishlist 集合語意，保留加入順序
type Wishlist struct {
	Entries []WishlistEntry `json:"entries"`
}

func (w *Wishlist) Contains(category string, productID int) bool {
	for _, e := range w.Entries {
		if e.Category == category && e.ProductID == productID {
			return true
		}
	}
	return false
}

// Add 已存在時回傳 false
func (w *Wishlist) Add(category string, productID int) bool {
	if w.Contains(category, productID) {
		return false
	}
	w.Entries = append(w.Entries, WishlistEntry{Category: category, ProductID: productID})
	return true
}

func (w *Wishlist) Remove(category string, productID int) bool {
	for i, e := range w.Entries {
		if e.Category == category && e.ProductID == productID {
			w.Entries = append(w.Entries[:i], w.Entries[i+1:]...)
			return true
		}
	}
	return false
}
