package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/dto"
	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/service"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
	"github.com/go-chi/chi/v5"
)

// ProductCatalog 商品查詢，*catalog.Catalog 實作
type ProductCatalog interface {
	catalog.Lookup
	List(category string) ([]catalog.Product, error)
	Search(query string, limit int) []catalog.Product
}

var errProductNotFound = errs.NotFound("product not found")

type CatalogHandler struct {
	catalog         ProductCatalog
	wishlistService service.IWishlistService
}

func NewCatalogHandler(productCatalog ProductCatalog, wishlistService service.IWishlistService) *CatalogHandler {
	if productCatalog == nil || wishlistService == nil {
		panic("catalog and wishlistService cannot be nil")
	}
	return &CatalogHandler{
		catalog:         productCatalog,
		wishlistService: wishlistService,
	}
}

func (c *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.List(chi.URLParam(r, "category"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertProductsToDTO(products), "")
}

// ProductDetail 附帶目前 session 是否已加入願望清單
func (c *CatalogHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productID, err := intParam(r, "productId", errProductNotFound)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	category := chi.URLParam(r, "category")
	product, err := c.catalog.Get(category, productID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if product == nil {
		response.WriteError(w, r, errProductNotFound)
		return
	}

	inWishlist, err := c.wishlistService.Contains(r.Context(), util.GetSessionIDFromContext(r.Context()), category, productID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.SuccessJSON(w, dto.ProductDetailDTO{
		ProductDTO: convertProductToDTO(*product),
		InWishlist: inWishlist,
	}, "")
}

func (c *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	products := c.catalog.Search(r.URL.Query().Get("query"), catalog.DefaultSearchLimit)
	response.SuccessJSON(w, convertProductsToDTO(products), "")
}
