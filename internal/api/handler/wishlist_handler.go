package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/dto"
	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/service"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
)

type WishlistHandler struct {
	wishlistService service.IWishlistService
}

func NewWishlistHandler(wishlistService service.IWishlistService) *WishlistHandler {
	if wishlistService == nil {
		panic("wishlistService cannot be nil")
	}
	return &WishlistHandler{wishlistService: wishlistService}
}

func (h *WishlistHandler) View(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlistService.View(r.Context(), util.GetSessionIDFromContext(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertProductsToDTO(products), "")
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var itemDTO dto.WishlistItemDTO
	if err := decodeJSON(r, &itemDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sid := util.GetSessionIDFromContext(r.Context())
	if err := h.wishlistService.Add(r.Context(), sid, itemDTO.Category, itemDTO.ProductID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "added to wishlist")
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var itemDTO dto.WishlistItemDTO
	if err := decodeJSON(r, &itemDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sid := util.GetSessionIDFromContext(r.Context())
	if err := h.wishlistService.Remove(r.Context(), sid, itemDTO.Category, itemDTO.ProductID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "removed from wishlist")
}
