package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/dto"
	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/service"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// AddItem 成功或失敗都回傳 {success, message}
func (c *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var addDTO dto.AddCartItemDTO
	if err := decodeJSON(r, &addDTO); err != nil {
		writeCartActionError(w, r, err)
		return
	}
	qty := 1
	if addDTO.Qty != nil {
		qty = *addDTO.Qty
	}

	sid := util.GetSessionIDFromContext(r.Context())
	err := c.cartService.AddItem(r.Context(), sid, addDTO.Category, addDTO.ProductID, addDTO.Size, qty)
	if err != nil {
		writeCartActionError(w, r, err)
		return
	}

	response.SuccessJSON(w, dto.CartActionResponse{Success: true, Message: "Product added to cart."}, "")
}

func writeCartActionError(w http.ResponseWriter, r *http.Request, err error) {
	message := errs.Internal(nil).Message
	var appErr *errs.AppError
	if errors.As(err, &appErr) && appErr.Code != errs.InternalCode {
		message = appErr.Message
	}
	response.WriteErrorWithData(w, r, err, dto.CartActionResponse{Success: false, Message: message})
}

func (c *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	c.writeCartView(w, r)
}

func (c *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var keyDTO dto.CartLineKeyDTO
	if err := decodeJSON(r, &keyDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sid := util.GetSessionIDFromContext(r.Context())
	if err := c.cartService.RemoveItem(r.Context(), sid, keyDTO.Category, keyDTO.ProductID, keyDTO.Size); err != nil {
		response.WriteError(w, r, err)
		return
	}
	c.writeCartView(w, r)
}

func (c *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var updateDTO dto.UpdateCartQuantityDTO
	if err := decodeJSON(r, &updateDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sid := util.GetSessionIDFromContext(r.Context())
	err := c.cartService.UpdateQuantity(r.Context(), sid, updateDTO.Category, updateDTO.ProductID, updateDTO.Size, updateDTO.Action)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	c.writeCartView(w, r)
}

func (c *CartHandler) writeCartView(w http.ResponseWriter, r *http.Request) {
	view, err := c.cartService.View(r.Context(), util.GetSessionIDFromContext(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertCartViewToDTO(view), "")
}

func convertCartViewToDTO(view *service.CartView) dto.CartDTO {
	lines := make([]dto.CartLineDTO, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, dto.CartLineDTO{
			Category:  l.Category,
			ProductID: l.ProductID,
			Size:      l.Size,
			Quantity:  l.Quantity,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			LineTotal: l.LineTotal,
		})
	}
	return dto.CartDTO{Lines: lines, Subtotal: view.Subtotal}
}
