package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/dto"
	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"github.com/RoyceAzure/lab/shoeverse/internal/service"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
)

var (
	errOrderNotFound     = errs.NotFound("order not found")
	errOrderItemNotFound = errs.NotFound("order item not found")
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// Checkout 使用目前 session 的購物車下單
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	var checkoutDTO dto.CheckoutDTO
	if err := decodeJSON(r, &checkoutDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sid := util.GetSessionIDFromContext(r.Context())
	order, err := h.orderService.PlaceOrder(r.Context(), sid, userID, checkoutDTO.AddressID, checkoutDTO.PaymentMethod)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.CheckoutResponse{OrderID: order.ID}, "order placed successfully")
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	res := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		res = append(res, convertOrderModelToDTO(&orders[i]))
	}
	response.SuccessJSON(w, res, "")
}

func (h *OrderHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}
	orderID, err := uintParam(r, "orderId", errOrderNotFound)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	confirmation, err := h.orderService.GetOrderConfirmation(r.Context(), userID, orderID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.OrderConfirmationDTO{
		Order:   convertOrderModelToDTO(confirmation.Order),
		Address: convertAddressModelToDTO(confirmation.Address),
		Payment: dto.PaymentMethodDTO{
			Code:        confirmation.Payment.Code,
			DisplayName: confirmation.Payment.DisplayName,
		},
		Subtotal: confirmation.Subtotal,
	}, "")
}

func (h *OrderHandler) CancelItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}
	itemID, err := uintParam(r, "itemId", errOrderItemNotFound)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.orderService.CancelOrderItem(r.Context(), userID, itemID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "item cancelled successfully")
}

// ClearHistory 刪除所有項目都已取消的訂單
func (h *OrderHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	count, err := h.orderService.PurgeFullyCancelledOrders(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	message := "no fully cancelled orders to clear"
	if count > 0 {
		message = "cancelled orders cleared"
	}
	response.SuccessJSON(w, dto.ClearHistoryResponse{Deleted: count}, message)
}

func convertOrderModelToDTO(order *model.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		itemDTO := dto.OrderItemDTO{
			ID:        item.ID,
			Category:  item.ProductCategory,
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Cancelled: item.Cancelled,
		}
		if item.Product != nil {
			p := convertProductToDTO(*item.Product)
			itemDTO.Product = &p
		}
		items = append(items, itemDTO)
	}
	return dto.OrderDTO{
		ID:            order.ID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		AddressID:     order.AddressID,
		CreatedAt:     order.CreatedAt,
		Items:         items,
		Subtotal:      order.Subtotal(),
	}
}
