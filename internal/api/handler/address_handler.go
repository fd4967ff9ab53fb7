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

type AddressHandler struct {
	addressService service.IAddressService
}

func NewAddressHandler(addressService service.IAddressService) *AddressHandler {
	if addressService == nil {
		panic("addressService cannot be nil")
	}
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	address, err := h.addressService.Get(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertAddressModelToDTO(address), "")
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	addresses, err := h.addressService.List(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	res := make([]dto.AddressDTO, 0, len(addresses))
	for i := range addresses {
		res = append(res, *convertAddressModelToDTO(&addresses[i]))
	}
	response.SuccessJSON(w, res, "")
}

func (h *AddressHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	var addressDTO dto.AddressDTO
	if err := decodeJSON(r, &addressDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	address, err := h.addressService.Upsert(r.Context(), userID, service.AddressInput{
		FullName:    addressDTO.FullName,
		PhoneNumber: addressDTO.PhoneNumber,
		Pincode:     addressDTO.Pincode,
		State:       addressDTO.State,
		City:        addressDTO.City,
		House:       addressDTO.House,
		Area:        addressDTO.Area,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertAddressModelToDTO(address), "address saved")
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	if err := h.addressService.Delete(r.Context(), userID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "address deleted successfully")
}

func convertAddressModelToDTO(address *model.Address) *dto.AddressDTO {
	if address == nil {
		return nil
	}
	return &dto.AddressDTO{
		ID:          address.ID,
		FullName:    address.FullName,
		PhoneNumber: address.PhoneNumber,
		Pincode:     address.Pincode,
		State:       address.State,
		City:        address.City,
		House:       address.House,
		Area:        address.Area,
	}
}
