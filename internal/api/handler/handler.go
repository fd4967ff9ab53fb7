package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/dto"
	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/go-chi/chi/v5"
)

var errBadRequest = errs.Validation("invalid request body")

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadRequest
	}
	return nil
}

// uintParam 路徑參數不是正整數時視為找不到資源
func uintParam(r *http.Request, name string, notFound *errs.AppError) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || v == 0 {
		return 0, notFound
	}
	return uint(v), nil
}

func intParam(r *http.Request, name string, notFound *errs.AppError) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, notFound
	}
	return v, nil
}

func convertProductToDTO(p catalog.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:       p.ID,
		Category: string(p.Category),
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
	}
}

func convertProductsToDTO(products []catalog.Product) []dto.ProductDTO {
	res := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		res = append(res, convertProductToDTO(p))
	}
	return res
}
