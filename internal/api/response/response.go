package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/rs/zerolog"
)

const SuccessCode = 0

// Response 所有 api 回傳的外層格式
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func JSON(w http.ResponseWriter, status int, res Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}

func SuccessJSON(w http.ResponseWriter, data any, message string) {
	if message == "" {
		message = "success"
	}
	JSON(w, http.StatusOK, Response{Code: SuccessCode, Message: message, Data: data})
}

func ErrorJSON(w http.ResponseWriter, appErr *errs.AppError, data any) {
	JSON(w, appErr.HTTPStatus(), Response{Code: int(appErr.Code), Message: appErr.Message, Data: data})
}

// WriteError 非 AppError 一律視為內部錯誤，內部錯誤的細節只寫到 log
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	WriteErrorWithData(w, r, err, nil)
}

func WriteErrorWithData(w http.ResponseWriter, r *http.Request, err error, data any) {
	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		appErr = errs.Internal(err)
	}
	if appErr.Code == errs.InternalCode {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("url", r.URL.String()).Msg("request failed")
	}
	ErrorJSON(w, appErr, data)
}
