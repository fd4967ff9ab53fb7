package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCode 業務錯誤碼，handler 依此轉換 http status
type ErrCode int

const (
	InternalCode ErrCode = iota + 1
	ValidationCode
	NotFoundCode
	UnauthorizedCode
	UnauthenticatedCode
	ConflictCode
	UnsupportedPaymentCode
	MissingAddressCode
	InvalidAddressCode
	EmptyCartCode
	TooManyRequestsCode
)

var ErrStrMap = map[ErrCode]string{
	InternalCode:           "internal server error",
	ValidationCode:         "invalid argument",
	NotFoundCode:           "not found",
	UnauthorizedCode:       "unauthorized action",
	UnauthenticatedCode:    "unauthenticated",
	ConflictCode:           "already exists",
	UnsupportedPaymentCode: "unsupported payment method",
	MissingAddressCode:     "missing address",
	InvalidAddressCode:     "invalid address",
	EmptyCartCode:          "cart is empty",
	TooManyRequestsCode:    "too many requests",
}

var httpStatusMap = map[ErrCode]int{
	InternalCode:           http.StatusInternalServerError,
	ValidationCode:         http.StatusBadRequest,
	NotFoundCode:           http.StatusNotFound,
	UnauthorizedCode:       http.StatusForbidden,
	UnauthenticatedCode:    http.StatusUnauthorized,
	ConflictCode:           http.StatusConflict,
	UnsupportedPaymentCode: http.StatusUnprocessableEntity,
	MissingAddressCode:     http.StatusUnprocessableEntity,
	InvalidAddressCode:     http.StatusUnprocessableEntity,
	EmptyCartCode:          http.StatusUnprocessableEntity,
	TooManyRequestsCode:    http.StatusTooManyRequests,
}

// AppError 服務層回傳的錯誤
// Message 會直接顯示給使用者，Err 只記錄在log
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrStrMap[e.Code], e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrStrMap[e.Code], e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 以錯誤碼比對，errors.Is(err, errs.ErrEmptyCart) 不需要同一個實例
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 對應的 http status，未知錯誤碼一律 500
func (e *AppError) HTTPStatus() int {
	if s, ok := httpStatusMap[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(code ErrCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

func Wrap(code ErrCode, msg string, err error) *AppError {
	return &AppError{Code: code, Message: msg, Err: err}
}

func Validation(msg string) *AppError { return New(ValidationCode, msg) }

func NotFound(msg string) *AppError { return New(NotFoundCode, msg) }

func Internal(err error) *AppError {
	return Wrap(InternalCode, "something went wrong, please try again", err)
}

// CodeOf 取得錯誤碼，非 AppError 視為 InternalCode
func CodeOf(err error) ErrCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalCode
}

// 結帳相關錯誤，訊息即為給使用者的提示
var (
	ErrEmptyCart          = New(EmptyCartCode, "your cart is empty")
	ErrUnsupportedPayment = New(UnsupportedPaymentCode, "currently only cash on delivery is supported")
	ErrMissingAddress     = New(MissingAddressCode, "please add your address before placing an order")
	ErrInvalidAddress     = New(InvalidAddressCode, "please select a valid address")
	ErrUnauthorized       = New(UnauthorizedCode, "unauthorized action")
	ErrUnauthenticated    = New(UnauthenticatedCode, "please log in first")
)
