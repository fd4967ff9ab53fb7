package handler

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/dto"
	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"github.com/RoyceAzure/lab/shoeverse/internal/service"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
)

type AuthHandler struct {
	userService   service.IUserService
	tokenDuration time.Duration
}

func NewAuthHandler(userService service.IUserService, tokenDuration time.Duration) *AuthHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &AuthHandler{
		userService:   userService,
		tokenDuration: tokenDuration,
	}
}

func (a *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var signupDTO dto.SignupDTO
	if err := decodeJSON(r, &signupDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	user, err := a.userService.Signup(r.Context(), signupDTO.Name, signupDTO.Email, signupDTO.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.SuccessJSON(w, convertUserModelToDTO(user), "account created, please log in")
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := decodeJSON(r, &loginDTO); err != nil {
		response.WriteError(w, r, err)
		return
	}

	accessToken, user, err := a.userService.Login(r.Context(), loginDTO.Email, loginDTO.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     accessToken,
			ExpiresIn: int(a.tokenDuration.Seconds()),
		},
		User: convertUserModelToDTO(user),
	}, "logged in successfully")
}

func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := util.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, errs.ErrUnauthenticated)
		return
	}

	user, err := a.userService.Me(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertUserModelToDTO(user), "")
}

func convertUserModelToDTO(user *model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
