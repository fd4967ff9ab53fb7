package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/token"
	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// 與 users 資料表欄位長度一致
const (
	maxNameLength  = 100
	maxEmailLength = 120
)

var errInvalidCredentials = errs.New(errs.UnauthenticatedCode, "invalid email or password")

type IUserService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Me(ctx context.Context, userID uint) (*model.User, error)
}

type UserService struct {
	dbDao         db.IStore
	tokenMaker    token.Maker
	tokenDuration time.Duration
}

func NewUserService(dbDao db.IStore, tokenMaker token.Maker, tokenDuration time.Duration) *UserService {
	return &UserService{
		dbDao:         dbDao,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UserService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, errs.Validation("name, email and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, errs.Validation("password must be at least 6 characters")
	}
	if utf8.RuneCountInString(name) > maxNameLength || utf8.RuneCountInString(email) > maxEmailLength {
		return nil, errs.Validation("name or email is too long")
	}

	// 檢查email是否已存在
	existing, err := u.dbDao.GetUserByEmail(ctx, email)
	if err != nil && !isNotFound(err) {
		return nil, errs.Internal(err)
	}
	if existing != nil {
		return nil, errs.New(errs.ConflictCode, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err)
	}

	user := &model.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := u.dbDao.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.New(errs.ConflictCode, "email already registered")
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}

// Login 帳號不存在和密碼錯誤回傳相同訊息
func (u *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := u.dbDao.GetUserByEmail(ctx, normalizeEmail(email))
	if isNotFound(err) {
		return "", nil, errInvalidCredentials
	}
	if err != nil {
		return "", nil, errs.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	accessToken, _, err := u.tokenMaker.CreateToken(user.ID, user.Name, u.tokenDuration)
	if err != nil {
		return "", nil, errs.Internal(err)
	}
	return accessToken, user, nil
}

func (u *UserService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := u.dbDao.GetUserByID(ctx, userID)
	if isNotFound(err) {
		return nil, errs.ErrUnauthenticated
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return user, nil
}

var _ IUserService = (*UserService)(nil)
