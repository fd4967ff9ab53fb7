package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shoeverse/internal/model"
)

type AddressInput struct {
	FullName    string
	PhoneNumber string
	Pincode     string
	State       string
	City        string
	House       string
	Area        string
}

func (in AddressInput) trimmed() AddressInput {
	return AddressInput{
		FullName:    strings.TrimSpace(in.FullName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Pincode:     strings.TrimSpace(in.Pincode),
		State:       strings.TrimSpace(in.State),
		City:        strings.TrimSpace(in.City),
		House:       strings.TrimSpace(in.House),
		Area:        strings.TrimSpace(in.Area),
	}
}

type addressField struct {
	name   string
	value  string
	maxLen int
}

// 長度上限與 addresses 資料表欄位一致
func (in AddressInput) fields() []addressField {
	return []addressField{
		{"full_name", in.FullName, 100},
		{"phone_number", in.PhoneNumber, 20},
		{"pincode", in.Pincode, 10},
		{"state", in.State, 50},
		{"city", in.City, 50},
		{"house", in.House, 100},
		{"area", in.Area, 100},
	}
}

func (in AddressInput) validate() error {
	fields := in.fields()
	for _, f := range fields {
		if f.value == "" {
			return errs.Validation("all address fields are required")
		}
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.maxLen {
			return errs.Validation(fmt.Sprintf("%s must be at most %d characters", f.name, f.maxLen))
		}
	}
	return nil
}

type IAddressService interface {
	Upsert(ctx context.Context, userID uint, in AddressInput) (*model.Address, error)
	Get(ctx context.Context, userID uint) (*model.Address, error)
	List(ctx context.Context, userID uint) ([]model.Address, error)
	Delete(ctx context.Context, userID uint) error
}

type AddressService struct {
	dbDao db.IStore
}

func NewAddressService(dbDao db.IStore) *AddressService {
	return &AddressService{dbDao: dbDao}
}

// Upsert 已有地址就更新，否則新增
func (s *AddressService) Upsert(ctx context.Context, userID uint, in AddressInput) (*model.Address, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}

	address, err := s.dbDao.GetCurrentAddress(ctx, userID)
	switch {
	case isNotFound(err):
		address = &model.Address{UserID: userID}
		applyAddressInput(address, in)
		if err := s.dbDao.CreateAddress(ctx, address); err != nil {
			return nil, errs.Internal(err)
		}
		return address, nil
	case err != nil:
		return nil, errs.Internal(err)
	}

	applyAddressInput(address, in)
	if err := s.dbDao.UpdateAddress(ctx, address); err != nil {
		return nil, errs.Internal(err)
	}
	return address, nil
}

func applyAddressInput(address *model.Address, in AddressInput) {
	address.FullName = in.FullName
	address.PhoneNumber = in.PhoneNumber
	address.Pincode = in.Pincode
	address.State = in.State
	address.City = in.City
	address.House = in.House
	address.Area = in.Area
}

func (s *AddressService) Get(ctx context.Context, userID uint) (*model.Address, error) {
	address, err := s.dbDao.GetCurrentAddress(ctx, userID)
	if isNotFound(err) {
		return nil, errs.NotFound("no address found")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return address, nil
}

func (s *AddressService) List(ctx context.Context, userID uint) ([]model.Address, error) {
	addresses, err := s.dbDao.ListAddressesByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return addresses, nil
}

// Delete 刪除目前的地址，既有訂單的 address_id 會變成 null
func (s *AddressService) Delete(ctx context.Context, userID uint) error {
	address, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.dbDao.DeleteAddress(ctx, address.ID); err != nil {
		return errs.Internal(err)
	}
	return nil
}

var _ IAddressService = (*AddressService)(nil)
