package db

import (
	"context"

	"github.com/RoyceAzure/lab/shoeverse/internal/model"
)

type AddressRepo struct {
	db *DbDao
}

func NewAddressRepo(db *DbDao) *AddressRepo {
	return &AddressRepo{db: db}
}

func (r *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *AddressRepo) UpdateAddress(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *AddressRepo) GetAddressByID(ctx context.Context, id uint) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).First(&address, id).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// GetCurrentAddress 一個使用者可以有多筆地址，取最後建立的一筆
func (r *AddressRepo) GetCurrentAddress(ctx context.Context, userID uint) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepo) ListAddressesByUserID(ctx context.Context, userID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").Find(&addresses).Error
	return addresses, err
}

func (r *AddressRepo) DeleteAddress(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Address{}, id).Error
}
