package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

type VendorGormRepository struct {
	db *gorm.DB
}

func NewVendorGormRepository(db *gorm.DB) *VendorGormRepository {
	return &VendorGormRepository{db: db}
}

// --------------------------------------------------
// Caterer
// --------------------------------------------------

func (r *VendorGormRepository) CreateCaterer(
	ctx context.Context,
	c *models.Caterer,
) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "caterer")
}

func (r *VendorGormRepository) GetCaterer(
	ctx context.Context,
	id string,
) (*models.Caterer, error) {

	var c models.Caterer
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, translate(err, "caterer")
	}
	return &c, nil
}

func (r *VendorGormRepository) ApproveCaterer(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Caterer{}).
		Where("id = ? AND is_approved = ?", id, false).
		Update("is_approved", true)
	if res.Error != nil {
		return translate(res.Error, "caterer")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("already_approved")
	}
	return nil
}

func (r *VendorGormRepository) ListApprovedCaterers(
	ctx context.Context,
) ([]models.Caterer, error) {

	var caterers []models.Caterer
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at ASC").
		Find(&caterers).Error; err != nil {
		return nil, err
	}
	return caterers, nil
}

// --------------------------------------------------
// Photographer
// --------------------------------------------------

func (r *VendorGormRepository) CreatePhotographer(
	ctx context.Context,
	p *models.Photographer,
) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "photographer")
}

func (r *VendorGormRepository) ListPhotographers(
	ctx context.Context,
) ([]models.Photographer, error) {

	var photographers []models.Photographer
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&photographers).Error; err != nil {
		return nil, err
	}
	return photographers, nil
}
