package repository

import (
	"context"
	"strings"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"gorm.io/gorm"
)

type CredentialRepository interface {
	CreateTx(tx *gorm.DB, c *model.Credential) error
	FindByEmail(ctx context.Context, email string) (*model.Credential, error)
}

type credentialRepo struct{ db *gorm.DB }

func NewCredentialRepository(db *gorm.DB) CredentialRepository { return &credentialRepo{db: db} }

func (r *credentialRepo) CreateTx(tx *gorm.DB, c *model.Credential) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	return tx.Create(c).Error
}

func (r *credentialRepo) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	var c model.Credential
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}
