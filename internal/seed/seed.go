// Package seed bootstraps the minimum data the app needs on first run.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/smallbiznis/billora/internal/company/domain"
	"gorm.io/gorm"
)

const defaultCompanyName = "My Company"

// EnsureCompanyProfile creates the single company profile row if none
// exists yet. It never overwrites a profile the user has already edited.
func EnsureCompanyProfile(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing companydomain.Profile
		err := tx.Order("created_at asc").Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}
		if existing.ID != 0 {
			return nil
		}

		now := time.Now().UTC()
		profile := companydomain.Profile{
			ID:        node.Generate(),
			Name:      defaultCompanyName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&profile).Error
	})
}
