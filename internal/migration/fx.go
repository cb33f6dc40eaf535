package migration

import (
	companydomain "github.com/smallbiznis/billora/internal/company/domain"
	"github.com/smallbiznis/billora/internal/config"
	customerdomain "github.com/smallbiznis/billora/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	quotationdomain "github.com/smallbiznis/billora/internal/quotation/domain"
	"github.com/smallbiznis/billora/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql dev setups migrate from the models.
			if err := conn.AutoMigrate(
				&customerdomain.Customer{},
				&companydomain.Profile{},
				&quotationdomain.Quotation{},
				&quotationdomain.QuotationItem{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureCompanyProfile(conn)
	}),
)
