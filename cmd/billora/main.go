package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/company"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/customer"
	"github.com/smallbiznis/billora/internal/invoice"
	"github.com/smallbiznis/billora/internal/logger"
	"github.com/smallbiznis/billora/internal/migration"
	"github.com/smallbiznis/billora/internal/observability"
	"github.com/smallbiznis/billora/internal/providers"
	"github.com/smallbiznis/billora/internal/quotation"
	"github.com/smallbiznis/billora/internal/server"
	"github.com/smallbiznis/billora/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		observability.Module,

		customer.Module,
		company.Module,
		quotation.Module,
		invoice.Module,
		providers.Module,

		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
