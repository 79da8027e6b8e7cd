// Package main is the entry point for the cargo-quote application.
//
// @title           Cargo Quote API
// @version         1.0.0
// @description     API for pricing China parcel shipments by weight and density tariffs.
//
//	Quotes cover bag, cardboard corner and wooden frame packaging with insurance, in the pricing currency and the source currency.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/cargo-quote
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Operator access token, "Bearer <token>".
//
// @tag.name        Quotes
// @tag.description Shipment cost calculation
//
// @tag.name        Tariffs
// @tag.description Weight and density tariff tables
//
// @tag.name        Exchange Rates
// @tag.description Exchange rates between the source and pricing currencies
//
// @tag.name        Auth
// @tag.description Operator authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/cargo-quote/docs" // swagger docs

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	a, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(a.Router, cfg.Server.Port, cfg.Server.RequestTimeout)
	server.OnShutdown(a.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
