// Package app provides service initialization.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/engine"
	"github.com/guttosm/cargo-quote/internal/events"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/guttosm/cargo-quote/internal/service/cache"
	"github.com/rs/zerolog/log"
)

const quoteCacheShards = 16

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Engine        *engine.Engine
	Tariffs       service.TariffService
	ExchangeRates service.ExchangeRateService
	Quotes        *service.QuoteServiceImpl
	Auth          service.AuthService
	QuoteCache    cache.Cache
	Responses     cache.ResponseStore
	Publisher     events.Publisher

	redis *cache.RedisAdapter
}

// InitializeServices builds the pricing engine and the services over the stores in db.
func InitializeServices(cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	engineCfg, err := cfg.Engine.Build()
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(engineCfg)
	if err != nil {
		return nil, err
	}
	fallback, err := cfg.Engine.Fallback()
	if err != nil {
		return nil, err
	}

	components := &ServiceComponents{Engine: eng}

	var tokenStore cache.TokenStore = cache.NewMemoryTokenStore()
	components.Responses = cache.NewMemoryResponseStore()
	if strings.EqualFold(cfg.Cache.Backend, "redis") {
		adapter, err := connectRedis(cfg.Redis.URL)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to Redis - falling back to in-process cache")
		} else {
			components.redis = adapter
			tokenStore = cache.NewRedisTokenStore(adapter, cfg.Redis.KeyPrefix)
			components.Responses = cache.NewRedisResponseStore(adapter, cfg.Redis.KeyPrefix)
		}
	}

	if cfg.Cache.Size > 0 {
		if components.redis != nil {
			components.QuoteCache = cache.NewRedisQuoteCache(components.redis, cfg.Redis.KeyPrefix, cfg.Cache.TTL)
		} else {
			components.QuoteCache = cache.NewShardedQuoteCache(cfg.Cache.Size, cfg.Cache.TTL, quoteCacheShards)
		}
	}

	tariffOpts := []service.TariffServiceOption{service.WithSnapshotTTL(cfg.Cache.TariffTTL)}
	if components.QuoteCache != nil {
		tariffOpts = append(tariffOpts, service.WithQuoteCache(components.QuoteCache))
	}
	components.Tariffs = service.NewTariffService(db.Tariffs, tariffOpts...)

	pair := model.CurrencyPair{
		Source:  strings.ToUpper(cfg.Engine.SourceCurrency),
		Pricing: engineCfg.PricingCurrency,
	}
	components.ExchangeRates = service.NewExchangeRateService(db.ExchangeRates, pair, fallback)

	components.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		components.Publisher = events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		log.Info().Str("brokers", cfg.Events.Brokers).Str("topic", cfg.Events.Topic).Msg("Quote events enabled")
	}

	quoteOpts := []service.QuoteOption{
		service.WithQuoteHistory(db.Quotes),
		service.WithPublisher(components.Publisher),
		service.WithDefaultSourceCurrency(pair.Source),
		service.WithSupportedCurrencies(pair.Source, pair.Pricing),
	}
	if components.QuoteCache != nil {
		quoteOpts = append(quoteOpts, service.WithQuoteResultCache(components.QuoteCache))
	}
	components.Quotes = service.NewQuoteService(eng, components.Tariffs, components.ExchangeRates, quoteOpts...)

	if cfg.Auth.Enabled && len(cfg.Auth.Operators) > 0 {
		components.Auth = service.NewAuthService(cfg.Auth, tokenStore)
	} else if cfg.Auth.Enabled {
		log.Warn().Msg("AUTH_ENABLED is set but OPERATORS is empty - admin routes are only guarded by API keys")
	}

	log.Info().
		Str("insurance_policy", engineCfg.InsurancePolicy.Name).
		Str("pair", pair.String()).
		Msg("Services initialized")

	return components, nil
}

func connectRedis(url string) (*cache.RedisAdapter, error) {
	adapter, err := cache.NewRedisAdapter(url)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := adapter.HealthCheck(ctx); err != nil {
		_ = adapter.Close()
		return nil, err
	}
	return adapter, nil
}

// Close stops background work and releases connections.
func (s *ServiceComponents) Close() {
	if s == nil {
		return
	}
	s.Quotes.Wait()
	if s.QuoteCache != nil {
		s.QuoteCache.Stop()
	}
	if err := s.Publisher.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close event publisher")
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
}
