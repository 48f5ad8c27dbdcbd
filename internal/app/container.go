// Package app bootstraps the authentication client: exactly one cache, one
// notifier and one orchestrator per application, wrapping every auth flow
// the host renders.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
	"github.com/aadeshbhujbal/healthcare-auth/internal/config"
	"github.com/aadeshbhujbal/healthcare-auth/internal/infrastructure/api"
	"github.com/aadeshbhujbal/healthcare-auth/internal/infrastructure/navigation"
	"github.com/aadeshbhujbal/healthcare-auth/internal/infrastructure/notifications"
	"github.com/aadeshbhujbal/healthcare-auth/internal/infrastructure/token"
	"github.com/aadeshbhujbal/healthcare-auth/internal/redirect"
	"github.com/aadeshbhujbal/healthcare-auth/internal/services"
	"github.com/aadeshbhujbal/healthcare-auth/internal/session"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	RedisClient *redis.Client
	API         domain.IdentityAPI
	Store       domain.SessionStore
	Navigator   domain.Navigator
	Notifier    domain.Notifier
	Resolver    *redirect.Resolver

	// The single writer of the store
	Orchestrator *services.Orchestrator
}

// Options override the default host bindings
type Options struct {
	// Navigator receives post-flow navigation; defaults to a log navigator.
	Navigator domain.Navigator
	// Notifier receives flow outcomes; defaults to a log notifier.
	Notifier domain.Notifier
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, opts Options) (*Container, error) {
	container := &Container{
		Config:    cfg,
		Navigator: opts.Navigator,
		Notifier:  opts.Notifier,
	}

	if container.Navigator == nil {
		container.Navigator = navigation.NewLogNavigator()
	}
	if container.Notifier == nil {
		container.Notifier = notifications.NewLogNotifier()
	}

	if err := container.initStore(); err != nil {
		return nil, err
	}
	if err := container.initAPI(); err != nil {
		return nil, err
	}
	container.initOrchestrator()

	return container, nil
}

func (c *Container) initStore() error {
	switch c.Config.SessionBackend {
	case "", "memory":
		c.Store = session.NewMemoryStore()
		return nil
	case "redis":
		c.RedisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Store = session.NewRedisStore(c.RedisClient, c.Config.SessionTTL)
		return nil
	default:
		return fmt.Errorf("unknown session backend %q", c.Config.SessionBackend)
	}
}

func (c *Container) initAPI() error {
	client, err := api.NewClient(c.Config.APIBaseURL, c.Config.APITimeout)
	if err != nil {
		return fmt.Errorf("failed to create identity API client: %w", err)
	}
	c.API = client
	return nil
}

func (c *Container) initOrchestrator() {
	c.Resolver = redirect.NewResolver(c.Config.Dashboards, c.Config.LoginPath, c.Config.AuthPrefix)
	c.Orchestrator = services.NewOrchestrator(
		c.API,
		c.Store,
		c.Navigator,
		c.Notifier,
		c.Resolver,
		token.NewInspector(),
		c.Config.SessionTTL,
		c.Config.RegisteredLoginPath,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
