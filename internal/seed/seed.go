package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Simplici0/printquote/internal/auth"
	"github.com/Simplici0/printquote/internal/store"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, s *store.Store, cfg Config) (Stats, error) {
	stats := Stats{}
	if err := seedAdmin(ctx, s, cfg, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// seedAdmin makes sure the configured admin exists, is active and is a superuser.
// An existing admin keeps its password.
func seedAdmin(ctx context.Context, s *store.Store, cfg Config, stats *Stats) error {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	existing, err := s.UserByUsername(ctx, cfg.AdminUsername)
	switch {
	case err == nil:
		if existing.IsActive && existing.IsSuperuser {
			return nil
		}
		if err := s.SetUserFlags(ctx, existing.ID, true, true); err != nil {
			return fmt.Errorf("promote admin user: %w", err)
		}
		stats.Updates++
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("check admin user existence: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := store.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  true,
	}
	if err := s.CreateUser(ctx, &admin); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}
