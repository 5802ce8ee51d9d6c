package config

import (
	"github.com/cockroachdb/errors"
	"github.com/nedpals/supabase-go"
)

var ErrSupabaseNotConfigured = errors.New("supabase not configured")

func NewSupabase(cfg *Config) (*supabase.Client, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, ErrSupabaseNotConfigured
	}
	client := supabase.CreateClient(cfg.SupabaseURL, cfg.SupabaseKey)
	if client == nil {
		return nil, errors.New("supabase client: create failed")
	}
	return client, nil
}
