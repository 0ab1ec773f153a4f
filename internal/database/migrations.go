package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		seq BIGSERIAL,
		data JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS news (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		seq BIGSERIAL,
		data JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS inquiries (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		seq BIGSERIAL,
		data JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		seq BIGSERIAL,
		data JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_seq ON products(seq)`,
	`CREATE INDEX IF NOT EXISTS idx_news_seq ON news(seq)`,
	`CREATE INDEX IF NOT EXISTS idx_inquiries_seq ON inquiries(seq)`,
	`CREATE INDEX IF NOT EXISTS idx_users_seq ON users(seq)`,

	// Dashboard filters inquiries by status and sorts news by publish date
	`CREATE INDEX IF NOT EXISTS idx_inquiries_status ON inquiries ((data->>'status'))`,
	`CREATE INDEX IF NOT EXISTS idx_news_created_at ON news ((data->>'created_at'))`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users ((lower(data->>'email')))`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
