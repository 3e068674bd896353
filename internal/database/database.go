// Package database manages the PostgreSQL connection pool.
package database

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"textile-backend/internal/config"
)

// Service exposes the database to handlers without tying them to a
// concrete pool type.
type Service interface {
	GetPool() *pgxpool.Pool
	Health() map[string]string
	Close()
}

type service struct {
	pool *pgxpool.Pool
}

var (
	once     sync.Once
	instance *service
)

// New connects to PostgreSQL and returns the shared database service.
// The pool is created at most once per process; concurrent first calls
// share a single initialization.
func New(cfg *config.DBConfig) Service {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.URL)
		if err != nil {
			log.Fatalf("Unable to create connection pool: %v", err)
		}

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Unable to reach database: %v", err)
		}

		instance = &service{pool: pool}
	})
	return instance
}

// GetPool returns the underlying pgx connection pool.
func (s *service) GetPool() *pgxpool.Pool {
	return s.pool
}

// Health reports connectivity and basic pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := map[string]string{}

	if err := s.pool.Ping(ctx); err != nil {
		status["status"] = "down"
		status["error"] = fmt.Sprintf("db down: %v", err)
		return status
	}

	stats := s.pool.Stat()
	status["status"] = "up"
	status["message"] = "It's healthy"
	status["total_connections"] = strconv.Itoa(int(stats.TotalConns()))
	status["idle_connections"] = strconv.Itoa(int(stats.IdleConns()))
	status["in_use_connections"] = strconv.Itoa(int(stats.AcquiredConns()))

	return status
}

// Close releases the connection pool.
func (s *service) Close() {
	s.pool.Close()
}
