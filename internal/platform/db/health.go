package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolHealth is the database section of the /health/db payload: whether
// the register database answered and how occupied the pool is, for
// operators watching a deployment under load.
type PoolHealth struct {
	Up          bool   `json:"up"`
	TotalConns  int32  `json:"total_conns"`
	IdleConns   int32  `json:"idle_conns"`
	InUseConns  int32  `json:"in_use_conns"`
	MaxConns    int32  `json:"max_conns"`
	Acquires    int64  `json:"acquires"`
	AcquireWait string `json:"acquire_wait"`
}

// SnapshotPool reads the pool counters. Up is provisional until a ping
// confirms the database actually answers.
func SnapshotPool(pool *pgxpool.Pool) *PoolHealth {
	stat := pool.Stat()
	return &PoolHealth{
		Up:          stat.TotalConns() > 0,
		TotalConns:  stat.TotalConns(),
		IdleConns:   stat.IdleConns(),
		InUseConns:  stat.AcquiredConns(),
		MaxConns:    stat.MaxConns(),
		Acquires:    stat.AcquireCount(),
		AcquireWait: stat.AcquireDuration().String(),
	}
}

// HealthHandler answers /health/db: 200 with pool occupancy while the
// database responds, 503 with the failure once it stops.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		health := SnapshotPool(pool)
		if err := pool.Ping(ctx); err != nil {
			health.Up = false
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "unhealthy",
				"error":    err.Error(),
				"database": health,
			})
		}

		health.Up = true
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"database": health,
		})
	}
}
