package health

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers serves the health endpoint.
type Handlers struct {
	Rdb *redis.Client
	DB  *sql.DB
}

type sqlPinger struct{ db *sql.DB }

func (p sqlPinger) Ping() error { return p.db.Ping() }

// Check GET /health — liveness plus dependency status JSON.
func (h *Handlers) Check(c *fiber.Ctx) error {
	var pinger DBPinger
	if h.DB != nil {
		pinger = sqlPinger{db: h.DB}
	}
	result := CollectHealth(c.Context(), h.Rdb, pinger)
	status := fiber.StatusOK
	if result.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
