package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CristiGvl/picoMemStat/internal/memory"
)

const pollTimeout = 10 * time.Second

// Rendered widget text
func (s *Server) getMemory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pollTimeout)
	defer cancel()

	text, info, err := s.stat.PollInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"text":    text,
		"percent": info[memory.KeyMemsza],
	})
}

// Parsed and derived counters, in MiB
func (s *Server) getCounters(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pollTimeout)
	defer cancel()

	info, err := s.stat.Counters(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(info)
}

// Click forwarding for bars that talk HTTP
func (s *Server) click(c *fiber.Ctx) error {
	button, err := strconv.Atoi(c.Params("button"))
	if err != nil || button <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid button"})
	}

	s.stat.OnClick(button)
	return c.JSON(fiber.Map{"status": "success"})
}
