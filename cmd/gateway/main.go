package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lurebox/lurebox/pkg/config"
	"github.com/lurebox/lurebox/pkg/convo"
	"github.com/lurebox/lurebox/pkg/engine"
	"github.com/lurebox/lurebox/pkg/logger"
	"github.com/lurebox/lurebox/pkg/report"
)

const Version = "0.1.0"

// ============================================================================
// Request Parsing
// ============================================================================

// inboundRequest tolerates the request shapes seen in the wild: message
// as a nested object, message as a bare string, and flat text/content
// fields, with snake_case fallbacks for the id and history keys.
type inboundRequest struct {
	SessionID    string            `json:"sessionId"`
	SessionIDAlt string            `json:"session_id"`
	Message      json.RawMessage   `json:"message"`
	Text         string            `json:"text"`
	Content      string            `json:"content"`
	History      []convo.Turn      `json:"conversationHistory"`
	HistoryAlt   []convo.Turn      `json:"conversation_history"`
	Metadata     map[string]string `json:"metadata"`
}

// toMessage flattens the accepted shapes into one engine message. The
// second return is false when no text could be found anywhere.
func (r *inboundRequest) toMessage() (engine.Message, bool) {
	id := r.SessionID
	if id == "" {
		id = r.SessionIDAlt
	}
	if id == "" {
		id = "default-session"
	}

	text := r.Text
	if text == "" {
		text = r.Content
	}
	if len(r.Message) > 0 {
		var nested struct {
			Text    string `json:"text"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(r.Message, &nested); err == nil {
			if nested.Text != "" {
				text = nested.Text
			} else if nested.Content != "" {
				text = nested.Content
			}
		} else {
			var plain string
			if json.Unmarshal(r.Message, &plain) == nil && plain != "" {
				text = plain
			}
		}
	}
	if text == "" {
		return engine.Message{}, false
	}

	history := r.History
	if history == nil {
		history = r.HistoryAlt
	}

	return engine.Message{
		SessionID:  id,
		Text:       text,
		History:    history,
		LocaleHint: r.Metadata["language"],
	}, true
}

// ============================================================================
// HTTP Server
// ============================================================================

func apiKeyMiddleware(key string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		provided := c.Get("x-api-key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Unauthorized: Invalid or missing API key",
			})
		}
		return c.Next()
	}
}

func honeypotHandler(eng *engine.Engine) fiber.Handler {
	return func(c fiber.Ctx) error {
		var req inboundRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Bad Request: invalid JSON body",
			})
		}
		msg, ok := req.toMessage()
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Bad Request: message text is required",
			})
		}

		res := eng.Process(c.Context(), msg)
		return c.JSON(fiber.Map{
			"status": "success",
			"reply":  res.Reply,
			"detail": res,
		})
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.NewDefaultConfig()
	if path := os.Getenv("LUREBOX_CONFIG_FILE"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			panic(err)
		}
	}
	cfg.MustValidate()
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	var sink report.Sink = report.NopSink{}
	if cfg.ReportURL != "" {
		sink = asyncSink{ws: report.NewWebhookSink(cfg.ReportURL, cfg.ReportRetries)}
		logger.Info("report delivery enabled", zap.String("url", cfg.ReportURL))
	} else {
		logger.Warn("no report URL configured, reports will be dropped")
	}

	eng := engine.New(cfg, nil, sink)

	app := fiber.New(fiber.Config{
		AppName: "Lurebox",
	})

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "healthy",
			"version":        Version,
			"activeSessions": eng.Store().Count(),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"service": "Lurebox Honeypot API",
			"endpoints": fiber.Map{
				"health":   "/healthz",
				"honeypot": "/ or /honeypot (POST)",
				"metrics":  "/metrics",
			},
		})
	})

	auth := apiKeyMiddleware(cfg.APIKey)
	app.Post("/", honeypotHandler(eng), auth)
	app.Post("/honeypot", honeypotHandler(eng), auth)

	app.Get("/debug/session/:id", func(c fiber.Ctx) error {
		snap, ok := eng.Store().Get(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "session not found",
			})
		}
		return c.JSON(snap)
	}, auth)

	app.Delete("/debug/session/:id", func(c fiber.Ctx) error {
		if !eng.Store().Delete(c.Params("id")) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "session not found",
			})
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	}, auth)

	app.Post("/debug/purge", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "purged", "sessions": eng.Store().PurgeAll()})
	}, auth)

	logger.Info("lurebox gateway starting",
		zap.String("addr", cfg.ListenAddr),
		zap.String("environment", cfg.Environment))
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

// asyncSink hands payloads to the webhook sink's bounded fire-and-forget
// path so report delivery never blocks a request.
type asyncSink struct{ ws *report.WebhookSink }

func (s asyncSink) Send(_ context.Context, p report.Payload) error {
	s.ws.SendAsync(p)
	return nil
}
