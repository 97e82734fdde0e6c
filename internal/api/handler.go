// Package api serves month grids and selection state over HTTP.
package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/codec"
	"github.com/alexisbeaulieu97/calgrid/internal/config"
	"github.com/alexisbeaulieu97/calgrid/internal/logger"
	"github.com/alexisbeaulieu97/calgrid/internal/store"
	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

// MIMEMsgpack is the media type clients send in Accept to get msgpack bodies.
const MIMEMsgpack = "application/msgpack"

const maxMonths = 12

// Handler holds the dependencies shared by every route.
type Handler struct {
	store   store.Store
	codec   *codec.Codec
	opts    config.Options
	builder calendar.Builder
	log     *logger.Logger
}

// NewHandler wires a Handler. A nil logger discards output.
func NewHandler(st store.Store, tokens *codec.Codec, opts config.Options, builder calendar.Builder, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if opts.NumberOfMonths < 1 {
		opts.NumberOfMonths = 1
	}
	return &Handler{store: st, codec: tokens, opts: opts, builder: builder, log: log}
}

// Health reports liveness.
func (handler *Handler) Health(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

func wantsMsgpack(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), MIMEMsgpack)
}

// respond writes value as msgpack when the client asks for it and as JSON otherwise.
// Both encodings share the json struct tags.
func respond(c *fiber.Ctx, status int, value any) error {
	if !wantsMsgpack(c) {
		return c.Status(status).JSON(value)
	}

	var buf strings.Builder
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(value); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, MIMEMsgpack)
	return c.Status(status).SendString(buf.String())
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return respond(c, status, fiber.Map{"error": message})
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var (
		validationErr *calerrors.ValidationError
		tokenErr      *calerrors.TokenError
		fiberErr      *fiber.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &tokenErr):
		return fiber.StatusBadRequest
	case errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, calendar.ErrInvalidWeekday):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every returned error as {"error": message}.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := errorStatus(err)
		if status >= fiber.StatusInternalServerError {
			log.Error(err, "request failed")
		}
		return apiError(c, status, err.Error())
	}
}
