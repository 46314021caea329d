package http

import (
	"errors"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// NoStore impide que navegadores o proxies guarden las páginas: cada visita debe
// mostrar el estado actual de la base.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Set(fiber.HeaderPragma, "no-cache")
		return c.Next()
	}
}

// RequestLogger registra cada petición con su request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		log.Debug().
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return err
	}
}

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html><head><title>Error</title></head><body><h1>Error {{.Code}}</h1><p>{{.Message}}</p></body></html>`))

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		}
		c.Status(code)
		c.Type("html", "utf-8")
		return errorPage.Execute(c.Response().BodyWriter(), fiber.Map{"Code": code, "Message": err.Error()})
	}
}
