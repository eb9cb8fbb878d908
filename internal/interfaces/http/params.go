package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
)

// pageQuery lee page y limit del query string; los valores no numéricos cuentan como ausentes.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page"), Limit: c.QueryInt("limit")}
}

// pathID devuelve el parámetro :id o un error de validación si viene vacío.
func pathID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return "", domain.NewValidationError("id", "requerido")
	}
	return id, nil
}

// parseBody decodifica el JSON del cuerpo.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return invalidBody()
	}
	return nil
}
