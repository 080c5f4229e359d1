package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError converte o erro de um Transaction (normalmente *fiber.Error)
// em resposta JSON consistente via helper.JsonError.
// Se não for *fiber.Error, cai no 500 com a mensagem original.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
