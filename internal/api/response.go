package api

import (
	"errors"
	"strings"

	"itgirls-web/internal/apiclient"
	"itgirls-web/internal/notify"
	"itgirls-web/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// statusSuperseded answers a request whose work was cancelled by a newer one
// from the same client.
const statusSuperseded = 499

// reply writes body with the notices array every route returns.
func reply(c *fiber.Ctx, status int, body fiber.Map, notices ...notify.Notice) error {
	if body == nil {
		body = fiber.Map{}
	}
	body["notices"] = notify.Notices(notices).List()
	return c.Status(status).JSON(body)
}

func fail(c *fiber.Ctx, status int, notice notify.Notice) error {
	return reply(c, status, fiber.Map{}, notice)
}

func invalid(c *fiber.Ctx, errs validation.Errors) error {
	return reply(c, fiber.StatusBadRequest, fiber.Map{"errors": errs})
}

func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, notify.ErrorNotice("Cannot parse JSON"))
}

// backendFailure forwards the backend status with its message; transport
// failures become 502 with the fallback message.
func backendFailure(c *fiber.Ctx, err error, fallback string) error {
	status := apiclient.StatusOf(err)
	if status == 0 {
		status = fiber.StatusBadGateway
	}

	message := fallback
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		message = apiErr.Message
	}
	return fail(c, status, notify.ErrorNotice(message))
}
