package api

import (
	"errors"
	"log/slog"

	"itgirls-web/internal/config"
	"itgirls-web/internal/notify"
	"itgirls-web/internal/s3"
	"itgirls-web/internal/service"
	"itgirls-web/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	presigner   s3.CVPresigner
	identity    config.IdentityProvider
	cookies     cookieJar
}

// NewAuthHandler wires the auth routes. presigner may be nil when object
// storage is not configured.
func NewAuthHandler(authService service.AuthService, presigner s3.CVPresigner, identity config.IdentityProvider, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		presigner:   presigner,
		identity:    identity,
		cookies:     cookieJar{secure: secureCookies},
	}
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	body := fiber.Map{"user": nil}
	if user := CurrentUser(c); user != nil {
		body["user"] = user
	}
	if h.identity.Enabled() {
		body["identityProvider"] = h.identity
	}
	return reply(c, fiber.StatusOK, body)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}

	if errs := validation.ValidateLogin(form); !errs.Valid() {
		return invalid(c, errs)
	}

	res, err := h.authService.Login(c.UserContext(), keysFrom(c), form)
	if err != nil {
		slog.WarnContext(c.UserContext(), "Login failed", slog.String("error", err.Error()))
		if errors.Is(err, service.ErrEmptyAuthResponse) {
			return fail(c, fiber.StatusBadGateway, notify.ErrorNotice(notify.MsgLoginFailed))
		}
		return backendFailure(c, err, notify.MsgLoginFailed)
	}

	h.cookies.set(c, res.Handle)
	return reply(c, fiber.StatusOK, fiber.Map{"user": res.User, "redirect": res.Redirect})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form validation.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}

	if errs := validation.ValidateRegister(form); !errs.Valid() {
		return invalid(c, errs)
	}

	res, err := h.authService.Register(c.UserContext(), keysFrom(c), form)
	if err != nil {
		slog.WarnContext(c.UserContext(), "Registration failed", slog.String("error", err.Error()))
		if errors.Is(err, service.ErrEmptyAuthResponse) {
			return fail(c, fiber.StatusBadGateway, notify.ErrorNotice(notify.MsgRegisterFailed))
		}
		return backendFailure(c, err, notify.MsgRegisterFailed)
	}

	h.cookies.set(c, res.Handle)
	return reply(c, fiber.StatusCreated, fiber.Map{"user": res.User, "redirect": res.Redirect})
}

// CVUploadURL hands out a presigned PUT URL; the browser uploads the PDF
// directly and sends the object key with the registration form.
func (h *AuthHandler) CVUploadURL(c *fiber.Ctx) error {
	if h.presigner == nil {
		return fail(c, fiber.StatusServiceUnavailable, notify.ErrorNotice(notify.MsgCVUploadOff))
	}

	var req validation.CVUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if errs := validation.ValidateCVUpload(req); !errs.Valid() {
		return invalid(c, errs)
	}

	upload, err := h.presigner.PresignCVUpload(c.UserContext(), req.FileName, req.ContentType)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to presign CV upload", slog.String("error", err.Error()))
		return fail(c, fiber.StatusInternalServerError, notify.ErrorNotice(notify.MsgCVUploadFailed))
	}

	return reply(c, fiber.StatusOK, fiber.Map{"upload": upload})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), keysFrom(c)); err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to clear session", slog.String("error", err.Error()))
	}
	h.cookies.clear(c)
	return reply(c, fiber.StatusOK, fiber.Map{"user": nil})
}
