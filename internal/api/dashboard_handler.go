package api

import (
	"context"
	"errors"
	"log/slog"

	"itgirls-web/internal/apiclient"
	"itgirls-web/internal/backend"
	"itgirls-web/internal/dashboard"
	"itgirls-web/internal/events"
	"itgirls-web/internal/fixtures"
	"itgirls-web/internal/inbox"
	"itgirls-web/internal/model"
	"itgirls-web/internal/notify"
	"itgirls-web/internal/service"
	"itgirls-web/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	feedbackGeneral  = "general"
	feedbackMentorat = "mentorat"
)

type DashboardBackend interface {
	GirlDashboard(ctx context.Context) (*backend.DashboardRecord, error)
	SubmitGeneralFeedback(ctx context.Context, req backend.FeedbackRequest) error
	SubmitMentoratFeedback(ctx context.Context, req backend.MentoratFeedbackRequest) error
}

type DashboardHandler struct {
	backend   DashboardBackend
	inboxes   *inbox.Registry
	panels    fixtures.ExpertPanels
	publisher events.EventPublisher
}

func NewDashboardHandler(b DashboardBackend, inboxes *inbox.Registry, panels fixtures.ExpertPanels, publisher events.EventPublisher) *DashboardHandler {
	return &DashboardHandler{
		backend:   b,
		inboxes:   inboxes,
		panels:    panels,
		publisher: publisher,
	}
}

type sendMessageBody struct {
	Content string `json:"content"`
}

func author(c *fiber.Ctx) dashboard.Author {
	return dashboard.AuthorFor(CurrentUser(c), service.MapEducationToLevel)
}

// load fetches the girl dashboard; a failure yields the empty view.
func (h *DashboardHandler) load(ctx context.Context, a dashboard.Author) model.GirlDashboard {
	rec, err := h.backend.GirlDashboard(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load girl dashboard", slog.String("error", err.Error()))
		return dashboard.EmptyGirlDashboard()
	}
	return dashboard.BuildGirlDashboard(rec, a)
}

// GirlDashboard also opens the first conversation when none is active yet.
func (h *DashboardHandler) GirlDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	d := h.load(ctx, author(c))

	in := h.inboxes.For(clientKey(c))
	messages := in.Messages()
	if in.Active() == "" && len(d.Conversations) > 0 {
		messages = in.Select(ctx, d.Conversations[0].ID)
	}

	return reply(c, fiber.StatusOK, fiber.Map{
		"dashboard":            d,
		"activeConversationId": in.Active(),
		"messages":             messages,
	})
}

func (h *DashboardHandler) Messages(c *fiber.Ctx) error {
	in := h.inboxes.For(clientKey(c))
	messages := in.Select(c.UserContext(), model.ID(c.Params("id")))

	return reply(c, fiber.StatusOK, fiber.Map{
		"activeConversationId": in.Active(),
		"messages":             messages,
	})
}

func (h *DashboardHandler) SendMessage(c *fiber.Ctx) error {
	var body sendMessageBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	if !validation.ValidDraft(body.Content) {
		return invalid(c, validation.Errors{"content": "Message requis."})
	}

	ctx := c.UserContext()
	a := author(c)
	conversationID := model.ID(c.Params("id"))

	in := h.inboxes.For(clientKey(c))
	if in.Active() != conversationID {
		in.Select(ctx, conversationID)
	}

	saved, err := in.Send(ctx, body.Content, inbox.Sender{ID: a.UserID, Name: a.Name})
	if err != nil {
		var sendErr *inbox.SendError
		if errors.As(err, &sendErr) {
			return reply(c, fiber.StatusBadGateway, fiber.Map{
				"activeConversationId": in.Active(),
				"messages":             in.Messages(),
			}, sendErr.Notice)
		}
		return invalid(c, validation.Errors{"content": "Message requis."})
	}

	return reply(c, fiber.StatusCreated, fiber.Map{
		"message":              saved,
		"activeConversationId": in.Active(),
		"messages":             in.Messages(),
		"dashboard":            h.load(ctx, a),
	})
}

func (h *DashboardHandler) GeneralFeedback(c *fiber.Ctx) error {
	return h.feedback(c, feedbackGeneral)
}

func (h *DashboardHandler) MentoratFeedback(c *fiber.Ctx) error {
	return h.feedback(c, feedbackMentorat)
}

func (h *DashboardHandler) feedback(c *fiber.Ctx, kind string) error {
	var form validation.FeedbackForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	if errs := validation.ValidateFeedback(form); !errs.Valid() {
		return invalid(c, errs)
	}

	ctx := c.UserContext()
	a := author(c)
	req := backend.FeedbackRequest{
		UserID:      a.UserID,
		AuthorName:  a.Name,
		AuthorTitle: a.Title,
		Rating:      validation.ClampRating(form.Rating),
		Message:     form.Message,
	}

	okMsg, errMsg := notify.MsgFeedbackThanks, notify.MsgFeedbackFailed
	var err error
	if kind == feedbackMentorat {
		okMsg, errMsg = notify.MsgMentoratFeedbackOK, notify.MsgMentoratFeedbackErr
		err = h.backend.SubmitMentoratFeedback(ctx, backend.MentoratFeedbackRequest{FeedbackRequest: req})
	} else {
		err = h.backend.SubmitGeneralFeedback(ctx, req)
	}

	if err != nil {
		slog.ErrorContext(ctx, "Failed to submit feedback",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		status := apiclient.StatusOf(err)
		if status == 0 {
			status = fiber.StatusBadGateway
		}
		return fail(c, status, notify.ErrorNotice(errMsg))
	}

	if err := h.publisher.PublishFeedbackSubmitted(kind, a.UserID, req.Rating); err != nil {
		slog.WarnContext(ctx, "Failed to publish feedback event", slog.String("error", err.Error()))
	}

	return reply(c, fiber.StatusCreated, fiber.Map{"dashboard": h.load(ctx, a)}, notify.SuccessNotice(okMsg))
}

func (h *DashboardHandler) ExpertDashboard(c *fiber.Ctx) error {
	return reply(c, fiber.StatusOK, fiber.Map{
		"dashboard": dashboard.BuildExpertDashboard(CurrentUser(c), h.panels),
	})
}
