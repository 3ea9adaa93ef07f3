package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/carousel"
	"itgirls-web/internal/catalog"
	"itgirls-web/internal/dashboard"
	"itgirls-web/internal/events"
	"itgirls-web/internal/fixtures"
	"itgirls-web/internal/model"
	"itgirls-web/internal/normalize"
	"itgirls-web/internal/notify"
	"itgirls-web/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const communityPostsLimit = 20

// PublicBackend is the part of the backend the public pages read and write.
type PublicBackend interface {
	ListGeneralFeedback(ctx context.Context) ([]backend.FeedbackRecord, error)
	ListBlogPosts(ctx context.Context) ([]backend.BlogPostRecord, error)
	FeaturedBlogPost(ctx context.Context) (*backend.BlogPostRecord, error)
	ListCommunityPosts(ctx context.Context, limit int) ([]backend.CommunityPostRecord, error)
	SubmitDonation(ctx context.Context, req backend.DonationRequest) error
}

type PublicHandler struct {
	backend   PublicBackend
	searcher  *catalog.Searcher
	fixtures  *fixtures.Set
	blog      normalize.Blog
	community *carousel.Loop
	publisher events.EventPublisher
}

func NewPublicHandler(b PublicBackend, searcher *catalog.Searcher, set *fixtures.Set, blog normalize.Blog, community *carousel.Loop, publisher events.EventPublisher) *PublicHandler {
	return &PublicHandler{
		backend:   b,
		searcher:  searcher,
		fixtures:  set,
		blog:      blog,
		community: community,
		publisher: publisher,
	}
}

// Home serves the testimonials carousel.
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	records, err := h.backend.ListGeneralFeedback(c.UserContext())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to load testimonials", slog.String("error", err.Error()))
		records = nil
	}

	testimonials := normalize.Testimonials(records)
	idx := carousel.NewIndex(c.QueryInt("index", 0), len(testimonials))

	return reply(c, fiber.StatusOK, fiber.Map{
		"testimonials": testimonials,
		"index":        idx.Pos,
		"hasPrev":      idx.HasPrev(),
		"hasNext":      idx.HasNext(),
	})
}

func (h *PublicHandler) Formations(c *fiber.Ctx) error {
	filters := catalog.Filters{
		ThemeKey: c.Query("themeKey", catalog.All),
		Level:    c.Query("level", catalog.All),
		Q:        c.Query("q"),
	}

	res, err := h.searcher.Search(c.UserContext(), clientKey(c), filters)
	if err != nil {
		if errors.Is(err, catalog.ErrSuperseded) {
			return reply(c, statusSuperseded, fiber.Map{"superseded": true})
		}
		return err
	}

	pager := carousel.NewPager(c.QueryInt("visible", carousel.DefaultPageSize))
	return reply(c, fiber.StatusOK, fiber.Map{
		"themes":      catalog.Themes,
		"levels":      catalog.Levels,
		"formations":  carousel.Page(pager, res.Formations),
		"total":       len(res.Formations),
		"visible":     pager.Visible,
		"canLoadMore": pager.CanLoadMore(len(res.Formations)),
		"popular":     res.Popular,
		"showPopular": res.ShowPopular,
	})
}

func (h *PublicHandler) Events(c *fiber.Ctx) error {
	filtered := catalog.FilterEvents(normalize.Events(h.fixtures.Events), catalog.EventFilters{
		TypeKey: c.Query("type", catalog.All),
		Q:       c.Query("q"),
	})

	pager := carousel.NewPager(c.QueryInt("visible", carousel.DefaultPageSize))
	now := timeNow()
	cards := make([]model.EventCard, 0, pager.Visible)
	for _, ev := range carousel.Page(pager, filtered) {
		cards = append(cards, dashboard.EventCardFor(ev, now))
	}

	return reply(c, fiber.StatusOK, fiber.Map{
		"types":       catalog.EventTypes,
		"events":      cards,
		"total":       len(filtered),
		"visible":     pager.Visible,
		"canLoadMore": pager.CanLoadMore(len(filtered)),
	})
}

func (h *PublicHandler) Mentorat(c *fiber.Ctx) error {
	m := h.fixtures.Mentorat
	spot := carousel.NewCycle(c.QueryInt("index", 0), len(m.Mentors))

	body := fiber.Map{
		"mentors":      m.Mentors,
		"index":        spot.Pos,
		"prev":         spot.Prev().Pos,
		"next":         spot.Next().Pos,
		"programs":     m.Programs,
		"testimonials": m.Testimonials,
		"featured":     nil,
	}
	if len(m.Mentors) > 0 {
		body["featured"] = m.Mentors[spot.Pos]
	}
	return reply(c, fiber.StatusOK, body)
}

// Blog loads posts, the featured post and community posts together; if any
// of the three fails the page shows nothing rather than a partial view.
func (h *PublicHandler) Blog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		wg        sync.WaitGroup
		posts     []backend.BlogPostRecord
		featured  *backend.BlogPostRecord
		community []backend.CommunityPostRecord
		errs      = make([]error, 3)
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		posts, errs[0] = h.backend.ListBlogPosts(ctx)
	}()
	go func() {
		defer wg.Done()
		featured, errs[1] = h.backend.FeaturedBlogPost(ctx)
	}()
	go func() {
		defer wg.Done()
		community, errs[2] = h.backend.ListCommunityPosts(ctx, communityPostsLimit)
	}()
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		slog.ErrorContext(ctx, "Failed to load blog", slog.String("error", err.Error()))
		posts, featured, community = nil, nil, nil
	}

	items := h.blog.CommunityPosts(community)
	if h.community.Len() != len(items) {
		h.community.Reset(len(items))
	}

	spotlight := fiber.Map{"posts": items, "loop": h.community.State()}
	return reply(c, fiber.StatusOK, fiber.Map{
		"posts":     h.blog.Posts(posts),
		"featured":  h.blog.Featured(featured),
		"community": spotlight,
	})
}

func (h *PublicHandler) Donation(c *fiber.Ctx) error {
	var form validation.DonationForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}

	if errs := validation.ValidateDonation(form); !errs.Valid() {
		return reply(c, fiber.StatusBadRequest, fiber.Map{"errors": errs},
			notify.ErrorNotice(errs.First(validation.DonationOrder...)))
	}

	n := form.Normalized()
	err := h.backend.SubmitDonation(c.UserContext(), backend.DonationRequest{
		FirstName: n.FirstName,
		LastName:  n.LastName,
		Email:     n.Email,
		Amount:    n.Amount,
		Message:   n.Message,
	})
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to submit donation", slog.String("error", err.Error()))
		return backendFailure(c, err, notify.MsgDonationFailed)
	}

	if err := h.publisher.PublishDonationSubmitted(n.Email, n.Amount); err != nil {
		slog.WarnContext(c.UserContext(), "Failed to publish donation event", slog.String("error", err.Error()))
	}

	return reply(c, fiber.StatusCreated, fiber.Map{}, notify.SuccessNotice(notify.MsgDonationThanks))
}
