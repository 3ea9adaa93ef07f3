package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"itgirls-web/internal/apiclient"
	"itgirls-web/internal/model"
)

// Client is the typed surface of the IT Girls REST backend.
type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

type FormationQuery struct {
	ThemeKey string
	Level    string
	Q        string
}

// Login returns the raw response body; callers persist it as-is.
func (c *Client) Login(ctx context.Context, req LoginRequest) (json.RawMessage, error) {
	res, err := c.api.Post(ctx, "/api/auth/login", req)
	if err != nil {
		return nil, err
	}
	return res.JSON, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (json.RawMessage, error) {
	res, err := c.api.Post(ctx, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	return res.JSON, nil
}

func (c *Client) ListFormations(ctx context.Context, q FormationQuery) ([]FormationRecord, error) {
	params := url.Values{}
	if q.ThemeKey != "" {
		params.Set("themeKey", q.ThemeKey)
	}
	if q.Level != "" {
		params.Set("level", q.Level)
	}
	if q.Q != "" {
		params.Set("q", q.Q)
	}

	path := "/api/public/formations"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	return getList[FormationRecord](ctx, c.api, path)
}

func (c *Client) ListGeneralFeedback(ctx context.Context) ([]FeedbackRecord, error) {
	return getList[FeedbackRecord](ctx, c.api, "/api/public/feedbackgeneral")
}

func (c *Client) ListBlogPosts(ctx context.Context) ([]BlogPostRecord, error) {
	return getList[BlogPostRecord](ctx, c.api, "/api/public/blog/posts")
}

// FeaturedBlogPost returns nil when the backend has no featured post.
func (c *Client) FeaturedBlogPost(ctx context.Context) (*BlogPostRecord, error) {
	res, err := c.api.Get(ctx, "/api/public/blog/featured")
	if err != nil {
		return nil, err
	}
	if len(res.JSON) == 0 || string(res.JSON) == "null" {
		return nil, nil
	}
	var post BlogPostRecord
	if err := res.Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) ListCommunityPosts(ctx context.Context, limit int) ([]CommunityPostRecord, error) {
	return getList[CommunityPostRecord](ctx, c.api, "/api/public/community-posts?limit="+strconv.Itoa(limit))
}

func (c *Client) SubmitDonation(ctx context.Context, req DonationRequest) error {
	_, err := c.api.Post(ctx, "/api/public/donations", req)
	return err
}

func (c *Client) SubmitGeneralFeedback(ctx context.Context, req FeedbackRequest) error {
	_, err := c.api.Post(ctx, "/api/public/feedback/general", req)
	return err
}

func (c *Client) SubmitMentoratFeedback(ctx context.Context, req MentoratFeedbackRequest) error {
	_, err := c.api.Post(ctx, "/api/public/feedback/mentorat", req)
	return err
}

func (c *Client) GirlDashboard(ctx context.Context) (*DashboardRecord, error) {
	var rec DashboardRecord
	res, err := c.api.Get(ctx, "/api/girl/dashboard")
	if err != nil {
		return nil, err
	}
	if err := res.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode dashboard: %w", err)
	}
	return &rec, nil
}

func (c *Client) ListMessages(ctx context.Context, conversationID model.ID) ([]model.Message, error) {
	records, err := getList[MessageRecord](ctx, c.api, messagesPath(conversationID))
	if err != nil {
		return nil, err
	}
	out := make([]model.Message, 0, len(records))
	for _, r := range records {
		out = append(out, r.Message())
	}
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, conversationID model.ID, req SendMessageRequest) (model.Message, error) {
	rec, err := apiclient.PostJSON[MessageRecord](ctx, c.api, messagesPath(conversationID), req)
	if err != nil {
		return model.Message{}, err
	}
	return rec.Message(), nil
}

func messagesPath(conversationID model.ID) string {
	return "/api/messaging/conversations/" + url.PathEscape(conversationID.String()) + "/messages"
}

func getList[T any](ctx context.Context, api *apiclient.Client, path string) ([]T, error) {
	res, err := api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[T](res.JSON)
}
