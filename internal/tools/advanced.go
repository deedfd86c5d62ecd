package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
)

// Advanced campaigns are Emelia's multichannel (LinkedIn + email)
// sequences. The API mirrors the email campaign surface under /advanced.

func (h *Handler) registerAdvancedTools(s *mcpserver.MCPServer) {
	s.AddTool(
		mcp.NewTool("list_advanced_campaigns",
			mcp.WithDescription("List the advanced (LinkedIn/multichannel) campaigns on the account."),
			mcp.WithNumber("page", mcp.Description("Page number, starting at 1 (default 1)")),
			mcp.WithNumber("per_page", mcp.Description("Results per page (default 25, max 100)")),
		),
		h.listAdvancedCampaigns,
	)

	s.AddTool(
		mcp.NewTool("get_advanced_campaign",
			mcp.WithDescription("Show one advanced campaign with its headline stats."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.getAdvancedCampaign,
	)

	s.AddTool(
		mcp.NewTool("launch_advanced_campaign",
			mcp.WithDescription("Start or resume an advanced campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.launchAdvancedCampaign,
	)

	s.AddTool(
		mcp.NewTool("pause_advanced_campaign",
			mcp.WithDescription("Pause an advanced campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.pauseAdvancedCampaign,
	)

	s.AddTool(
		mcp.NewTool("get_advanced_campaign_stats",
			mcp.WithDescription("Show statistics for an advanced campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.getAdvancedCampaignStats,
	)

	s.AddTool(
		mcp.NewTool("get_advanced_campaign_activities",
			mcp.WithDescription("List recent events for an advanced campaign (LinkedIn visits, invites, messages, email events)."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
			mcp.WithString("event", mcp.Description("Only show this event type")),
			mcp.WithNumber("page", mcp.Description("Page number, starting at 1 (default 1)")),
		),
		h.getAdvancedCampaignActivities,
	)

	s.AddTool(
		mcp.NewTool("add_contact_to_advanced_campaign",
			mcp.WithDescription("Enroll one contact into an advanced campaign. A LinkedIn URL is required for LinkedIn steps."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
			mcp.WithString("linkedin_url", mcp.Required(), mcp.Description("Contact LinkedIn profile URL")),
			mcp.WithString("email", mcp.Description("Contact email address, for email steps")),
			mcp.WithString("first_name", mcp.Description("Contact first name")),
			mcp.WithString("last_name", mcp.Description("Contact last name")),
		),
		h.addContactToAdvancedCampaign,
	)
}

func (h *Handler) listAdvancedCampaigns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("list_advanced_campaigns"); res != nil {
		return res, nil
	}
	page, perPage := clampPage(req.GetInt("page", 1), req.GetInt("per_page", 25))

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	out, err := emelia.Dispatch[emelia.CampaignsResponse](ctx, h.client, http.MethodGet, "/advanced/campaigns", &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("list advanced campaigns"), nil
	}
	if len(out.Campaigns) == 0 {
		return mcp.NewToolResultText("No advanced campaigns found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Advanced campaigns (page %d):\n\n", page)
	for i, c := range out.Campaigns {
		fmt.Fprintf(&b, "%d. %s [%s]\n   id: %s | created: %s\n",
			i+1, orUnknown(c.Name), orUnknown(c.Status), c.ID, orUnknown(c.CreatedAt))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) getAdvancedCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_advanced_campaign"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := emelia.Dispatch[emelia.CampaignResponse](ctx, h.client, http.MethodGet, "/advanced/campaign/"+url.PathEscape(id), nil)
	if err != nil {
		return failure("fetch the campaign"), nil
	}
	if out.Campaign == nil {
		return apiRejection("fetch the campaign", out.Envelope), nil
	}

	c := out.Campaign
	var b strings.Builder
	fmt.Fprintf(&b, "Advanced campaign: %s\n", orUnknown(c.Name))
	fmt.Fprintf(&b, "Status: %s | Created: %s\n", orUnknown(c.Status), orUnknown(c.CreatedAt))
	fmt.Fprintf(&b, "Id: %s\n\n", c.ID)
	writeStats(&b, c.Stats)
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) launchAdvancedCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.campaignAction(ctx, req, "launch_advanced_campaign", "/advanced/campaign/%s/launch", "launch", "launched")
}

func (h *Handler) pauseAdvancedCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.campaignAction(ctx, req, "pause_advanced_campaign", "/advanced/campaign/%s/pause", "pause", "paused")
}

func (h *Handler) getAdvancedCampaignStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_advanced_campaign_stats"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := emelia.Dispatch[emelia.CampaignStatsResponse](ctx, h.client, http.MethodGet, "/advanced/campaign/"+url.PathEscape(id)+"/stats", nil)
	if err != nil {
		return failure("fetch campaign stats"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stats for advanced campaign %s:\n\n", id)
	writeStats(&b, out.Stats)
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) getAdvancedCampaignActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_advanced_campaign_activities"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	event := strings.TrimSpace(req.GetString("event", ""))
	page := req.GetInt("page", 1)
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if event != "" {
		q.Set("event", event)
	}

	out, err := emelia.Dispatch[emelia.ActivitiesResponse](ctx, h.client, http.MethodGet, "/advanced/campaign/"+url.PathEscape(id)+"/activities", &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("fetch campaign activities"), nil
	}
	if len(out.Activities) == 0 {
		return mcp.NewToolResultText("No activities found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Activities for advanced campaign %s (page %d):\n\n", id, page)
	for _, a := range out.Activities {
		fmt.Fprintf(&b, "- [%s] %s", orUnknown(a.Event), orUnknown(a.Contact))
		if a.Date != "" {
			fmt.Fprintf(&b, " at %s", a.Date)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) addContactToAdvancedCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("add_contact_to_advanced_campaign"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	linkedinURL, err := req.RequireString("linkedin_url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	linkedinURL = strings.TrimSpace(linkedinURL)
	if !strings.Contains(linkedinURL, "linkedin.com/") {
		return mcp.NewToolResultError("linkedin_url does not look like a LinkedIn profile URL"), nil
	}

	body := map[string]any{"linkedinUrl": linkedinURL}
	if v := strings.TrimSpace(req.GetString("email", "")); v != "" {
		body["email"] = v
	}
	if v := strings.TrimSpace(req.GetString("first_name", "")); v != "" {
		body["firstName"] = v
	}
	if v := strings.TrimSpace(req.GetString("last_name", "")); v != "" {
		body["lastName"] = v
	}

	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodPost, "/advanced/campaign/"+url.PathEscape(id)+"/contacts", &emelia.RequestOptions{Body: body})
	if err != nil {
		return failure("add the contact"), nil
	}
	if !out.Success {
		return apiRejection("add the contact", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Contact %s added to advanced campaign %s.", linkedinURL, id)), nil
}
