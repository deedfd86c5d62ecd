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

func (h *Handler) registerCampaignTools(s *mcpserver.MCPServer) {
	s.AddTool(
		mcp.NewTool("list_email_campaigns",
			mcp.WithDescription("List the email campaigns on the account."),
			mcp.WithNumber("page", mcp.Description("Page number, starting at 1 (default 1)")),
			mcp.WithNumber("per_page", mcp.Description("Results per page (default 25, max 100)")),
		),
		h.listEmailCampaigns,
	)

	s.AddTool(
		mcp.NewTool("get_email_campaign",
			mcp.WithDescription("Show one email campaign with its headline stats."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.getEmailCampaign,
	)

	s.AddTool(
		mcp.NewTool("create_email_campaign",
			mcp.WithDescription("Create a new (empty, draft) email campaign. Sequences and senders are configured in the Emelia dashboard."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Campaign name")),
		),
		h.createEmailCampaign,
	)

	s.AddTool(
		mcp.NewTool("launch_email_campaign",
			mcp.WithDescription("Start or resume sending for an email campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.launchEmailCampaign,
	)

	s.AddTool(
		mcp.NewTool("pause_email_campaign",
			mcp.WithDescription("Pause sending for an email campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.pauseEmailCampaign,
	)

	s.AddTool(
		mcp.NewTool("get_email_campaign_stats",
			mcp.WithDescription("Show delivery/open/click/reply statistics for an email campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
		),
		h.getEmailCampaignStats,
	)

	s.AddTool(
		mcp.NewTool("get_email_campaign_activities",
			mcp.WithDescription("List recent events (sent, open, click, reply, bounce, unsubscribe) for an email campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
			mcp.WithString("event", mcp.Description("Only show this event type: sent, open, click, reply, bounce, unsubscribe")),
			mcp.WithNumber("page", mcp.Description("Page number, starting at 1 (default 1)")),
		),
		h.getEmailCampaignActivities,
	)

	s.AddTool(
		mcp.NewTool("get_email_campaign_contacts",
			mcp.WithDescription("List the contacts enrolled in an email campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
			mcp.WithNumber("page", mcp.Description("Page number, starting at 1 (default 1)")),
			mcp.WithNumber("per_page", mcp.Description("Results per page (default 25, max 100)")),
		),
		h.getEmailCampaignContacts,
	)

	s.AddTool(
		mcp.NewTool("add_contact_to_email_campaign",
			mcp.WithDescription("Enroll one contact into an email campaign."),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign id")),
			mcp.WithString("email", mcp.Required(), mcp.Description("Contact email address")),
			mcp.WithString("first_name", mcp.Description("Contact first name")),
			mcp.WithString("last_name", mcp.Description("Contact last name")),
			mcp.WithString("company", mcp.Description("Contact company")),
		),
		h.addContactToEmailCampaign,
	)
}

func (h *Handler) listEmailCampaigns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("list_email_campaigns"); res != nil {
		return res, nil
	}
	page, perPage := clampPage(req.GetInt("page", 1), req.GetInt("per_page", 25))

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	out, err := emelia.Dispatch[emelia.CampaignsResponse](ctx, h.client, http.MethodGet, "/emails/campaigns", &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("list email campaigns"), nil
	}
	if len(out.Campaigns) == 0 {
		return mcp.NewToolResultText("No campaigns found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Email campaigns (page %d):\n\n", page)
	for i, c := range out.Campaigns {
		fmt.Fprintf(&b, "%d. %s [%s]\n   id: %s | created: %s\n",
			i+1, orUnknown(c.Name), orUnknown(c.Status), c.ID, orUnknown(c.CreatedAt))
	}
	if out.Total > 0 {
		fmt.Fprintf(&b, "\nTotal: %d campaigns\n", out.Total)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) getEmailCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_email_campaign"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := emelia.Dispatch[emelia.CampaignResponse](ctx, h.client, http.MethodGet, "/emails/campaign/"+url.PathEscape(id), nil)
	if err != nil {
		return failure("fetch the campaign"), nil
	}
	if out.Campaign == nil {
		return apiRejection("fetch the campaign", out.Envelope), nil
	}

	c := out.Campaign
	var b strings.Builder
	fmt.Fprintf(&b, "Campaign: %s\n", orUnknown(c.Name))
	fmt.Fprintf(&b, "Status: %s | Created: %s\n", orUnknown(c.Status), orUnknown(c.CreatedAt))
	fmt.Fprintf(&b, "Id: %s\n\n", c.ID)
	writeStats(&b, c.Stats)
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) createEmailCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("create_email_campaign"); res != nil {
		return res, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return mcp.NewToolResultError("name must not be empty"), nil
	}

	body := map[string]any{"name": name}
	out, err := emelia.Dispatch[emelia.CampaignResponse](ctx, h.client, http.MethodPost, "/emails/campaign", &emelia.RequestOptions{Body: body})
	if err != nil {
		return failure("create the campaign"), nil
	}
	if !out.Success && out.Campaign == nil {
		return apiRejection("create the campaign", out.Envelope), nil
	}

	id := "unknown"
	if out.Campaign != nil && out.Campaign.ID != "" {
		id = out.Campaign.ID
	}
	return mcp.NewToolResultText(fmt.Sprintf("Campaign %q created (id: %s). It is a draft until launched.", name, id)), nil
}

func (h *Handler) launchEmailCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.campaignAction(ctx, req, "launch_email_campaign", "/emails/campaign/%s/launch", "launch", "launched")
}

func (h *Handler) pauseEmailCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.campaignAction(ctx, req, "pause_email_campaign", "/emails/campaign/%s/pause", "pause", "paused")
}

// campaignAction covers the launch/pause pair; both are a bare POST with
// no body and only a success flag in the response.
func (h *Handler) campaignAction(ctx context.Context, req mcp.CallToolRequest, tool, pathFmt, verb, done string) (*mcp.CallToolResult, error) {
	if res := h.requireAuth(tool); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path := fmt.Sprintf(pathFmt, url.PathEscape(id))
	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodPost, path, nil)
	if err != nil {
		return failure(verb + " the campaign"), nil
	}
	if !out.Success {
		return apiRejection(verb+" the campaign", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Campaign %s %s.", id, done)), nil
}

func (h *Handler) getEmailCampaignStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_email_campaign_stats"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := emelia.Dispatch[emelia.CampaignStatsResponse](ctx, h.client, http.MethodGet, "/emails/campaign/"+url.PathEscape(id)+"/stats", nil)
	if err != nil {
		return failure("fetch campaign stats"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stats for campaign %s:\n\n", id)
	writeStats(&b, out.Stats)
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) getEmailCampaignActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_email_campaign_activities"); res != nil {
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

	out, err := emelia.Dispatch[emelia.ActivitiesResponse](ctx, h.client, http.MethodGet, "/emails/campaign/"+url.PathEscape(id)+"/activities", &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("fetch campaign activities"), nil
	}
	if len(out.Activities) == 0 {
		return mcp.NewToolResultText("No activities found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Activities for campaign %s (page %d):\n\n", id, page)
	for _, a := range out.Activities {
		fmt.Fprintf(&b, "- [%s] %s", orUnknown(a.Event), orUnknown(a.Contact))
		if a.Step > 0 {
			fmt.Fprintf(&b, " (step %d)", a.Step)
		}
		if a.Date != "" {
			fmt.Fprintf(&b, " at %s", a.Date)
		}
		if a.Detail != "" {
			fmt.Fprintf(&b, " — %s", a.Detail)
		}
		b.WriteString("\n")
	}
	if out.Total > 0 {
		fmt.Fprintf(&b, "\nTotal: %d activities\n", out.Total)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) getEmailCampaignContacts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_email_campaign_contacts"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, perPage := clampPage(req.GetInt("page", 1), req.GetInt("per_page", 25))

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	out, err := emelia.Dispatch[emelia.ContactsResponse](ctx, h.client, http.MethodGet, "/emails/campaign/"+url.PathEscape(id)+"/contacts", &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("fetch campaign contacts"), nil
	}
	if len(out.Contacts) == 0 {
		return mcp.NewToolResultText("No contacts found in this campaign."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Contacts in campaign %s (page %d):\n\n", id, page)
	writeContacts(&b, out.Contacts)
	if out.Total > 0 {
		fmt.Fprintf(&b, "\nTotal: %d contacts\n", out.Total)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) addContactToEmailCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("add_contact_to_email_campaign"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("campaign_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return mcp.NewToolResultError("email does not look like an email address"), nil
	}

	body := map[string]any{"email": email}
	if v := strings.TrimSpace(req.GetString("first_name", "")); v != "" {
		body["firstName"] = v
	}
	if v := strings.TrimSpace(req.GetString("last_name", "")); v != "" {
		body["lastName"] = v
	}
	if v := strings.TrimSpace(req.GetString("company", "")); v != "" {
		body["company"] = v
	}

	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodPost, "/emails/campaign/"+url.PathEscape(id)+"/contacts", &emelia.RequestOptions{Body: body})
	if err != nil {
		return failure("add the contact"), nil
	}
	if !out.Success {
		return apiRejection("add the contact", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Contact %s added to campaign %s.", email, id)), nil
}

func writeContacts(b *strings.Builder, contacts []emelia.Contact) {
	for i, c := range contacts {
		fmt.Fprintf(b, "%d. %s", i+1, orUnknown(c.Email))
		if name := fullName(c.FirstName, c.LastName); name != "unknown" {
			fmt.Fprintf(b, " — %s", name)
		}
		if c.Company != "" {
			fmt.Fprintf(b, " (%s)", c.Company)
		}
		if c.Status != "" {
			fmt.Fprintf(b, " [%s]", c.Status)
		}
		b.WriteString("\n")
	}
}
