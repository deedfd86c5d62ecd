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

func (h *Handler) registerContactTools(s *mcpserver.MCPServer) {
	s.AddTool(
		mcp.NewTool("list_contact_lists",
			mcp.WithDescription("List the contact lists on the account."),
		),
		h.listContactLists,
	)

	s.AddTool(
		mcp.NewTool("get_contact_list",
			mcp.WithDescription("Show one contact list."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("Contact list id")),
		),
		h.getContactList,
	)

	s.AddTool(
		mcp.NewTool("get_contacts_from_list",
			mcp.WithDescription("List the contacts in a contact list."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("Contact list id")),
			mcp.WithNumber("page", mcp.Description("Page number, starting at 1 (default 1)")),
			mcp.WithNumber("per_page", mcp.Description("Results per page (default 25, max 100)")),
		),
		h.getContactsFromList,
	)

	s.AddTool(
		mcp.NewTool("add_contact_to_list",
			mcp.WithDescription("Add one contact to a contact list."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("Contact list id")),
			mcp.WithString("email", mcp.Required(), mcp.Description("Contact email address")),
			mcp.WithString("first_name", mcp.Description("Contact first name")),
			mcp.WithString("last_name", mcp.Description("Contact last name")),
			mcp.WithString("company", mcp.Description("Contact company")),
			mcp.WithString("linkedin_url", mcp.Description("Contact LinkedIn profile URL")),
		),
		h.addContactToList,
	)

	s.AddTool(
		mcp.NewTool("update_contact",
			mcp.WithDescription("Update fields on an existing contact. Only the supplied fields change."),
			mcp.WithString("contact_id", mcp.Required(), mcp.Description("Contact id")),
			mcp.WithString("email", mcp.Description("New email address")),
			mcp.WithString("first_name", mcp.Description("New first name")),
			mcp.WithString("last_name", mcp.Description("New last name")),
			mcp.WithString("company", mcp.Description("New company")),
		),
		h.updateContact,
	)

	s.AddTool(
		mcp.NewTool("remove_contact_from_list",
			mcp.WithDescription("Remove a contact from a contact list."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("Contact list id")),
			mcp.WithString("contact_id", mcp.Required(), mcp.Description("Contact id")),
		),
		h.removeContactFromList,
	)
}

func (h *Handler) listContactLists(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("list_contact_lists"); res != nil {
		return res, nil
	}

	out, err := emelia.Dispatch[emelia.ContactListsResponse](ctx, h.client, http.MethodGet, "/contacts/lists", nil)
	if err != nil {
		return failure("list contact lists"), nil
	}
	if len(out.Lists) == 0 {
		return mcp.NewToolResultText("No contact lists found."), nil
	}

	var b strings.Builder
	b.WriteString("Contact lists:\n\n")
	for i, l := range out.Lists {
		fmt.Fprintf(&b, "%d. %s (%d contacts)\n   id: %s | created: %s\n",
			i+1, orUnknown(l.Name), l.ContactsCount, l.ID, orUnknown(l.CreatedAt))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) getContactList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_contact_list"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := emelia.Dispatch[emelia.ContactListResponse](ctx, h.client, http.MethodGet, "/contacts/lists/"+url.PathEscape(id), nil)
	if err != nil {
		return failure("fetch the contact list"), nil
	}
	if out.List == nil {
		return apiRejection("fetch the contact list", out.Envelope), nil
	}

	l := out.List
	return mcp.NewToolResultText(fmt.Sprintf("List: %s\nContacts: %d\nId: %s\nCreated: %s\n",
		orUnknown(l.Name), l.ContactsCount, l.ID, orUnknown(l.CreatedAt))), nil
}

func (h *Handler) getContactsFromList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_contacts_from_list"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, perPage := clampPage(req.GetInt("page", 1), req.GetInt("per_page", 25))

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	out, err := emelia.Dispatch[emelia.ContactsResponse](ctx, h.client, http.MethodGet, "/contacts/lists/"+url.PathEscape(id)+"/contacts", &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("fetch contacts from the list"), nil
	}
	if len(out.Contacts) == 0 {
		return mcp.NewToolResultText("No contacts found in this list."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Contacts in list %s (page %d):\n\n", id, page)
	writeContacts(&b, out.Contacts)
	if out.Total > 0 {
		fmt.Fprintf(&b, "\nTotal: %d contacts\n", out.Total)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) addContactToList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("add_contact_to_list"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("list_id")
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
	if v := strings.TrimSpace(req.GetString("linkedin_url", "")); v != "" {
		body["linkedinUrl"] = v
	}

	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodPost, "/contacts/lists/"+url.PathEscape(id)+"/contacts", &emelia.RequestOptions{Body: body})
	if err != nil {
		return failure("add the contact"), nil
	}
	if !out.Success {
		return apiRejection("add the contact", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Contact %s added to list %s.", email, id)), nil
}

func (h *Handler) updateContact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("update_contact"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("contact_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]any{}
	if v := strings.TrimSpace(req.GetString("email", "")); v != "" {
		body["email"] = v
	}
	if v := strings.TrimSpace(req.GetString("first_name", "")); v != "" {
		body["firstName"] = v
	}
	if v := strings.TrimSpace(req.GetString("last_name", "")); v != "" {
		body["lastName"] = v
	}
	if v := strings.TrimSpace(req.GetString("company", "")); v != "" {
		body["company"] = v
	}
	if len(body) == 0 {
		return mcp.NewToolResultError("nothing to update: supply at least one of email, first_name, last_name, company"), nil
	}

	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodPatch, "/contacts/"+url.PathEscape(id), &emelia.RequestOptions{Body: body})
	if err != nil {
		return failure("update the contact"), nil
	}
	if !out.Success {
		return apiRejection("update the contact", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Contact %s updated (%d field(s)).", id, len(body))), nil
}

func (h *Handler) removeContactFromList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("remove_contact_from_list"); res != nil {
		return res, nil
	}
	listID, err := req.RequireString("list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contactID, err := req.RequireString("contact_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path := "/contacts/lists/" + url.PathEscape(listID) + "/contacts/" + url.PathEscape(contactID)
	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodDelete, path, nil)
	if err != nil {
		return failure("remove the contact"), nil
	}
	if !out.Success {
		return apiRejection("remove the contact", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Contact %s removed from list %s.", contactID, listID)), nil
}
