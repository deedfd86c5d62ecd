package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListEmailCampaignsEmptyRendersNoCampaigns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails/campaigns" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "campaigns": []}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.listEmailCampaigns(context.Background(), callReq("list_email_campaigns", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("expected success, got: %s", textOf(t, res))
	}
	if got := textOf(t, res); got != "No campaigns found." {
		t.Fatalf("expected the no-campaigns message, got: %q", got)
	}
}

func TestListEmailCampaignsRendersEntriesAndPaging(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"total": 2,
			"campaigns": [
				{"_id": "c1", "name": "Q3 SaaS outreach", "status": "running", "createdAt": "2026-07-01"},
				{"_id": "c2", "name": "Follow-ups", "status": "paused", "createdAt": "2026-07-15"}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.listEmailCampaigns(context.Background(), callReq("list_email_campaigns", map[string]any{
		"page":     float64(2),
		"per_page": float64(10),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["page"][0] != "2" || gotQuery["perPage"][0] != "10" {
		t.Fatalf("pagination must be caller-driven, got query %v", gotQuery)
	}

	text := textOf(t, res)
	for _, want := range []string{"Q3 SaaS outreach", "running", "c2", "Total: 2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestListEmailCampaignsUnauthenticatedSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("server must not be called without auth")
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, false)

	res, err := h.listEmailCampaigns(context.Background(), callReq("list_email_campaigns", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected error result without auth")
	}
}

func TestListEmailCampaignsAPIFailureCollapses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.listEmailCampaigns(context.Background(), callReq("list_email_campaigns", nil))
	if err != nil {
		t.Fatalf("handler must not propagate dispatcher errors: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected error result on API failure")
	}
}

func TestGetEmailCampaignStatsRendersRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails/campaign/c1/stats" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "stats": {"total": 100, "sent": 80, "delivered": 80, "opens": 40, "clicks": 8, "replies": 4, "bounces": 2, "unsubscribes": 1}}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.getEmailCampaignStats(context.Background(), callReq("get_email_campaign_stats", map[string]any{
		"campaign_id": "c1",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := textOf(t, res)
	for _, want := range []string{"Opens: 40 (50.0%)", "Replies: 4 (5.0%)", "Bounces: 2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestLaunchEmailCampaignPostsAndConfirms(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.launchEmailCampaign(context.Background(), callReq("launch_email_campaign", map[string]any{
		"campaign_id": "c1",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("expected success, got: %s", textOf(t, res))
	}
	if gotMethod != http.MethodPost || gotPath != "/emails/campaign/c1/launch" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(textOf(t, res), "launched") {
		t.Fatalf("expected launch confirmation: %s", textOf(t, res))
	}
}

func TestLaunchEmailCampaignSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error": "campaign has no sequence steps"}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.launchEmailCampaign(context.Background(), callReq("launch_email_campaign", map[string]any{
		"campaign_id": "c1",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected error result")
	}
	if !strings.Contains(textOf(t, res), "campaign has no sequence steps") {
		t.Fatalf("expected the API message in output: %s", textOf(t, res))
	}
}

func TestAddContactToEmailCampaignBuildsBody(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.addContactToEmailCampaign(context.Background(), callReq("add_contact_to_email_campaign", map[string]any{
		"campaign_id": "c1",
		"email":       "sam@acme.io",
		"first_name":  "Sam",
		"company":     "Acme",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("expected success, got: %s", textOf(t, res))
	}

	if gotBody["email"] != "sam@acme.io" || gotBody["firstName"] != "Sam" || gotBody["company"] != "Acme" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	if _, present := gotBody["lastName"]; present {
		t.Fatalf("absent optional fields must be omitted, got: %v", gotBody)
	}
}

func TestAddContactToEmailCampaignRejectsBadEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("server must not be called for invalid input")
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.addContactToEmailCampaign(context.Background(), callReq("add_contact_to_email_campaign", map[string]any{
		"campaign_id": "c1",
		"email":       "not-an-email",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected validation error")
	}
}

func TestGetEmailCampaignActivitiesFiltersByEvent(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "activities": [{"event": "reply", "contact": "sam@acme.io", "date": "2026-08-20"}]}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHandler(t, srv.URL, true)

	res, err := h.getEmailCampaignActivities(context.Background(), callReq("get_email_campaign_activities", map[string]any{
		"campaign_id": "c1",
		"event":       "reply",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery["event"][0] != "reply" {
		t.Fatalf("expected event filter in query, got %v", gotQuery)
	}
	if !strings.Contains(textOf(t, res), "sam@acme.io") {
		t.Fatalf("expected contact in output: %s", textOf(t, res))
	}
}
