package emelia

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL, key string) *Client {
	t.Helper()
	sess := NewSession()
	if key != "" {
		sess.SetKey(key)
	}
	return NewClient(baseURL, 5*time.Second, sess, nil)
}

func TestDoUnauthenticatedSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("server must not be called without a key")
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "")

	_, err := c.Do(context.Background(), http.MethodGet, "/emails/campaigns", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if KindOf(err) != ErrUnauthenticated {
		t.Fatalf("expected unauthenticated kind, got %v", KindOf(err))
	}
}

func TestDoAfterSetThenClearBehavesLikeNeverSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("server must not be called after logout")
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "")
	c.Session().SetKey("abc")
	c.Session().ClearKey()

	_, err := c.Do(context.Background(), http.MethodGet, "/emails/campaigns", nil)
	if KindOf(err) != ErrUnauthenticated {
		t.Fatalf("expected unauthenticated kind, got %v", err)
	}
}

func TestDispatchDecodesSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "campaigns": []}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "key")

	out, err := Dispatch[CampaignsResponse](context.Background(), c, http.MethodGet, "/emails/campaigns", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success flag to decode")
	}
	if out.Campaigns == nil || len(out.Campaigns) != 0 {
		t.Fatalf("expected empty campaigns slice, got %#v", out.Campaigns)
	}
}

func TestDispatchNonSuccessStatusIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": true, "campaigns": []}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "key")

	out, err := Dispatch[CampaignsResponse](context.Background(), c, http.MethodGet, "/emails/campaigns", nil)
	if out != nil {
		t.Fatalf("expected nil result on 404 regardless of body")
	}
	if KindOf(err) != ErrStatus {
		t.Fatalf("expected status kind, got %v", err)
	}
	if apiErr := err.(*APIError); apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 recorded, got %d", apiErr.Status)
	}
}

func TestDispatchMalformedJSONIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "key")

	out, err := Dispatch[CampaignsResponse](context.Background(), c, http.MethodGet, "/emails/campaigns", nil)
	if out != nil {
		t.Fatalf("expected nil result on malformed body")
	}
	if KindOf(err) != ErrDecode {
		t.Fatalf("expected decode kind, got %v", err)
	}
}

func TestDoTransportErrorIsAbsent(t *testing.T) {
	// A closed server gives a connection-refused transport failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL, "key")

	_, err := c.Do(context.Background(), http.MethodGet, "/emails/campaigns", nil)
	if KindOf(err) != ErrTransport {
		t.Fatalf("expected transport kind, got %v", err)
	}
}

func TestDoSendsFixedHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "secret-key")

	if _, err := c.Do(context.Background(), http.MethodGet, "/users/me", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Get("Authorization") != "Bearer secret-key" {
		t.Fatalf("unexpected Authorization: %q", got.Get("Authorization"))
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("unexpected Accept: %q", got.Get("Accept"))
	}
	if got.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected Content-Type: %q", got.Get("Content-Type"))
	}
	if got.Get("User-Agent") != userAgent {
		t.Fatalf("unexpected User-Agent: %q", got.Get("User-Agent"))
	}
}

func TestDoCallerHeadersOverrideFixedSet(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "key")

	opts := &RequestOptions{Headers: map[string]string{"Content-Type": "text/csv"}}
	if _, err := c.Do(context.Background(), http.MethodPost, "/contacts/import", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Get("Content-Type") != "text/csv" {
		t.Fatalf("caller header must win, got %q", got.Get("Content-Type"))
	}
	if got.Get("Authorization") != "Bearer key" {
		t.Fatalf("fixed headers must survive the merge, got %q", got.Get("Authorization"))
	}
}

func TestSetKeyIdempotence(t *testing.T) {
	headers := make([]http.Header, 0, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Clone()
		h.Del("Accept-Encoding") // transport detail, not part of the contract
		headers = append(headers, h)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "")

	c.Session().SetKey("same-key")
	if _, err := c.Do(context.Background(), http.MethodGet, "/users/me", nil); err != nil {
		t.Fatalf("first call: %v", err)
	}

	c.Session().SetKey("same-key")
	if _, err := c.Do(context.Background(), http.MethodGet, "/users/me", nil); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if len(headers) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(headers))
	}
	if !reflect.DeepEqual(headers[0], headers[1]) {
		t.Fatalf("headers changed across identical SetKey calls:\n%v\n%v", headers[0], headers[1])
	}
}

func TestDoEncodesQueryAndBody(t *testing.T) {
	var gotQuery url.Values
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, "key")

	q := url.Values{}
	q.Set("page", "2")
	q.Set("event", "reply to: a & b")
	opts := &RequestOptions{
		Query: q,
		Body:  map[string]any{"email": "jo@example.com"},
	}
	if _, err := c.Do(context.Background(), http.MethodPost, "/emails/campaign/c1/contacts", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery.Get("page") != "2" {
		t.Fatalf("unexpected page: %q", gotQuery.Get("page"))
	}
	if gotQuery.Get("event") != "reply to: a & b" {
		t.Fatalf("query values must round-trip through encoding, got %q", gotQuery.Get("event"))
	}
	if string(gotBody) != `{"email":"jo@example.com"}` {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}
