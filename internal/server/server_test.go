package server

import (
	"strings"
	"testing"
	"time"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
)

func TestBuildInstructionsPointsAtAuthenticate(t *testing.T) {
	sess := emelia.NewSession()
	client := emelia.NewClient("", 5*time.Second, sess, nil)

	got := buildInstructions(client)
	if !strings.Contains(got, "authenticate") {
		t.Fatalf("unauthenticated instructions should mention the authenticate tool:\n%s", got)
	}
	if !strings.Contains(got, emelia.DefaultBaseURL) {
		t.Fatalf("instructions should name the API endpoint:\n%s", got)
	}

	sess.SetKey("k")
	got = buildInstructions(client)
	if !strings.Contains(got, "already configured") {
		t.Fatalf("pre-seeded session should be reflected:\n%s", got)
	}
}

func TestNewRegistersServer(t *testing.T) {
	sess := emelia.NewSession()
	client := emelia.NewClient("", 5*time.Second, sess, nil)

	if s := New(client, nil); s == nil {
		t.Fatalf("expected a server")
	}
}
