package cli

import (
	"bytes"
	"strings"
	"testing"
)

func runDocs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newDocsCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDocsListsTopics(t *testing.T) {
	out, err := runDocs(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, topic := range []string{"configuration", "events"} {
		if !strings.Contains(out, "saga docs "+topic) {
			t.Errorf("topic %q missing:\n%s", topic, out)
		}
	}
}

func TestDocsRendersTopic(t *testing.T) {
	// Not a TTY under test, so the raw markdown is printed.
	out, err := runDocs(t, "events")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "frequency") {
		t.Errorf("unexpected topic content:\n%s", out)
	}
}

func TestDocsUnknownTopic(t *testing.T) {
	_, err := runDocs(t, "nonsense")
	if err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
	if !strings.Contains(err.Error(), "configuration") {
		t.Errorf("error should list available topics: %v", err)
	}
}
