// ABOUTME: Tests for the open command
// ABOUTME: Verifies output and exit codes against a fake API

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunOpen_Success(t *testing.T) {
	resetFlags(t)
	server := newFakeServer(t, fakeServerOptions{})
	username, password, apiURL = "alice", "secret", server.URL

	var buf bytes.Buffer
	if code := runOpen(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Open door: SUCCESS!") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestRunOpen_Refused(t *testing.T) {
	resetFlags(t)
	server := newFakeServer(t, fakeServerOptions{openStatus: "500"})
	username, password, apiURL = "alice", "secret", server.URL

	var buf bytes.Buffer
	if code := runOpen(context.Background(), &buf); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Failed to open door") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestRunOpen_LoginRejected(t *testing.T) {
	resetFlags(t)
	server := newFakeServer(t, fakeServerOptions{rejectLogin: true})
	username, password, apiURL = "alice", "secret", server.URL

	var buf bytes.Buffer
	if code := runOpen(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "bad credentials") {
		t.Errorf("expected the server message in output, got: %s", buf.String())
	}
}

func TestRunOpen_MissingCredentials(t *testing.T) {
	resetFlags(t)

	var buf bytes.Buffer
	if code := runOpen(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "username is required") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestRunOpen_JSONOutput(t *testing.T) {
	resetFlags(t)
	server := newFakeServer(t, fakeServerOptions{})
	username, password, apiURL = "alice", "secret", server.URL
	jsonOutput = true

	var buf bytes.Buffer
	if code := runOpen(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if strings.TrimSpace(buf.String()) != `{"success":true}` {
		t.Errorf("unexpected JSON output: %s", buf.String())
	}
}
