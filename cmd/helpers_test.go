// ABOUTME: Shared test helpers for CLI command tests
// ABOUTME: Provides flag reset and a fake private API server

package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// resetFlags clears package-level flag state and the environment so tests
// do not leak into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		username, password, location, clientID, apiURL, authURL = "", "", "", "", "", ""
		jsonOutput, debug = false, false
		rawOutput, reverseOrder = false, false
	}
	reset()
	t.Cleanup(reset)
	for _, key := range []string{
		"NELLO_USERNAME", "NELLO_PASSWORD", "NELLO_LOCATION",
		"NELLO_CLIENT_ID", "NELLO_API_URL", "NELLO_AUTH_URL",
	} {
		t.Setenv(key, "")
	}
}

type fakeServerOptions struct {
	rejectLogin bool
	openStatus  string
}

// newFakeServer fakes the private API with one location L1 and user U1.
func newFakeServer(t *testing.T, opts fakeServerOptions) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		if opts.rejectLogin {
			fmt.Fprint(w, `{"authentication": false, "result": {"status": "401", "message": "bad credentials"}}`)
			return
		}
		fmt.Fprint(w, `{
			"authentication": true,
			"user": {"user_id": "U1", "username": "alice", "first_name": "Alice", "last_name": "Koch",
				"roles": [{"location_id": "L1", "role": "owner", "is_active": true}]},
			"result": {"status": "OK"}
		}`)
	})
	mux.HandleFunc("GET /locations/{$}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"geofences": []map[string]any{{
				"location_id": "L1",
				"address": map[string]string{
					"country": "Germany", "city": "Berlin", "zip": "10115",
					"street": "Hauptstrasse", "number": "7",
				},
			}},
			"result": map[string]string{"status": "200"},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/activity"):
			fmt.Fprint(w, `{
				"activities": [
					{"date": "2018-03-01T08:00:00Z", "description": "Door opened"},
					{"date": "2018-03-01T09:30:00Z", "description": "Swipe denied"}
				],
				"result": {"status": "200"}
			}`)
		case strings.HasSuffix(r.URL.Path, "/open"):
			status := opts.openStatus
			if status == "" {
				status = "200"
			}
			fmt.Fprintf(w, `{"result": {"status": %q}}`, status)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
