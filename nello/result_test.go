// ABOUTME: Tests for response envelope classification
// ABOUTME: Covers both accepted status literals and the failure cases

package nello

import "testing"

func TestCheckSuccess(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"status 200", `{"result": {"status": "200"}}`, true},
		{"status OK (login)", `{"result": {"status": "OK"}}`, true},
		{"status 400", `{"result": {"status": "400"}}`, false},
		{"empty status", `{"result": {"status": ""}}`, false},
		{"missing status", `{"result": {}}`, false},
		{"missing result", `{}`, false},
		{"unknown status", `{"result": {"status": "500"}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkSuccess([]byte(tt.body)); got != tt.want {
				t.Errorf("checkSuccess(%s) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	if got := statusCode([]byte(`{"result": {"status": "400"}}`)); got != "400" {
		t.Errorf("expected 400, got %q", got)
	}
	if got := statusCode([]byte(`{}`)); got != "" {
		t.Errorf("expected empty status for missing envelope, got %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	if got := errorMessage([]byte(`{"result": {"message": "bad credentials"}}`)); got != "bad credentials" {
		t.Errorf("expected verbatim message, got %q", got)
	}
	if got := errorMessage([]byte(`{}`)); got != "" {
		t.Errorf("expected empty message for missing envelope, got %q", got)
	}
}

func TestPublicSuccess(t *testing.T) {
	if !publicSuccess([]byte(`{"result": {"success": true}}`)) {
		t.Error("expected success for result.success true")
	}
	if publicSuccess([]byte(`{"result": {"success": false}}`)) {
		t.Error("expected failure for result.success false")
	}
	if publicSuccess([]byte(`{}`)) {
		t.Error("expected failure for missing envelope")
	}
}
