package logger

import (
	"net/http"
	"testing"
)

func TestMaskAuthorizationBearer(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef123456")
	if got != "Bearer ****3456" {
		t.Fatalf("masked = %q", got)
	}
}

func TestMaskPassport(t *testing.T) {
	if got := MaskPassport("N1234567"); got != "****4567" {
		t.Fatalf("masked = %q", got)
	}
	if got := MaskPassport(""); got != "" {
		t.Fatalf("masked empty = %q", got)
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer secret-token-9876")
	headers.Set("Content-Type", "application/json")

	masked := MaskHeaders(headers)
	if masked["Authorization"] != "Bearer ****9876" {
		t.Fatalf("authorization = %q", masked["Authorization"])
	}
	if masked["Content-Type"] != "application/json" {
		t.Fatalf("content-type = %q", masked["Content-Type"])
	}
}

func TestMaskJSONMasksNestedSensitiveKeys(t *testing.T) {
	input := map[string]any{
		"guest_name": "Sara",
		"passport_no": "K9876543",
		"nested": map[string]any{
			"password": "hunter22",
			"note":     "ok",
		},
	}

	masked := MaskJSON(input)
	if masked["passport_no"] != "****6543" {
		t.Fatalf("passport_no = %v", masked["passport_no"])
	}
	nested := masked["nested"].(map[string]any)
	if nested["password"] != "****er22" {
		t.Fatalf("password = %v", nested["password"])
	}
	if nested["note"] != "ok" {
		t.Fatalf("note = %v", nested["note"])
	}
	// Input must stay untouched.
	if input["passport_no"] != "K9876543" {
		t.Fatalf("input mutated: %v", input["passport_no"])
	}
}
