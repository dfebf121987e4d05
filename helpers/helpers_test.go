package helpers

import (
	"strings"
	"testing"
)

func TestShortenAddr(t *testing.T) {
	addr := "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
	got := ShortenAddr(addr)
	if got != "0xd8dA…6045" {
		t.Errorf("unexpected shortened address: %s", got)
	}
	if ShortenAddr("0x1234") != "0x1234" {
		t.Error("short input should pass through unchanged")
	}
}

func TestIsValidAddress(t *testing.T) {
	if !IsValidAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045") {
		t.Error("valid address rejected")
	}
	if IsValidAddress("d8dA6BF26964aF9D7eEd9e03E53415D37aA96045") {
		t.Error("missing 0x prefix accepted")
	}
	if IsValidAddress("0x1234") {
		t.Error("short address accepted")
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("sweepstakes", 5); got != "swee…" {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("ok", 5); got != "ok" {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("anything", 0); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	got := FormatJSON(`{"name":"Launch"}`)
	if !strings.Contains(got, "\n") {
		t.Error("expected indented output")
	}
	if got := FormatJSON("not json"); got != "not json" {
		t.Errorf("non-JSON input should pass through, got %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(0); got != "pending…" {
		t.Errorf("got %q", got)
	}
	if got := FormatTimestamp(1700000000); got == "" || got == "pending…" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateQRCode(t *testing.T) {
	qr := GenerateQRCode("sweep-0")
	if qr == "" {
		t.Fatal("expected QR output")
	}
}

func TestContains(t *testing.T) {
	list := []string{"Alice", "Bob"}
	if !Contains(list, "alice") {
		t.Error("case-insensitive match failed")
	}
	if Contains(list, "Carol") {
		t.Error("unexpected match")
	}
}
