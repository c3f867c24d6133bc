package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestDepositCommandSendsIdempotencyKey(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Idempotency-Key")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"w1","balance":"10"}`))
	}))
	defer server.Close()

	cmd := rootCmd()
	cmd.SetArgs([]string{"wallet", "deposit", "w1", "--amount", "10", "--url", server.URL, "--key", "dep-1"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Errorf("command failed: %v", err)
		}
	})

	if gotMethod != http.MethodPost || gotPath != "/api/v1/wallets/w1/deposit" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}

	if gotKey != "dep-1" {
		t.Fatalf("expected idempotency key dep-1, got %q", gotKey)
	}

	if !strings.Contains(gotBody, `"amount":"10"`) {
		t.Fatalf("expected amount in body, got %s", gotBody)
	}

	if !strings.Contains(out, `"id": "w1"`) {
		t.Fatalf("expected response to be printed, got %q", out)
	}
}

func TestCallReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"failed to get wallet"}`))
	}))
	defer server.Close()

	cmd := rootCmd()
	cmd.SetArgs([]string{"wallet", "get", "ghost", "--url", server.URL})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	var execErr error
	captureOutput(t, func() {
		execErr = cmd.Execute()
	})

	if execErr == nil {
		t.Fatalf("expected error for 404 response")
	}
}
