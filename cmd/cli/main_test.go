package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/auth"
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

func TestMintTokenCmd(t *testing.T) {
	cmd := mintTokenCmd()
	cmd.SetArgs([]string{"--secret", "cli-test-secret", "--tenant", "tenant-1", "--actor", "actor-1", "--role", "manager"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	signed := strings.TrimSpace(out)
	claims, err := auth.NewJWTManager("cli-test-secret", time.Hour).Verify(signed)
	if err != nil {
		t.Fatalf("minted token did not verify: %v", err)
	}
	if claims.TenantID != "tenant-1" || claims.ActorID != "actor-1" || claims.Role != domain.RoleManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestMintTokenCmdRejectsBadRole(t *testing.T) {
	cmd := mintTokenCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"--secret", "s", "--role", "superuser"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestConsistencyCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ledger/consistency" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("expected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"consistent":true,"drifts":[]}`))
	}))
	defer server.Close()

	origURL, origToken := baseURL, token
	baseURL, token = server.URL, "test-token"
	defer func() { baseURL, token = origURL, origToken }()

	cmd := consistencyCmd()
	cmd.SetArgs([]string{})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if !strings.Contains(out, "consistency check PASSED") {
		t.Fatalf("expected pass output, got %q", out)
	}
}

func TestConsistencyCmdReportsDrift(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"consistent":false,"drifts":[{"item_id":"itm-1"}]}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	cmd := consistencyCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{})

	var execErr error
	out := captureOutput(t, func() {
		execErr = cmd.Execute()
	})

	if execErr == nil {
		t.Fatal("expected error when projection drifts")
	}
	if !strings.Contains(out, "consistency check FAILED") {
		t.Fatalf("expected failure output, got %q", out)
	}
}

func TestMigrateCmdRejectsUnknownDirection(t *testing.T) {
	cmd := migrateCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"sideways"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown migrate direction")
	}
}

func TestBalanceGetCmdBuildsPath(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"item_id":"itm-1","quantity":"12"}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	cmd := balanceGetCmd()
	cmd.SetArgs([]string{"itm-1", "loc-1", "--lot", "lot-9"})

	_ = captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if gotPath != "/api/v1/balances/itm-1/loc-1" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery != "lot_id=lot-9" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}
