package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatReport(t *testing.T) {
	got := formatReport(nil, "", "ok\n")
	if got != "Error: None\n\nStderr:\n\n\nStdout:\nok\n" {
		t.Fatalf("unexpected report %q", got)
	}

	got = formatReport(errors.New("exit status 1"), "main.go:3: undefined: x\n", "")
	if !strings.HasPrefix(got, "Error: exit status 1\n\nStderr:\nmain.go:3: undefined: x") {
		t.Fatalf("unexpected report %q", got)
	}
}

func TestRunWritesReportWhenCommandIsMissing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.txt")

	buildErr, err := run(context.Background(), "definitely-not-a-build-tool --all", out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if buildErr == nil {
		t.Fatal("expected the build to fail")
	}

	body, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.HasPrefix(string(body), "Error: None") {
		t.Fatalf("report should carry the failure, got %q", body)
	}
}

func TestRunRejectsEmptyCommand(t *testing.T) {
	if _, err := run(context.Background(), "  ", filepath.Join(t.TempDir(), "r.txt")); err == nil {
		t.Fatal("expected error for empty command")
	}
}
