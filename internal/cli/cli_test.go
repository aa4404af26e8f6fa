package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: quire %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func TestCLI_NotebookLifecycle(t *testing.T) {
	dir := t.TempDir()

	// Any command against a fresh dir bootstraps the default notebook.
	nbs := mustRun(t, "--dir", dir, "notebooks", "list")
	items, _ := nbs["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected bootstrapped default notebook; got %#v", nbs["data"])
	}
	first, _ := items[0].(map[string]any)
	if first["name"] != "Journal" || first["default"] != true {
		t.Fatalf("unexpected default notebook: %#v", first)
	}

	created := mustRun(t, "--dir", dir, "notebooks", "create", "--name", "Travel")
	travelID, _ := created["data"].(map[string]any)["id"].(string)
	if travelID == "" {
		t.Fatalf("expected created notebook id; got %#v", created["data"])
	}

	nbs = mustRun(t, "--dir", dir, "notebooks", "list")
	if items, _ := nbs["data"].([]any); len(items) != 2 {
		t.Fatalf("expected 2 notebooks; got %#v", nbs["data"])
	}

	mustRun(t, "--dir", dir, "notebooks", "delete", travelID)
	if _, _, err := runCLI(t, []string{"--dir", dir, "notebooks", "delete", travelID}); err == nil {
		t.Fatalf("expected delete of a missing notebook to fail")
	}
}

func TestCLI_WritePagesTearExport(t *testing.T) {
	dir := t.TempDir()

	w := mustRun(t, "--dir", dir, "write", "dear diary")
	if got := w["data"].(map[string]any)["clusters"].(float64); got != 10 {
		t.Fatalf("clusters = %v; want 10", got)
	}

	// Turning the page locks the one being left.
	mustRun(t, "--dir", dir, "pages", "next")
	shown := mustRun(t, "--dir", dir, "pages", "show", "1")
	page, _ := shown["data"].(map[string]any)
	if page["state"] != "completed" || page["content"] != "dear diary" {
		t.Fatalf("page 1 = %#v", page)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "pages", "goto", "1"}); err != nil {
		t.Fatalf("pages goto: %v", err)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "write", "more"}); err == nil {
		t.Fatalf("expected write to a completed page to fail")
	}

	mustRun(t, "--dir", dir, "pages", "goto", "3")
	mustRun(t, "--dir", dir, "write", "shameful")
	mustRun(t, "--dir", dir, "tear")
	shown = mustRun(t, "--dir", dir, "pages", "show", "3")
	page, _ = shown["data"].(map[string]any)
	if page["state"] != "torn" || page["content"] != "" {
		t.Fatalf("torn page = %#v", page)
	}

	out, _, err := runCLI(t, []string{"--dir", dir, "export"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	md := string(out)
	if !strings.Contains(md, "# Journal") ||
		!strings.Contains(md, "## Page 1\n\ndear diary") ||
		!strings.Contains(md, "*This page was torn out.*") {
		t.Fatalf("unexpected export:\n%s", md)
	}
	if strings.Contains(md, "## Page 2") {
		t.Fatalf("blank pages must be skipped:\n%s", md)
	}
}

func TestCLI_NavigateBoundsError(t *testing.T) {
	dir := t.TempDir()

	if _, stderr, err := runCLI(t, []string{"--dir", dir, "pages", "prev"}); err == nil {
		t.Fatalf("expected prev at the first page to fail; stderr=%s", stderr)
	}
}
