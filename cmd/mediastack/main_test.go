package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"mediastack/internal/audiobook"
	"mediastack/internal/config"
	"mediastack/internal/index"
	"mediastack/internal/services"
	"mediastack/internal/stack"
	"mediastack/internal/testsupport"
)

func setupConfig(t *testing.T) string {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "error"
	return writeTestConfig(t, cfg)
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestResolvePlainOutput(t *testing.T) {
	configPath := setupConfig(t)

	out, _, err := runCLI(t, []string{
		"resolve", "/m/Movie cd2.avi", "/m/readme.txt", "/m/Alone.mkv", "/m/Movie cd1.avi",
	}, configPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := "stack\t1\tMovie\tfile\t/m/Movie cd1.avi\n" +
		"stack\t1\tMovie\tfile\t/m/Movie cd2.avi\n" +
		"unstacked\t/m/Alone.mkv\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestResolveJSONWithFolders(t *testing.T) {
	configPath := setupConfig(t)

	out, _, err := runCLI(t, []string{
		"--json", "resolve", "--dir", "/m/Series Disc 2", "--dir", "/m/Series Disc 1", "/m/Series Disc 3.mkv",
	}, configPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var got stack.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	want := stack.Result{
		Stacks: []stack.Stack{{
			Name:          "Series",
			Expression:    config.Default().Naming.VideoFileStackingExpressions[0],
			IsFolderStack: true,
			Files:         []string{"/m/Series Disc 1", "/m/Series Disc 2"},
		}},
		Unstacked: []string{"/m/Series Disc 3.mkv"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWithoutPaths(t *testing.T) {
	configPath := setupConfig(t)

	_, _, err := runCLI(t, []string{"resolve"}, configPath)
	if !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestScanSaveAndHistory(t *testing.T) {
	configPath := setupConfig(t)
	root := testsupport.MediaTree(t, t.TempDir(),
		"Movie cd1.avi",
		"Movie cd2.avi",
		"Notes.txt",
		"Extras/",
	)

	out, _, err := runCLI(t, []string{"--json", "scan", "--save", root}, configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var reports []scanReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode scan output: %v\n%s", err, out)
	}
	if len(reports) != 1 {
		t.Fatalf("expected one report, got %d", len(reports))
	}
	report := reports[0]
	if report.RunID == "" {
		t.Fatal("expected run id for saved scan")
	}
	wantResult := stack.Result{
		Stacks: []stack.Stack{{
			Name:       "Movie",
			Expression: config.Default().Naming.VideoFileStackingExpressions[0],
			Files:      []string{filepath.Join(root, "Movie cd1.avi"), filepath.Join(root, "Movie cd2.avi")},
		}},
		Unstacked: []string{filepath.Join(root, "Extras")},
	}
	if diff := cmp.Diff(wantResult, report.Result); diff != "" {
		t.Fatalf("scan result mismatch (-want +got):\n%s", diff)
	}

	out, _, err = runCLI(t, []string{"--json", "history"}, configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []index.RunSummary
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].ID != report.RunID || runs[0].StackCount != 1 {
		t.Fatalf("unexpected history: %+v", runs)
	}

	out, _, err = runCLI(t, []string{"--json", "history", "show", report.RunID[:8]}, configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	var run index.Run
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("decode run: %v\n%s", err, out)
	}
	if diff := cmp.Diff(wantResult, run.Result); diff != "" {
		t.Fatalf("stored run mismatch (-want +got):\n%s", diff)
	}

	out, _, err = runCLI(t, []string{"history"}, configPath)
	if err != nil {
		t.Fatalf("history plain: %v", err)
	}
	requireContains(t, out, report.RunID+"\t")
}

func TestHistoryShowMissingRun(t *testing.T) {
	configPath := setupConfig(t)

	_, _, err := runCLI(t, []string{"history", "show", "does-not-exist"}, configPath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	configPath := setupConfig(t)

	_, _, err := runCLI(t, []string{"scan", filepath.Join(t.TempDir(), "missing")}, configPath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAudiobookCommand(t *testing.T) {
	configPath := setupConfig(t)

	out, _, err := runCLI(t, []string{"audiobook", "/b/Part 3.m4b", "/b/movie.mkv"}, configPath)
	if err != nil {
		t.Fatalf("audiobook: %v", err)
	}
	want := "/b/Part 3.m4b\tm4b\t3\t-\n" +
		"/b/movie.mkv\t-\t-\t-\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}

	out, _, err = runCLI(t, []string{"--json", "audiobook", "/b/02_05.mp3"}, configPath)
	if err != nil {
		t.Fatalf("audiobook json: %v", err)
	}
	var reports []audiobookReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode audiobook output: %v", err)
	}
	if len(reports) != 1 || reports[0].Info == nil {
		t.Fatalf("unexpected reports: %+v", reports)
	}
	five, two := 5, 2
	wantInfo := &audiobook.FileInfo{Path: "/b/02_05.mp3", Container: "mp3", PartNumber: &five, ChapterNumber: &two}
	if diff := cmp.Diff(wantInfo, reports[0].Info); diff != "" {
		t.Fatalf("audiobook info mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	configPath := setupConfig(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--overwrite", target}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# source: "+configPath)
	requireContains(t, out, "[naming]")

	out, _, err = runCLI(t, []string{"config", "validate"}, configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestInvalidConfigIsConfigurationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := runCLI(t, []string{"resolve", "/m/a.mkv"}, path)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if code := services.ExitCode(err); code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
}
