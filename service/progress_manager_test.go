package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ludo-technologies/domscan/domain"
)

func TestNewProgressManager_Disabled(t *testing.T) {
	pm := NewProgressManager(false)
	if pm.IsInteractive() {
		t.Error("expected non-interactive progress manager when disabled")
	}

	var _ domain.ProgressManager = pm
}

func TestNewProgressManager_CI(t *testing.T) {
	t.Setenv("CI", "true")
	if IsInteractiveEnvironment() {
		t.Error("CI environments should not be interactive")
	}
	if NewProgressManager(true).IsInteractive() {
		t.Error("expected no-op progress manager in CI")
	}
}

func TestNoOpProgressManager(t *testing.T) {
	pm := &NoOpProgressManager{}

	if pm.IsInteractive() {
		t.Error("expected NoOpProgressManager.IsInteractive() to return false")
	}

	task := pm.StartTask("Analyzing documents", 100)
	if task == nil {
		t.Fatal("expected non-nil task from StartTask")
	}

	task.Increment(10)
	task.Describe("index.html")
	task.Complete()
	pm.Close()
}

func TestProgressManagerImpl_RendersToWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManagerWithWriter(&buf)

	task := pm.StartTask("Analyzing documents", 2)
	task.Describe("index.html")
	task.Increment(1)
	task.Increment(1)
	task.Complete()
	pm.Close()

	if !pm.IsInteractive() {
		t.Error("ProgressManagerImpl should be interactive")
	}
	if !strings.Contains(buf.String(), "Analyzing documents") {
		t.Errorf("expected description in progress output, got %q", buf.String())
	}
}

func TestShortName(t *testing.T) {
	if got := shortName("index.html"); got != "index.html" {
		t.Errorf("short names should be unchanged, got %q", got)
	}
	long := "/very/long/path/to/a/deeply/nested/site/directory/page.html"
	if got := shortName(long); !strings.HasSuffix(got, "page.html") || len(got) >= len(long) {
		t.Errorf("expected shortened name ending in page.html, got %q", got)
	}
}

func TestProgressManagerImpl_Interface(t *testing.T) {
	var _ domain.ProgressManager = &ProgressManagerImpl{}
	var _ domain.TaskProgress = &TaskProgressImpl{}
}
