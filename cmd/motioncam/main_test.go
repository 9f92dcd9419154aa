package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/motioncam/internal/scene"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeExample(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if _, err := runCLI(t, "init", "--output", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	path := writeExample(t, "scene.yaml")

	out, err := runCLI(t, "validate", "--input", path, "--events")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"title", "bullets", "camera.zoom", "bullets.fade", "[+]", "151 frames"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateFindsLatest(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, "init", "--scenes-dir", dir, "--format", "toml"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out, err := runCLI(t, "validate", "--scenes-dir", dir)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, ".toml") {
		t.Errorf("expected the generated toml scene to be used:\n%s", out)
	}
}

func TestValidateRejectsBadScene(t *testing.T) {
	doc := scene.Example()
	doc.Elements[1].Kind = "wobble"
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := scene.WriteDocument(doc, path); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "validate", "-i", path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), `elements[1] ("pointer")`) {
		t.Errorf("error should name the element: %v", err)
	}

	if _, err := runCLI(t, "validate", "--scenes-dir", filepath.Join(t.TempDir(), "none")); err == nil {
		t.Error("expected an error without any scene")
	}
}

func TestSampleCommand(t *testing.T) {
	path := writeExample(t, "scene.toml")
	dump := filepath.Join(t.TempDir(), "out", "samples.yaml")

	out, err := runCLI(t, "sample", "-i", path, "--from", "1", "--to", "2", "--step", "10", "-w", "3", "-o", dump, "--stats")
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if !strings.Contains(out, "PERFORMANCE REPORT") || !strings.Contains(out, "Frames: 31") {
		t.Errorf("unexpected output:\n%s", out)
	}

	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("sample dump missing: %v", err)
	}
	var file sampleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("sample dump is not valid YAML: %v", err)
	}
	if len(file.Frames) != 4 || file.Frames[0].Frame != 30 || file.Frames[3].Frame != 60 {
		t.Errorf("unexpected frames in dump: %+v", file.Frames)
	}
	t.Logf("dump: %d frames, first has %d elements", len(file.Frames), len(file.Frames[0].Elements))
}

func TestSampleFPSOverride(t *testing.T) {
	path := writeExample(t, "scene.yaml")
	out, err := runCLI(t, "sample", "-i", path, "--fps", "10", "--to", "1", "--stats")
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if !strings.Contains(out, "Frames: 11") {
		t.Errorf("fps override not applied:\n%s", out)
	}
}

func TestCameraCommand(t *testing.T) {
	path := writeExample(t, "scene.yaml")
	out, err := runCLI(t, "camera", "-i", path, "--interval", "1")
	if err != nil {
		t.Fatalf("camera failed: %v", err)
	}
	for _, want := range []string{"Keyframes", "Path", "zoom", "700.000", "1.600"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, "camera", "-i", path, "--interval", "0"); err == nil {
		t.Error("expected an error for a zero interval")
	}
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	if _, err := runCLI(t, "init", "--scenes-dir", t.TempDir(), "--format", "json"); err == nil {
		t.Error("expected an error")
	}
}

func TestEnvironmentDefaults(t *testing.T) {
	path := writeExample(t, "scene.yaml")
	t.Setenv("MOTIONCAM_INPUT", path)
	t.Setenv("MOTIONCAM_FPS", "24")
	t.Setenv("MOTIONCAM_STATS", "true")
	t.Setenv("MOTIONCAM_WORKERS", "2")

	out, err := runCLI(t, "validate", "--scenes-dir", filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("validate should use MOTIONCAM_INPUT: %v", err)
	}
	if !strings.Contains(out, "@ 24 FPS (121 frames)") {
		t.Errorf("MOTIONCAM_FPS not applied:\n%s", out)
	}

	out, err = runCLI(t, "sample", "--to", "1")
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if !strings.Contains(out, "PERFORMANCE REPORT") || !strings.Contains(out, "Frames: 25") {
		t.Errorf("MOTIONCAM_STATS or MOTIONCAM_FPS not applied:\n%s", out)
	}

	// Flags still win over the environment.
	out, err = runCLI(t, "validate", "--fps", "10")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "@ 10 FPS") {
		t.Errorf("--fps should override MOTIONCAM_FPS:\n%s", out)
	}
}
