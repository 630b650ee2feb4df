package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH - install with: brew install ffmpeg")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH - install with: brew install ffmpeg")
	}
}

// generateTestVideo renders a short synthetic clip with audio.
func generateTestVideo(t *testing.T, path string, seconds int) {
	t.Helper()
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi", "-i", fmt.Sprintf("testsrc=duration=%d:size=320x240:rate=30", seconds),
		"-f", "lavfi", "-i", fmt.Sprintf("sine=frequency=1000:duration=%d", seconds),
		"-c:v", "libx264", "-c:a", "aac", "-pix_fmt", "yuv420p", "-y", path)
	if err := cmd.Run(); err != nil {
		t.Skipf("could not generate test video: %v", err)
	}
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	logger := zerolog.New(os.Stderr)
	e, err := New(logger, Options{Threads: 2})
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	return e
}

func TestExecutorCreation(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	if e.ffmpegPath == "" {
		t.Error("ffmpeg path is empty")
	}
	if e.ffprobePath == "" {
		t.Error("ffprobe path is empty")
	}
	t.Logf("ffmpeg: %s", e.ffmpegPath)
	t.Logf("ffprobe: %s", e.ffprobePath)
}

func TestExecutorCreationMissingBinary(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	_, err := New(logger, Options{BinaryPath: "definitely-not-ffmpeg"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestProbeVideo(t *testing.T) {
	skipIfNoFFmpeg(t)

	path := filepath.Join(t.TempDir(), "probe.mp4")
	generateTestVideo(t, path, 2)

	e := newTestExecutor(t)
	info, err := e.ProbeVideo(context.Background(), path)
	if err != nil {
		t.Fatalf("ProbeVideo failed: %v", err)
	}

	if info.Width != 320 {
		t.Errorf("expected width 320, got %d", info.Width)
	}
	if info.Height != 240 {
		t.Errorf("expected height 240, got %d", info.Height)
	}
	if info.Duration <= 0 {
		t.Error("duration is zero")
	}
	if !info.HasAudio {
		t.Error("expected audio stream")
	}
}

func TestProbeVideoInvalidFile(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	ctx := context.Background()

	if _, err := e.ProbeVideo(ctx, "nonexistent.mp4"); err == nil {
		t.Error("ProbeVideo should fail for non-existent file")
	}

	invalidPath := filepath.Join(t.TempDir(), "invalid.txt")
	os.WriteFile(invalidPath, []byte("not a video"), 0644)
	if _, err := e.ProbeVideo(ctx, invalidPath); err == nil {
		t.Error("ProbeVideo should fail for invalid video file")
	}
}

func TestProbeVideoHonorsContext(t *testing.T) {
	skipIfNoFFmpeg(t)

	path := filepath.Join(t.TempDir(), "probe.mp4")
	generateTestVideo(t, path, 1)

	e := newTestExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ProbeVideo(ctx, path); err == nil {
		t.Error("ProbeVideo should fail once the context is canceled")
	}
}

func TestExtractClipCopy(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "input.mp4")
	generateTestVideo(t, input, 2)

	e := newTestExecutor(t)
	output := filepath.Join(dir, "clip.mp4")
	err := e.ExtractClip(context.Background(), input, ClipOptions{
		Start:     0,
		End:       time.Second,
		Output:    output,
		CopyCodec: true,
	})
	if err != nil {
		t.Fatalf("ExtractClip failed: %v", err)
	}

	stat, err := os.Stat(output)
	if err != nil {
		t.Fatalf("output file was not created: %v", err)
	}
	t.Logf("clip created: %d bytes", stat.Size())
}

func TestConcatRoundTrip(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp4")
	b := filepath.Join(dir, "b.mp4")
	generateTestVideo(t, a, 1)
	generateTestVideo(t, b, 1)

	e := newTestExecutor(t)
	output := filepath.Join(dir, "joined.mp4")
	err := e.Concat(context.Background(), ConcatOptions{
		Inputs: []string{a, b},
		Output: output,
	})
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	info, err := e.ProbeVideo(context.Background(), output)
	if err != nil {
		t.Fatalf("probe of concat output failed: %v", err)
	}
	if info.Duration < 1500*time.Millisecond {
		t.Errorf("joined duration too short: %v", info.Duration)
	}
}

func TestConcatRejectsEmptyInputs(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	if err := e.Concat(context.Background(), ConcatOptions{Output: "out.mp4"}); err == nil {
		t.Error("expected error for empty input list")
	}
}

func TestLoopExtendsShortClip(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "short.mp4")
	generateTestVideo(t, input, 1)

	e := newTestExecutor(t)
	output := filepath.Join(dir, "looped.mp4")
	err := e.Loop(context.Background(), input, LoopOptions{
		TargetDuration: 3 * time.Second,
		Output:         output,
	})
	if err != nil {
		t.Fatalf("Loop failed: %v", err)
	}

	info, err := e.ProbeVideo(context.Background(), output)
	if err != nil {
		t.Fatalf("probe of looped output failed: %v", err)
	}
	if info.Duration < 2500*time.Millisecond {
		t.Errorf("looped duration too short: %v", info.Duration)
	}
}

func TestWriteConcatManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.txt")
	if err := WriteConcatManifest(path, []string{"a.mp4", "/abs/b.mp4"}); err != nil {
		t.Fatalf("WriteConcatManifest failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "file '/") {
			t.Errorf("expected absolute quoted path, got %q", line)
		}
	}
	if !strings.HasSuffix(lines[1], "'/abs/b.mp4'") {
		t.Errorf("absolute input was rewritten: %q", lines[1])
	}
}

func TestLineTailKeepsLastLines(t *testing.T) {
	tail := newLineTail(3)
	for i := 1; i <= 5; i++ {
		tail.Add(fmt.Sprintf("line %d", i))
	}

	got := tail.String()
	want := "line 3\nline 4\nline 5"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilterBuilder(t *testing.T) {
	filter := NewFilterBuilder().Scale(1920, 1080).FPS(30).Build()
	expected := "scale=1920:1080,fps=30.000000"
	if filter != expected {
		t.Errorf("expected %q, got %q", expected, filter)
	}
}

func TestFilterBuilderEmpty(t *testing.T) {
	if filter := NewFilterBuilder().Build(); filter != "" {
		t.Errorf("expected empty string, got %q", filter)
	}
}

func TestFilterBuilderScaleWidth(t *testing.T) {
	filter := NewFilterBuilder().ScaleWidth(384).Build()
	if filter != "scale=384:-2" {
		t.Errorf("expected scale=384:-2, got %q", filter)
	}
}

func TestFilterBuilderChromaKey(t *testing.T) {
	filter := NewFilterBuilder().ScaleWidth(384).ChromaKey("0x00FF00", 0.3, 0.1).Build()
	expected := "scale=384:-2,chromakey=0x00FF00:0.30:0.10"
	if filter != expected {
		t.Errorf("expected %q, got %q", expected, filter)
	}
}

func TestFilterBuilderIgnoresInvalidInput(t *testing.T) {
	filter := NewFilterBuilder().Scale(0, 1080).ScaleWidth(-1).ChromaKey("", 0.3, 0.1).Build()
	if filter != "" {
		t.Errorf("expected invalid filters to be dropped, got %q", filter)
	}
}
