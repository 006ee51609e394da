package widget

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/CristiGvl/picoMemStat/internal/memory"
)

const sampleMeminfo = `MemTotal:        8192000 kB
MemFree:         2048000 kB
Buffers:          512000 kB
Cached:          1024000 kB
SReclaimable:     256000 kB
Shmem:            128000 kB
`

type staticReader struct {
	data  string
	err   error
	calls int
}

func (r *staticReader) ReadCounters(ctx context.Context) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.data), nil
}

func TestPollDefaultFormat(t *testing.T) {
	s := New(&staticReader{data: sampleMeminfo}, Config{})

	text, err := s.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if text != "4375M/8000M" {
		t.Errorf("Poll() = %q, want %q", text, "4375M/8000M")
	}
}

func TestPollCustomFormat(t *testing.T) {
	s := New(&staticReader{data: sampleMeminfo}, Config{Format: "RAM {Memsza}% ({MemFree}M free)"})

	text, info, err := s.PollInfo(context.Background())
	if err != nil {
		t.Fatalf("PollInfo failed: %v", err)
	}
	if text != "RAM 54% (2000M free)" {
		t.Errorf("unexpected text %q", text)
	}
	if info[memory.KeyMemsza] != 54 {
		t.Errorf("expected Memsza=54, got %d", info[memory.KeyMemsza])
	}
}

func TestPollReadsEveryTime(t *testing.T) {
	r := &staticReader{data: sampleMeminfo}
	s := New(r, Config{})

	for i := 0; i < 3; i++ {
		if _, err := s.Poll(context.Background()); err != nil {
			t.Fatalf("Poll failed: %v", err)
		}
	}
	if r.calls != 3 {
		t.Errorf("expected 3 reads, got %d", r.calls)
	}
}

func TestPollErrors(t *testing.T) {
	readErr := errors.New("boom")

	tests := []struct {
		name   string
		reader *staticReader
		format string
		want   error
	}{
		{"read failure", &staticReader{err: readErr}, "", readErr},
		{"bad source", &staticReader{data: "garbage\n"}, "", memory.ErrSourceFormat},
		{"missing field", &staticReader{data: "MemTotal: 1024 kB\n"}, "", memory.ErrMissingField},
		{"unknown key", &staticReader{data: sampleMeminfo}, "{Bogus}", memory.ErrTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.reader, Config{Format: tt.format})
			text, err := s.Poll(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if text != "" {
				t.Errorf("expected empty text on error, got %q", text)
			}
		})
	}
}

func TestSetConfig(t *testing.T) {
	s := New(&staticReader{data: sampleMeminfo}, Config{})
	s.SetConfig(Config{Format: "{MemTotal}"})

	text, err := s.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if text != "8000" {
		t.Errorf("Poll() = %q after SetConfig", text)
	}
}

func TestOnClick(t *testing.T) {
	var launched []string
	launcher := func(command string) error {
		launched = append(launched, command)
		return nil
	}

	s := New(&staticReader{}, Config{Execute: "xterm -e htop"}, WithLauncher(launcher))
	s.OnClick(3)
	s.OnClick(ButtonPrimary)
	s.OnClick(2)

	if len(launched) != 1 || launched[0] != "xterm -e htop" {
		t.Errorf("unexpected launches: %v", launched)
	}
}

func TestOnClickWithoutCommand(t *testing.T) {
	called := false
	s := New(&staticReader{}, Config{}, WithLauncher(func(string) error {
		called = true
		return nil
	}))

	s.OnClick(ButtonPrimary)
	if called {
		t.Error("launcher should not run without a configured command")
	}
}

func TestOnClickLaunchFailure(t *testing.T) {
	s := New(&staticReader{}, Config{Execute: "nope"}, WithLauncher(func(string) error {
		return errors.New("not found")
	}))

	// must not panic or propagate
	s.OnClick(ButtonPrimary)
}

func TestShellLauncher(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell redirect")
	}

	path := filepath.Join(t.TempDir(), "clicked")
	if err := ShellLauncher("echo clicked > " + path); err != nil {
		t.Fatalf("ShellLauncher failed: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("command did not run")
}
