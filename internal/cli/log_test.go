package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/scenario"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("layout ready")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("log line %q does not start with a 15:04:05.00 timestamp", buf.String())
	}
}

func TestProgressElapsedRounding(t *testing.T) {
	tests := []struct {
		name  string
		ago   time.Duration
		round time.Duration
	}{
		{"sub-millisecond rounds to microseconds", 250 * time.Microsecond, time.Microsecond},
		{"longer rounds to milliseconds", 1500 * time.Millisecond, time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &progress{logger: log.Default(), start: time.Now().Add(-tt.ago)}
			d := p.elapsed()
			if d < tt.ago.Truncate(tt.round) {
				t.Errorf("elapsed() = %v, want at least %v", d, tt.ago)
			}
			if d%tt.round != 0 {
				t.Errorf("elapsed() = %v, not a multiple of %v", d, tt.round)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.start = time.Now().Add(-2 * time.Second)

	p.done("Laid out 3 items")

	out := buf.String()
	if !strings.Contains(out, "Laid out 3 items (2") {
		t.Errorf("done() output = %q, want message with rounded duration", out)
	}
}

func TestPrepareLogsAtDebug(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"debug", log.DebugLevel, true},
		{"info", log.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, tt.level)
			ctx := withLogger(context.Background(), c.Logger)

			e, err := c.prepare(ctx, scenario.Demo(1))
			if err != nil {
				t.Fatalf("prepare() error: %v", err)
			}
			if e.Stale() {
				t.Error("engine still stale after prepare")
			}
			got := strings.Contains(buf.String(), "Laid out 11 items in 3 sections")
			if got != tt.want {
				t.Errorf("summary logged = %v, want %v\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext() did not return the attached logger")
	}
	got.Info("test")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}
}
