package logger

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("codec", &buf, WARN)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below WARN were written: %q", out)
	}
	if !strings.Contains(out, "WARN  [codec] warn 3") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "ERROR [codec] error 4") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("", &buf, INFO)

	code := -1
	l.exit = func(c int) { code = c }
	l.Fatal("boom")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "FATAL boom") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{" warning ", WARN, true},
		{"error", ERROR, true},
		{"fatal", FATAL, true},
		{"", INFO, false},
		{"verbose", INFO, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSetStdLog(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("std", &buf, INFO)
	l.SetStdLog()
	defer log.SetOutput(os.Stderr)

	log.Print("from stdlib 100%")

	if !strings.Contains(buf.String(), "[std] from stdlib 100%") {
		t.Errorf("std log not redirected: %q", buf.String())
	}
}
