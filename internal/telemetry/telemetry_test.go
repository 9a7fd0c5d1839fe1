package telemetry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLogObserver_restartSummary(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.InfoLevel)

	o := NewLogObserver(log)
	o.OnConflict()
	o.OnConflict()
	o.OnLearn(4, 2)
	o.OnRestart()

	out := buf.String()
	if !strings.Contains(out, "restart") {
		t.Errorf("expected a restart log line, got %q", out)
	}
	if !strings.Contains(out, "conflicts=2") {
		t.Errorf("expected conflicts=2 in log line, got %q", out)
	}
	if !strings.Contains(out, "learnts=1") {
		t.Errorf("expected learnts=1 in log line, got %q", out)
	}
}

func TestLogObserver_debugEventsSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.InfoLevel)

	o := NewLogObserver(log)
	o.OnDecision()
	o.OnPropagation()

	if buf.Len() != 0 {
		t.Errorf("expected no output at Info level for debug-only events, got %q", buf.String())
	}
}
