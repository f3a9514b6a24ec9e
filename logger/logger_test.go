package logger

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_LevelParsing(t *testing.T) {
	l := New(Config{Level: "warn"})
	if l.GetLogger().GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %v", l.GetLogger().GetLevel())
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := New(Config{Level: "loud"})
	if l.GetLogger().GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %v", l.GetLogger().GetLevel())
	}
}

func TestWithComponent(t *testing.T) {
	var buf strings.Builder
	zl := zerolog.New(&buf)
	l := &Logger{logger: zl}

	l.WithComponent("registry").Info("built")
	if !strings.Contains(buf.String(), `"component":"registry"`) {
		t.Errorf("expected component field, got %s", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	var buf strings.Builder
	l := &Logger{logger: zerolog.New(&buf)}

	l.WithFields(map[string]any{FieldBucket: "uploads"}).Info("ok")
	if !strings.Contains(buf.String(), `"bucket":"uploads"`) {
		t.Errorf("expected bucket field, got %s", buf.String())
	}
}

func TestNop_Discards(t *testing.T) {
	// Must not panic; output goes nowhere.
	Nop().WithComponent("x").Error("dropped")
}
