package logger

import (
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestNew_ExplicitLevelWins(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	log := New("debug")
	if !log.IsDebug() {
		t.Fatal("expected explicit debug level to win over env")
	}
}

func TestNew_EnvFallback(t *testing.T) {
	t.Setenv(EnvLogLevel, "trace")
	log := New("")
	if !log.IsTrace() {
		t.Fatal("expected trace level from environment")
	}
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	cases := map[string]hclog.Level{
		"TRACE":  hclog.Trace,
		"DEBUG":  hclog.Debug,
		"INFO":   hclog.Info,
		"WARN":   hclog.Warn,
		"ERROR":  hclog.Error,
		"":       hclog.Info,
		"LOUDLY": hclog.Info,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
