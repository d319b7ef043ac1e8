package otel

import (
	"context"
	"testing"
)

func TestConfigActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "no endpoint", cfg: Config{Enabled: true}},
		{name: "blank endpoint", cfg: Config{Enabled: true, Endpoint: "  "}},
		{name: "disabled", cfg: Config{Endpoint: "http://localhost:4318"}},
		{name: "enabled", cfg: Config{Enabled: true, Endpoint: "http://localhost:4318"}, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.cfg.Active(); got != tc.want {
				t.Fatalf("Active() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetupReadsEnvironment(t *testing.T) {
	t.Setenv("TASKMATE_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("TASKMATE_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "taskmate-test")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown() error = %v", err)
	}
}

func TestSetupRejectsMalformedRatio(t *testing.T) {
	t.Setenv("TASKMATE_OTEL_SAMPLE_RATIO", "half")

	if _, err := Setup(context.Background(), "taskmate-test"); err == nil {
		t.Fatal("Setup() error = nil, want parse error")
	}
}

func TestInstallValidatesInputs(t *testing.T) {
	t.Parallel()

	if _, err := Install(context.Background(), " ", Config{}); err == nil {
		t.Fatal("Install() error = nil, want missing service error")
	}
	active := Config{Enabled: true, Endpoint: "http://192.0.2.1:4318", SampleRatio: 1.5}
	if _, err := Install(context.Background(), "taskmate-test", active); err == nil {
		t.Fatal("Install() error = nil, want sample ratio error")
	}
}

func TestInstallExportsWhenActive(t *testing.T) {
	// 192.0.2.0/24 is reserved, so nothing is exported.
	cfg := Config{Enabled: true, Endpoint: "http://192.0.2.1:4318", SampleRatio: 0.5, Version: "test"}

	shutdown, err := Install(context.Background(), "taskmate-test", cfg)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown() error = %v", err)
	}
}
