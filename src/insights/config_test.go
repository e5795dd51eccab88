package insights

import (
	"context"
	"testing"

	"actions-insight/src/config"
	"actions-insight/src/logger"
	"actions-insight/src/provider"
	"actions-insight/src/provider/providertest"
)

func TestNewServiceFromConfig(t *testing.T) {
	fake := &providertest.Fake{Repos: []provider.Repository{{FullName: "octocat/hello"}}}

	var gotToken, gotURL string
	provider.RegisterProvider(ProviderName, func(token, baseURL string) provider.Provider {
		gotToken, gotURL = token, baseURL
		return fake
	})

	cfg := config.Default()
	cfg.GitHub.Token = "ghp_test"
	cfg.GitHub.APIURL = "https://ghe.example.com/api/v3"

	svc, closeFn, err := NewServiceFromConfig(cfg, logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewServiceFromConfig() error = %v", err)
	}
	defer closeFn()

	if gotToken != "ghp_test" || gotURL != "https://ghe.example.com/api/v3" {
		t.Errorf("factory got token=%q url=%q", gotToken, gotURL)
	}
	if svc.events != nil {
		t.Error("events should be disabled without brokers")
	}

	report, err := svc.Repositories(context.Background(), "octocat")
	if err != nil || len(report.Repositories) != 1 {
		t.Errorf("Repositories() = %+v, %v", report, err)
	}
}

func TestNewServiceFromConfig_WithBrokers(t *testing.T) {
	provider.RegisterProvider(ProviderName, func(token, baseURL string) provider.Provider {
		return &providertest.Fake{}
	})

	cfg := config.Default()
	cfg.Events.Brokers = []string{"localhost:19092"}

	// the franz-go client connects lazily, so no broker needs to be running
	svc, closeFn, err := NewServiceFromConfig(cfg, logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewServiceFromConfig() error = %v", err)
	}
	if svc.events == nil || svc.topic != cfg.Events.Topic {
		t.Errorf("events = %v topic = %q", svc.events, svc.topic)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}
}
