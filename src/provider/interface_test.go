package provider

import (
	"errors"
	"testing"
)

func TestParseRunURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    RunRef
		wantErr bool
	}{
		{
			name: "run URL",
			url:  "https://github.com/owner/repo/actions/runs/456",
			want: RunRef{Owner: "owner", Repo: "repo", RunID: 456},
		},
		{
			name: "attempt URL",
			url:  "https://github.com/acme/api/actions/runs/789/attempts/2",
			want: RunRef{Owner: "acme", Repo: "api", RunID: 789},
		},
		{
			name:    "pull request URL",
			url:     "https://github.com/owner/repo/pull/12",
			wantErr: true,
		},
		{
			name:    "other host",
			url:     "https://example.com/owner/repo/actions/runs/1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseRunURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRunURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("errors.Is(err, ErrInvalidURL) = false, want true")
				}
				return
			}
			if *ref != tt.want {
				t.Errorf("ParseRunURL() = %+v, want %+v", *ref, tt.want)
			}
		})
	}
}

type namedProvider struct {
	Provider
	name, token, baseURL string
}

func (p namedProvider) Name() string { return p.name }

func TestGetProvider(t *testing.T) {
	RegisterProvider("test-registry", func(token, baseURL string) Provider {
		return namedProvider{name: "test-registry", token: token, baseURL: baseURL}
	})

	p, err := GetProvider("test-registry", "tok", "http://localhost")
	if err != nil {
		t.Fatalf("GetProvider() error = %v", err)
	}
	np := p.(namedProvider)
	if np.token != "tok" || np.baseURL != "http://localhost" {
		t.Errorf("factory got token=%q baseURL=%q", np.token, np.baseURL)
	}

	found := false
	for _, name := range Registered() {
		if name == "test-registry" {
			found = true
		}
	}
	if !found {
		t.Errorf("Registered() = %v, want it to contain test-registry", Registered())
	}

	_, err = GetProvider("gitlab", "", "")
	if !errors.Is(err, ErrProviderUnknown) {
		t.Errorf("GetProvider(unknown) error = %v, want ErrProviderUnknown", err)
	}

}
