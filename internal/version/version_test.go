package version

import (
	"testing"
)

func TestIsDevelopmentVersion(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"unknown", true},
		{"dev", true},
		{"devel", true},
		{"devel+abc123", true},
		{"devel+abc123+dirty", true},

		{"v0.1.0", false},
		{"1.0.0-rc.1", false},
		{"develop", false},
		{"my-devel", false},
		{"DEV", false},
		{"dev1.0.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsDevelopmentVersion(tt.input); got != tt.want {
				t.Errorf("IsDevelopmentVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestUpdateCommand(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"v1.2.3", `go install -ldflags "-X main.Version=v1.2.3" github.com/marcus/tabsync@v1.2.3`},
		{"1.2.3", `go install -ldflags "-X main.Version=1.2.3" github.com/marcus/tabsync@1.2.3`},
		{"v0.3.0-beta", `go install -ldflags "-X main.Version=v0.3.0-beta" github.com/marcus/tabsync@v0.3.0-beta`},
		{"v2.0.0-rc1.test", `go install -ldflags "-X main.Version=v2.0.0-rc1.test" github.com/marcus/tabsync@v2.0.0-rc1.test`},

		{"", ""},
		{"latest", ""},
		{"v1.2.3; echo pwned", ""},
		{"v1.2.3$(whoami)", ""},
		{"v1.2.3 && cat /etc/passwd", ""},
		{"../../.env", ""},
		{"v1.2.3--", ""},
		{"v1.2.3-", ""},
		{"v1.2.3-beta..rc", ""},
		{"v1.2.3-beta_release", ""},
		{"v1.2", ""},
		{"v1.2.3.4", ""},
		{"v1.a.3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := UpdateCommand(tt.version); got != tt.want {
				t.Errorf("UpdateCommand(%q) = %q, want %q", tt.version, got, tt.want)
			}
		})
	}
}
