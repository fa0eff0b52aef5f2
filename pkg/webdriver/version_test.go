package webdriver_test

import (
	"testing"

	"instagrab/pkg/webdriver"
)

func TestParseBrowserVersion(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		full  string
		major string
		ok    bool
	}{
		{
			name:  "google chrome",
			in:    "Google Chrome 114.0.5735.90 \n",
			full:  "114.0.5735.90",
			major: "114",
			ok:    true,
		},
		{
			name:  "chromium",
			in:    "Chromium 120.0.6099.224 snap",
			full:  "120.0.6099.224",
			major: "120",
			ok:    true,
		},
		{
			name:  "two component version",
			in:    "SomeBrowser 99.1",
			full:  "99.1",
			major: "99",
			ok:    true,
		},
		{
			name: "no version present",
			in:   "command not found",
			ok:   false,
		},
		{
			name: "bare major is not a version",
			in:   "Browser 115",
			ok:   false,
		},
		{
			name: "empty output",
			in:   "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		full, major, err := webdriver.ParseBrowserVersion(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			if full != tc.full {
				t.Errorf("%s: full = %q, want %q", tc.name, full, tc.full)
			}
			if major != tc.major {
				t.Errorf("%s: major = %q, want %q", tc.name, major, tc.major)
			}
		} else if err == nil {
			t.Errorf("%s: expected error, got full=%q major=%q", tc.name, full, major)
		}
	}
}
