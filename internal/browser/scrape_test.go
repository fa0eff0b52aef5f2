package browser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"instagrab/pkg/domain"
)

func TestClassifyPost(t *testing.T) {
	testCases := []struct {
		name      string
		ariaLabel string
		expected  domain.MediaType
	}{
		{
			name:      "clip label",
			ariaLabel: "Clip",
			expected:  domain.MediaTypeClip,
		},
		{
			name:      "carousel label",
			ariaLabel: "Carousel",
			expected:  domain.MediaTypeCarousel,
		},
		{
			name:      "lowercase label",
			ariaLabel: "clip",
			expected:  domain.MediaTypeClip,
		},
		{
			name:      "no label means photo",
			ariaLabel: "",
			expected:  domain.MediaTypePhoto,
		},
		{
			name:      "unknown label means photo",
			ariaLabel: "Pinned post icon",
			expected:  domain.MediaTypePhoto,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, classifyPost(testCase.ariaLabel))
		})
	}
}

func TestFilterPostLinks(t *testing.T) {
	testCases := []struct {
		name     string
		hrefs    []string
		prev     []string
		expected []string
	}{
		{
			name: "keeps only post links",
			hrefs: []string{
				"https://www.instagram.com/p/abc/",
				"https://www.instagram.com/explore/",
				"https://www.instagram.com/p/def/",
			},
			expected: []string{
				"https://www.instagram.com/p/abc/",
				"https://www.instagram.com/p/def/",
			},
		},
		{
			name: "drops links seen in the previous pass",
			hrefs: []string{
				"https://www.instagram.com/p/abc/",
				"https://www.instagram.com/p/def/",
			},
			prev: []string{
				"https://www.instagram.com/p/abc/",
			},
			expected: []string{
				"https://www.instagram.com/p/def/",
			},
		},
		{
			name:     "empty input",
			hrefs:    nil,
			expected: nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, filterPostLinks(testCase.hrefs, testCase.prev))
		})
	}
}
