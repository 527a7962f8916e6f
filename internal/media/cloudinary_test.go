package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFor(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string // expected prefix before the random suffix
	}{
		{name: "plain", in: "beach.jpg", want: "beach-"},
		{name: "nested path stripped", in: "photos/summer/beach.jpg", want: "beach-"},
		{name: "spaces and case normalized", in: "My Beach House.PNG", want: "my-beach-house-"},
		{name: "empty falls back", in: "", want: "image-"},
		{name: "extension only", in: ".jpg", want: "image-"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := publicIDFor(tc.in)
			assert.True(t, strings.HasPrefix(got, tc.want), "got %q, want prefix %q", got, tc.want)
			// The random suffix keeps repeat uploads of the same filename unique.
			assert.NotEqual(t, got, publicIDFor(tc.in))
		})
	}
}
