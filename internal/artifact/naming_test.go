package artifact

import (
	"testing"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFilenameFor(t *testing.T) {
	tests := []struct {
		url     string
		variant models.Variant
		ext     string
		want    string
	}{
		{"https://www.Example.com/a?b", models.VariantMobile, "json", "example_com_a_b_mobile.json"},
		{"https://example.com", models.VariantDesktop, "html", "example_com_desktop.html"},
		{"http://example.com/path/", models.VariantMobile, "json", "example_com_path__mobile.json"},
		{"HTTPS://WWW.EXAMPLE.COM", models.VariantMobile, "json", "example_com_mobile.json"},
		{"example.com:8080/x", models.VariantDesktop, "json", "example_com_8080_x_desktop.json"},
		{"https://café.fr", models.VariantMobile, "json", "caf__fr_mobile.json"},
		{"https://sub.www.example.com", models.VariantMobile, "json", "sub_www_example_com_mobile.json"},
		{"", models.VariantMobile, "json", "_mobile.json"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, FilenameFor(tt.url, tt.variant, tt.ext))
		})
	}
}

func TestFilenameFor_Deterministic(t *testing.T) {
	a := FilenameFor("https://example.com/a", models.VariantMobile, "json")
	b := FilenameFor("https://example.com/a", models.VariantMobile, "json")
	assert.Equal(t, a, b)
}

func TestFilenameFor_KnownCollision(t *testing.T) {
	// punctuation differences collapse to the same name
	assert.Equal(t,
		FilenameFor("https://a.com/b", models.VariantMobile, "json"),
		FilenameFor("https://a.com?b", models.VariantMobile, "json"))
	assert.NotEqual(t,
		FilenameFor("https://a.com/b", models.VariantMobile, "json"),
		FilenameFor("https://a.com/b", models.VariantDesktop, "json"))
}
