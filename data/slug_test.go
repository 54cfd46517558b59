package data

import "testing"

func TestSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Jack Straw", "jack-straw"},
		{"Scarlet Begonias", "scarlet-begonias"},
		{"U.S. Blues", "us-blues"},
		{"Truckin'", "truckin"},
		{"Mississippi Half-Step Uptown Toodeloo", "mississippi-half-step-uptown-toodeloo"},
		{"  Fire on the Mountain  ", "fire-on-the-mountain"},
		{"Añejo", "anejo"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugIdempotent(t *testing.T) {
	titles := []string{"Jack Straw", "U.S. Blues", "Mississippi Half-Step Uptown Toodeloo"}
	for _, title := range titles {
		once := Slug(title)
		if twice := Slug(once); twice != once {
			t.Errorf("Slug(Slug(%q)): got %q, want %q", title, twice, once)
		}
	}
}

func TestSlugCollisionFree(t *testing.T) {
	titles := []string{
		"Jack Straw", "Scarlet Begonias", "Fire on the Mountain",
		"U.S. Blues", "Truckin'", "Sugar Magnolia",
	}
	seen := map[string]string{}
	for _, title := range titles {
		slug := Slug(title)
		if prev, has := seen[slug]; has {
			t.Errorf("slug %q collides: %q and %q", slug, prev, title)
		}
		seen[slug] = title
	}
}
