package ad

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Marina", "Marina"},
		{"comma suffix", "Marina, exclusiva en Barcelona", "Marina"},
		{"city marker", "Masajes relajantes en Barcelona", "Masajes relajantes"},
		{"dash marker", "Lola - Madrid Centro", "Lola"},
		{"pipe marker", "Ana | premium", "Ana"},
		{"slash marker", "Eva / Valencia", "Eva"},
		{"hash suffix", "Carla #novedad", "Carla"},
		{"uppercase marker", "Claudia EN Madrid", "Claudia"},
		{"earliest cut wins", "Sara en Madrid, nueva", "Sara"},
		{"whitespace collapsed", "  Nora    García  ", "Nora García"},
		{"trailing separators trimmed", "Vera-", "Vera"},
		{"only decoration falls back to first word", "#promo", "#promo"},
		{"empty", "", ""},
		{"marker inside word ignored", "Enigma", "Enigma"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTitle(tc.input); got != tc.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
