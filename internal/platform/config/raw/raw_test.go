package raw

import "testing"

func TestEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", " json ")
	t.Setenv("LOG_CALLER", "YES")
	t.Setenv("LOG_QUIET", "off")
	t.Setenv("LOG_COLOR", "1")
	t.Setenv("LOG_ODD", "maybe")
	t.Setenv("LOG_SAMPLE_EVERY", " 5 ")
	t.Setenv("LOG_NEG", "-3")
	t.Setenv("LOG_JUNK", "12x")

	e := Env("LOG_")
	strs := []struct{ key, def, want string }{
		{"FORMAT", "console", "json"},
		{"LEVEL", "debug", "debug"},
	}
	for _, c := range strs {
		if got := e.Str(c.key, c.def); got != c.want {
			t.Errorf("Str(%s) = %q, want %q", c.key, got, c.want)
		}
	}

	bools := []struct {
		key       string
		def, want bool
	}{
		{"CALLER", false, true},
		{"QUIET", true, false},
		{"COLOR", false, true},
		{"ODD", true, true},
		{"UNSET", true, true},
	}
	for _, c := range bools {
		if got := e.Bool(c.key, c.def); got != c.want {
			t.Errorf("Bool(%s) = %v, want %v", c.key, got, c.want)
		}
	}

	ints := []struct {
		key       string
		def, want int
	}{
		{"SAMPLE_EVERY", 0, 5},
		{"NEG", 1, 1},
		{"JUNK", 2, 2},
		{"UNSET", 3, 3},
	}
	for _, c := range ints {
		if got := e.Int(c.key, c.def); got != c.want {
			t.Errorf("Int(%s) = %d, want %d", c.key, got, c.want)
		}
	}
}
