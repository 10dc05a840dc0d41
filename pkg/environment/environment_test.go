// pkg/environment/environment_test.go

package environment

import (
	"errors"
	"testing"
)

func TestParseNormalizesCase(t *testing.T) {
	tests := []struct {
		input string
		want  Environment
	}{
		{"local", "LOCAL"},
		{"LOCAL", "LOCAL"},
		{"  dev  ", "DEV"},
		{"Stg", "STG"},
	}
	for _, tt := range tests {
		env, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) = %v", tt.input, err)
		}
		if env != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, env, tt.want)
		}
	}
}

func TestParseRejectsBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrInvalidEnvironment) {
			t.Errorf("Parse(%q) = %v, want ErrInvalidEnvironment", input, err)
		}
	}
}

func TestEnvironmentEquality(t *testing.T) {
	a, _ := Parse("local")
	b, _ := Parse("LoCaL")
	if a != b {
		t.Errorf("environments %q and %q should compare equal", a, b)
	}
}
