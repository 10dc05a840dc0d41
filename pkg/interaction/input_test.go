// pkg/interaction/input_test.go

package interaction

import (
	"bytes"
	"testing"
)

// mockStdin sets up a fake stdin with the provided input.
func mockStdin(input string) func() {
	testStdin = bytes.NewBufferString(input)
	return func() { testStdin = nil }
}

func TestPromptInputDefault(t *testing.T) {
	defer mockStdin("\n")()
	if got := PromptInput("Database", "shop"); got != "shop" {
		t.Errorf("PromptInput = %q, want default %q", got, "shop")
	}

	defer mockStdin("inventory\n")()
	if got := PromptInput("Database", "shop"); got != "inventory" {
		t.Errorf("PromptInput = %q, want %q", got, "inventory")
	}
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"nope\n", true, false},
	}
	for _, tt := range tests {
		cleanup := mockStdin(tt.input)
		got := PromptYesNo("Proceed?", tt.defaultYes)
		cleanup()
		if got != tt.want {
			t.Errorf("PromptYesNo(%q, default=%v) = %v, want %v", tt.input, tt.defaultYes, got, tt.want)
		}
	}
}

func TestPromptSelectByNumber(t *testing.T) {
	defer mockStdin("2\n")()
	got, err := PromptSelect("Pick:", []string{"LOCAL", "DEV", "STG"}, -1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "DEV" {
		t.Errorf("PromptSelect = %q, want DEV", got)
	}
}

func TestPromptSelectByName(t *testing.T) {
	defer mockStdin("STG\n")()
	got, err := PromptSelect("Pick:", []string{"LOCAL", "DEV", "STG"}, -1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "STG" {
		t.Errorf("PromptSelect = %q, want STG", got)
	}
}

func TestPromptSelectDefault(t *testing.T) {
	defer mockStdin("\n")()
	got, err := PromptSelect("Pick:", []string{"LOCAL", "DEV"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "DEV" {
		t.Errorf("PromptSelect = %q, want default DEV", got)
	}
}

func TestPromptSelectRetriesInvalidInput(t *testing.T) {
	defer mockStdin("9\nbogus\n1\n")()
	got, err := PromptSelect("Pick:", []string{"LOCAL", "DEV"}, -1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "LOCAL" {
		t.Errorf("PromptSelect = %q, want LOCAL", got)
	}
}

func TestPromptSelectNoOptions(t *testing.T) {
	if _, err := PromptSelect("Pick:", nil, -1); err == nil {
		t.Error("PromptSelect with no options should fail")
	}
}
