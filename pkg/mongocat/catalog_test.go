// pkg/mongocat/catalog_test.go

package mongocat

import (
	"reflect"
	"testing"
)

func TestIsSystemDatabase(t *testing.T) {
	for _, name := range []string{"admin", "local", "config"} {
		if !IsSystemDatabase(name) {
			t.Errorf("IsSystemDatabase(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"shop", "Admin", "localdata", "configs", ""} {
		if IsSystemDatabase(name) {
			t.Errorf("IsSystemDatabase(%q) = true, want false", name)
		}
	}
}

func TestFilterSystem(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "mixed listing",
			input: []string{"admin", "shop", "config", "inventory", "local"},
			want:  []string{"shop", "inventory"},
		},
		{
			name:  "only system",
			input: []string{"admin", "local", "config"},
			want:  []string{},
		},
		{
			name:  "order preserved",
			input: []string{"zeta", "alpha", "admin"},
			want:  []string{"zeta", "alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSystem(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterSystem(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
