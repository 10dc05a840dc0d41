// pkg/syncer/options_test.go

package syncer

import "testing"

func TestNewOptionsDropSubsumesClear(t *testing.T) {
	tests := []struct {
		name                string
		backup, drop, clear bool
		wantClear           bool
	}{
		{"drop forces clear off", true, true, true, false},
		{"drop with clear off", true, true, false, false},
		{"clear kept without drop", true, false, true, true},
		{"all off", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions(tt.backup, tt.drop, tt.clear)
			if o.ClearCollections != tt.wantClear {
				t.Errorf("ClearCollections = %v, want %v", o.ClearCollections, tt.wantClear)
			}
			if o.CreateBackup != tt.backup {
				t.Errorf("CreateBackup = %v, want %v", o.CreateBackup, tt.backup)
			}
			if o.DropCollections != tt.drop {
				t.Errorf("DropCollections = %v, want %v", o.DropCollections, tt.drop)
			}
		})
	}
}

func TestNormalizeAfterUpdate(t *testing.T) {
	o := DefaultOptions()
	o.ClearCollections = true
	o.Normalize()
	if o.ClearCollections {
		t.Error("Normalize should clear ClearCollections while DropCollections is set")
	}

	o.DropCollections = false
	o.ClearCollections = true
	o.Normalize()
	if !o.ClearCollections {
		t.Error("Normalize should keep ClearCollections when DropCollections is off")
	}
}

func TestRequestValidate(t *testing.T) {
	req := Request{SourceEnv: "DEV", TargetEnv: "LOCAL", SourceDB: "shop", TargetDB: "shop"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	for name, broken := range map[string]Request{
		"missing source env": {TargetEnv: "LOCAL", SourceDB: "shop", TargetDB: "shop"},
		"missing target env": {SourceEnv: "DEV", SourceDB: "shop", TargetDB: "shop"},
		"missing source db":  {SourceEnv: "DEV", TargetEnv: "LOCAL", TargetDB: "shop"},
		"missing target db":  {SourceEnv: "DEV", TargetEnv: "LOCAL", SourceDB: "shop"},
	} {
		t.Run(name, func(t *testing.T) {
			if err := broken.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
