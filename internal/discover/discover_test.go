package discover

import (
	"strings"
	"testing"
)

func TestSelectExport(t *testing.T) {
	exports := []Export{
		{Name: "StubDefs"},
		{Name: "AltDefs"},
	}

	tests := []struct {
		name       string
		exports    []Export
		want       string
		wantErr    bool
		errContain string
	}{
		{"single export, no name", exports[:1], "StubDefs", false, ""},
		{"named export", exports, "AltDefs", false, ""},
		{"no exports", nil, "", true, "no export found"},
		{"multiple without name", exports, "", true, "multiple exports"},
		{"unknown name", exports, "", true, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := ""
			switch tt.name {
			case "named export":
				name = "AltDefs"
			case "unknown name":
				name = "Missing"
			}

			got, err := SelectExport(tt.exports, name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errContain) {
					t.Errorf("error %q does not contain %q", err, tt.errContain)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectExport: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("selected %q, want %q", got.Name, tt.want)
			}
		})
	}
}
