package client

import "testing"

func TestValidateTicker(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"TSLA", "TSLA", false},
		{"tsla", "TSLA", false},
		{"  spy ", "SPY", false},
		{"BRK2", "BRK2", false},
		{"ABCDEF", "ABCDEF", false},
		{"", "", true},
		{"ABCDEFG", "", true},
		{"BRK.B", "", true},
		{"TS LA", "", true},
		{"<TSLA>", "", true},
	}

	for _, tt := range tests {
		got, err := ValidateTicker(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ValidateTicker(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateTicker(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ValidateTicker(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
