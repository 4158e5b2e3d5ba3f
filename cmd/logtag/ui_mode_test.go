package main

import "testing"

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		value   string
		want    uiMode
		wantErr bool
	}{
		{value: "", want: uiModeAuto},
		{value: "auto", want: uiModeAuto},
		{value: "ON", want: uiModeOn},
		{value: " off ", want: uiModeOff},
		{value: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		got, err := readUIMode(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
