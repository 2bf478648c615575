package cliflags

import "testing"

func TestParseWorkers(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		cpus    int
		want    int
		wantErr bool
	}{
		{"empty means auto", "", 8, 8, false},
		{"auto case insensitive", "AUTO", 8, 8, false},
		{"bare integer", "3", 8, 3, false},
		{"percentage", "50%", 8, 4, false},
		{"percentage rounds down", "25%", 10, 2, false},
		{"percentage floors to one", "1%", 8, 1, false},
		{"zero percent invalid", "0%", 8, 0, true},
		{"zero invalid", "0", 8, 0, true},
		{"negative invalid", "-5", 8, 0, true},
		{"garbage invalid", "abc", 8, 0, true},
		{"garbage percentage invalid", "abc%", 8, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWorkers(tt.raw, tt.cpus)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWorkers(%q, %d) = %d, nil; want error", tt.raw, tt.cpus, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWorkers(%q, %d) unexpected error: %v", tt.raw, tt.cpus, err)
			}
			if got != tt.want {
				t.Errorf("ParseWorkers(%q, %d) = %d, want %d", tt.raw, tt.cpus, got, tt.want)
			}
		})
	}
}
