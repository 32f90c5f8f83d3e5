package app

import "testing"

func TestKeyRing(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		push     string
		want     string
		last     rune
	}{
		{"empty", 4, "", "", 0},
		{"partial", 4, "qe", "qe", 'e'},
		{"full", 4, "qert", "qert", 't'},
		{"wrapped", 4, "qertyq", "rtyq", 'q'},
		{"zero capacity holds one", 0, "ab", "b", 'b'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewKeyRing(tt.capacity)
			for _, k := range tt.push {
				r.Push(k)
			}
			if got := string(r.Values()); got != tt.want {
				t.Errorf("Values() = %q, want %q", got, tt.want)
			}
			if got := r.Last(); got != tt.last {
				t.Errorf("Last() = %q, want %q", got, tt.last)
			}
			if got := r.Len(); got != len(tt.want) {
				t.Errorf("Len() = %d, want %d", got, len(tt.want))
			}
			if got := r.Total(); got != uint64(len(tt.push)) {
				t.Errorf("Total() = %d, want %d", got, len(tt.push))
			}
		})
	}
}
