package components

import (
	"testing"
)

func TestServiceMeter_View(t *testing.T) {
	tests := []struct {
		name  string
		meter ServiceMeter
		want  string
	}{
		{"none done", NewServiceMeter(0, 12, 6), "□□□□□□ 0/12"},
		{"half done", NewServiceMeter(6, 12, 6), "■■■□□□ 6/12"},
		{"all done", NewServiceMeter(12, 12, 6), "■■■■■■ 12/12"},
		{"one cell per service", NewServiceMeter(3, 4, 0), "■■■□ 3/4"},
		{"rounds down", NewServiceMeter(1, 12, 6), "□□□□□□ 1/12"},
		{"foreign keys beyond total", NewServiceMeter(14, 12, 4), "■■■■ 14/12"},
		{"negative clamps", NewServiceMeter(-1, 12, 4), "□□□□ -1/12"},
		{"no total", NewServiceMeter(3, 0, 4), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meter.View(); got != tt.want {
				t.Errorf("View() = %q, want %q", got, tt.want)
			}
		})
	}
}
