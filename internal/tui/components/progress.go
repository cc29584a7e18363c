package components

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// ServiceMeter renders how much of a service checklist is done, like
// ■■■■□□□□ 6/12.
type ServiceMeter struct {
	Done  int
	Total int
	Width int // character width of the bar portion; 0 means one cell per service
}

// NewServiceMeter creates a meter for done of total services.
func NewServiceMeter(done, total, width int) ServiceMeter {
	return ServiceMeter{Done: done, Total: total, Width: width}
}

// View returns the rendered meter.
func (m ServiceMeter) View() string {
	if m.Total <= 0 {
		return ""
	}
	width := m.Width
	if width <= 0 {
		width = m.Total
	}

	done := min(max(m.Done, 0), m.Total)
	filled := (done * width) / m.Total

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, width-filled)
	return fmt.Sprintf("%s %d/%d", bar, m.Done, m.Total)
}
