package face

import (
	"fmt"

	"github.com/sweeney/points-face/internal/counter"
)

var (
	pageNames         = [counter.PageCount]string{"OSMO", "FEMO"}
	pageNamesFallback = [counter.PageCount]string{"OS", "FE"}
)

// PageLabel returns the top-line label and its short fallback for page.
func PageLabel(page int) (string, string) {
	page %= counter.PageCount
	if page < 0 {
		page += counter.PageCount
	}
	return pageNames[page], pageNamesFallback[page]
}

// FormatBottom formats a counter value with its derived time readout.
// Each unit counts as five minutes: 12 renders " 12=100" (1h00),
// 7 renders " 7 =35" (0h35). The separator moves when there are no hours.
// Non-negative values get a leading sign space.
func FormatBottom(value int) string {
	v := counter.Clamp(value)
	derived := abs(v) * 5
	hours := derived / 60
	minutes := derived % 60
	if hours > 0 {
		return fmt.Sprintf("% 2d=%1d%02d", v, hours, minutes)
	}
	return fmt.Sprintf("% 2d =%02d", v, minutes)
}

// Render writes the active page of st to d. The bell indicator mirrors the
// sound preference on every call.
func Render(d Display, st *counter.State, sound bool) {
	if sound {
		d.SetIndicator(IndicatorBell)
	} else {
		d.ClearIndicator(IndicatorBell)
	}
	name, fallback := PageLabel(st.Page)
	d.DisplayTextWithFallback(PositionTop, name, fallback)
	d.DisplayText(PositionBottom, FormatBottom(st.Current()))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
