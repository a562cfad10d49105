package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/outings/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDistance renders a distance in miles, e.g. "3.2 mi". Zero means the
// provider did not say.
func FormatDistance(miles float64) string {
	if miles <= 0 {
		return "distance unknown"
	}
	return strconv.FormatFloat(miles, 'f', -1, 64) + " mi"
}

// RelativeDay describes a YYYY-MM-DD date relative to now, e.g. "Today",
// "3d ago" or "2w ago". Unparseable dates are returned unchanged.
func RelativeDay(date string, now time.Time) string {
	d, err := time.ParseInLocation(domain.DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	days := int(math.Round(d.Sub(today).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == -1:
		return "Yesterday"
	case days > 0:
		return date
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// JoinList renders a, b and c as "a, b and c".
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
