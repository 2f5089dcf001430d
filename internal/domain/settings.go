package domain

import "fmt"

// Card sizes accepted by the dashboard.
const (
	CardSmall  = "small"
	CardMedium = "medium"
	CardLarge  = "large"
)

// Category layout modes accepted by the dashboard.
const (
	LayoutGrid       = "grid"
	LayoutFlex       = "flex"
	LayoutHorizontal = "horizontal"
)

// DisplaySettings holds purely cosmetic preferences. They are
// persisted independently of bookmarks and categories and never
// affect organizational correctness.
type DisplaySettings struct {
	CardSize       string `json:"cardSize"`
	CategoryLayout string `json:"categoryLayout"`
}

// DefaultDisplaySettings returns the preferences seeded on first run.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		CardSize:       CardMedium,
		CategoryLayout: LayoutGrid,
	}
}

// Validate rejects values outside the enumerations so invalid
// settings never reach the persisted record.
func (s DisplaySettings) Validate() error {
	switch s.CardSize {
	case CardSmall, CardMedium, CardLarge:
	default:
		return fmt.Errorf("%w: unknown card size %q", ErrValidation, s.CardSize)
	}
	switch s.CategoryLayout {
	case LayoutGrid, LayoutFlex, LayoutHorizontal:
	default:
		return fmt.Errorf("%w: unknown category layout %q", ErrValidation, s.CategoryLayout)
	}
	return nil
}
