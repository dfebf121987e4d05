package config

// Page identifies a top-level screen of the TUI.
type Page int

const (
	PageHome Page = iota
	PageBrowse
	PageDetail
	PageSettings
	PageGuide
)

func (p Page) String() string {
	switch p {
	case PageBrowse:
		return "Browse"
	case PageDetail:
		return "Detail"
	case PageSettings:
		return "Settings"
	case PageGuide:
		return "Guide"
	default:
		return "Home"
	}
}
