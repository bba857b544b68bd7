package navigation

// Link is a single navigation entry. A link with Children renders as a
// dropdown and may have an empty Href.
type Link struct {
	Text     string
	Href     string
	Children []Link
}

// Action is a call-to-action button rendered alongside the header links.
type Action struct {
	Text   string
	Href   string
	Target string
}

// Header is the site-wide top navigation.
type Header struct {
	Links   []Link
	Actions []Action
}

// Section groups footer links under a title.
type Section struct {
	Title string
	Links []Link
}

// SocialLink points at an external profile.
type SocialLink struct {
	AriaLabel string
	Icon      string
	Href      string
}

// Footer is the site-wide bottom navigation.
type Footer struct {
	Sections       []Section
	SecondaryLinks []Link
	SocialLinks    []SocialLink
	FootNote       string
}
