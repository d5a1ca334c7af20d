package content

import (
	"net/url"
	"strconv"
	"strings"
)

// Region names the wrapper a section is rendered into. Consecutive sections of
// the same region share one wrapper element.
type Region string

const (
	RegionInfo     Region = "info"
	RegionTerminal Region = "terminal"
	RegionControl  Region = "control"
	RegionFeatures Region = "features"
)

// Known reports whether r is one of the supported regions.
func (r Region) Known() bool {
	switch r {
	case RegionInfo, RegionTerminal, RegionControl, RegionFeatures:
		return true
	}
	return false
}

// Page is the complete homepage copy, in document order.
type Page struct {
	Meta     Meta      `yaml:"meta"`
	Hero     Hero      `yaml:"hero"`
	Sections []Section `yaml:"sections"`
	Closing  Closing   `yaml:"closing"`

	vars Vars
}

// Vars returns the placeholder values the page was loaded with. Prose link
// destinations are filled from them at render time.
func (p *Page) Vars() Vars {
	return p.vars
}

// Meta is consumed by the layout wrapper.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// TwitterTitle overrides twitter:title only; empty means Title.
	TwitterTitle string `yaml:"twitter_title"`
}

// SocialTitle returns the twitter:title value.
func (m Meta) SocialTitle() string {
	if m.TwitterTitle != "" {
		return m.TwitterTitle
	}
	return m.Title
}

// Hero is the banner call to action. It carries no ordinal.
type Hero struct {
	Lead        string `yaml:"lead"`
	Joiner      string `yaml:"joiner"`
	JoinerTitle string `yaml:"joiner_title"`
	Tail        string `yaml:"tail"`
	Actions     []Link `yaml:"actions"`
	Badge       Badge  `yaml:"badge"`
}

// Badge describes the third-party GitHub star button.
type Badge struct {
	User   string `yaml:"user"`
	Repo   string `yaml:"repo"`
	Type   string `yaml:"type"`
	Size   string `yaml:"size"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

const badgeEndpoint = "https://ghbtns.com/github-btn.html"

// Enabled reports whether the badge identifies a project.
func (b Badge) Enabled() bool {
	return b.User != "" && b.Repo != ""
}

// URL returns the widget URL. Parameters keep a fixed order so rendered pages are stable.
func (b Badge) URL() string {
	typ := b.Type
	if typ == "" {
		typ = "star"
	}
	params := []string{
		"user=" + url.QueryEscape(b.User),
		"repo=" + url.QueryEscape(b.Repo),
		"type=" + url.QueryEscape(typ),
		"count=true",
	}
	if b.Size != "" {
		params = append(params, "size="+url.QueryEscape(b.Size))
	}
	return badgeEndpoint + "?" + strings.Join(params, "&")
}

// Section is one headed block of the page. Every section receives an ordinal.
type Section struct {
	Region   Region       `yaml:"region"`
	ID       string       `yaml:"id,omitempty"`
	Heading  string       `yaml:"heading"`
	Body     string       `yaml:"body,omitempty"`
	Code     []CodeSample `yaml:"code,omitempty"`
	Features []Feature    `yaml:"features,omitempty"`
}

// Feature is an entry of the features section, listed in its table of contents.
type Feature struct {
	ID    string      `yaml:"id"`
	Title string      `yaml:"title"`
	Body  string      `yaml:"body"`
	Code  *CodeSample `yaml:"code,omitempty"`
	Image *Image      `yaml:"image,omitempty"`
}

// Anchor returns the in-page link target for the feature.
func (f Feature) Anchor() string {
	return "#" + f.ID
}

// Variant marks code samples meant for a particular viewport width.
type Variant string

const (
	VariantAny     Variant = ""
	VariantDesktop Variant = "desktop"
	VariantMobile  Variant = "mobile"
)

// CodeSample is a literal, read-only code or terminal transcript.
type CodeSample struct {
	Language   string  `yaml:"language"`
	Source     string  `yaml:"source"`
	CopyButton *bool   `yaml:"copy_button,omitempty"`
	Variant    Variant `yaml:"variant,omitempty"`
	Class      string  `yaml:"class,omitempty"`
}

// Copyable reports whether the copy affordance is shown. It defaults to true.
func (c CodeSample) Copyable() bool {
	return c.CopyButton == nil || *c.CopyButton
}

// Image is a static asset reference; the path is not validated.
type Image struct {
	Src   string `yaml:"src"`
	Width int    `yaml:"width,omitempty"`
	Alt   string `yaml:"alt,omitempty"`
}

// WidthAttr returns the width attribute value, or "" when unset.
func (i Image) WidthAttr() string {
	if i.Width <= 0 {
		return ""
	}
	return strconv.Itoa(i.Width)
}

// Link is a labelled navigation target.
type Link struct {
	Label  string `yaml:"label"`
	Href   string `yaml:"href"`
	Button bool   `yaml:"button,omitempty"`
}

// Closing is the final call to action with two link targets.
type Closing struct {
	Primary   Link   `yaml:"primary"`
	Separator string `yaml:"separator"`
	Secondary Link   `yaml:"secondary"`
}

// Features returns every feature of the page in document order.
func (p *Page) Features() []Feature {
	var out []Feature
	for _, s := range p.Sections {
		out = append(out, s.Features...)
	}
	return out
}
