// Package page holds the per-request document that storefront operations
// mutate before it is rendered to HTML.
package page

import (
	"html/template"
	"sync"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// Region names an optional slot of the document. Operations that target an
// absent region skip their work.
type Region string

const (
	RegionGrid      Region = "productsGrid"
	RegionLoadMore  Region = "loadMoreBtn"
	RegionShowAll   Region = "showAllBtn"
	RegionSearch    Region = "searchInput"
	RegionCartItems Region = "cart-items"
	RegionSubtotal  Region = "subtotal"
	RegionTotal     Region = "total"
	RegionDetail    Region = "product-detail"
	RegionAccount   Region = "account"
)

// Element is the rendered state of one region.
type Element struct {
	HTML   template.HTML
	Text   string
	Value  string
	Hidden bool
}

// Banner is a transient notification attached to the document.
type Banner struct {
	ID      int
	Message string
	Kind    enums.NotificationKind
	State   enums.BannerState
}

// Document is safe for concurrent use; banner timers mutate it off the
// request goroutine.
type Document struct {
	mu       sync.Mutex
	title    string
	regions  map[Region]*Element
	order    []Region
	badges   []string
	banners  []*Banner
	bannerID int
}

// New builds a document exposing the given regions.
func New(title string, regions ...Region) *Document {
	d := &Document{title: title, regions: make(map[Region]*Element, len(regions))}
	for _, r := range regions {
		if _, ok := d.regions[r]; ok {
			continue
		}
		d.regions[r] = &Element{}
		d.order = append(d.order, r)
	}
	return d
}

// AddBadges attaches n count-badge elements.
func (d *Document) AddBadges(n int) *Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < n; i++ {
		d.badges = append(d.badges, "")
	}
	return d
}

// Title returns the document title.
func (d *Document) Title() string {
	return d.title
}

// Has reports whether the region is present.
func (d *Document) Has(r Region) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.regions[r]
	return ok
}

// Region returns a copy of the region state.
func (d *Document) Region(r Region) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.regions[r]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// SetHTML replaces the region's markup. It returns false when the region is absent.
func (d *Document) SetHTML(r Region, html template.HTML) bool {
	return d.update(r, func(el *Element) { el.HTML = html })
}

// SetText replaces the region's text content.
func (d *Document) SetText(r Region, text string) bool {
	return d.update(r, func(el *Element) { el.Text = text })
}

// SetValue sets the value of an input region.
func (d *Document) SetValue(r Region, value string) bool {
	return d.update(r, func(el *Element) { el.Value = value })
}

// SetHidden toggles the region's visibility.
func (d *Document) SetHidden(r Region, hidden bool) bool {
	return d.update(r, func(el *Element) { el.Hidden = hidden })
}

func (d *Document) update(r Region, fn func(*Element)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.regions[r]
	if !ok {
		return false
	}
	fn(el)
	return true
}

// SetBadges writes text into every count badge and returns how many were updated.
func (d *Document) SetBadges(text string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.badges {
		d.badges[i] = text
	}
	return len(d.badges)
}

// Badges returns the current badge texts.
func (d *Document) Badges() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.badges))
	copy(out, d.badges)
	return out
}

// AddBanner appends a visible banner and returns its id.
func (d *Document) AddBanner(message string, kind enums.NotificationKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bannerID++
	d.banners = append(d.banners, &Banner{
		ID:      d.bannerID,
		Message: message,
		Kind:    kind,
		State:   enums.BannerStateVisible,
	})
	return d.bannerID
}

// SetBannerState moves a banner to state. Removed banners are dropped.
func (d *Document) SetBannerState(id int, state enums.BannerState) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, b := range d.banners {
		if b.ID != id {
			continue
		}
		if state == enums.BannerStateRemoved {
			d.banners = append(d.banners[:i], d.banners[i+1:]...)
			return true
		}
		b.State = state
		return true
	}
	return false
}

// Banners returns a copy of the attached banners in insertion order.
func (d *Document) Banners() []Banner {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Banner, 0, len(d.banners))
	for _, b := range d.banners {
		out = append(out, *b)
	}
	return out
}
