package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("page").ParseFS(templateFS, "templates/*.tmpl"))

// Fragment executes a named template into markup suitable for SetHTML.
func Fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

type view struct {
	Title   string
	Regions map[Region]Element
	Badges  []string
	Banners []Banner
}

func (v view) Has(r string) bool {
	_, ok := v.Regions[Region(r)]
	return ok
}

func (v view) Get(r string) Element {
	return v.Regions[Region(r)]
}

// Render writes the full document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	v := view{
		Title:   d.title,
		Regions: make(map[Region]Element, len(d.regions)),
		Badges:  append([]string(nil), d.badges...),
	}
	for r, el := range d.regions {
		v.Regions[r] = *el
	}
	for _, b := range d.banners {
		v.Banners = append(v.Banners, *b)
	}
	d.mu.Unlock()

	return templates.ExecuteTemplate(w, "layout", v)
}

// RenderRegion writes only one region's markup, for fragment responses.
func (d *Document) RenderRegion(w io.Writer, r Region) error {
	el, ok := d.Region(r)
	if !ok {
		return fmt.Errorf("region %s not present", r)
	}
	_, err := io.WriteString(w, string(el.HTML))
	return err
}
