// Package browser recorre páginas HTML como lo haría un usuario: abre enlaces, llena
// formularios y lee tablas. Las implementaciones de Browser no guardan caché.
package browser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Page documento HTML cargado junto con la respuesta que lo trajo.
type Page struct {
	URL        *url.URL
	StatusCode int
	doc        *goquery.Document
}

// NewPage parsea body como la página servida en u.
func NewPage(u *url.URL, status int, body io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u, err)
	}
	doc.Url = u
	return &Page{URL: u, StatusCode: status, doc: doc}, nil
}

// Title texto de <title>.
func (p *Page) Title() string {
	return cleanText(p.doc.Find("title").First().Text())
}

// Text texto visible del body con los espacios colapsados.
func (p *Page) Text() string {
	return cleanText(p.doc.Find("body").Text())
}

// HasElement indica si existe un elemento con ese id.
func (p *Page) HasElement(id string) bool {
	return p.byID(id).Length() > 0
}

// AnchorByHref devuelve la URL absoluta del primer enlace cuyo href es exactamente href.
func (p *Page) AnchorByHref(href string) (string, error) {
	var found string
	p.doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if v, _ := a.Attr("href"); v == href {
			found = v
			return false
		}
		return true
	})
	if found == "" {
		return "", fmt.Errorf("%w: enlace %q en %s", ErrNotFound, href, p.URL)
	}
	return p.resolve(found)
}

// Forms formularios de la página en orden de aparición.
func (p *Page) Forms() []*Form {
	var forms []*Form
	p.doc.Find("form").Each(func(i int, s *goquery.Selection) {
		forms = append(forms, newForm(p, i, s))
	})
	return forms
}

// Form formulario i (desde 0).
func (p *Page) Form(i int) (*Form, error) {
	forms := p.Forms()
	if i < 0 || i >= len(forms) {
		return nil, fmt.Errorf("%w: formulario %d en %s (%d formularios)", ErrNotFound, i, p.URL, len(forms))
	}
	return forms[i], nil
}

// TableByID tabla con ese id; ok=false si la página no la tiene.
func (p *Page) TableByID(id string) (*Table, bool) {
	sel := p.byID(id).Filter("table")
	if sel.Length() == 0 {
		return nil, false
	}
	return newTable(id, sel.First()), true
}

// HTML documento serializado, para diagnósticos.
func (p *Page) HTML() string {
	h, _ := p.doc.Html()
	return h
}

func (p *Page) byID(id string) *goquery.Selection {
	return p.doc.Find(`[id="` + id + `"]`)
}

func (p *Page) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("href %q: %w", ref, err)
	}
	return p.URL.ResolveReference(u).String(), nil
}

// cleanText colapsa espacios y normaliza a NFC para comparar con literales.
func cleanText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
