package browser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type field struct {
	name  string
	value string
}

// Form formulario HTML con los valores que se enviarán.
type Form struct {
	Action string // URL absoluta
	Method string // GET o POST
	Index  int    // posición en la página
	Page   *Page
	fields []field

	buttons []field
	pressed int // índice en buttons; -1 si el formulario no tiene botón
}

func newForm(p *Page, index int, s *goquery.Selection) *Form {
	f := &Form{Method: "GET", Index: index, Page: p, pressed: -1}
	if m, ok := s.Attr("method"); ok && strings.EqualFold(m, "post") {
		f.Method = "POST"
	}
	action, _ := s.Attr("action")
	if resolved, err := p.resolve(action); err == nil {
		f.Action = resolved
	} else {
		f.Action = p.URL.String()
	}

	s.Find("input[name], select[name], textarea[name]").Each(func(_ int, in *goquery.Selection) {
		name, _ := in.Attr("name")
		switch strings.ToLower(in.AttrOr("type", "text")) {
		case "checkbox", "radio":
			if _, checked := in.Attr("checked"); !checked {
				return
			}
		case "submit":
			f.buttons = append(f.buttons, field{name: name, value: in.AttrOr("value", "")})
			return
		case "button", "reset", "image", "file":
			return
		}
		value := in.AttrOr("value", "")
		if goquery.NodeName(in) == "textarea" {
			value = in.Text()
		}
		if goquery.NodeName(in) == "select" {
			opt := in.Find("option[selected]").First()
			if opt.Length() == 0 {
				opt = in.Find("option").First()
			}
			value = opt.AttrOr("value", strings.TrimSpace(opt.Text()))
		}
		f.fields = append(f.fields, field{name: name, value: value})
	})
	// Se pulsa el botón "submit" si existe; si no, el primero.
	for i, b := range f.buttons {
		if b.name == "submit" {
			f.pressed = i
			break
		}
	}
	if f.pressed < 0 && len(f.buttons) > 0 {
		f.pressed = 0
	}
	return f
}

// Press elige el botón de envío name; solo ese botón viaja con el formulario.
func (f *Form) Press(name string) error {
	for i, b := range f.buttons {
		if b.name == name {
			f.pressed = i
			return nil
		}
	}
	return fmt.Errorf("%w: botón %q en formulario %d de %s", ErrNotFound, name, f.Index, f.Page.URL)
}

// Button nombre del botón que se pulsará al enviar.
func (f *Form) Button() (string, bool) {
	if f.pressed < 0 {
		return "", false
	}
	return f.buttons[f.pressed].name, true
}

// Set fija el valor del campo name. Falla si el formulario no lo tiene.
func (f *Form) Set(name, value string) error {
	for i := range f.fields {
		if f.fields[i].name == name {
			f.fields[i].value = value
			return nil
		}
	}
	return fmt.Errorf("%w: campo %q en formulario %d de %s", ErrNotFound, name, f.Index, f.Page.URL)
}

// Get valor actual del campo.
func (f *Form) Get(name string) (string, bool) {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl.value, true
		}
	}
	return "", false
}

// Values valores a enviar en orden del documento, más el botón pulsado.
func (f *Form) Values() url.Values {
	v := url.Values{}
	for _, fl := range f.fields {
		v.Add(fl.name, fl.value)
	}
	if f.pressed >= 0 {
		b := f.buttons[f.pressed]
		v.Add(b.name, b.value)
	}
	return v
}

// Fill fija varios campos en orden; se detiene en el primero que falte.
func (f *Form) Fill(pairs ...string) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("Fill: cantidad impar de argumentos")
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := f.Set(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
