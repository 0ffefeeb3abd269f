package formation

import (
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultCatalogYAML []byte

// Catalog is the static table of formation templates. The first template is the default.
type Catalog struct {
	templates []Template
	index     map[string]int
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	catalog, err := parseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(errors.Wrap(err, "embedded formation catalog"))
	}
	return catalog
}

// LoadCatalog parses a YAML catalog from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read formation catalog")
	}
	return parseCatalog(raw)
}

// LoadCatalogFile parses the YAML catalog stored at path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open formation catalog %s", path)
	}
	defer f.Close()

	return LoadCatalog(f)
}

// NewCatalog builds a catalog from templates after validating them.
func NewCatalog(templates []Template) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, errors.Wrap(ErrInvalidCatalog, "no templates")
	}

	catalog := &Catalog{
		templates: make([]Template, 0, len(templates)),
		index:     make(map[string]int, len(templates)),
	}
	for _, tmpl := range templates {
		tmpl.Name = strings.TrimSpace(tmpl.Name)
		if tmpl.Name == "" {
			return nil, errors.Wrap(ErrInvalidCatalog, "template name is required")
		}
		if _, exists := catalog.index[tmpl.Name]; exists {
			return nil, errors.Wrapf(ErrInvalidCatalog, "duplicate template %q", tmpl.Name)
		}
		if len(tmpl.Slots) == 0 {
			return nil, errors.Wrapf(ErrInvalidCatalog, "template %q has no slots", tmpl.Name)
		}

		seen := make(map[string]struct{}, len(tmpl.Slots))
		slots := make([]SlotDefinition, 0, len(tmpl.Slots))
		for _, slot := range tmpl.Slots {
			slot.ID = strings.TrimSpace(slot.ID)
			slot.Label = strings.TrimSpace(slot.Label)
			if slot.ID == "" {
				return nil, errors.Wrapf(ErrInvalidCatalog, "template %q: slot id is required", tmpl.Name)
			}
			if slot.Label == "" {
				return nil, errors.Wrapf(ErrInvalidCatalog, "template %q: slot %q label is required", tmpl.Name, slot.ID)
			}
			if _, exists := seen[slot.ID]; exists {
				return nil, errors.Wrapf(ErrInvalidCatalog, "template %q: duplicate slot %q", tmpl.Name, slot.ID)
			}
			seen[slot.ID] = struct{}{}
			slots = append(slots, slot)
		}
		tmpl.Slots = slots

		catalog.index[tmpl.Name] = len(catalog.templates)
		catalog.templates = append(catalog.templates, tmpl)
	}

	return catalog, nil
}

func parseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode formation catalog"), ErrInvalidCatalog)
	}
	return NewCatalog(file.Templates)
}

// Names returns template names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.templates))
	for _, tmpl := range c.templates {
		out = append(out, tmpl.Name)
	}
	return out
}

// Templates returns a copy of every template in catalog order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, 0, len(c.templates))
	for _, tmpl := range c.templates {
		out = append(out, cloneTemplate(tmpl))
	}
	return out
}

func (c *Catalog) Template(name string) (Template, bool) {
	idx, ok := c.index[name]
	if !ok {
		return Template{}, false
	}
	return cloneTemplate(c.templates[idx]), true
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Default returns the first template of the catalog.
func (c *Catalog) Default() Template {
	return cloneTemplate(c.templates[0])
}

func cloneTemplate(tmpl Template) Template {
	tmpl.Slots = append([]SlotDefinition(nil), tmpl.Slots...)
	return tmpl
}
