package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// NoDescription is returned by Lookup for identifiers the catalog does not know.
const NoDescription = "No description available."

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	defaultOnce sync.Once
	defaultInst *Catalog
)

// Category is a single career field together with the keywords that trigger it.
type Category struct {
	Name        string   `yaml:"name" mapstructure:"name"`
	Keywords    []string `yaml:"keywords" mapstructure:"keywords"`
	Description string   `yaml:"description" mapstructure:"description"`
	Roles       []string `yaml:"roles" mapstructure:"roles"`
	Roadmap     []string `yaml:"roadmap" mapstructure:"roadmap"`
}

// Entry is the read-only projection of a category handed out by Lookup.
type Entry struct {
	Description string
	Roles       []string
	Roadmap     []string
}

// Catalog is an ordered, immutable set of categories. It is safe for
// concurrent use since nothing mutates it after construction.
type Catalog struct {
	categories []Category
	index      map[string]int
}

type document struct {
	Categories []Category `yaml:"categories" mapstructure:"categories"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalog)
		if err != nil {
			panic(fmt.Sprintf("built-in catalog is broken: %v", err))
		}
		defaultInst = c
	})
	return defaultInst
}

// New validates the categories and builds a catalog preserving their order.
// Keywords are lowercased and trimmed; empty keywords are dropped.
func New(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, errors.New("catalog must contain at least one category")
	}

	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}

	for i, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return nil, fmt.Errorf("category #%d has an empty name", i)
		}
		if _, ok := c.index[name]; ok {
			return nil, fmt.Errorf("category %q is defined twice", name)
		}

		keywords := make([]string, 0, len(category.Keywords))
		for _, kw := range category.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", name)
		}

		c.index[name] = len(c.categories)
		c.categories = append(c.categories, Category{
			Name:        name,
			Keywords:    keywords,
			Description: strings.TrimSpace(category.Description),
			Roles:       slices.Clone(category.Roles),
			Roadmap:     slices.Clone(category.Roadmap),
		})
	}

	return c, nil
}

// Parse builds a catalog from a YAML document with a top-level categories list.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Categories)
}

// Load reads a YAML catalog from the given file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}
	return Parse(data)
}

// FromConfig decodes categories from a generic configuration value, e.g. the
// "catalog" section of the config file as returned by viper.
func FromConfig(raw any) (*Catalog, error) {
	var doc document
	cfg := &mapstructure.DecoderConfig{
		Result:           &doc,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("create catalog decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Categories)
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Names returns the category identifiers in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.categories))
	for _, category := range c.categories {
		names = append(names, category.Name)
	}
	return names
}

// Categories returns a copy of all categories in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.categories))
	for _, category := range c.categories {
		out = append(out, category.clone())
	}
	return out
}

// Get returns the category with the given name.
func (c *Catalog) Get(name string) (Category, bool) {
	i, ok := c.index[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[i].clone(), true
}

// Lookup never fails: unknown identifiers yield NoDescription and empty lists.
func (c *Catalog) Lookup(name string) Entry {
	category, ok := c.Get(name)
	if !ok {
		return Entry{Description: NoDescription}
	}

	description := category.Description
	if description == "" {
		description = NoDescription
	}

	return Entry{
		Description: description,
		Roles:       category.Roles,
		Roadmap:     category.Roadmap,
	}
}

func (c Category) clone() Category {
	c.Keywords = slices.Clone(c.Keywords)
	c.Roles = slices.Clone(c.Roles)
	c.Roadmap = slices.Clone(c.Roadmap)
	return c
}
