package styles

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gosimple/slug"
	yaml "gopkg.in/yaml.v3"
)

type groupDoc struct {
	Name   string     `yaml:"name"`
	Styles []string   `yaml:"styles"`
	Groups []groupDoc `yaml:"groups"`
}

type registryDoc struct {
	Paragraph groupDoc `yaml:"paragraph"`
	Character groupDoc `yaml:"character"`
}

// LoadYAML builds registry from YAML description:
//
//	paragraph:
//	  styles: ["[Basic Paragraph]", Body]
//	  groups:
//	    - name: Headings
//	      styles: [Heading 1, Heading 2]
//	character:
//	  styles: [Bold, Italic]
func LoadYAML(data []byte) (*Registry, error) {
	var doc registryDoc

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to decode style registry: %w", err)
	}
	return New(doc.Paragraph.group(), doc.Character.group()), nil
}

func (d groupDoc) group() *Group {
	g := &Group{Name: d.Name}
	for _, name := range d.Styles {
		g.Styles = append(g.Styles, &Style{Name: name, Class: slug.Make(name)})
	}
	for _, sub := range d.Groups {
		g.Groups = append(g.Groups, sub.group())
	}
	return g
}
