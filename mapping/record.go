package mapping

import (
	"bytes"
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"mdimport/common"
	"mdimport/styles"
)

// ErrMalformed is returned for records which could not be decoded.
var ErrMalformed = errors.New("malformed mapping record")

const removeBlankPagesKey = "removeBlankPages"

// Record is persisted form of the mapping: style names per role, nil for
// explicitly unmapped roles. It is YAML (and so JSON) compatible.
type Record struct {
	H1               *string `yaml:"h1"`
	H2               *string `yaml:"h2"`
	H3               *string `yaml:"h3"`
	H4               *string `yaml:"h4"`
	H5               *string `yaml:"h5"`
	H6               *string `yaml:"h6"`
	Quote            *string `yaml:"quote"`
	Bulletlist       *string `yaml:"bulletlist"`
	Normal           *string `yaml:"normal"`
	Italic           *string `yaml:"italic"`
	Bold             *string `yaml:"bold"`
	Bolditalic       *string `yaml:"bolditalic"`
	Underline        *string `yaml:"underline"`
	Smallcaps        *string `yaml:"smallcaps"`
	Subscript        *string `yaml:"subscript"`
	Superscript      *string `yaml:"superscript"`
	Note             *string `yaml:"note"`
	RemoveBlankPages bool    `yaml:"removeBlankPages"`

	// roles which had a key in decoded data, explicit null included
	present map[common.Role]bool
}

func (r *Record) field(role common.Role) **string {
	switch role {
	case common.RoleH1:
		return &r.H1
	case common.RoleH2:
		return &r.H2
	case common.RoleH3:
		return &r.H3
	case common.RoleH4:
		return &r.H4
	case common.RoleH5:
		return &r.H5
	case common.RoleH6:
		return &r.H6
	case common.RoleQuote:
		return &r.Quote
	case common.RoleBulletlist:
		return &r.Bulletlist
	case common.RoleNormal:
		return &r.Normal
	case common.RoleItalic:
		return &r.Italic
	case common.RoleBold:
		return &r.Bold
	case common.RoleBolditalic:
		return &r.Bolditalic
	case common.RoleUnderline:
		return &r.Underline
	case common.RoleSmallcaps:
		return &r.Smallcaps
	case common.RoleSubscript:
		return &r.Subscript
	case common.RoleSuperscript:
		return &r.Superscript
	case common.RoleNote:
		return &r.Note
	}
	// this should never happen
	panic(fmt.Sprintf("unexpected role %q", role))
}

// Name returns recorded style name for role. Present is false when record
// did not mention role at all.
func (r *Record) Name(role common.Role) (name *string, present bool) {
	return *r.field(role), r.present[role]
}

// SetName records style name for role, nil marks role as explicitly
// unmapped.
func (r *Record) SetName(role common.Role, name *string) {
	if r.present == nil {
		r.present = make(map[common.Role]bool)
	}
	*r.field(role) = name
	r.present[role] = true
}

// UnmarshalYAML walks the mapping node directly so explicit null values can
// be told apart from missing keys. Unknown keys are ignored.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping: %w", node.Line, ErrMalformed)
	}

	*r = Record{present: make(map[common.Role]bool)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		if key.Value == removeBlankPagesKey {
			// only literal boolean true enables trimming
			if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!bool" {
				if err := val.Decode(&r.RemoveBlankPages); err != nil {
					return fmt.Errorf("line %d: %w", val.Line, errors.Join(ErrMalformed, err))
				}
			}
			continue
		}

		role, err := common.ParseRole(key.Value)
		if err != nil {
			continue
		}
		switch {
		case val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null":
			r.SetName(role, nil)
		case val.Kind == yaml.ScalarNode:
			name := val.Value
			r.SetName(role, &name)
		default:
			return fmt.Errorf("line %d: value for %q is not a style name: %w", val.Line, key.Value, ErrMalformed)
		}
	}
	return nil
}

// Serialize reduces mapping to style names.
func Serialize(m *Mapping) *Record {
	r := &Record{RemoveBlankPages: m.RemoveBlankPages}
	for _, role := range common.RoleValues() {
		if s := m.Style(role); s != nil {
			name := s.Name
			r.SetName(role, &name)
		} else {
			r.SetName(role, nil)
		}
	}
	return r
}

// Deserialize resolves recorded names against registry. Explicit null stays
// unmapped, missing or unknown names fall back to the first style of the
// category.
func Deserialize(r *Record, reg *styles.Registry) *Mapping {
	m := New()
	m.RemoveBlankPages = r.RemoveBlankPages
	for _, role := range common.RoleValues() {
		name, present := r.Name(role)
		switch {
		case present && name == nil:
			m.Set(role, nil)
		case name != nil:
			s := reg.Find(role.Kind(), *name)
			if s == nil {
				s = reg.First(role.Kind())
			}
			m.Set(role, s)
		default:
			m.Set(role, reg.First(role.Kind()))
		}
	}
	return m
}

// Marshal encodes record as YAML.
func Marshal(r *Record) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("unable to encode mapping record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes record from YAML or JSON.
func Unmarshal(data []byte) (*Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty data: %w", ErrMalformed)
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, errors.Join(ErrMalformed, err)
	}
	return &r, nil
}
