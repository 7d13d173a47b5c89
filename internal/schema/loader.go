package schema

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"strings"

	"gsettings-codegen/internal/diagnostic"
)

// Load reads and parses the schema file at path and selects the schema
// definition to generate from. With an empty id the file must contain
// exactly one definition; otherwise the id must match one of them.
func Load(path, id string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, diagnostic.Errorf(diagnostic.CodeNotFound, "schema file %s does not exist", path)
		}

		return nil, diagnostic.Errorf(diagnostic.CodeNotFound, "schema file %s: %v", path, err)
	}

	return Parse(data, id)
}

// Parse parses schema XML and selects a definition like Load.
func Parse(data []byte, id string) (*Document, error) {
	var root xmlSchemaList

	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, diagnostic.Errorf(diagnostic.CodeParseError, "malformed schema document: %v", err)
	}

	doc := &Document{}

	for _, e := range root.Enums {
		doc.Enums = append(doc.Enums, newValueSetDecl(e))
	}

	for _, f := range root.Flags {
		doc.Flags = append(doc.Flags, newValueSetDecl(f))
	}

	for _, s := range root.Schemas {
		doc.Schemas = append(doc.Schemas, newSchema(s))
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}

	if err := doc.selectSchema(id); err != nil {
		return nil, err
	}

	return doc, nil
}

// selectSchema resolves which definition generation targets.
func (doc *Document) selectSchema(id string) error {
	if id == "" {
		if len(doc.Schemas) > 1 {
			ids := make([]string, len(doc.Schemas))
			for i, s := range doc.Schemas {
				ids[i] = s.ID
			}

			return diagnostic.Errorf(diagnostic.CodeAmbiguousSchema,
				"document declares %d schemas (%s); pass an id to pick one",
				len(doc.Schemas), strings.Join(ids, ", "))
		}

		doc.Schema = &doc.Schemas[0]

		return nil
	}

	for i := range doc.Schemas {
		if doc.Schemas[i].ID == id {
			doc.Schema = &doc.Schemas[i]
			doc.Pinned = true

			return nil
		}
	}

	return diagnostic.Errorf(diagnostic.CodeSchemaNotFound, "no schema with id %q in document", id)
}

func newValueSetDecl(x xmlValueSet) ValueSetDecl {
	decl := ValueSetDecl{ID: x.ID}
	for _, v := range x.Values {
		decl.Nicks = append(decl.Nicks, v.Nick)
	}

	return decl
}

func newSchema(x xmlSchema) Schema {
	s := Schema{ID: x.ID, Path: x.Path}

	for _, k := range x.Keys {
		key := Key{
			Name:        k.Name,
			Type:        k.Type,
			Default:     strings.TrimSpace(k.Default),
			Summary:     strings.TrimSpace(k.Summary),
			Description: strings.TrimSpace(k.Description),
			ReadOnly:    k.ReadOnly,
			EnumRef:     k.Enum,
			FlagsRef:    k.Flags,
		}

		if k.Choices != nil {
			for _, c := range k.Choices.Choices {
				key.Choices = append(key.Choices, c.Value)
			}
		}

		s.Keys = append(s.Keys, key)
	}

	return s
}
