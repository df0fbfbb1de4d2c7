package llm

import "github.com/google/generative-ai-go/genai"

// SchemaType is the JSON type of a response schema node.
type SchemaType string

// Schema node types understood by the providers.
const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// Schema declares the shape a structured completion should take.
// It is advisory: providers try to honour it but nothing guarantees conformance.
type Schema struct {
	Type        SchemaType
	Description string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

// StringArray is shorthand for an array of strings.
func StringArray(description, itemDescription string) *Schema {
	return &Schema{
		Type:        TypeArray,
		Description: description,
		Items:       &Schema{Type: TypeString, Description: itemDescription},
	}
}

// toGenai converts the schema into the Gemini SDK representation.
func (s *Schema) toGenai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Items:       s.Items.toGenai(),
		Required:    append([]string(nil), s.Required...),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.toGenai()
		}
	}
	return out
}

func genaiType(t SchemaType) genai.Type {
	switch t {
	case TypeString:
		return genai.TypeString
	case TypeNumber:
		return genai.TypeNumber
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
