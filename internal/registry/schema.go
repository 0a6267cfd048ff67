package registry

const hexColorPattern = "^#(?:[0-9a-fA-F]{3}){1,2}$"

// objectSchema converts content fields into a JSON schema object. Top-level
// schemas skip translation fields since those never live in metadata.
func objectSchema(fields []Field, topLevel bool) map[string]any {
	properties := map[string]any{}
	required := []any{}
	for _, field := range fields {
		if topLevel && translationFields[field.Name] {
			continue
		}
		properties[field.Name] = fieldSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func fieldSchema(field Field) map[string]any {
	schema := map[string]any{}
	if field.Label != "" {
		schema["title"] = field.Label
	}

	switch field.Type {
	case FieldNumber:
		schema["type"] = "number"
		if field.Min != nil {
			schema["minimum"] = *field.Min
		}
		if field.Max != nil {
			schema["maximum"] = *field.Max
		}
	case FieldCheckbox:
		schema["type"] = "boolean"
	case FieldColor:
		schema["type"] = "string"
		schema["pattern"] = hexColorPattern
	case FieldURL:
		schema["type"] = "string"
		schema["format"] = "uri-reference"
	case FieldSelect:
		schema["type"] = "string"
		if len(field.Options) > 0 {
			values := make([]any, len(field.Options))
			for i, option := range field.Options {
				values[i] = option.Value
			}
			schema["enum"] = values
		}
	case FieldRepeater:
		schema["type"] = "array"
		schema["items"] = objectSchema(field.Fields, false)
	default:
		schema["type"] = "string"
	}
	return schema
}
