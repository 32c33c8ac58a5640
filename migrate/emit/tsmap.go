package emit

import (
	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// builtinTSTypes are the field type-names with a fixed TypeScript
// equivalent, per spec.md §4.5.
var builtinTSTypes = map[string]string{
	"string":  "string",
	"number":  "number",
	"boolean": "boolean",
	"date":    "Date",
}

// TSType maps a Field Descriptor's type-name to the TypeScript type the
// types artifact should reference: the built-in mapping, then the
// configured type-mapping, then a PascalCase external type reference.
func TSType(typeName string, cfg *config.Config) string {
	if mapped, ok := builtinTSTypes[typeName]; ok {
		return mapped
	}
	if cfg != nil {
		if mapped, ok := cfg.TypeMapping[typeName]; ok {
			return mapped
		}
	}
	return core.PascalName(typeName)
}
