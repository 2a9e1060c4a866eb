package scenario

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// Schema generates the JSON schema of the scenario file format, for editor
// integration and external validation.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "scenario", "scene", "video", "step":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&Scenario{})
}
