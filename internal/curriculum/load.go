package curriculum

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// BuiltinPrefix marks a curriculum reference that names an embedded curriculum.
const BuiltinPrefix = "builtin:"

//go:embed data/*.yaml
var builtinFS embed.FS

// Parse decodes a YAML curriculum and validates it. Thresholds left out of
// the document keep their defaults.
func Parse(data []byte) (*Curriculum, error) {
	c := &Curriculum{Thresholds: DefaultThresholds()}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses a curriculum file.
func Load(filename string) (*Curriculum, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// Builtin returns an embedded curriculum by name, e.g. "fractions".
func Builtin(name string) (*Curriculum, error) {
	data, err := builtinFS.ReadFile(path.Join("data", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown builtin curriculum %q (available: %s)",
			name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse(data)
}

// BuiltinNames lists the embedded curricula.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(builtinFS, "data")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// Resolve loads a curriculum from a reference: "builtin:<name>" for an
// embedded curriculum, anything else is a file path.
func Resolve(ref string) (*Curriculum, error) {
	if name, ok := strings.CutPrefix(ref, BuiltinPrefix); ok {
		return Builtin(name)
	}
	return Load(ref)
}
