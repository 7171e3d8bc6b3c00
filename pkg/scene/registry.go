package scene

import (
	"fmt"
	"sort"
)

// builtinScenes maps scene names to their constructors
var builtinScenes = map[string]func() *Scene{
	"default": NewDefaultScene,
	"mirrors": NewMirrorsScene,
}

// Names returns the names of the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds a fresh copy of the named built-in scene
func Create(name string) (*Scene, error) {
	create, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return create(), nil
}
