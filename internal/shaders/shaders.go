// Package shaders compiles GLSL sources to SPIR-V and wraps the result in C
// headers that embed the code as a uint32_t array.
package shaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// stages are the shader source extensions that get compiled.
var stages = map[string]bool{
	".vert": true,
	".frag": true,
	".comp": true,
}

// Shader is a single GLSL source file.
type Shader struct {
	Source string
	// Name is the base name joined with the stage, e.g. "ui_vert" for ui.vert.
	Name string
}

// HeaderFile returns the file name of the generated header.
func (s Shader) HeaderFile() string {
	return "SPIRV_" + s.Name + ".bin.h"
}

// ArrayName returns the C identifier of the embedded array.
func (s Shader) ArrayName() string {
	return "gSPIRV_" + s.Name
}

// FromPath returns the shader for a source path, or false when the extension
// is not a compiled stage.
func FromPath(path string) (Shader, bool) {
	ext := filepath.Ext(path)
	if !stages[ext] {
		return Shader{}, false
	}

	base := strings.TrimSuffix(filepath.Base(path), ext)
	if base == "" {
		return Shader{}, false
	}

	return Shader{
		Source: path,
		Name:   base + "_" + strings.TrimPrefix(ext, "."),
	}, true
}

// Discover lists the shader sources directly inside dir, sorted by path.
func Discover(dir string) ([]Shader, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader directory: %w", err)
	}

	var found []Shader

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if s, ok := FromPath(filepath.Join(dir, entry.Name())); ok {
			found = append(found, s)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Source < found[j].Source
	})

	return found, nil
}

// WrapHeader places compiler output in C array form into a header defining arrayName.
func WrapHeader(arrayName string, array []byte) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "static const uint32_t %s[] = \n", arrayName)
	buf.Write(bytes.TrimRight(array, "\r\n"))
	buf.WriteString("\n;")

	return buf.Bytes()
}
