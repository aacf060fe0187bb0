package shaders

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeArray = "{0x07230203,0x00010000,\n0x000d000a,0x00000049}\n"

// writeFakeCompiler creates a glslc stand-in that writes a fixed array to the
// -o path and fails for sources whose name contains "bad". Tests using it stay
// serial: forking while another test holds the script open for writing fails
// with ETXTBSY.
func writeFakeCompiler(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	path := filepath.Join(t.TempDir(), "glslc")
	script := `#!/bin/sh
out=""
src=""
while [ $# -gt 0 ]; do
	case "$1" in
		-o) out="$2"; shift 2 ;;
		-*) shift ;;
		*) src="$1"; shift ;;
	esac
done
case "$src" in
	*bad*) echo "$src:3: error: 'foo' : undeclared identifier" >&2; echo "1 error generated." >&2; exit 1 ;;
esac
printf '` + fakeArray + `' > "$out"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700)) //nolint:gosec // test helper must be executable

	return path
}

func writeSources(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("#version 460\nvoid main() {}\n"), 0o600))
	}

	return dir
}

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	return log
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		name   string
		header string
		array  string
		ok     bool
	}{
		{"src/ui.vert", "ui_vert", "SPIRV_ui_vert.bin.h", "gSPIRV_ui_vert", true},
		{"src/ui_16bpp.frag", "ui_16bpp_frag", "SPIRV_ui_16bpp_frag.bin.h", "gSPIRV_ui_16bpp_frag", true},
		{"msaa_resolve.comp", "msaa_resolve_comp", "SPIRV_msaa_resolve_comp.bin.h", "gSPIRV_msaa_resolve_comp", true},
		{"ShaderCommon_Frag.h", "", "", "", false},
		{"README.md", "", "", "", false},
		{".vert", "", "", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			s, ok := FromPath(tt.path)
			require.Equal(t, tt.ok, ok)

			if !ok {
				return
			}

			assert.Equal(t, tt.path, s.Source)
			assert.Equal(t, tt.name, s.Name)
			assert.Equal(t, tt.header, s.HeaderFile())
			assert.Equal(t, tt.array, s.ArrayName())
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := writeSources(t, "ui.vert", "colored.frag", "ShaderCommon_Frag.h", "ui.frag", "blit.comp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.vert"), 0o700))

	found, err := Discover(dir)
	require.NoError(t, err)

	var names []string
	for _, s := range found {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"blit_comp", "colored_frag", "ui_frag", "ui_vert"}, names)
}

func TestDiscover_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestWrapHeader(t *testing.T) {
	t.Parallel()

	got := WrapHeader("gSPIRV_ui_vert", []byte(fakeArray))
	want := "static const uint32_t gSPIRV_ui_vert[] = \n" +
		"{0x07230203,0x00010000,\n0x000d000a,0x00000049}\n;"

	assert.Equal(t, want, string(got))
}

func TestCompiler_WritesHeaders(t *testing.T) {
	compiler := writeFakeCompiler(t)
	src := writeSources(t, "ui.vert", "ui.frag", "sky.frag")
	out := filepath.Join(t.TempDir(), "compiled")

	shaders, err := Discover(src)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		done []string
	)

	c := NewCompiler(newTestLogger(), Options{Compiler: compiler, OutDir: out, Concurrency: 2})
	err = c.Compile(context.Background(), shaders, func(s Shader, err error) {
		mu.Lock()
		defer mu.Unlock()

		assert.NoError(t, err)
		done = append(done, s.Name)
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sky_frag", "ui_frag", "ui_vert"}, done)

	data, err := os.ReadFile(filepath.Join(out, "SPIRV_ui_vert.bin.h"))
	require.NoError(t, err)
	assert.Equal(t, string(WrapHeader("gSPIRV_ui_vert", []byte(fakeArray))), string(data))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestCompiler_FailureKeepsOthers(t *testing.T) {
	compiler := writeFakeCompiler(t)
	src := writeSources(t, "ui.vert", "bad.frag")
	out := t.TempDir()

	shaders, err := Discover(src)
	require.NoError(t, err)

	err = NewCompiler(newTestLogger(), Options{Compiler: compiler, OutDir: out}).Compile(context.Background(), shaders, nil)
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.Contains(t, err.Error(), "bad.frag")
	assert.Contains(t, err.Error(), "undeclared identifier")

	assert.FileExists(t, filepath.Join(out, "SPIRV_ui_vert.bin.h"))
	assert.NoFileExists(t, filepath.Join(out, "SPIRV_bad_frag.bin.h"))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files may remain")
}

func TestCompiler_MissingCompiler(t *testing.T) {
	src := writeSources(t, "ui.vert")

	shaders, err := Discover(src)
	require.NoError(t, err)

	out := t.TempDir()
	c := NewCompiler(newTestLogger(), Options{Compiler: filepath.Join(t.TempDir(), "glslc"), OutDir: out})

	err = c.Compile(context.Background(), shaders, nil)
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.NoFileExists(t, filepath.Join(out, "SPIRV_ui_vert.bin.h"))
}
