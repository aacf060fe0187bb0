package testset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_CaseCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cases     int
		discImage string
	}{
		{name: "doom_ntsc", cases: 61},
		{name: "doom_pal", cases: 61, discImage: "discs/Doom (PAL).cue"},
		{name: "finaldoom_ntsc", cases: 32, discImage: "discs/Final Doom (NTSC).cue"},
		{name: "finaldoom_pal", cases: 32, discImage: "discs/Final Doom (PAL).cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := Builtin().Lookup(tt.name)
			require.True(t, ok)
			assert.Len(t, set.Cases, tt.cases)
			assert.Equal(t, tt.discImage, set.DiscImage)
		})
	}
}

func TestBuiltin_CaseLayout(t *testing.T) {
	t.Parallel()

	set, ok := Builtin().Lookup("doom_ntsc")
	require.True(t, ok)

	assert.Equal(t, TestCase{Recording: "doom_ntsc/MAP01.LMP", Expected: "doom_ntsc/MAP01.json"}, set.Cases[0])
	assert.Equal(t, TestCase{Recording: "doom_ntsc/MAP37.LMP", Expected: "doom_ntsc/MAP37.json"}, set.Cases[36])
	assert.Equal(t, TestCase{Recording: "doom_ntsc/DEMO2.LMP", Expected: "doom_ntsc/DEMO2.json"}, set.Cases[60])
}

func TestCatalog_Resolve(t *testing.T) {
	t.Parallel()

	catalog := Builtin()

	t.Run("single set", func(t *testing.T) {
		sets, err := catalog.Resolve("finaldoom_pal")
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.Equal(t, "finaldoom_pal", sets[0].Name)
	})

	t.Run("all sets without duplicates", func(t *testing.T) {
		sets, err := catalog.Resolve(SelectorAll)
		require.NoError(t, err)
		require.Len(t, sets, len(catalog.Names()))

		seen := make(map[string]bool)
		for _, s := range sets {
			for _, c := range s.Cases {
				assert.False(t, seen[c.Recording], "duplicate case %s", c.Recording)
				seen[c.Recording] = true
			}
		}

		assert.Equal(t, 61+61+32+32, CaseCount(sets))
		assert.Len(t, seen, CaseCount(sets))
	})

	t.Run("unknown selector", func(t *testing.T) {
		sets, err := catalog.Resolve("doom_jp")
		require.ErrorIs(t, err, ErrUnknownTestSet)
		assert.Nil(t, sets)
	})
}

func TestCatalog_LookupReturnsCopy(t *testing.T) {
	t.Parallel()

	first, ok := Builtin().Lookup("doom_ntsc")
	require.True(t, ok)

	first.Cases[0].Recording = "tampered.LMP"

	second, ok := Builtin().Lookup("doom_ntsc")
	require.True(t, ok)
	assert.Equal(t, "doom_ntsc/MAP01.LMP", second.Cases[0].Recording)
}

func TestNewCatalog_Validation(t *testing.T) {
	t.Parallel()

	valid := []TestCase{{Recording: "a.LMP", Expected: "a.json"}}

	tests := []struct {
		name        string
		sets        []TestSet
		expectedErr error
	}{
		{name: "missing name", sets: []TestSet{{Cases: valid}}, expectedErr: errNameRequired},
		{name: "reserved name", sets: []TestSet{{Name: SelectorAll, Cases: valid}}, expectedErr: errReservedName},
		{name: "no cases", sets: []TestSet{{Name: "x"}}, expectedErr: errNoCases},
		{
			name:        "missing recording",
			sets:        []TestSet{{Name: "x", Cases: []TestCase{{Expected: "a.json"}}}},
			expectedErr: errRecordingRequired,
		},
		{
			name:        "missing expected",
			sets:        []TestSet{{Name: "x", Cases: []TestCase{{Recording: "a.LMP"}}}},
			expectedErr: errExpectedRequired,
		},
		{
			name:        "duplicate",
			sets:        []TestSet{{Name: "x", Cases: valid}, {Name: "x", Cases: valid}},
			expectedErr: errDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.sets...)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	log := logrus.New()

	t.Run("empty path keeps base", func(t *testing.T) {
		catalog, err := LoadCatalog(log, Builtin(), "")
		require.NoError(t, err)
		assert.Same(t, Builtin(), catalog)
	})

	t.Run("adds and replaces sets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sets.yaml")
		content := `test_sets:
  - name: custom
    disc_image: discs/custom.cue
    cases:
      - recording: custom/MAP01.LMP
        expected: custom/MAP01.json
  - name: doom_ntsc
    replace: true
    cases:
      - recording: doom_ntsc/MAP01.LMP
        expected: doom_ntsc/MAP01.json
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		catalog, err := LoadCatalog(log, Builtin(), path)
		require.NoError(t, err)

		custom, ok := catalog.Lookup("custom")
		require.True(t, ok)
		assert.Equal(t, "discs/custom.cue", custom.DiscImage)
		assert.Len(t, custom.Cases, 1)

		doom, ok := catalog.Lookup("doom_ntsc")
		require.True(t, ok)
		assert.Len(t, doom.Cases, 1)

		// Base catalog is untouched.
		original, ok := Builtin().Lookup("doom_ntsc")
		require.True(t, ok)
		assert.Len(t, original.Cases, 61)

		assert.Equal(t, []string{"doom_ntsc", "doom_pal", "finaldoom_ntsc", "finaldoom_pal", "custom"}, catalog.Names())
	})

	t.Run("duplicate within manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sets.yaml")
		content := `test_sets:
  - name: mine
    cases:
      - recording: a.LMP
        expected: a.json
  - name: mine
    replace: true
    cases:
      - recording: b.LMP
        expected: b.json
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := LoadCatalog(log, Builtin(), path)
		require.ErrorIs(t, err, errDuplicateName)
		assert.Contains(t, err.Error(), "mine")
	})

	t.Run("refuses silent override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sets.yaml")
		content := `test_sets:
  - name: doom_pal
    cases:
      - recording: doom_pal/MAP01.LMP
        expected: doom_pal/MAP01.json
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := LoadCatalog(log, Builtin(), path)
		require.ErrorIs(t, err, errDuplicateName)
	})

	t.Run("invalid set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sets.yaml")
		content := `test_sets:
  - name: empty
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := LoadCatalog(log, Builtin(), path)
		require.ErrorIs(t, err, errNoCases)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(log, Builtin(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("demos", "doom_ntsc", "MAP01.LMP"), ResolvePath("demos", "doom_ntsc/MAP01.LMP"))
	assert.Equal(t, "/abs/disc.cue", ResolvePath("demos", "/abs/disc.cue"))
	assert.Empty(t, ResolvePath("demos", ""))
}
