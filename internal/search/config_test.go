package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"tagpoint/internal/curve"
)

func TestLoadConfigDefaults(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)

	d := DefaultConfig()
	require.Equal(t, &d, cfg)

	x, err := cfg.StartX()
	require.NoError(t, err)
	require.Equal(t, tagStartHex, x.Text(16))
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("TAGPOINT_MAX_ITERATIONS", "5")
	t.Setenv("TAGPOINT_BACKEND", "field")
	t.Setenv("TAGPOINT_START", "0x10")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, uint64(5), cfg.MaxIterations)
	require.Equal(t, BackendField, cfg.Backend)

	x, err := cfg.StartX()
	require.NoError(t, err)
	require.Equal(t, int64(16), x.Int64())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagpoint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phrase: hello\nformat: json\npubkey: true\n"), 0o600))

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "hello", cfg.Phrase)
	require.Equal(t, FormatJSON, cfg.Format)
	require.True(t, cfg.PubKey)

	_, err = NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := []struct {
		key, val string
		want     error
	}{
		{KeyBackend, "gpu", ErrUnknownBackend},
		{KeyFormat, "xml", ErrUnknownFormat},
		{KeyStart, "-3", curve.ErrInvalidArgument},
		{KeyPhrase, "", curve.ErrInvalidArgument},
		{KeyMaxIterations, "ten", curve.ErrInvalidArgument},
		{KeyMaxIterations, "-5", curve.ErrInvalidArgument},
	}
	for _, c := range cases {
		v, err := NewViper("")
		require.NoError(t, err)
		v.Set(c.key, c.val)
		_, err = LoadConfig(v)
		require.Equal(t, c.want, errors.Cause(err), "%s=%q", c.key, c.val)
	}
}

func TestLoadConfigBadCapFromEnv(t *testing.T) {
	t.Setenv("TAGPOINT_MAX_ITERATIONS", "ten")
	v, err := NewViper("")
	require.NoError(t, err)
	_, err = LoadConfig(v)
	require.Equal(t, curve.ErrInvalidArgument, errors.Cause(err))
}

func TestLoadConfigBadCapFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagpoint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max-iterations: -5\n"), 0o600))
	v, err := NewViper(path)
	require.NoError(t, err)
	_, err = LoadConfig(v)
	require.Equal(t, curve.ErrInvalidArgument, errors.Cause(err))
}

func TestNewRootFinder(t *testing.T) {
	rf, err := NewRootFinder(BackendBig)
	require.NoError(t, err)
	require.Equal(t, "big", rf.Name())

	rf, err = NewRootFinder(BackendField)
	require.NoError(t, err)
	require.Equal(t, "field", rf.Name())

	_, err = NewRootFinder("gpu")
	require.Equal(t, ErrUnknownBackend, errors.Cause(err))
}
