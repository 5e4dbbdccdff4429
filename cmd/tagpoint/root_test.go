package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"tagpoint/internal/curve"
	"tagpoint/internal/search"
)

const (
	tagX = "0x5472757374206973205269736b00000000000000000000000000000000000001"
	tagY = "0x55d5f285ed79d0c6f61c30efc9d219165828059a601250c8ece180014de481a"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if args == nil {
		args = []string{} // nil would fall back to os.Args
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootDefault(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	require.Equal(t, "Found it!\nx is "+tagX+"\ny is "+tagY+"\n", out)
}

func TestRootFieldBackendMatches(t *testing.T) {
	out, err := execute(t, "--backend", "field", "--log-level", "debug")
	require.NoError(t, err)
	require.Equal(t, "Found it!\nx is "+tagX+"\ny is "+tagY+"\n", out)
}

func TestRootJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "--pubkey")
	require.NoError(t, err)

	var res struct {
		X          string `json:"x"`
		Y          string `json:"y"`
		Iterations uint64 `json:"iterations"`
		Compressed string `json:"compressedPubKey"`
		Extended   string `json:"extendedPubKey"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, tagX, res.X)
	require.Equal(t, tagY, res.Y)
	require.Equal(t, uint64(2), res.Iterations)
	require.Equal(t, "02"+strings.TrimPrefix(tagX, "0x"), res.Compressed)
	require.Equal(t, "xpub661MyMwAqRbcGjdM12BNpB3acEaRU6ZJGcDNBCG6vzh1BoVvUerr2fw7E3KTABB8mVDU3LjvPPrS2pcJi47Jo5w6CeYHGc9M31uyNuAZCoP", res.Extended)
}

func TestRootErrors(t *testing.T) {
	_, err := execute(t, "--start", "0", "--max-iterations", "1")
	require.Equal(t, search.ErrExhaustedSearchSpace, errors.Cause(err))

	_, err = execute(t, "--phrase", strings.Repeat("x", 40))
	require.Equal(t, curve.ErrInvalidArgument, errors.Cause(err))

	_, err = execute(t, "--backend", "gpu")
	require.Equal(t, search.ErrUnknownBackend, errors.Cause(err))

	_, err = execute(t, "--log-level", "loud")
	require.Error(t, err)

	_, err = execute(t, "extra")
	require.Error(t, err)
}

func TestRootEnvOverride(t *testing.T) {
	t.Setenv("TAGPOINT_START", "9")
	out, err := execute(t)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Found it!\nx is 0xc\n"), out)
}

func TestRootRejectsBadCapFromEnv(t *testing.T) {
	t.Setenv("TAGPOINT_MAX_ITERATIONS", "ten")
	t.Setenv("TAGPOINT_START", "0")
	out, err := execute(t)
	require.Equal(t, curve.ErrInvalidArgument, errors.Cause(err))
	require.Empty(t, out)
}

func TestBenchCmdUsesEnvStart(t *testing.T) {
	t.Setenv("TAGPOINT_START", "1")
	out, err := execute(t, "bench", "--count", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "1", strings.Fields(lines[1])[2]) // x=1 is a residue, the phrase start is not
}

func TestBenchCmdUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagpoint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start: 9\n"), 0o600))
	out, err := execute(t, "bench", "--config", path, "--count", "4")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "1", strings.Fields(lines[1])[2]) // 9 10 11 12: only 12
}

func TestBenchCmd(t *testing.T) {
	out, err := execute(t, "bench", "--count", "17", "--start", "0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "big")
	require.Contains(t, lines[2], "field")
	require.Equal(t, "10", strings.Fields(lines[1])[2])
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, Version+"\n", out)
}
