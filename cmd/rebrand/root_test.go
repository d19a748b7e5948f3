package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/rebrand/cmd/rebrand/opts"
	"github.com/walteh/rebrand/pkg/config"
	"github.com/walteh/rebrand/pkg/guard"
	"github.com/walteh/rebrand/pkg/naming"
	"github.com/walteh/rebrand/pkg/rename"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	stdout := &bytes.Buffer{}
	cmd := newRootCmd(&opts.RootOpts{Stdout: stdout}, &bytes.Buffer{})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stdout)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func readProject(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

var project = map[string]string{
	"README.md":          "# Beaker Stack\n\nRun `beaker-stack dev`.\n",
	"app/main.go":        "package beakerstack\n\nconst Name = \"BEAKER_STACK\"\n",
	"node_modules/x.js":  "beakerStack()\n",
	"assets/logo.png":    "beaker-stack",
	"supabase/seed.sql":  "insert into beaker_stack values (1);\n",
	"package-lock.json":  "{\"name\": \"beaker-stack\"}\n",
	"docs/untouched.txt": "nothing to see\n",
}

func TestRename(t *testing.T) {
	root := writeProject(t, project)

	out, err := execute(t, "--from", "Beaker Stack", "--to", "Acme App", "--root", root, "--no-supabase-check", "--verbose")
	require.NoError(t, err)

	assert.Equal(t, "# Acme App\n\nRun `acme-app dev`.\n", readProject(t, root, "README.md"))
	assert.Equal(t, "package acmeapp\n\nconst Name = \"ACME_APP\"\n", readProject(t, root, "app/main.go"))
	assert.Equal(t, "insert into acme_app values (1);\n", readProject(t, root, "supabase/seed.sql"))

	// ignored by default policy
	assert.Equal(t, project["node_modules/x.js"], readProject(t, root, "node_modules/x.js"))
	assert.Equal(t, project["assets/logo.png"], readProject(t, root, "assets/logo.png"))
	assert.Equal(t, project["package-lock.json"], readProject(t, root, "package-lock.json"))

	assert.Contains(t, out, "files scanned:  4")
	assert.Contains(t, out, "files changed: 3")
	assert.Contains(t, out, "replacements:   5")
	assert.Contains(t, out, "8 replacement pairs, single-pass mode")
	assert.Contains(t, out, "app/main.go")
	assert.Contains(t, out, `renamed "Beaker Stack" to "Acme App"`)
}

func TestRenameDryRun(t *testing.T) {
	root := writeProject(t, project)

	out, err := execute(t, "--from", "Beaker Stack", "--to", "Acme App", "--root", root, "--no-supabase-check", "--dry-run", "--verbose")
	require.NoError(t, err)

	for name, content := range project {
		assert.Equal(t, content, readProject(t, root, name), "dry-run must not write %s", name)
	}
	assert.Contains(t, out, "would edit")
	assert.Contains(t, out, "--- app/main.go")
	assert.Contains(t, out, "-package beakerstack")
	assert.Contains(t, out, "+package acmeapp")
	assert.Contains(t, out, "files would change: 3")
	assert.Contains(t, out, "dry run, no files were written")
}

func TestRenameSequentialMode(t *testing.T) {
	root := writeProject(t, map[string]string{"a.txt": "beaker"})

	_, err := execute(t, "--from", "beaker", "--to", "acme", "--root", root, "--no-supabase-check", "--mode", "sequential")
	require.NoError(t, err)
	assert.Equal(t, "acme", readProject(t, root, "a.txt"))
}

func TestRenameFromConfigFile(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.txt": "Beaker Stack\n",
		"b.txt": "beaker-stack\n",
		".rebrand.yaml": `from: Beaker Stack
to: Acme App
ignore_files:
  - b.txt
supabase:
  enabled: false
`,
	})

	_, err := execute(t, "--root", root)
	require.NoError(t, err)

	assert.Equal(t, "Acme App\n", readProject(t, root, "a.txt"))
	assert.Equal(t, "beaker-stack\n", readProject(t, root, "b.txt"), "ignore_files from the config file applies")
	assert.Contains(t, readProject(t, root, ".rebrand.yaml"), "from: Beaker Stack", "the config file itself is never rewritten")
}

func TestRenameFlagsOverrideConfig(t *testing.T) {
	root := writeProject(t, map[string]string{"a.txt": "Beaker\n"})
	cfgPath := filepath.Join(t.TempDir(), "rebrand.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"from": "Beaker", "to": "Wrong"}`), 0644))

	_, err := execute(t, "--config", cfgPath, "--to", "Acme", "--root", root, "--no-supabase-check")
	require.NoError(t, err)
	assert.Equal(t, "Acme\n", readProject(t, root, "a.txt"))
}

func TestRenameErrors(t *testing.T) {
	t.Run("missing_to", func(t *testing.T) {
		_, err := execute(t, "--from", "Beaker", "--root", t.TempDir(), "--no-supabase-check")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrMissingName)

		var verr *config.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "to", verr.Field)
	})

	t.Run("missing_from", func(t *testing.T) {
		_, err := execute(t, "--to", "Acme", "--root", t.TempDir(), "--no-supabase-check")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrMissingName)
	})

	t.Run("invalid_name", func(t *testing.T) {
		_, err := execute(t, "--from=--__", "--to", "Acme", "--root", t.TempDir(), "--no-supabase-check")
		require.Error(t, err)
		assert.ErrorIs(t, err, naming.ErrEmptyTokenSequence)
	})

	t.Run("unknown_mode", func(t *testing.T) {
		_, err := execute(t, "--from", "a", "--to", "b", "--root", t.TempDir(), "--no-supabase-check", "--mode", "regex")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown replace mode")
	})

	t.Run("strict_residual", func(t *testing.T) {
		root := writeProject(t, map[string]string{"a.txt": "Beaker\n"})
		_, err := execute(t, "--from", "Beaker", "--to", "Beaker Labs", "--root", root, "--no-supabase-check", "--strict")
		require.Error(t, err)
		assert.ErrorIs(t, err, rename.ErrResidualOccurrences)
	})

	t.Run("missing_root", func(t *testing.T) {
		_, err := execute(t, "--from", "a", "--to", "b", "--root", filepath.Join(t.TempDir(), "nope"), "--no-supabase-check")
		require.Error(t, err)
	})

	t.Run("unexpected_argument", func(t *testing.T) {
		_, err := execute(t, "extra")
		require.Error(t, err)
	})
}

func TestRenameGuard(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	root := writeProject(t, map[string]string{
		"a.txt":         "beaker\n",
		".rebrand.yaml": fmt.Sprintf("supabase:\n  host: 127.0.0.1\n  ports: [%d]\n", port),
	})

	_, err = execute(t, "--from", "beaker", "--to", "acme", "--root", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, guard.ErrBackendRunning)
	assert.Equal(t, "beaker\n", readProject(t, root, "a.txt"))

	_, err = execute(t, "--from", "beaker", "--to", "acme", "--root", root, "--no-supabase-check")
	require.NoError(t, err)
	assert.Equal(t, "acme\n", readProject(t, root, "a.txt"))
}

func TestIdenticalNames(t *testing.T) {
	root := writeProject(t, map[string]string{"a.txt": "beaker\n"})

	out, err := execute(t, "--from", "Beaker", "--to", "Beaker", "--root", root, "--no-supabase-check")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to do")
	assert.Equal(t, "beaker\n", readProject(t, root, "a.txt"))
}

func TestPlanCommand(t *testing.T) {
	out, err := execute(t, "plan", "--from", "Beaker Stack", "--to", "Acme App", "--root", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, out, "beaker-stack")
	assert.Contains(t, out, "acme-app")
	assert.Contains(t, out, "UPPER_SNAKE_CASE")
	assert.Contains(t, out, "8 PAIRS")

	_, err = execute(t, "plan", "--from", "Beaker Stack", "--root", t.TempDir())
	assert.ErrorIs(t, err, config.ErrMissingName)
}

func TestScanCommand(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.txt": "BeakerStack and beaker-stack\n",
		"b.txt": "clean\n",
	})

	out, err := execute(t, "scan", "--from", "Beaker Stack", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "2 occurrences in 1 files")
	assert.Equal(t, "BeakerStack and beaker-stack\n", readProject(t, root, "a.txt"))

	_, err = execute(t, "scan", "--from", "Beaker Stack", "--root", root, "--strict")
	assert.ErrorIs(t, err, rename.ErrResidualOccurrences)

	out, err = execute(t, "scan", "--from", "Unused Name", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, `no variants of "Unused Name" found`)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rebrand version info")
	assert.Contains(t, out, "Platform:")
}

func TestEnvironmentOverrides(t *testing.T) {
	root := writeProject(t, map[string]string{"a.txt": "beaker\n"})

	t.Setenv("REBRAND_FROM", "beaker")
	t.Setenv("REBRAND_TO", "wrong")
	t.Setenv("REBRAND_ROOT", root)
	t.Setenv("REBRAND_NO_SUPABASE_CHECK", "true")

	_, err := execute(t, "--to", "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme\n", readProject(t, root, "a.txt"), "flags win over the environment")
}

func TestLogFile(t *testing.T) {
	root := writeProject(t, map[string]string{"a.txt": "beaker\n"})
	logPath := filepath.Join(t.TempDir(), "rebrand.log")

	_, err := execute(t, "--from", "beaker", "--to", "acme", "--root", root, "--no-supabase-check", "--debug", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"starting rename"`)
	assert.Contains(t, string(data), `"file":"a.txt"`)
}

func TestStrictFlagOverridesConfig(t *testing.T) {
	files := map[string]string{
		"a.txt":         "Beaker\n",
		".rebrand.yaml": "strict: true\nsupabase:\n  enabled: false\n",
	}

	root := writeProject(t, files)
	_, err := execute(t, "--from", "Beaker", "--to", "Beaker Labs", "--root", root)
	assert.ErrorIs(t, err, rename.ErrResidualOccurrences, "strict comes from the config file")

	root = writeProject(t, files)
	_, err = execute(t, "--from", "Beaker", "--to", "Beaker Labs", "--root", root, "--strict=false")
	require.NoError(t, err)

	root = writeProject(t, files)
	t.Setenv("REBRAND_STRICT", "false")
	_, err = execute(t, "--from", "Beaker", "--to", "Beaker Labs", "--root", root)
	require.NoError(t, err)
}
