package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hanpama/deepsearch/internal/search"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, in string, fn func() error) (string, string, error) {
	t.Helper()
	oldOut, oldErr, oldIn := stdout, stderr, stdin
	t.Cleanup(func() { stdout, stderr, stdin = oldOut, oldErr, oldIn })

	var bufOut, bufErr bytes.Buffer
	stdout, stderr, stdin = &bufOut, &bufErr, strings.NewReader(in)
	err := fn()
	return bufOut.String(), bufErr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestHelp(t *testing.T) {
	out, _, err := captureOutput(t, "", func() error {
		return run([]string{"help", "search"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "search FLAGS")
}

func TestUnknownCommand(t *testing.T) {
	_, errOut, err := captureOutput(t, "", func() error {
		return run([]string{"serve"})
	})
	require.EqualError(t, err, `unknown command "serve"`)
	require.Contains(t, errOut, "COMMANDS")
}

func TestSearchJSONFromStdin(t *testing.T) {
	doc := `["something somewhere", {"long": "somewhere", "string": 2, "somewhere": "around"}]`
	out, _, err := captureOutput(t, doc, func() error {
		return run([]string{"search", "-item", "somewhere", "-verbose", "2"})
	})
	require.NoError(t, err)
	require.JSONEq(t, `{
		"matched_paths": {"root[1]['somewhere']": "around"},
		"matched_values": {"root[0]": "something somewhere", "root[1]['long']": "somewhere"}
	}`, out)
}

func TestSearchYAMLWithConfig(t *testing.T) {
	input := writeFile(t, "doc.yaml", "servers:\n  - name: alpha\n    port: 8080\n  - name: beta\n    port: 9090\n")
	config := writeFile(t, "search.yaml", "verbose_level: 2\nexclude_paths:\n  - root['servers'][1]\n")
	out, _, err := captureOutput(t, "", func() error {
		return run([]string{"search", "-input", input, "-config", config, "-item", "8080", "-item.type", "int"})
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"matched_values": {"root['servers'][0]['port']": 8080}}`, out)
}

func TestSearchYAMLIntegerKeys(t *testing.T) {
	input := writeFile(t, "doc.yaml", "ports:\n  80: http\n  443: https\n")
	out, _, err := captureOutput(t, "", func() error {
		return run([]string{"search", "-input", input, "-item", "ports", "-verbose", "2"})
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"matched_paths": {
		"root['ports']": {"80": "http", "443": "https"},
		"root['ports']['80']": "http",
		"root['ports']['443']": "https"
	}}`, out)
}

func TestStringKeys(t *testing.T) {
	got := stringKeys(map[string]any{
		"a": []any{map[any]any{1: "one", true: map[any]any{2.5: "x"}}},
	})
	want := map[string]any{
		"a": []any{map[string]any{"1": "one", "true": map[string]any{"2.5": "x"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stringKeys mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchExcludeType(t *testing.T) {
	input := writeFile(t, "doc.json", `{"a": "needle", "b": ["needle"]}`)
	out, _, err := captureOutput(t, "", func() error {
		return run([]string{"search", "-input", input, "-item", "needle", "-exclude-type", "[]interface {}"})
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"matched_values": ["root['a']"]}`, out)
}

func TestSearchUnknownConfigKey(t *testing.T) {
	config := writeFile(t, "search.yaml", "verbose_level: 2\ncase_sensitive: true\n")
	_, _, err := captureOutput(t, "[]", func() error {
		return run([]string{"search", "-config", config, "-item", "x"})
	})
	var cfgErr *search.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, []string{"case_sensitive"}, cfgErr.Invalid)
}

func TestSearchRequiresItem(t *testing.T) {
	_, _, err := captureOutput(t, "[]", func() error {
		return run([]string{"search"})
	})
	require.EqualError(t, err, "-item is required")
}

func TestSelftest(t *testing.T) {
	out, _, err := captureOutput(t, "", func() error {
		return run([]string{"selftest"})
	})
	require.NoError(t, err)
	require.Equal(t, len(examples()), strings.Count(out, "ok   "))
}
