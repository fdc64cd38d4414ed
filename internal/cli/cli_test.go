package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/linkresolve/pkg/models"
)

// runCLI executes the command tree with args and returns what it wrote to stdout
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CI", "true")

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--quiet"))
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		explain, linksUnique, linksSameHost, linksUnresolved = false, false, false, false
		linksBase, linksFormat = "", "text"
		exportFormat, exportOutput, exportNoProgress = "csv", "", false
	})

	err := execute(context.Background())
	return stdout.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := runCLI(t, "", "resolve", "https://www.cnr.it/", "amministrazione-trasparente")
	require.NoError(t, err)
	assert.Equal(t, "https://www.cnr.it/amministrazione-trasparente\n", out)

	_, err = runCLI(t, "", "resolve", "relative", "x")
	assert.ErrorIs(t, err, errNoDestination)
}

func TestResolveCommand_Explain(t *testing.T) {
	out, err := runCLI(t, "", "resolve", "https://example.org", "javascript:void(0);", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "pseudo-protocol")
	assert.Contains(t, out, "https://example.org")
}

func TestSanitizeCommand(t *testing.T) {
	out, err := runCLI(t, "", "sanitize", "https&#x3a;&#x2f;&#x2f;example&#x2e;org", "http://example.org/dir&#92;/page")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org\nhttp://example.org/dir/page\n", out)
}

const page = `<html><head><title>t</title></head><body>
<a href="amministrazione-trasparente">AT</a>
<a href="javascript:void(0);">menu</a>
<a href="amministrazione-trasparente">AT again</a>
<a href="https://other.example.com/x">other</a>
<img src="/logo.png">
</body></html>`

func TestLinksCommand(t *testing.T) {
	out, err := runCLI(t, page, "links", "-", "--base", "https://www.cnr.it/", "--format", "json", "--unique", "--same-host")
	require.NoError(t, err)

	var found []models.Link
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	dests := make([]string, len(found))
	for i, l := range found {
		dests[i] = l.Destination
	}
	assert.Equal(t, []string{
		"https://www.cnr.it/amministrazione-trasparente",
		"https://www.cnr.it/",
		"https://www.cnr.it/logo.png",
	}, dests)
}

func TestLinksCommand_Markdown(t *testing.T) {
	out, err := runCLI(t, page, "links", "-", "--base", "https://www.cnr.it/", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "[AT](https://www.cnr.it/amministrazione-trasparente)")
	assert.Contains(t, out, "![](https://www.cnr.it/logo.png)")
}

func TestLinksCommand_InvalidBase(t *testing.T) {
	_, err := runCLI(t, page, "links", "-", "--base", "ftp://example.org")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	input := `[{"id":1,"realUrl":"https://www.cnr.it/","url":"amministrazione-trasparente","company":{"codiceIpa":"cnr"}},
	{"id":2,"realUrl":"relative","url":"x"}]`

	dir := t.TempDir()
	in := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(in, []byte(input), 0644))
	outFile := filepath.Join(dir, "results.json.out")

	_, err := runCLI(t, "", "export", in, "--format", "json", "--output", outFile, "--concurrency", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var results []models.Result
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 2)
	assert.Equal(t, "https://www.cnr.it/amministrazione-trasparente", results[0].DestinationURL)
	assert.Empty(t, results[1].DestinationURL)
}

func TestExportCommand_CSVToStdout(t *testing.T) {
	out, err := runCLI(t, `[{"id":7,"realUrl":"https://example.org","url":"#"}]`, "export", "-", "--format", "csv-terse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "IPA-CODICE,"), out)
	assert.Contains(t, out, ",7,")
}

func TestTokenCommands(t *testing.T) {
	out, err := runCLI(t, "", "token", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No token stored")

	// each run gets a fresh HOME, so set and show must share one
	home := t.TempDir()
	run := func(stdin string, args ...string) string {
		t.Helper()
		var stdout bytes.Buffer
		t.Setenv("HOME", home)
		t.Setenv("CI", "true")
		rootCmd.SetIn(strings.NewReader(stdin))
		rootCmd.SetOut(&stdout)
		rootCmd.SetArgs(args)
		require.NoError(t, execute(context.Background()))
		return stdout.String()
	}
	t.Cleanup(func() { rootCmd.SetIn(nil); rootCmd.SetOut(nil) })

	assert.Contains(t, run("s3cret-token\n", "token", "set", "--quiet"), "Token saved to file")
	assert.Contains(t, run("", "token", "show", "--quiet"), "********oken")
	assert.Contains(t, run("", "token", "delete", "--quiet"), "Token deleted")
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three\n- item\n\nsecond paragraph", 7)
	assert.Equal(t, "one two\nthree\n- item\n\nsecond\nparagraph", got)
}
