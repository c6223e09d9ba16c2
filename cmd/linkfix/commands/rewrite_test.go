package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/linkfix/internal/config"
	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/linkfix/internal/rewrite"
	helpers "git.home.luguber.info/inful/linkfix/internal/testutil/testutils"
)

const malformed = "https://github.com/melonjs/melonJS/blob/master//Users/obiot/Documents/GitHub/melonJS/"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("linkfix"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestCLIParsing_DefaultCommand(t *testing.T) {
	cli, kctx := parseCLI(t, "site/docs", "--format", "json", "--decoding", "lossy", "-v")

	assert.Contains(t, kctx.Command(), "rewrite")
	assert.Equal(t, "site/docs", cli.Rewrite.Root)
	assert.Equal(t, "json", cli.Rewrite.Format)
	assert.Equal(t, "lossy", cli.Rewrite.Decoding)
	assert.True(t, cli.Verbose)
}

func TestCLIParsing_NoArgs(t *testing.T) {
	cli, _ := parseCLI(t)
	assert.Empty(t, cli.Rewrite.Root)
	assert.Equal(t, "text", cli.Rewrite.Format)
}

func TestCLIParsing_RejectsUnknownFormat(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"--format", "xml"})
	require.Error(t, err)
}

func TestResolveConfig_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfgPath := filepath.Join(dir, "linkfix.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: from-file\ndecoding: lossy\n"), 0o600))

	cmd := &RewriteCmd{Root: "from-flag", Decoding: "preserve", MetricsTextfile: "m.prom"}
	cfg, err := cmd.resolveConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Root)
	assert.Equal(t, config.DecodingPreserve, cfg.Decoding)
	assert.Equal(t, "m.prom", cfg.Metrics.Textfile)
}

func TestResolveConfig_InvalidDecodingFlag(t *testing.T) {
	chdir(t, t.TempDir())
	cmd := &RewriteCmd{Decoding: "latin1"}
	_, err := cmd.resolveConfig("")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestExecute_TextSummary(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		"api/index.html": `<a href="` + malformed + `src/index.js">index</a>`,
		"readme.txt":     "no links here",
	})
	cfg := config.Default()
	cfg.Root = root

	var out bytes.Buffer
	cmd := &RewriteCmd{Format: "text"}
	require.NoError(t, cmd.execute(context.Background(), cfg, discardLogger(), &out))

	assert.Contains(t, out.String(), "Files scanned: 2")
	assert.Contains(t, out.String(), "Files rewritten: 1")
	helpers.NewFileAssertions(t, root).
		AssertFileContent("api/index.html", `<a href="`+rewrite.CanonicalPrefix+`src/index.js">index</a>`)
}

func TestExecute_JSONAndMetrics(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		"a.html": `"` + malformed + `src/a.js" "` + malformed + `src/b.js"`,
	})
	metricsPath := filepath.Join(t.TempDir(), "linkfix.prom")
	cfg := config.Default()
	cfg.Root = root
	cfg.Metrics.Textfile = metricsPath

	var out bytes.Buffer
	cmd := &RewriteCmd{Format: "json"}
	require.NoError(t, cmd.execute(context.Background(), cfg, discardLogger(), &out))

	var summary rewrite.JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, 1, summary.FilesRewritten)
	assert.Equal(t, 2, summary.Replacements)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "linkfix_replacements_total 2")
	assert.Contains(t, string(data), `linkfix_files_total{result="rewritten"} 1`)
}

func TestExecute_MissingRootIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Root = filepath.Join(t.TempDir(), "missing")

	var out bytes.Buffer
	err := (&RewriteCmd{Format: "text"}).execute(context.Background(), cfg, discardLogger(), &out)
	require.Error(t, err)
	assert.Equal(t, 2, errors.NewCLIErrorAdapter(false, discardLogger()).ExitCodeFor(err))
	assert.Empty(t, out.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: config.LogLevelWarn, Format: config.LogFormatJSON}, false)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	verbose := NewLogger(&buf, config.LoggingConfig{Level: config.LogLevelError}, true)
	verbose.Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
