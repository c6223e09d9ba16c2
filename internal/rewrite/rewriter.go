package rewrite

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/linkfix/internal/config"
	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/linkfix/internal/logfields"
	"git.home.luguber.info/inful/linkfix/internal/metrics"
)

// Rewriter walks a directory tree and rewrites malformed links in place.
type Rewriter struct {
	root     string
	rule     Rule
	decoding config.DecodingMode
	decode   decoder
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithRule replaces the default rule.
func WithRule(rule Rule) Option {
	return func(rw *Rewriter) { rw.rule = rule }
}

// WithDecoding selects how file content is decoded.
func WithDecoding(mode config.DecodingMode) Option {
	return func(rw *Rewriter) { rw.decoding = mode }
}

func WithLogger(logger *slog.Logger) Option {
	return func(rw *Rewriter) {
		if logger != nil {
			rw.logger = logger
		}
	}
}

func WithRecorder(recorder metrics.Recorder) Option {
	return func(rw *Rewriter) {
		if recorder != nil {
			rw.recorder = recorder
		}
	}
}

// NewRewriter creates a rewriter for the tree at root.
func NewRewriter(root string, opts ...Option) *Rewriter {
	rw := &Rewriter{
		root:     root,
		rule:     DefaultRule(),
		decoding: config.DecodingPreserve,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(rw)
	}
	rw.decode = decoderFor(rw.decoding)
	return rw
}

// fileRecord is the transient state of one file.
type fileRecord struct {
	original     []byte
	transformed  []byte
	replacements int
}

func (r fileRecord) dirty() bool {
	return r.replacements > 0 && !bytes.Equal(r.original, r.transformed)
}

// Run walks the tree once. Per-entry failures are collected in the Result.
// The returned error is non-nil only when the root is unusable or ctx is
// done; in the latter case the partial Result is returned as well.
func (rw *Rewriter) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID: uuid.NewString(),
		Root:  rw.root,
	}
	logger := rw.logger.With(logfields.RunID(result.RunID), logfields.Root(rw.root))

	walkRoot, err := rw.resolveRoot()
	if err != nil {
		return nil, err
	}

	logger.Info("Starting link rewrite", logfields.Decoding(string(rw.decoding)))

	walkErr := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			rw.fail(logger, result, path, OpWalk, err)
			rw.recorder.IncWalkError()
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rw.visit(logger, result, path, d)
		return nil
	})

	result.Duration = time.Since(start)
	rw.recorder.ObserveRunDuration(result.Duration)

	logger.Info("Link rewrite finished",
		logfields.Scanned(result.FilesScanned),
		logfields.Rewritten(result.FilesRewritten()),
		logfields.Replacements(result.Replacements()),
		logfields.Skipped(result.FilesSkipped),
		logfields.Failures(len(result.Failures)),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))

	if walkErr != nil {
		if stderrors.Is(walkErr, context.Canceled) || stderrors.Is(walkErr, context.DeadlineExceeded) {
			return result, errors.WrapError(walkErr, errors.CategoryRuntime, "rewrite run canceled").
				Fatal().
				WithContext("files_scanned", result.FilesScanned).
				Build()
		}
		return result, errors.WrapError(walkErr, errors.CategoryTraversal, "directory walk aborted").Fatal().Build()
	}
	return result, nil
}

// resolveRoot validates the root and follows it when it is a symlink,
// because WalkDir does not descend into a symlinked root.
func (rw *Rewriter) resolveRoot() (string, error) {
	info, err := os.Stat(rw.root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.ValidationError("root directory not found").WithContext("root", rw.root).Build()
		}
		return "", errors.WrapError(err, errors.CategoryFileSystem, "cannot access root directory").
			Fatal().
			WithContext("root", rw.root).
			Build()
	}
	if !info.IsDir() {
		return "", errors.ValidationError("root is not a directory").WithContext("root", rw.root).Build()
	}

	linfo, err := os.Lstat(rw.root)
	if err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(rw.root)
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryFileSystem, "cannot resolve root symlink").
				Fatal().
				WithContext("root", rw.root).
				Build()
		}
		return resolved, nil
	}
	return rw.root, nil
}

// visit handles one non-directory entry.
func (rw *Rewriter) visit(logger *slog.Logger, result *Result, path string, d fs.DirEntry) {
	mode := d.Type()
	if mode&fs.ModeSymlink != 0 {
		// Symlinked files are processed; symlinked directories are not descended into.
		target, err := os.Stat(path)
		if err != nil {
			rw.fail(logger, result, path, OpStat, err)
			rw.recorder.IncFileResult(metrics.FileFailed)
			return
		}
		mode = target.Mode().Type()
	}
	if !mode.IsRegular() {
		logger.Debug("Skipping non-regular entry", logfields.Path(path))
		result.FilesSkipped++
		rw.recorder.IncFileResult(metrics.FileSkipped)
		return
	}

	result.FilesScanned++
	rec, op, err := rw.rewriteFile(path)
	if err != nil {
		rw.fail(logger, result, path, op, err)
		rw.recorder.IncFileResult(metrics.FileFailed)
		return
	}
	if !rec.dirty() {
		rw.recorder.IncFileResult(metrics.FileUnchanged)
		return
	}

	result.Changes = append(result.Changes, Change{Path: path, Replacements: rec.replacements})
	rw.recorder.IncFileResult(metrics.FileRewritten)
	rw.recorder.AddReplacements(rec.replacements)
	logger.Info("Rewrote links", logfields.Path(path), logfields.Replacements(rec.replacements))
}

// rewriteFile reads, transforms and conditionally writes one file.
func (rw *Rewriter) rewriteFile(path string) (fileRecord, Op, error) {
	// #nosec G304 -- paths come from walking the configured root
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileRecord{}, OpRead, err
	}

	text, err := rw.decode(raw)
	if err != nil {
		return fileRecord{}, OpDecode, err
	}
	rec := fileRecord{original: text}
	rec.transformed, rec.replacements = rw.rule.Apply(rec.original)
	if !rec.dirty() {
		return rec, "", nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return rec, OpStat, err
	}
	if err := os.WriteFile(path, rec.transformed, info.Mode().Perm()); err != nil {
		return rec, OpWrite, err
	}
	return rec, "", nil
}

func (rw *Rewriter) fail(logger *slog.Logger, result *Result, path string, op Op, err error) {
	result.Failures = append(result.Failures, Failure{Path: path, Op: op, Err: err})
	logger.Warn("Failed to process entry", logfields.Path(path), logfields.Op(string(op)), logfields.Error(err))
}
