// Package host keeps preview panels for files on disk: it reads and sniffs
// files, calls the renderer, writes the previews and tells the user when a
// file cannot be previewed.
package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/gabriel-vasile/mimetype"

	"github.com/flanksource/svgpreview/api"
)

const (
	MessageNotPreviewable = "Active file is not an SVG image or SVG font"
	MessageEmpty          = "SVG font has no glyphs with path data"
)

// MessageFor is the message shown instead of a preview.
func MessageFor(kind api.ResultKind) string {
	switch kind {
	case api.ResultEmpty:
		return MessageEmpty
	case api.ResultNotPreviewable:
		return MessageNotPreviewable
	}
	return ""
}

// PreviewSuffix is appended to a file's base name to name its preview.
const PreviewSuffix = ".preview.html"

// RenderFunc is the pure renderer the previewer drives.
type RenderFunc func(api.SourceDocument, api.RenderConfiguration) (api.RenderResult, error)

// Notification is a user facing message about one file.
type Notification struct {
	File    string
	Result  api.RenderResult
	Message string
}

// Panel is the preview of one file.
type Panel struct {
	FileName   string
	OutputPath string
	Result     api.RenderResult
	Updated    time.Time
	Renders    int
}

// Previewer manages panels keyed by file name.
type Previewer struct {
	render    RenderFunc
	cfg       api.RenderConfiguration
	outputDir string
	notify    func(Notification)

	mu     sync.Mutex
	panels map[string]*Panel
}

type Option func(*Previewer)

// WithOutputDir writes every document result to <dir>/<name>.preview.html.
// Without it panels only keep the markup in memory.
func WithOutputDir(dir string) Option {
	return func(p *Previewer) {
		p.outputDir = dir
	}
}

// WithNotifier replaces the default notifier, which logs.
func WithNotifier(fn func(Notification)) Option {
	return func(p *Previewer) {
		p.notify = fn
	}
}

func NewPreviewer(render RenderFunc, cfg api.RenderConfiguration, opts ...Option) *Previewer {
	p := &Previewer{
		render: render,
		cfg:    cfg.Normalize(),
		notify: logNotification,
		panels: map[string]*Panel{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func logNotification(n Notification) {
	if n.Result.IsDocument() {
		logger.Infof("%s: %s", n.File, n.Message)
		return
	}
	logger.Warnf("%s: %s", n.File, n.Message)
}

// ReadSource reads a file and sniffs its declared content type.
func ReadSource(path string) (api.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.SourceDocument{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return api.SourceDocument{
		Text:         string(data),
		DeclaredType: DetectDeclaredType(data),
		FileName:     path,
	}, nil
}

// DetectDeclaredType returns the sniffed MIME type without parameters,
// e.g. "image/svg+xml" or "text/xml".
func DetectDeclaredType(data []byte) string {
	mtype, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(mtype)
}

// Open reads a file from disk and shows or refreshes its panel.
func (p *Previewer) Open(path string) (*Panel, error) {
	doc, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return p.Update(doc)
}

// Update renders a document into its panel. Parse failures are reported as
// not previewable; only I/O errors are returned. Rendering runs outside the
// panel lock so different files can be updated concurrently.
func (p *Previewer) Update(doc api.SourceDocument) (*Panel, error) {
	p.mu.Lock()
	cfg := p.cfg
	p.mu.Unlock()

	result, err := p.render(doc, cfg)

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apply(doc.FileName, result, err)
}

func (p *Previewer) apply(fileName string, result api.RenderResult, renderErr error) (*Panel, error) {
	if renderErr != nil {
		logger.Debugf("%s: %v", fileName, renderErr)
		result = api.RenderResult{Kind: api.ResultNotPreviewable}
	}

	panel, ok := p.panels[fileName]
	if !ok {
		panel = &Panel{FileName: fileName}
		p.panels[fileName] = panel
	}

	changed := !ok || panel.Result.Kind != result.Kind || panel.Result.Markup != result.Markup
	panel.Result = result
	panel.Updated = time.Now()
	panel.Renders++

	switch result.Kind {
	case api.ResultDocument:
		if p.outputDir != "" && changed {
			if err := p.write(panel); err != nil {
				return snapshot(panel), err
			}
		}
		if changed {
			p.notify(Notification{File: fileName, Result: result, Message: "preview updated"})
		}
	default:
		p.removeOutput(panel)
		p.notify(Notification{File: fileName, Result: result, Message: MessageFor(result.Kind)})
	}
	return snapshot(panel), nil
}

func snapshot(panel *Panel) *Panel {
	cp := *panel
	return &cp
}

func (p *Previewer) write(panel *Panel) error {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	panel.OutputPath = OutputPath(p.outputDir, panel.FileName)
	if err := os.WriteFile(panel.OutputPath, []byte(panel.Result.Markup), 0o644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	logger.Debugf("Wrote %s", panel.OutputPath)
	return nil
}

func (p *Previewer) removeOutput(panel *Panel) {
	if panel.OutputPath == "" {
		return
	}
	if err := os.Remove(panel.OutputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("failed to remove stale preview %s: %v", panel.OutputPath, err)
	}
	panel.OutputPath = ""
}

// OutputPath is where the preview of file is written inside dir.
func OutputPath(dir, file string) string {
	return filepath.Join(dir, filepath.Base(file)+PreviewSuffix)
}

// Panel returns the panel of a file, if open.
func (p *Previewer) Panel(fileName string) (Panel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	panel, ok := p.panels[fileName]
	if !ok {
		return Panel{}, false
	}
	return *panel, true
}

// Panels lists the open panels by file name.
func (p *Previewer) Panels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.panels))
	for name := range p.panels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispose closes the panel of a file and removes its preview.
func (p *Previewer) Dispose(fileName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if panel, ok := p.panels[fileName]; ok {
		p.removeOutput(panel)
		delete(p.panels, fileName)
		logger.Debugf("Disposed preview of %s", fileName)
	}
}

// SetConfiguration swaps the render configuration and re-renders every
// open panel from disk.
func (p *Previewer) SetConfiguration(cfg api.RenderConfiguration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg.Normalize()

	var errs []error
	for name := range p.panels {
		doc, err := ReadSource(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result, renderErr := p.render(doc, p.cfg)
		if _, err := p.apply(name, result, renderErr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RemoveOutputDir removes the output directory once it holds no previews.
// A directory with other files in it is left alone.
func (p *Previewer) RemoveOutputDir() {
	if p.outputDir == "" {
		return
	}
	entries, err := os.ReadDir(p.outputDir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(p.outputDir); err != nil {
		logger.Warnf("failed to remove %s: %v", p.outputDir, err)
		return
	}
	logger.Debugf("Removed %s", p.outputDir)
}

// Close disposes every panel.
func (p *Previewer) Close() {
	for _, name := range p.Panels() {
		p.Dispose(name)
	}
}
