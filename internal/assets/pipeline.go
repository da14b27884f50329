// Package assets implements the asset build pipeline: stylesheet and
// script bundling, static copying, watching with livereload. The pipeline
// runs entirely on an afero filesystem so tests can drive it in memory.
package assets

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Stage names, used in the manifest and by the watcher to decide what to
// rebuild.
const (
	StageStyles  = "styles"
	StageScripts = "scripts"
	StageStatic  = "static"
)

// Manifest records what a build produced.
type Manifest struct {
	BuiltAt time.Time           `json:"built_at"`
	Outputs map[string][]string `json:"outputs"`
}

// Pipeline bundles the sources under srcDir into distDir.
type Pipeline struct {
	fs      afero.Fs
	srcDir  string
	distDir string
}

// NewPipeline creates a pipeline over fs.
func NewPipeline(fs afero.Fs, srcDir, distDir string) *Pipeline {
	return &Pipeline{fs: fs, srcDir: srcDir, distDir: distDir}
}

// Build runs every stage and writes the manifest.
func (p *Pipeline) Build() (*Manifest, error) {
	manifest := &Manifest{
		BuiltAt: time.Now().UTC(),
		Outputs: make(map[string][]string),
	}

	for _, stage := range []string{StageStyles, StageScripts, StageStatic} {
		outputs, err := p.BuildStage(stage)
		if err != nil {
			return nil, fmt.Errorf("stage %s failed: %w", stage, err)
		}
		manifest.Outputs[stage] = outputs
	}

	if err := p.writeManifest(manifest); err != nil {
		return nil, err
	}

	slog.Info("Asset build complete", "dist", p.distDir)
	return manifest, nil
}

// BuildStage runs a single stage and returns the paths it wrote, relative
// to the dist directory.
func (p *Pipeline) BuildStage(stage string) ([]string, error) {
	switch stage {
	case StageStyles:
		return p.bundle("css", ".css", "css/app.min.css")
	case StageScripts:
		return p.bundle("js", ".js", "js/app.min.js")
	case StageStatic:
		return p.copyStatic()
	default:
		return nil, fmt.Errorf("unknown stage: %s", stage)
	}
}

// Clean removes the dist tree.
func (p *Pipeline) Clean() error {
	if err := p.fs.RemoveAll(p.distDir); err != nil {
		return fmt.Errorf("failed to remove dist: %w", err)
	}
	slog.Info("Removed dist tree", "dist", p.distDir)
	return nil
}

// bundle concatenates every file with the given extension under
// srcDir/subdir, in name order, into one output file.
func (p *Pipeline) bundle(subdir, ext, out string) ([]string, error) {
	dir := path.Join(p.srcDir, subdir)

	entries, err := afero.ReadDir(p.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for _, name := range names {
		content, err := afero.ReadFile(p.fs, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sb.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}

	target := path.Join(p.distDir, out)
	if err := p.writeFile(target, []byte(minify(sb.String()))); err != nil {
		return nil, err
	}
	return []string{out}, nil
}

// staticSubdirs are copied through unchanged.
var staticSubdirs = []string{"images", "fonts", "vendor", "html"}

func (p *Pipeline) copyStatic() ([]string, error) {
	var outputs []string
	for _, subdir := range staticSubdirs {
		dir := path.Join(p.srcDir, subdir)
		exists, err := afero.DirExists(p.fs, dir)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		err = afero.Walk(p.fs, dir, func(srcPath string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			rel := strings.TrimPrefix(srcPath, p.srcDir+"/")
			content, err := afero.ReadFile(p.fs, srcPath)
			if err != nil {
				return err
			}
			if err := p.writeFile(path.Join(p.distDir, rel), content); err != nil {
				return err
			}
			outputs = append(outputs, rel)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

// minify strips blank lines and line comments. It is deliberately
// conservative: correctness over byte count.
func minify(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

func (p *Pipeline) writeFile(target string, content []byte) error {
	if err := p.fs.MkdirAll(path.Dir(target), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(p.fs, target, content, 0o644)
}

func (p *Pipeline) writeManifest(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return p.writeFile(path.Join(p.distDir, "manifest.json"), data)
}
