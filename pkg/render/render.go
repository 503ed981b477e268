// Package render runs the compositing passes of a processed project. One
// pass renders one locale of one device: template, screenshots, text, then
// the slices written to every output directory.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xob0t/GoFrame/pkg/compose"
	"github.com/xob0t/GoFrame/pkg/config"
	"github.com/xob0t/GoFrame/pkg/failure"
	"github.com/xob0t/GoFrame/pkg/imageio"
	"github.com/xob0t/GoFrame/pkg/layout"
	"github.com/xob0t/GoFrame/pkg/perspective"
	"github.com/xob0t/GoFrame/pkg/slicer"
	"github.com/xob0t/GoFrame/pkg/typeset"
)

// Pipeline renders every (device, locale) pair of a project.
type Pipeline struct {
	Project *config.Project
	Engine  *typeset.Engine // nil creates one for the run
	Logger  *slog.Logger    // nil discards
	Workers int             // concurrent passes, 0 means runtime.NumCPU()
}

// Summary counts what a run produced.
type Summary struct {
	Passes int
	Files  int
}

// Run renders all passes. The first failing pass cancels the others and its
// error is returned, wrapped with the device and locale.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	log := p.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	engine := p.Engine
	if engine == nil {
		engine = typeset.NewEngine()
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	proj := p.Project

	for _, dir := range proj.OutputPaths {
		if err := imageio.CheckWritable(dir); err != nil {
			return Summary{}, err
		}
	}
	if proj.ClearDirectories {
		if err := imageio.ClearLocaleDirs(proj.OutputPaths, locales(proj)); err != nil {
			return Summary{}, err
		}
	}

	var passes, files atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, d := range proj.Devices {
		for _, locale := range d.Locales() {
			g.Go(func() error {
				start := time.Now()
				ps := &pass{proj: proj, engine: engine, device: d, locale: locale}
				n, err := ps.run(ctx)
				if err != nil {
					return fmt.Errorf("device %s, locale %s: %w", d.Name(), locale, err)
				}
				passes.Add(1)
				files.Add(int64(n))
				log.Debug("rendered", "device", d.Name(), "locale", locale, "files", n, "elapsed", time.Since(start))
				return nil
			})
		}
	}
	err := g.Wait()

	sum := Summary{Passes: int(passes.Load()), Files: int(files.Load())}
	if err != nil {
		return sum, err
	}
	log.Info("render finished", "passes", sum.Passes, "files", sum.Files)
	return sum, nil
}

// locales lists every locale any device renders.
func locales(p *config.Project) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range p.Devices {
		for _, l := range d.Locales() {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}

// pass renders one locale of one device. It owns its canvas.
type pass struct {
	proj   *config.Project
	engine *typeset.Engine
	device *config.Device
	locale string
}

func (ps *pass) run(ctx context.Context) (int, error) {
	d := ps.device
	tb := d.Template.Bounds()
	canvas, err := compose.NewCanvas(tb.Dx(), tb.Dy())
	if err != nil {
		return 0, err
	}

	var bg compose.Painter
	if d.Background != nil {
		bg = *d.Background
	}
	if err := canvas.DrawTemplate(d.Template, bg); err != nil {
		return 0, err
	}

	if err := ps.drawScreenshots(ctx, canvas); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := ps.drawTexts(canvas); err != nil {
		return 0, err
	}

	img, err := canvas.Finalize()
	if err != nil {
		return 0, err
	}
	slices, err := slicer.Slice(img, d.SliceWidth, d.GapWidth, d.NumberOfSlices)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return ps.write(ctx, img, slices)
}

func (ps *pass) drawScreenshots(ctx context.Context, canvas *compose.Canvas) error {
	shots := ps.device.Screenshots[ps.locale]
	for _, pl := range ps.device.Placements {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, ok := shots[pl.ScreenshotName]
		if !ok {
			return &failure.ResourceError{Kind: "screenshot", Path: pl.ScreenshotName}
		}
		src, err := imageio.Load("screenshot", path)
		if err != nil {
			return err
		}
		frag, rect, err := perspective.Place(src, pl.Quad)
		if err != nil {
			return fmt.Errorf("place %s: %w", pl.ScreenshotName, err)
		}
		if err := canvas.DrawScreenshot(frag, rect, ps.device.TemplateOnTop); err != nil {
			return err
		}
	}
	return nil
}

func (ps *pass) drawTexts(canvas *compose.Canvas) error {
	table := ps.proj.Strings[ps.locale]
	members := make([]layout.Member, len(ps.device.Texts))
	for i, b := range ps.device.Texts {
		text, ok := table[b.Identifier]
		if !ok {
			return fmt.Errorf("no string with key %q", b.Identifier)
		}
		members[i] = layout.Member{Text: text, Block: b}
	}

	sizes, err := layout.ResolveFontSizes(ps.engine, members, ps.proj.Groups, ps.proj.Font, ps.proj.MaxFontSize)
	if err != nil {
		return err
	}

	for i, m := range members {
		style := typeset.Style{
			Font:      m.Block.Font,
			Size:      sizes[i],
			Color:     m.Block.Color,
			Alignment: m.Block.Alignment,
			Vertical:  m.Block.VerticalAlignment,
		}
		if style.Font == nil {
			style.Font = ps.proj.Font
		}
		if style.Color == nil {
			style.Color = ps.proj.TextColor
		}
		if err := canvas.DrawText(ps.engine, m.Block.Rect(), m.Text, style); err != nil {
			return fmt.Errorf("draw text %q: %w", m.Block.Identifier, err)
		}
	}
	return nil
}

// write stores every slice, and the whole canvas when configured,
// concurrently. It returns the number of files written.
func (ps *pass) write(ctx context.Context, whole image.Image, slices []image.Image) (int, error) {
	out := imageio.Output{
		Dirs:     ps.proj.OutputPaths,
		Locale:   ps.locale,
		Suffixes: ps.device.Suffixes,
		Format:   ps.proj.Format,
	}

	var n atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	save := func(img image.Image, paths []string) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := imageio.Write(img, ps.proj.Format, paths...); err != nil {
				return err
			}
			n.Add(int64(len(paths)))
			return nil
		})
	}
	for i, s := range slices {
		save(s, out.SlicePaths(i))
	}
	if ps.proj.OutputWholeImage {
		save(whole, out.WholePaths())
	}
	err := g.Wait()
	return int(n.Load()), err
}
