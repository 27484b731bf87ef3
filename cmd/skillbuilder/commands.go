package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"github.com/jask/skillbuilder/internal/celebrate"
	"github.com/jask/skillbuilder/internal/controller"
	"github.com/jask/skillbuilder/internal/database/repository"
	"github.com/jask/skillbuilder/internal/dom"
	"github.com/jask/skillbuilder/internal/lesson"
	"github.com/jask/skillbuilder/internal/logger"
	"github.com/jask/skillbuilder/internal/progress"
	"github.com/jask/skillbuilder/internal/render"
	"github.com/jask/skillbuilder/internal/sample"
	"github.com/jask/skillbuilder/internal/tui"
)

func (c *cli) newInstance(doc dom.Document, store progress.Store, effect celebrate.Effect) *controller.Instance {
	return controller.New(doc, store,
		controller.WithAppID(c.cfg.App.ID),
		controller.WithLoader(lesson.NewLoader(c.cfg.Loader.Timeout, c.log)),
		controller.WithEffect(effect),
		controller.WithLogger(c.log),
		controller.WithRenderOptions(render.Options{MediaBase: c.cfg.UI.MediaBase}),
	)
}

func newRunCmd(c *cli) *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:   "run <locator>",
		Short: "Open a lesson in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore := openStore(ctx, c.cfg, c.log)
			defer closeStore()

			doc := dom.Default()
			app := tui.New(tui.Options{ReducedMotion: c.cfg.UI.ReducedMotion, Seed: time.Now().UnixNano()})
			inst := c.newInstance(doc, store, app)
			if err := inst.Init(ctx, args[0]); err != nil {
				return err
			}
			app.Attach(inst)

			if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("run ui: %w", err)
			}
			if export != "" {
				return writeOutput(export, doc.Render)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&export, "export", "", "write the page with final progress to this file on exit")
	return cmd
}

func newRenderCmd(c *cli) *cobra.Command {
	var out, celebration string
	cmd := &cobra.Command{
		Use:   "render <locator>",
		Short: "Render a lesson page with saved progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore := openStore(ctx, c.cfg, c.log)
			defer closeStore()

			var (
				effect   celebrate.Effect = celebrate.Noop{}
				animator *celebrate.Animator
				snapshot *celebrate.SnapshotPainter
			)
			if celebration != "" && !c.cfg.UI.ReducedMotion {
				snapshot = celebrate.NewSnapshotPainter(celebrationWidth, celebrationHeight, nil)
				confetti := celebrate.NewConfetti(celebrationWidth, celebrationHeight, time.Now().UnixNano())
				animator = celebrate.NewAnimator(confetti, snapshot, c.log)
				effect = animator
			}

			doc := dom.Default()
			loadErr := c.newInstance(doc, store, effect).Init(ctx, args[0])
			// a failed load still produces the error page
			if err := writeOutput(out, doc.Render); err != nil {
				return err
			}
			if loadErr != nil {
				return loadErr
			}
			if animator != nil {
				return writeCelebration(celebration, animator, snapshot, c.log)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&celebration, "celebration", "", "write the last confetti frame as PNG when the lesson is complete")
	return cmd
}

const (
	celebrationWidth  = 960
	celebrationHeight = 540
)

func writeCelebration(path string, a *celebrate.Animator, p *celebrate.SnapshotPainter, log *logger.Logger) error {
	a.Wait()
	img := p.Last()
	if img == nil {
		log.Info("lesson not complete, no celebration written", "path", path)
		return nil
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("write celebration: %w", err)
	}
	log.Debug("celebration written", "path", path, "frames", p.Frames())
	return nil
}

func newProgressCmd(c *cli) *cobra.Command {
	var keys bool
	cmd := &cobra.Command{
		Use:   "progress <locator>",
		Short: "Print saved progress for a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore := openStore(ctx, c.cfg, c.log)
			defer closeStore()

			inst := c.newInstance(dom.Default(), store, celebrate.Noop{})
			if err := inst.Init(ctx, args[0]); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printProgress(w, inst)
			if keys {
				return printKeys(ctx, w, store, inst.Lesson().Namespace(c.cfg.App.ID).Prefix)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keys, "keys", false, "list the raw stored keys (sqlite backend)")
	return cmd
}

func printProgress(w io.Writer, inst *controller.Instance) {
	d := inst.Lesson()
	sum := inst.Summary()
	fmt.Fprintf(w, "%s: %d/%d tried (%d%%)\n", d.Title, sum.Done, sum.Total, sum.Percent)
	for i, s := range d.Steps {
		box := "[ ]"
		if inst.Tried(i + 1) {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %s %d. %s\n", box, i+1, s.Title)
	}
	var reacted []string
	for _, r := range d.Reactions {
		if inst.Reacted(r.ID) {
			reacted = append(reacted, r.Emoji+" "+r.Label)
		}
	}
	if len(reacted) > 0 {
		fmt.Fprintf(w, "reactions: %s\n", strings.Join(reacted, ", "))
	}
	if notes := inst.Notes(); notes != "" {
		fmt.Fprintf(w, "notes:\n%s\n", notes)
	}
	if inst.Degraded() {
		fmt.Fprintln(w, "(progress store unavailable)")
	}
}

func printKeys(ctx context.Context, w io.Writer, store progress.Store, prefix string) error {
	repo, ok := store.(*repository.ProgressRepo)
	if !ok {
		return fmt.Errorf("--keys needs the sqlite backend")
	}
	entries, err := repo.List(ctx, prefix)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s=%s\t%s\n", e.Key, e.Value, e.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func newSampleCmd(c *cli) *cobra.Command {
	var (
		out   string
		steps int
		id    string
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample lesson descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := sample.Generate(sample.Options{ID: id, Steps: steps, Seed: time.Now().UnixNano()})
			format := lesson.FormatJSON
			switch strings.ToLower(filepath.Ext(out)) {
			case ".yaml", ".yml":
				format = lesson.FormatYAML
			}
			c.log.Debug("sample lesson", "id", d.ID, "steps", len(d.Steps))
			return writeOutput(out, func(w io.Writer) error { return sample.Write(w, d, format) })
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file; .yaml writes YAML (default stdout, JSON)")
	cmd.Flags().IntVar(&steps, "steps", 3, "number of steps")
	cmd.Flags().StringVar(&id, "id", "", "lesson id (default random)")
	return cmd
}

func newConfettiCmd(c *cli) *cobra.Command {
	var opts celebrate.GIFOptions
	cmd := &cobra.Command{
		Use:   "confetti <out.gif>",
		Short: "Write the celebration animation as a GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if opts.Seed == 0 {
				opts.Seed = time.Now().UnixNano()
			}
			c.log.Debug("writing confetti preview", "path", args[0])
			return writeOutput(args[0], func(w io.Writer) error { return celebrate.WriteGIF(w, opts) })
		},
	}
	cmd.Flags().IntVar(&opts.Width, "width", 480, "width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 270, "height in pixels")
	cmd.Flags().IntVar(&opts.FPS, "fps", 30, "frames per second")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (default time based)")
	return cmd
}

// writeOutput writes to path, or stdout for "" and "-".
func writeOutput(path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
