// Package sample writes demo lesson descriptors.
package sample

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jask/skillbuilder/internal/lesson"
)

type Options struct {
	ID    string // generated when empty
	Steps int
	Seed  int64
}

var methods = []struct {
	title, description, media, kind string
}{
	{"Wet on wet", "Lay water first, then drop pigment in and let it bloom.", "wet-on-wet.mp4", "video"},
	{"Flat wash", "Load a big brush and pull even strokes from top to bottom.", "flat-wash.gif", "image"},
	{"Graded wash", "Add water with each stroke so the colour fades out.", "graded-wash.gif", "image"},
	{"Dry brush", "Blot most of the paint off and skim the paper's texture.", "", "placeholder"},
	{"Lifting", "Dab a damp brush into wet paint to pull colour back out.", "lifting.mp4", "video"},
	{"Salt texture", "Sprinkle salt into a wet wash and brush it off once dry.", "", ""},
	{"Splatter", "Flick a loaded brush over a finger for fine spots.", "splatter.gif", "image"},
}

var tips = []string{
	"Tilt the board a little so paint travels.",
	"Keep a tissue close for blotting.",
	"Test on scrap first.",
	"Less water than you think.",
	"Let each layer dry before the next.",
}

// Generate builds a complete descriptor with n steps drawn from a fixed set
// of methods.
func Generate(opts Options) *lesson.Descriptor {
	rng := rand.New(rand.NewSource(opts.Seed))
	n := opts.Steps
	if n <= 0 {
		n = 3
	}
	id := opts.ID
	if id == "" {
		id = "sample-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	}

	d := &lesson.Descriptor{
		ID:                    id,
		Title:                 "Watercolour Basics",
		Intro:                 "Seven small experiments with water and pigment.",
		Tagline:               "Ten minutes each. No wrong answers.",
		MemberOnly:            rng.Intn(2) == 0,
		PreChecklist:          []string{"Watercolour paper", "Round brush", "Two jars of water", "Paper towel"},
		ChecklistInstructions: []string{"Tape the paper down.", "Wet your palette.", "Keep one jar for clean water."},
		ReflectionPrompts:     []string{"Which method surprised you?", "What would you try next?"},
		Reactions: []lesson.Reaction{
			{ID: "love", Emoji: "❤️", Label: "Loved it"},
			{ID: "tricky", Emoji: "🤔", Label: "Tricky"},
			{ID: "again", Emoji: "🔁", Label: "Doing it again"},
		},
		NextSteps: []lesson.NextStep{
			{Title: "Glazing", Description: "Layer transparent colour.", Link: "/skill-builders/glazing", ButtonText: "Start glazing"},
			{Title: "Colour mixing", Description: "Build a mixing chart.", Link: "/skill-builders/mixing", ButtonText: "Open"},
		},
	}
	for i := 0; i < n; i++ {
		m := methods[i%len(methods)]
		step := lesson.Step{
			Title:       m.title,
			Duration:    fmt.Sprintf("%d min", 2+rng.Intn(9)),
			Description: m.description,
			MediaFile:   m.media,
			MediaType:   m.kind,
		}
		if i >= len(methods) {
			step.Title = fmt.Sprintf("%s (round %d)", m.title, i/len(methods)+1)
		}
		for k := rng.Intn(3); k > 0; k-- {
			step.Tips = append(step.Tips, tips[rng.Intn(len(tips))])
		}
		d.Steps = append(d.Steps, step)
	}
	return d
}

// Write encodes d as JSON or YAML.
func Write(w io.Writer, d *lesson.Descriptor, format lesson.Format) error {
	switch format {
	case lesson.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode sample yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode sample json: %w", err)
		}
		return nil
	}
}
