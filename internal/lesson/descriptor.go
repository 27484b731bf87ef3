// Package lesson defines the lesson descriptor and loads it from a locator.
package lesson

import (
	"strings"

	"github.com/jask/skillbuilder/internal/progress"
)

// Descriptor is the declarative content of one lesson. It is immutable once
// Load returns it.
type Descriptor struct {
	ID                    string     `json:"id" yaml:"id"`
	Title                 string     `json:"title" yaml:"title"`
	Intro                 string     `json:"intro" yaml:"intro"`
	Tagline               string     `json:"tagline" yaml:"tagline"`
	MemberOnly            bool       `json:"memberOnly" yaml:"memberOnly"`
	PreChecklist          []string   `json:"preChecklist" yaml:"preChecklist"`
	ChecklistInstructions []string   `json:"checklistInstructions" yaml:"checklistInstructions"`
	Steps                 []Step     `json:"steps" yaml:"steps"`
	ReflectionPrompts     []string   `json:"reflectionPrompts" yaml:"reflectionPrompts"`
	Reactions             []Reaction `json:"reactions" yaml:"reactions"`
	NextSteps             []NextStep `json:"nextSteps" yaml:"nextSteps"`
}

// Step is one instructional unit. Its identity is its 1-based position.
type Step struct {
	Title       string   `json:"title" yaml:"title"`
	Duration    string   `json:"duration" yaml:"duration"`
	Description string   `json:"description" yaml:"description"`
	MediaFile   string   `json:"mediaFile,omitempty" yaml:"mediaFile,omitempty"`
	MediaType   string   `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Tips        []string `json:"tips,omitempty" yaml:"tips,omitempty"`

	Media Media `json:"-" yaml:"-"`
}

type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaVideo
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	default:
		return "none"
	}
}

// Media is the normalized form of MediaFile/MediaType.
type Media struct {
	Kind MediaKind
	File string
}

type Reaction struct {
	ID    string `json:"id" yaml:"id"`
	Emoji string `json:"emoji" yaml:"emoji"`
	Label string `json:"label" yaml:"label"`
}

type NextStep struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
	ButtonText  string `json:"buttonText" yaml:"buttonText"`
}

// Namespace returns the progress key namespace of this lesson.
func (d *Descriptor) Namespace(appID string) progress.Namespace {
	return progress.NewNamespace(appID, d.ID)
}

// Reaction looks up a reaction by id.
func (d *Descriptor) Reaction(id string) (Reaction, bool) {
	for _, r := range d.Reactions {
		if r.ID == id {
			return r, true
		}
	}
	return Reaction{}, false
}

func normalizeMedia(file, kind string) Media {
	file = strings.TrimSpace(file)
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "placeholder", "none":
		return Media{Kind: MediaNone}
	case "video":
		if file == "" {
			return Media{Kind: MediaNone}
		}
		return Media{Kind: MediaVideo, File: file}
	default:
		if file == "" {
			return Media{Kind: MediaNone}
		}
		return Media{Kind: MediaImage, File: file}
	}
}
