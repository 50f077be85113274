// Package worksheet renders an exercise set into a single self-contained
// printable HTML document: header, exercises, a reference-image section
// for deferred images, and an answer key.
package worksheet

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
	"github.com/Emily9121/WifeyMOOC/internal/render"
)

// Options configure one worksheet pass.
type Options struct {
	// Title is the document heading; empty uses the default.
	Title string

	// Rand drives per-pass label shuffling; nil uses the global source.
	Rand *rand.Rand

	// SkipAnswerKey leaves out the answer-key section, for handouts.
	SkipAnswerKey bool
}

// WriteHTML renders the whole set to w. Missing media degrade to textual
// placeholders; they never abort the document.
func WriteHTML(w io.Writer, set *exercise.Set, opts Options) error {
	title := opts.Title
	if title == "" {
		title = "WifeyMOOC - Exercise Worksheet"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n" + styleSheet + "</style>\n</head>\n<body>\n<div class=\"container\">\n")
	fmt.Fprintf(&b, "<div class=\"header\"><h1>%s</h1><p>%d exercises</p></div>\n",
		html.EscapeString(title), set.Len())

	// Last assignment wins for a path shared across exercises, and the
	// section lists paths in first-seen order.
	deferred := make(map[string]render.ImageRef)
	var deferredOrder []string

	for i := range set.Exercises {
		ex := &set.Exercises[i]
		plan := render.Build(ex, i+1, render.Options{Target: render.Print, Rand: opts.Rand})
		for _, ref := range collectDeferred(plan) {
			if _, seen := deferred[ref.Path]; !seen {
				deferredOrder = append(deferredOrder, ref.Path)
			}
			deferred[ref.Path] = ref
		}
		writeExercise(&b, set, plan, false)
	}

	if len(deferredOrder) > 0 {
		b.WriteString("<div class=\"full-page-images\">\n<div class=\"section-header\">REFERENCE IMAGES</div>\n")
		for _, path := range deferredOrder {
			ref := deferred[path]
			fmt.Fprintf(&b, "<div class=\"reference-image\">\n<div class=\"reference-label\">Question %d: %s</div>\n<p class=\"reference-question\">%s</p>\n",
				ref.ExerciseNumber, html.EscapeString(filepath.Base(ref.Path)), html.EscapeString(ref.Question))
			writeImage(&b, set, ref.Path)
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	}

	if !opts.SkipAnswerKey {
		writeAnswerKey(&b, set)
	}

	b.WriteString("</div>\n</body>\n</html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func collectDeferred(plan render.Plan) []render.ImageRef {
	refs := plan.Deferred
	for _, child := range plan.Children {
		refs = append(refs, collectDeferred(child)...)
	}
	return refs
}

func writeExercise(b *strings.Builder, set *exercise.Set, plan render.Plan, nested bool) {
	class := "exercise"
	if nested {
		class = "exercise sub-exercise"
	}
	fmt.Fprintf(b, "<div class=\"%s\">\n", class)
	if !nested {
		fmt.Fprintf(b, "<span class=\"exercise-number\">Question %d</span><span class=\"exercise-type\">%s</span>\n",
			plan.Number, html.EscapeString(string(plan.Kind)))
	}
	fmt.Fprintf(b, "<div class=\"question\">%s</div>\n", html.EscapeString(plan.Question))

	if plan.Unsupported {
		fmt.Fprintf(b, "<div class=\"media-note\">Exercise type %q is not supported; skipped.</div>\n</div>\n", plan.Kind)
		return
	}

	if plan.Video != "" {
		fmt.Fprintf(b, "<div class=\"media-note\">Video: %s</div>\n", html.EscapeString(plan.Video))
	}
	if plan.Audio != "" {
		fmt.Fprintf(b, "<div class=\"media-note\">Audio: %s</div>\n", html.EscapeString(plan.Audio))
	}
	if plan.InlineImage != "" {
		writeImage(b, set, plan.InlineImage)
	}
	for _, ref := range plan.Deferred {
		fmt.Fprintf(b, "<div class=\"media-note\">Image: %s (see reference section)</div>\n",
			html.EscapeString(filepath.Base(ref.Path)))
	}
	if plan.Hint != "" {
		fmt.Fprintf(b, "<div class=\"hint\">Hint: %s</div>\n", html.EscapeString(plan.Hint))
	}

	for _, el := range plan.Elements {
		writeElement(b, set, el)
	}
	for _, child := range plan.Children {
		writeExercise(b, set, child, true)
	}
	b.WriteString("</div>\n")
}

func writeElement(b *strings.Builder, set *exercise.Set, el render.Element) {
	switch e := el.(type) {
	case render.OptionList:
		b.WriteString("<div class=\"option-list\">\n")
		for _, opt := range e.Options {
			box := "&#9675;" // circle, single choice
			if e.Multi {
				box = "&#9744;" // checkbox
			}
			fmt.Fprintf(b, "<div class=\"option\">%s %s</div>\n", box, html.EscapeString(opt.Text))
			if opt.Image != "" {
				writeImage(b, set, opt.Image)
			}
		}
		b.WriteString("</div>\n")

	case render.ClozeText:
		fmt.Fprintf(b, "<div class=\"cloze\">%s</div>\n", joinWithBlanks(e.Parts))
		for i := 0; i < e.Blanks; i++ {
			fmt.Fprintf(b, "<div class=\"blank-line\">Answer %d: ____________________</div>\n", i+1)
		}

	case render.DropdownBlanks:
		fmt.Fprintf(b, "<div class=\"cloze\">%s</div>\n", joinWithBlanks(e.Parts))
		for i, choices := range e.Choices {
			fmt.Fprintf(b, "<div class=\"dropdown\">Blank %d options: %s</div>\n",
				i+1, html.EscapeString(strings.Join(nonEmpty(choices), ", ")))
		}

	case render.MatchSources:
		b.WriteString("<div class=\"match-list\">\n")
		for _, pair := range e.Pairs {
			fmt.Fprintf(b, "<div class=\"match-source\"><strong>%s</strong> ____________________</div>\n",
				html.EscapeString(pair.Source))
			if len(pair.Targets) > 0 {
				fmt.Fprintf(b, "<div class=\"match-targets\">%s</div>\n",
					html.EscapeString(strings.Join(nonEmpty(pair.Targets), " / ")))
			}
		}
		b.WriteString("</div>\n")

	case render.ShuffledImages:
		b.WriteString("<div class=\"image-bank\">\n")
		for _, img := range e.Images {
			fmt.Fprintf(b, "<div class=\"labeled-image\"><strong>(%s)</strong>\n", img.Label)
			writeImage(b, set, img.ImagePath)
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")

	case render.SentenceList:
		b.WriteString("<div class=\"sentence-list\">\n")
		for i, s := range e.Sentences {
			fmt.Fprintf(b, "<div>%d. %s &nbsp; ______</div>\n", i+1, html.EscapeString(s))
		}
		b.WriteString("</div>\n")

	case render.PhraseList:
		b.WriteString("<div class=\"phrase-list\">\n")
		for i, p := range e.Phrases {
			fmt.Fprintf(b, "<div>__ %d. %s</div>\n", i+1, html.EscapeString(p))
		}
		b.WriteString("</div>\n")

	case render.AudioSequence:
		b.WriteString("<div class=\"sequence-list\">\n")
		for i, label := range e.Labels {
			fmt.Fprintf(b, "<div>__ %d. %s</div>\n", i+1, html.EscapeString(label))
		}
		b.WriteString("</div>\n")

	case render.CategoryBank:
		fmt.Fprintf(b, "<div class=\"category-list\"><strong>Categories:</strong> %s</div>\n",
			html.EscapeString(strings.Join(nonEmpty(e.Categories), ", ")))

	case render.StimulusList:
		b.WriteString("<div class=\"stimulus-list\">\n")
		for _, st := range e.Stimuli {
			if st.Text != "" {
				fmt.Fprintf(b, "<div>%s</div>\n", html.EscapeString(st.Text))
			}
			if st.Image != "" {
				writeImage(b, set, st.Image)
			}
			b.WriteString("<div><strong>Category:</strong> _______________</div>\n")
		}
		b.WriteString("</div>\n")

	case render.TagBoard:
		writeImage(b, set, e.Image)
		if e.ButtonLabel != "" {
			fmt.Fprintf(b, "<div class=\"category-list\"><strong>Button:</strong> %s</div>\n",
				html.EscapeString(e.ButtonLabel))
		}
		b.WriteString("<div>Label the diagram with:</div>\n<ul>\n")
		for _, tag := range e.Tags {
			fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(tag.Label))
		}
		b.WriteString("</ul>\n")
	}
}

func writeAnswerKey(b *strings.Builder, set *exercise.Set) {
	b.WriteString("<div class=\"answers-section\">\n<div class=\"section-header\">ANSWER KEY</div>\n")
	for i := range set.Exercises {
		text, ok := render.FormatAnswer(&set.Exercises[i])
		if !ok {
			continue
		}
		fmt.Fprintf(b, "<div class=\"answer-item\"><span class=\"answer-number\">Question %d</span> %s</div>\n",
			i+1, html.EscapeString(text))
	}
	b.WriteString("</div>\n")
}

// writeImage embeds the image as a data URI, or a placeholder when the
// file is missing or unreadable.
func writeImage(b *strings.Builder, set *exercise.Set, path string) {
	uri, err := imageDataURI(set, path)
	if err != nil {
		fmt.Fprintf(b, "<div class=\"media-note\">Image not found: %s</div>\n",
			html.EscapeString(filepath.Base(path)))
		return
	}
	fmt.Fprintf(b, "<div class=\"media-image\"><img src=\"%s\" alt=\"%s\"><div class=\"caption\">%s</div></div>\n",
		uri, html.EscapeString(filepath.Base(path)), html.EscapeString(filepath.Base(path)))
}

func imageDataURI(set *exercise.Set, path string) (string, error) {
	resolved, err := set.CheckMedia(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", &exercise.MediaMissingError{Path: resolved}
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".bmp":
		mime = "image/bmp"
	case ".webp":
		mime = "image/webp"
	case ".svg":
		mime = "image/svg+xml"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func joinWithBlanks(parts []string) string {
	escaped := make([]string, len(parts))
	for i, part := range parts {
		escaped[i] = html.EscapeString(part)
	}
	return strings.Join(escaped, " ______ ")
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

const styleSheet = `* { margin: 0; padding: 0; box-sizing: border-box; }
html { font-size: 14px; }
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.5; color: #333; background: white; padding: 20px; }
.container { max-width: 900px; margin: 0 auto; }
.header { text-align: center; margin-bottom: 30px; border-bottom: 3px solid #2c3e50; padding-bottom: 15px; }
.header h1 { color: #2c3e50; font-size: 2em; }
.header p { color: #7f8c8d; font-size: 0.9em; }
.exercise { margin-bottom: 25px; border-left: 4px solid #3498db; padding-left: 15px; break-inside: avoid; }
.sub-exercise { border-left-color: #9b59b6; margin-top: 12px; }
.exercise-number { display: inline-block; background: #3498db; color: white; padding: 4px 10px; border-radius: 15px; font-weight: bold; font-size: 0.85em; }
.exercise-type { display: inline-block; background: #ecf0f1; color: #2c3e50; padding: 3px 8px; border-radius: 4px; font-size: 0.75em; margin-left: 8px; }
.question { font-size: 1.05em; margin: 12px 0; font-weight: 500; color: #2c3e50; }
.media-note { background: #fff3cd; border-left: 3px solid #ffc107; padding: 8px 12px; margin: 10px 0; font-size: 0.85em; color: #856404; }
.hint { color: #7f8c8d; font-style: italic; margin: 6px 0; }
.option { margin: 4px 0; }
.blank-line, .dropdown, .match-source, .match-targets { margin: 6px 0; }
.match-targets { color: #7f8c8d; font-size: 0.9em; }
.media-image img { max-width: 420px; display: block; margin: 10px 0; }
.media-image .caption { color: #7f8c8d; font-size: 0.8em; }
.image-bank { display: flex; flex-wrap: wrap; gap: 12px; }
.full-page-images, .answers-section { margin-top: 40px; break-before: page; }
.section-header { font-size: 1.2em; font-weight: bold; color: #e74c3c; text-align: center; margin-bottom: 15px; }
.reference-image { margin-bottom: 25px; }
.reference-label { font-weight: bold; }
.reference-question { color: #7f8c8d; font-size: 0.9em; font-style: italic; margin-bottom: 10px; }
.answer-item { margin: 6px 0; }
.answer-number { font-weight: bold; color: #27ae60; margin-right: 8px; }
`
