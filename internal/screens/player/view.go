package player

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
	"github.com/Emily9121/WifeyMOOC/internal/render"
	"github.com/Emily9121/WifeyMOOC/internal/ui/theme"
)

// View implements screen.Screen.
func (m Model) View(width, height int) string {
	var b strings.Builder

	plan := m.plan
	writePlanHeader(&b, plan)

	if plan.Unsupported {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Exercise type %q is not supported.", plan.Kind)) + "\n")
		b.WriteString(theme.Hint.Render("Press Enter to skip it.") + "\n")
		return frame(b.String(), width)
	}

	if plan.Kind == exercise.MultiQuestions {
		for i, child := range plan.Children {
			marker := "  "
			if i == m.childIdx {
				marker = "> "
			}
			style := theme.Body
			if _, done := m.childSubs[i]; done {
				style = theme.Hint
			}
			b.WriteString(style.Render(fmt.Sprintf("%sPart %d. %s", marker, i+1, child.Question)) + "\n")
			if i == m.childIdx {
				m.writeAnswerArea(&b, child)
			}
		}
	} else {
		m.writeAnswerArea(&b, plan)
	}

	if m.showHint && plan.Hint != "" {
		b.WriteString("\n" + theme.Hint.Render("Hint: "+plan.Hint) + "\n")
	}

	b.WriteString("\n" + m.inputHelp() + "\n")
	if m.choice == nil {
		b.WriteString(m.input.View() + "\n")
	}

	if m.feedback != "" {
		style := theme.Incorrect
		if m.feedbackGood {
			style = theme.Correct
		}
		b.WriteString("\n" + style.Render(m.feedback) + "\n")
	}

	return frame(b.String(), width)
}

func frame(content string, width int) string {
	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).Render(content)
}

func writePlanHeader(b *strings.Builder, plan render.Plan) {
	b.WriteString(theme.Title.Render(fmt.Sprintf("Question %d", plan.Number)) + "\n\n")
	b.WriteString(theme.Body.Bold(true).Render(plan.Question) + "\n\n")

	if plan.Video != "" {
		b.WriteString(theme.Hint.Render("Video: "+plan.Video) + "\n")
	}
	if plan.Audio != "" {
		b.WriteString(theme.Hint.Render("Audio: "+plan.Audio) + "\n")
	}
	if plan.InlineImage != "" {
		b.WriteString(theme.Hint.Render("Image: "+filepath.Base(plan.InlineImage)) + "\n")
	}
	if plan.LessonPDF != "" {
		b.WriteString(theme.Hint.Render("Lesson: "+filepath.Base(plan.LessonPDF)) + "\n")
	}
}

// writeAnswerArea renders the body of one part. Choice kinds show the
// selectable list in place of their plan element.
func (m Model) writeAnswerArea(b *strings.Builder, plan render.Plan) {
	if m.choice != nil {
		b.WriteString(m.choice.View())
		return
	}
	for _, el := range plan.Elements {
		writeElement(b, el)
	}
}

func writeElement(b *strings.Builder, el render.Element) {
	switch e := el.(type) {
	case render.OptionList:
		for i, opt := range e.Options {
			label := opt.Text
			if label == "" && opt.Image != "" {
				label = filepath.Base(opt.Image)
			}
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, label)) + "\n")
		}

	case render.ClozeText:
		b.WriteString(theme.Body.Render("  "+strings.Join(e.Parts, " ______ ")) + "\n")

	case render.DropdownBlanks:
		b.WriteString(theme.Body.Render("  "+strings.Join(e.Parts, " ______ ")) + "\n")
		for i, choices := range e.Choices {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  blank %d: %s", i+1, strings.Join(trimmed(choices), ", "))) + "\n")
		}

	case render.MatchSources:
		for i, pair := range e.Pairs {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, pair.Source)) + "\n")
			for j, target := range pair.Targets {
				if strings.TrimSpace(target) == "" {
					continue
				}

				b.WriteString(theme.Hint.Render(fmt.Sprintf("       %d) %s", j+1, target)) + "\n")
			}
		}

	case render.ShuffledImages:
		for _, img := range e.Images {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  (%s) %s", img.Label, filepath.Base(img.ImagePath))) + "\n")
		}

	case render.SentenceList:
		for i, s := range e.Sentences {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, s)) + "\n")
		}

	case render.PhraseList:
		for i, p := range e.Phrases {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, p)) + "\n")
		}

	case render.AudioSequence:
		for i, label := range e.Labels {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, label)) + "\n")
		}

	case render.CategoryBank:
		b.WriteString(theme.Hint.Render("  Categories: "+strings.Join(trimmed(e.Categories), ", ")) + "\n")

	case render.StimulusList:
		for i, st := range e.Stimuli {
			label := st.Text
			if label == "" {
				label = filepath.Base(st.Image)
			}
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, label)) + "\n")
		}

	case render.TagBoard:
		b.WriteString(theme.Hint.Render("  Image: "+filepath.Base(e.Image)) + "\n")
		if e.Alternatives > 1 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  Alternative %d of %d (%s)", e.Alternative+1, e.Alternatives, e.ButtonLabel)) + "\n")
		}
		for i, tag := range e.Tags {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, tag.Label)) + "\n")
		}
	}
}

// inputHelp names the expected answer syntax for the current part.
func (m Model) inputHelp() string {
	cur := m.sess.Current()
	if cur == nil {
		return ""
	}
	kind := cur.Kind
	if kind == exercise.MultiQuestions && m.childIdx < len(cur.Children) {
		kind = cur.Children[m.childIdx].Kind
	}

	var help string
	switch kind {
	case exercise.MCQSingle:
		help = "Pick with up/down, Enter to submit"
	case exercise.MCQMultiple, exercise.ListPick:
		help = "Move with up/down, space to toggle, Enter to submit"
	case exercise.WordFill:
		help = "Answer with the words separated by ; e.g. word1; word2"
	case exercise.FillBlanksDropdown:
		help = "Answer with one choice per blank separated by ; e.g. choice1; choice2"
	case exercise.MatchPhrases:
		help = "Match phrase to ending, e.g. 1:2, 2:1"
	case exercise.MatchSentence:
		help = "Match image letter to sentence, e.g. A:2, B:1"
	case exercise.OrderPhrase, exercise.SequenceAudio:
		help = "Give the correct order of the numbers, e.g. 2,1,3"
	case exercise.Categorization:
		help = "Assign item to category, e.g. 1:2, 2:1"
	case exercise.ImageTagging:
		help = "Place tags as tag:x,y separated by ; e.g. 1:120,80; 2:300,40"
	default:
		return ""
	}
	return theme.Subtitle.Align(lipgloss.Left).Render(help)
}

func trimmed(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
