// Package player implements the interactive exercise screen: it shows
// one exercise at a time, parses typed answers, grades them, and walks
// the session forward.
package player

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/Emily9121/WifeyMOOC/internal/evaluate"
	"github.com/Emily9121/WifeyMOOC/internal/exercise"
	"github.com/Emily9121/WifeyMOOC/internal/logger"
	"github.com/Emily9121/WifeyMOOC/internal/render"
	"github.com/Emily9121/WifeyMOOC/internal/router"
	"github.com/Emily9121/WifeyMOOC/internal/screen"
	"github.com/Emily9121/WifeyMOOC/internal/screens/summary"
	"github.com/Emily9121/WifeyMOOC/internal/session"
	"github.com/Emily9121/WifeyMOOC/internal/ui/components"
	"github.com/Emily9121/WifeyMOOC/internal/ui/layout"
)

// Model is the player screen.
type Model struct {
	sess     *session.Session
	savePath string

	plan  render.Plan
	input components.TextInput

	// choice replaces the free-text line for option-pick kinds; nil
	// for every other kind.
	choice *components.OptionList

	// Multi-part exercises are answered one child at a time.
	childIdx  int
	childSubs map[int]evaluate.Submission

	tagAlt        int
	childTagAlts  map[int]int
	showHint      bool
	feedback      string
	feedbackGood  bool
	answeredRight bool
}

// New creates a player over an in-progress session. savePath is where
// progress snapshots are written; empty disables saving.
func New(sess *session.Session, savePath string) Model {
	m := Model{
		sess:      sess,
		savePath:  savePath,
		input:     components.NewTextInput("type your answer"),
		childSubs: make(map[int]evaluate.Submission),
	}
	m.rebuildPlan()
	m.setupAnswerInput()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

// Title implements screen.Screen.
func (m Model) Title() string {
	return "Quiz"
}

// KeyHints implements screen.KeyHintProvider.
func (m Model) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+T", Description: "Hint"},
	}
	if cur := m.sess.Current(); cur != nil && m.hasAlternatives(cur) {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+Y", Description: "Alternative"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Save"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}

func (m Model) hasAlternatives(ex *exercise.Exercise) bool {
	if ex.Kind == exercise.ImageTagging {
		return len(ex.TagAlternatives()) > 1
	}
	if ex.Kind == exercise.MultiQuestions && m.childIdx < len(ex.Children) {
		child := &ex.Children[m.childIdx]
		return child.Kind == exercise.ImageTagging && len(child.TagAlternatives()) > 1
	}
	return false
}

// Update implements screen.Screen.
func (m Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch kmsg.String() {
	case "enter":
		return m.submit()
	case "ctrl+t":
		m.showHint = !m.showHint
		return m, nil
	case "ctrl+y":
		m.cycleAlternative()
		return m, nil
	case "ctrl+s":
		m.saveProgress(true)
		return m, nil
	}

	var cmd tea.Cmd
	if m.choice != nil {
		var list components.OptionList
		list, cmd = m.choice.Update(msg)
		m.choice = &list
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (screen.Screen, tea.Cmd) {
	if m.answeredRight {
		return m.advance()
	}

	cur := m.sess.Current()
	if cur == nil {
		return m.advance()
	}
	if !cur.Kind.Supported() {
		// Nothing to grade; move on.
		return m.advance()
	}

	if cur.Kind == exercise.MultiQuestions {
		return m.submitChild(cur)
	}

	sub, err := m.currentSubmission(cur, m.plan, m.tagAlt)
	if err != nil {
		m.setFeedback(err.Error(), false)
		return m, nil
	}
	m.recordPlacements(sub, session.Scope(m.sess.Progress.Position))
	return m.grade(sub)
}

// submitChild collects the current child's answer; the block is graded
// once every part has one.
func (m Model) submitChild(cur *exercise.Exercise) (screen.Screen, tea.Cmd) {
	child := &cur.Children[m.childIdx]
	var childPlan render.Plan
	if m.childIdx < len(m.plan.Children) {
		childPlan = m.plan.Children[m.childIdx]
	}
	sub, err := m.currentSubmission(child, childPlan, m.childTagAlts[m.childIdx])
	if err != nil {
		m.setFeedback(err.Error(), false)
		return m, nil
	}
	m.recordPlacements(sub, session.ChildScope(m.sess.Progress.Position, m.childIdx))
	m.childSubs[m.childIdx] = sub

	if m.childIdx < len(cur.Children)-1 {
		m.childIdx++
		m.input.Reset()
		m.setFeedback("", false)
		m.rebuildPlan()
		m.setupAnswerInput()
		return m, nil
	}

	all := make(evaluate.MultiAnswers, len(m.childSubs))
	for i, s := range m.childSubs {
		all[i] = s
	}
	return m.grade(all)
}

func (m Model) grade(sub evaluate.Submission) (screen.Screen, tea.Cmd) {
	correct, err := m.sess.Submit(sub)
	if err != nil {
		m.setFeedback(err.Error(), false)
		m.restartMulti()
		return m, nil
	}
	if !correct {
		m.setFeedback("Not quite! Try again.", false)
		if m.choice == nil {
			m.input.Submit(false)
		}
		m.restartMulti()
		return m, nil
	}

	m.answeredRight = true
	m.setFeedback("Correct! Press Enter to continue.", true)
	if m.choice == nil {
		m.input.Submit(true)
	}
	m.saveProgress(false)
	return m, nil
}

// restartMulti sends an incorrect multi-part block back to its first part.
func (m *Model) restartMulti() {
	if cur := m.sess.Current(); cur != nil && cur.Kind == exercise.MultiQuestions {
		m.childIdx = 0
		m.childSubs = make(map[int]evaluate.Submission)
		m.input.Reset()
		m.rebuildPlan()
		m.setupAnswerInput()
	}
}

func (m Model) advance() (screen.Screen, tea.Cmd) {
	m.sess.Advance()
	if m.sess.Completed() {
		m.saveProgress(false)
		s := summary.New(m.sess)
		return m, func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
	}

	m.childIdx = 0
	m.childSubs = make(map[int]evaluate.Submission)
	m.tagAlt = 0
	m.childTagAlts = nil
	m.showHint = false
	m.answeredRight = false
	m.input.Reset()
	m.setFeedback("", false)
	m.rebuildPlan()
	m.setupAnswerInput()
	return m, nil
}

func (m *Model) cycleAlternative() {
	cur := m.sess.Current()
	if cur == nil {
		return
	}
	switch {
	case cur.Kind == exercise.ImageTagging:
		alts := cur.TagAlternatives()
		if len(alts) > 1 {
			m.tagAlt = (m.tagAlt + 1) % len(alts)
		}
	case cur.Kind == exercise.MultiQuestions && m.childIdx < len(cur.Children):
		child := &cur.Children[m.childIdx]
		alts := child.TagAlternatives()
		if len(alts) > 1 {
			if m.childTagAlts == nil {
				m.childTagAlts = make(map[int]int)
			}
			m.childTagAlts[m.childIdx] = (m.childTagAlts[m.childIdx] + 1) % len(alts)
		}
	}
	m.input.Reset()
	m.rebuildPlan()
	m.setupAnswerInput()
}

func (m *Model) rebuildPlan() {
	cur := m.sess.Current()
	if cur == nil {
		m.plan = render.Plan{}
		return
	}
	m.plan = render.Build(cur, m.sess.Progress.Position+1, render.Options{
		Target:               render.Interactive,
		Rand:                 rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		TagAlternative:       m.tagAlt,
		ChildTagAlternatives: m.childTagAlts,
	})
}

// currentSubmission reads the active answer widget into a typed
// submission: the option list when one is up, the free-text line
// otherwise.
func (m Model) currentSubmission(part *exercise.Exercise, plan render.Plan, tagAlt int) (evaluate.Submission, error) {
	if m.choice != nil {
		if m.choice.Multi {
			return evaluate.MultiChoice(m.choice.Checked()), nil
		}
		return evaluate.SingleChoice(m.choice.Selected()), nil
	}
	return ParseSubmission(part, m.input.Value(), tagAlt, planImages(plan))
}

// recordPlacements mirrors parsed tag positions into the progress model
// so snapshots carry them even before the block is graded.
func (m *Model) recordPlacements(sub evaluate.Submission, key session.ScopeKey) {
	tp, ok := sub.(evaluate.TagPlacements)
	if !ok {
		return
	}
	if tp.Alternative > 0 {
		key = key.WithAlternative(tp.Alternative)
	}
	for id, pos := range tp.Positions {
		m.sess.PlaceTag(key, id, pos)
	}
}

// setupAnswerInput picks the widget for the current part: an option
// list for choice kinds, the text line for everything else. Saved tag
// placements prefill the line so a resumed session shows them.
func (m *Model) setupAnswerInput() {
	m.choice = nil
	cur := m.sess.Current()
	if cur == nil {
		return
	}

	part := cur
	key := session.Scope(m.sess.Progress.Position)
	alt := m.tagAlt
	if cur.Kind == exercise.MultiQuestions && m.childIdx < len(cur.Children) {
		part = &cur.Children[m.childIdx]
		key = session.ChildScope(m.sess.Progress.Position, m.childIdx)
		alt = m.childTagAlts[m.childIdx]
	}

	switch part.Kind {
	case exercise.MCQSingle:
		list := components.NewOptionList(optionLabels(part.Options), false)
		m.choice = &list
	case exercise.MCQMultiple, exercise.ListPick:
		list := components.NewOptionList(optionLabels(part.Options), true)
		m.choice = &list
	case exercise.ImageTagging:
		m.prefillTags(part, key, alt)
	}
}

// prefillTags restores recorded placements into the input line, in the
// same tag:x,y syntax submissions use.
func (m *Model) prefillTags(part *exercise.Exercise, key session.ScopeKey, alt int) {
	alts := part.TagAlternatives()
	if alt < 0 || alt >= len(alts) {
		alt = 0
	}
	if alt > 0 {
		key = key.WithAlternative(alt)
	}
	saved := m.sess.Progress.TagsFor(key)
	if len(saved) == 0 {
		return
	}

	var parts []string
	for i, tag := range alts[alt].Tags {
		pos, ok := saved[tag.ID]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%g,%g", i+1, pos.X, pos.Y))
	}
	m.input.SetValue(strings.Join(parts, "; "))
}

func optionLabels(options []exercise.Option) []string {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Text
		if labels[i] == "" {
			labels[i] = filepath.Base(opt.Image)
		}
	}
	return labels
}

// planImages pulls the labeled image list out of a plan, when one is
// there.
func planImages(plan render.Plan) []render.LabeledImage {
	for _, el := range plan.Elements {
		if shuffled, ok := el.(render.ShuffledImages); ok {
			return shuffled.Images
		}
	}
	return nil
}

func (m *Model) setFeedback(text string, good bool) {
	m.feedback = text
	m.feedbackGood = good
}

func (m *Model) saveProgress(announce bool) {
	if m.savePath == "" {
		return
	}
	if err := m.sess.SaveProgress(m.savePath); err != nil {
		logger.Get().Error("save progress", zap.String("path", m.savePath), zap.Error(err))
		m.setFeedback("Could not save progress: "+err.Error(), false)
		return
	}
	if announce {
		m.setFeedback("Progress saved.", true)
	}
}
