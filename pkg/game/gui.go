package game

// Gui holds the UI state scripts drive: dialog box, selection box, tip
// line, portrait, title card and the input gate. It renders nothing
// itself; the application shell reads this state every frame.
type Gui struct {
	DialogText    string
	DialogSpeaker string
	DialogOpen    bool

	SelectionOptions []string
	SelectionOpen    bool

	TipText   string
	FaceName  string
	TitleText string

	inputEnabled bool
}

// NewGui creates a Gui with input enabled.
func NewGui() *Gui { return &Gui{inputEnabled: true} }

func (g *Gui) ShowDialog(text, speaker string) {
	g.DialogText = text
	g.DialogSpeaker = speaker
	g.DialogOpen = true
}

func (g *Gui) ShowMessage(text string) {
	// Messages reuse the dialog box without gating input.
	g.DialogText = text
	g.DialogSpeaker = ""
}

func (g *Gui) ShowSelection(options []string) {
	g.SelectionOptions = append([]string(nil), options...)
	g.SelectionOpen = true
}

func (g *Gui) ShowTip(text string)   { g.TipText = text }
func (g *Gui) ClearTip()             { g.TipText = "" }
func (g *Gui) ShowFace(name string)  { g.FaceName = name }
func (g *Gui) HideFace()             { g.FaceName = "" }
func (g *Gui) ShowTitle(text string) { g.TitleText = text }

func (g *Gui) ClearDialog() {
	g.DialogText = ""
	g.DialogSpeaker = ""
	g.DialogOpen = false
}

func (g *Gui) SetInputEnabled(enabled bool) { g.inputEnabled = enabled }

// InputEnabled reports whether scripted input locking allows player
// input.
func (g *Gui) InputEnabled() bool { return g.inputEnabled }

// CloseDialog clears the open dialog. The shell calls this together with
// Scheduler.OnDialogClosed when the player confirms.
func (g *Gui) CloseDialog() {
	g.DialogOpen = false
}

// CloseSelection clears the open selection box.
func (g *Gui) CloseSelection() {
	g.SelectionOpen = false
	g.SelectionOptions = nil
}
