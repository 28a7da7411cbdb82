package views

// ViewState is embedded by every view: window size plus the status line
// written by background actions
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

func (s *ViewState) SetSize(width, height int) {
	s.Width, s.Height = width, height
}

// SetMessage replaces the status line
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message, s.MessageErr = msg, isErr
}

func (s *ViewState) ClearMessage() {
	s.SetMessage("", false)
}
