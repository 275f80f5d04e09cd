package form

import "github.com/abhisek/edugenius/internal/studio"

// generateDoneMsg is sent when a Submit call returns.
type generateDoneMsg struct {
	Result *studio.Result
	Err    error
}

// attachDoneMsg is sent when files at a typed path were read.
type attachDoneMsg struct {
	Err error
}
