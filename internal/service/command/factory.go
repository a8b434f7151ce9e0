package command

import (
	"github.com/sandevgo/ragdesk/internal/core"
)

type Deps struct {
	Provider core.ProviderConfig
	Models   core.ModelLister
	Store    core.ConversationStore
	Answerer Answerer
	Booker   Booker
}

// NewRouter registers the chat commands. Commands whose dependency is missing
// are left out.
func NewRouter(d Deps) *Router {
	var cmds []core.Command
	if d.Store != nil {
		cmds = append(cmds, NewHistoryCommand(d.Store), NewClearCommand(d.Store))
	}
	if d.Answerer != nil {
		cmds = append(cmds, NewNoRAGCommand(d.Answerer))
	}
	if d.Booker != nil {
		cmds = append(cmds, NewBookCommand(d.Booker))
	}
	if d.Models != nil && d.Provider != nil {
		cmds = append(cmds, NewModelsCommand(d.Provider, d.Models))
	}

	r := New(cmds)
	r.Register(NewHelpCommand(r))
	return r
}
