package model

import "fmt"

// Action is a symbolic tag emitted by the palette action menu. Every
// action travels with the palette's stored ID: the ID is forwarded
// from the palette, never synthesized by the menu surface.
type Action string

const (
	ActionLoad       Action = "load"
	ActionEyePreview Action = "eye-preview"
	ActionShare      Action = "share"
	ActionDelete     Action = "delete"
)

// Actions lists all menu actions in display order.
var Actions = []Action{ActionLoad, ActionEyePreview, ActionShare, ActionDelete}

// ParseAction validates an action tag.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Label returns a human-readable menu label for the action.
func (a Action) Label() string {
	switch a {
	case ActionLoad:
		return "Load palette"
	case ActionEyePreview:
		return "Preview"
	case ActionShare:
		return "Share"
	case ActionDelete:
		return "Delete"
	}
	return string(a)
}
