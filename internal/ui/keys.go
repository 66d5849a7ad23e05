package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/jscyril/wpl_player/internal/config"
)

// keyMap holds the player's key bindings
type keyMap struct {
	PlayPause   key.Binding
	Next        key.Binding
	Previous    key.Binding
	SeekForward key.Binding
	SeekBack    key.Binding
	PlaySelect  key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Remove      key.Binding
	Add         key.Binding
	Save        key.Binding
	SplitFirst  key.Binding
	SplitSecond key.Binding
	Quit        key.Binding
}

func newKeyMap(km config.KeyMap) keyMap {
	return keyMap{
		PlayPause:   binding(km.PlayPause, "play/pause"),
		Next:        binding(km.Next, "next"),
		Previous:    binding(km.Previous, "prev"),
		SeekForward: binding(km.SeekForward, "seek +"),
		SeekBack:    binding(km.SeekBack, "seek -"),
		PlaySelect:  binding(km.PlaySelect, "play selected"),
		MoveUp:      binding(km.MoveUp, "move up"),
		MoveDown:    binding(km.MoveDown, "move down"),
		Remove:      binding(km.Remove, "remove"),
		Add:         binding(km.Add, "add"),
		Save:        binding(km.Save, "save"),
		SplitFirst:  binding(km.SplitFirst, "split 1st"),
		SplitSecond: binding(km.SplitSecond, "split 2nd"),
		Quit:        binding(km.Quit, "quit"),
	}
}

func binding(k, desc string) key.Binding {
	label := k
	if k == " " {
		label = "space"
	}
	return key.NewBinding(key.WithKeys(k), key.WithHelp(label, desc))
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.Previous, k.Add, k.Save, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Next, k.Previous, k.SeekForward, k.SeekBack},
		{k.PlaySelect, k.MoveUp, k.MoveDown, k.Remove, k.Add},
		{k.Save, k.SplitFirst, k.SplitSecond, k.Quit},
	}
}
