package swipe

import "iter"

// ButtonWidth is the width of every action button.
const ButtonWidth = 100.0

// ActionList is an ordered, fixed collection of actions.
type ActionList struct {
	items []Action
}

// Actions collects actions in declaration order. Duplicates are kept.
func Actions(actions ...Action) ActionList {
	return ActionList{items: append([]Action(nil), actions...)}
}

// Len returns the number of actions.
func (l ActionList) Len() int { return len(l.items) }

// At returns the action at index i.
func (l ActionList) At(i int) Action { return l.items[i] }

// First returns the first action, the source of the content background tint.
func (l ActionList) First() (Action, bool) {
	if len(l.items) == 0 {
		return Action{}, false
	}
	return l.items[0], true
}

// Last returns the last action, the source of the track background tint.
func (l ActionList) Last() (Action, bool) {
	if len(l.items) == 0 {
		return Action{}, false
	}
	return l.items[len(l.items)-1], true
}

// Width returns the width of the button strip.
func (l ActionList) Width() float64 {
	return float64(len(l.items)) * ButtonWidth
}

// All iterates over the actions in order.
func (l ActionList) All() iter.Seq2[int, Action] {
	return func(yield func(int, Action) bool) {
		for i, a := range l.items {
			if !yield(i, a) {
				return
			}
		}
	}
}
