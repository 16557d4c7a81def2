package view

import "strings"

// MaxCompared is the number of channels the comparison view shows at once.
const MaxCompared = 2

// Selection is the ordered set of channel ids picked for comparison.
// It never holds more than MaxCompared ids.
type Selection struct {
	ids []string
}

// ParseSelection reads a comma separated id list, dropping blanks and
// duplicates and ignoring anything past MaxCompared.
func ParseSelection(s string) *Selection {
	sel := &Selection{}
	for _, id := range strings.Split(s, ",") {
		sel.Add(strings.TrimSpace(id))
	}
	return sel
}

// Add appends id. It reports false, leaving the selection unchanged, when
// the selection is full, id is empty, or id is already selected.
func (s *Selection) Add(id string) bool {
	if id == "" || s.Full() || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove drops id and reports whether it was selected.
func (s *Selection) Remove(id string) bool {
	for i, cur := range s.ids {
		if cur == id {
			s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Selection) Contains(id string) bool {
	for _, cur := range s.ids {
		if cur == id {
			return true
		}
	}
	return false
}

func (s *Selection) Full() bool { return len(s.ids) >= MaxCompared }

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// With returns a copy of the selection with id added, if it fits.
func (s *Selection) With(id string) *Selection {
	next := &Selection{ids: s.IDs()}
	next.Add(id)
	return next
}

// Without returns a copy of the selection with id removed.
func (s *Selection) Without(id string) *Selection {
	next := &Selection{ids: s.IDs()}
	next.Remove(id)
	return next
}

func (s *Selection) String() string {
	return strings.Join(s.ids, ",")
}
