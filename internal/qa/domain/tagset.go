package domain

import (
	"encoding/json"
	"strings"
)

// TagSet is an ordered set of at most MaxTags distinct tag titles.
// Order is the order of selection and decides which slot a tag lands in.
type TagSet struct {
	items []string
}

// NewTagSet builds a set from titles, dropping blanks and duplicates.
// Titles past MaxTags are kept so validation can report them.
func NewTagSet(titles ...string) TagSet {
	var s TagSet
	for _, t := range titles {
		t = strings.TrimSpace(t)
		if t == "" || s.Contains(t) {
			continue
		}
		s.items = append(s.items, t)
	}
	return s
}

// TagSetFromSlots rebuilds a set from nullable positional columns.
func TagSetFromSlots(slots ...*string) TagSet {
	titles := make([]string, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			titles = append(titles, *s)
		}
	}
	return NewTagSet(titles...)
}

func (s TagSet) Len() int { return len(s.items) }

func (s TagSet) Contains(tag string) bool {
	for _, t := range s.items {
		if t == tag {
			return true
		}
	}
	return false
}

// Titles returns a copy of the members in selection order.
func (s TagSet) Titles() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Slots maps the set onto the three positional tag columns.
func (s TagSet) Slots() [MaxTags]*string {
	var slots [MaxTags]*string
	for i := 0; i < len(s.items) && i < MaxTags; i++ {
		t := s.items[i]
		slots[i] = &t
	}
	return slots
}

func (s TagSet) with(tag string) TagSet {
	items := make([]string, len(s.items), len(s.items)+1)
	copy(items, s.items)
	return TagSet{items: append(items, tag)}
}

func (s TagSet) without(tag string) TagSet {
	items := make([]string, 0, len(s.items))
	for _, t := range s.items {
		if t != tag {
			items = append(items, t)
		}
	}
	return TagSet{items: items}
}

// Add returns the set with tag appended. It does not enforce MaxTags.
func (s TagSet) Add(tag string) TagSet {
	if s.Contains(tag) {
		return s
	}
	return s.with(tag)
}

// Remove returns the set without tag.
func (s TagSet) Remove(tag string) TagSet {
	if !s.Contains(tag) {
		return s
	}
	return s.without(tag)
}

func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Titles())
}

func (s *TagSet) UnmarshalJSON(b []byte) error {
	var titles []string
	if err := json.Unmarshal(b, &titles); err != nil {
		return err
	}
	*s = NewTagSet(titles...)
	return nil
}
