package submit

import "github.com/mentormap/mentormap-backend/internal/qa/domain"

// TagSelection is the tag picker state: a set of 0..Max tags.
type TagSelection struct {
	set domain.TagSet
	Max int
}

func NewTagSelection() *TagSelection {
	return &TagSelection{Max: domain.MaxTags}
}

// Toggle deselects a selected tag, otherwise selects it while below capacity.
// At capacity the call is a no-op and returns false so the caller can show the cap.
func (s *TagSelection) Toggle(tag string) bool {
	if s.set.Contains(tag) {
		s.set = s.set.Remove(tag)
		return true
	}
	if s.AtCapacity() {
		return false
	}
	s.set = s.set.Add(tag)
	return true
}

func (s *TagSelection) AtCapacity() bool {
	return s.set.Len() >= s.max()
}

func (s *TagSelection) Tags() domain.TagSet { return s.set }

func (s *TagSelection) Reset() { s.set = domain.TagSet{} }

func (s *TagSelection) max() int {
	if s.Max <= 0 {
		return domain.MaxTags
	}
	return s.Max
}
