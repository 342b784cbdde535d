package validation

// Profile field names.
const (
	FieldUsername         = "username"
	FieldCommunityCollege = "community_college"
	FieldCollegeMajor     = "college_major"
)

// ProfileRules mirrors the sign-up form minimums.
type ProfileRules struct {
	UsernameMin int
	CollegeMin  int
	MajorMin    int
}

func DefaultProfileRules() ProfileRules {
	return ProfileRules{UsernameMin: 3, CollegeMin: 2, MajorMin: 2}
}

func (r ProfileRules) Profile(username, college, major string) FieldErrors {
	errs := FieldErrors{}
	if msg := minLength("Username", username, r.UsernameMin); msg != "" {
		errs[FieldUsername] = msg
	}
	if msg := minLength("Community college", college, r.CollegeMin); msg != "" {
		errs[FieldCommunityCollege] = msg
	}
	if msg := minLength("Major", major, r.MajorMin); msg != "" {
		errs[FieldCollegeMajor] = msg
	}
	return errs
}
