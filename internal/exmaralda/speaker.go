package exmaralda

// Speaker is one conversation participant in the speaker table.
// Language fields are stored in registration order but compared as
// sets: order and duplicates do not affect equality.
type Speaker struct {
	ID            string
	Abbreviation  string
	Sex           string
	LanguagesUsed []string
	L1            []string
	L2            []string
	UDInformation string
	Comment       string
}

// Equal reports structural equality, comparing the language lists as sets.
func (s Speaker) Equal(other Speaker) bool {
	if s.ID != other.ID ||
		s.Abbreviation != other.Abbreviation ||
		s.Sex != other.Sex ||
		s.UDInformation != other.UDInformation ||
		s.Comment != other.Comment {
		return false
	}
	return stringSetEqual(s.LanguagesUsed, other.LanguagesUsed) &&
		stringSetEqual(s.L1, other.L1) &&
		stringSetEqual(s.L2, other.L2)
}

func stringSetEqual(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}
