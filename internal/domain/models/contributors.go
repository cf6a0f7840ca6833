package models

// LoginSet is a set of GitHub logins.
type LoginSet map[string]struct{}

func NewLoginSet(logins ...string) LoginSet {
	s := make(LoginSet, len(logins))
	for _, l := range logins {
		s.Add(l)
	}
	return s
}

func (s LoginSet) Add(login string) {
	s[login] = struct{}{}
}

func (s LoginSet) Contains(login string) bool {
	_, ok := s[login]
	return ok
}

func (s LoginSet) Len() int {
	return len(s)
}

// Subtract removes every login of other from the set.
func (s LoginSet) Subtract(other LoginSet) {
	for login := range other {
		delete(s, login)
	}
}

// Union returns a new set with the logins of both sets.
func (s LoginSet) Union(other LoginSet) LoginSet {
	out := make(LoginSet, len(s)+len(other))
	for login := range s {
		out.Add(login)
	}
	for login := range other {
		out.Add(login)
	}
	return out
}

// Logins returns the members in unspecified order.
func (s LoginSet) Logins() []string {
	out := make([]string, 0, len(s))
	for login := range s {
		out = append(out, login)
	}
	return out
}

// Contributors holds the role sets collected while walking a milestone.
// The sets only grow during a run; ExcludeBots is the single final
// subtraction.
type Contributors struct {
	Authors        LoginSet
	Committers     LoginSet
	DocsAuthors    LoginSet
	DocsCommitters LoginSet
	Reviewers      LoginSet
	DocsReviewers  LoginSet
}

func NewContributors() *Contributors {
	return &Contributors{
		Authors:        NewLoginSet(),
		Committers:     NewLoginSet(),
		DocsAuthors:    NewLoginSet(),
		DocsCommitters: NewLoginSet(),
		Reviewers:      NewLoginSet(),
		DocsReviewers:  NewLoginSet(),
	}
}

// ExcludeBots removes the known bot logins from every role set. Called
// once, after all sources are exhausted.
func (c *Contributors) ExcludeBots(bots LoginSet) {
	c.Authors.Subtract(bots)
	c.Committers.Subtract(bots)
	c.DocsAuthors.Subtract(bots)
	c.DocsCommitters.Subtract(bots)
	c.Reviewers.Subtract(bots)
	c.DocsReviewers.Subtract(bots)
}
