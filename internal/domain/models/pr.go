package models

import "strings"

// PullRequest is the slice of GitHub pull request data the release notes
// need. It is built once by the VCS layer and never mutated afterwards.
type PullRequest struct {
	Number         int
	Title          string
	Labels         LabelSet
	Merged         bool
	MergeCommitSHA string
	// Author is the user that opened the pull request. Only the docs
	// source credits it; the main repo credits the merge commit instead.
	Author User
}

// LabelSet holds the lower-cased label names of a pull request.
type LabelSet map[string]struct{}

func NewLabelSet(names ...string) LabelSet {
	s := make(LabelSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s LabelSet) Add(name string) {
	s[strings.ToLower(name)] = struct{}{}
}

func (s LabelSet) Contains(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// User identifies a GitHub account. Name is the profile display name and
// may be empty when the profile has none.
type User struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
}

// Commit carries the authorship metadata of a merge commit. Author and
// Committer are nil when GitHub could not associate an account.
type Commit struct {
	SHA       string `json:"sha"`
	Author    *User  `json:"author,omitempty"`
	Committer *User  `json:"committer,omitempty"`
}

// Review is a single pull request review event. User is nil when the
// reviewing account was deleted.
type Review struct {
	User *User `json:"user,omitempty"`
}
