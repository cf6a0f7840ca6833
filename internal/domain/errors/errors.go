package errors

import "fmt"

// UnmergedPullRequestError indicates that a pull request returned by a
// "is:merged" query is not actually merged. That breaks the query contract
// and aborts the run.
type UnmergedPullRequestError struct {
	Repo   string
	Number int
}

func (e *UnmergedPullRequestError) Error() string {
	return fmt.Sprintf("pull request %s#%d returned by merged query but not merged", e.Repo, e.Number)
}

// NewUnmergedPullRequestError creates a new unmerged pull request error
func NewUnmergedPullRequestError(repo string, number int) *UnmergedPullRequestError {
	return &UnmergedPullRequestError{Repo: repo, Number: number}
}

// DuplicateCorrectionError indicates that a correction file lists the same
// login twice.
type DuplicateCorrectionError struct {
	Login string
}

func (e *DuplicateCorrectionError) Error() string {
	return fmt.Sprintf("correction file lists login '%s' more than once", e.Login)
}

// NewDuplicateCorrectionError creates a new duplicate correction error
func NewDuplicateCorrectionError(login string) *DuplicateCorrectionError {
	return &DuplicateCorrectionError{Login: login}
}

// MissingTokenError indicates that no GitHub token was found in the
// environment at startup.
type MissingTokenError struct {
	Variables []string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("no GitHub token found, set one of %v", e.Variables)
}

// NewMissingTokenError creates a new missing token error
func NewMissingTokenError(variables ...string) *MissingTokenError {
	return &MissingTokenError{Variables: variables}
}
