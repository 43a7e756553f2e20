package nav

import "fmt"

// IssueKind classifies a degradation encountered during traversal. None of
// these abort the run; check mode surfaces them and fails the process.
type IssueKind string

const (
	IssueUnreadableFile IssueKind = "unreadable-file"
	IssueMissingInclude IssueKind = "missing-include"
	IssueUntitledPage   IssueKind = "untitled-page"
	IssueMissingMaster  IssueKind = "missing-master"
	IssueOutsidePages   IssueKind = "outside-pages-dir"
	IssueStubWrite      IssueKind = "alias-stub-write"
)

// Issue records one degradation: what went wrong and where.
type Issue struct {
	Kind   IssueKind
	Path   string
	Detail string
}

func (i Issue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Path)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Kind, i.Path, i.Detail)
}
