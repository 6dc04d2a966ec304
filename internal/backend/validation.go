package backend

import (
	"regexp"
	"strings"
)

// IssueKind classifies a validation failure reported by the backend.
type IssueKind string

const (
	IssueQuota   IssueKind = "quota"
	IssueOverlap IssueKind = "overlap"
	IssueGeneral IssueKind = "general"
)

// Issue is one entry of a parsed validation message. Fields that could not
// be extracted stay empty.
type Issue struct {
	Kind         IssueKind
	Message      string
	Subject      string
	CurrentQuota string
	AfterQuota   string
	ConflictEnd  string
}

var (
	reQuota       = regexp.MustCompile(`(?i)quota`)
	reQuotaHit    = regexp.MustCompile(`(?i)(d[ée]pass|insuffisant)`)
	reQuotaNow    = regexp.MustCompile(`(?i)quota\s+actuel\s*:?\s*(\d+(?:[.,]\d+)?)`)
	reQuotaAfter  = regexp.MustCompile(`(?i)quota\s+apr[eè]s\s+(?:la\s+)?mission\s*:?\s*(-?\d+(?:[.,]\d+)?)`)
	reOverlap     = regexp.MustCompile(`(?i)(chevauch|conflit\s+avec)`)
	reConflictEnd = regexp.MustCompile(`(?i)se\s+termine\s+le\s*:?\s*(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})`)
	reSubject     = regexp.MustCompile(`(?i)\bpour\s+([^:,;]+?)\s*[:,]`)
	reSplit       = regexp.MustCompile(`\s*(?:;|\n)\s*`)
)

// ParseValidation turns a backend error message into issues. Recognised
// quota and overlap phrases become typed entries; when nothing is
// recognised, the whole message is returned as one general issue.
func ParseValidation(message string) []Issue {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	var (
		issues  []Issue
		matched bool
	)
	for _, seg := range reSplit.Split(message, -1) {
		if seg == "" {
			continue
		}
		is := classify(seg)
		if is.Kind != IssueGeneral {
			matched = true
		}
		issues = append(issues, is)
	}
	if !matched {
		return []Issue{{Kind: IssueGeneral, Message: message}}
	}
	return issues
}

func classify(seg string) Issue {
	is := Issue{Kind: IssueGeneral, Message: seg}
	switch {
	case reOverlap.MatchString(seg):
		is.Kind = IssueOverlap
		is.ConflictEnd = submatch(reConflictEnd, seg)
	case reQuota.MatchString(seg):
		now := submatch(reQuotaNow, seg)
		after := submatch(reQuotaAfter, seg)
		if now == "" && after == "" && !reQuotaHit.MatchString(seg) {
			return is
		}
		is.Kind = IssueQuota
		is.CurrentQuota = now
		is.AfterQuota = after
	default:
		return is
	}
	is.Subject = submatch(reSubject, seg)
	return is
}

func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
