package handlers

import (
	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/mission"
)

// issueView is one line of the validation error list.
type issueView struct {
	Kind string
	Text string
}

func issueViews(l string, issues []backend.Issue) []issueView {
	out := make([]issueView, 0, len(issues))
	for _, is := range issues {
		out = append(out, issueView{Kind: string(is.Kind), Text: issueText(l, is)})
	}
	return out
}

func issueTexts(l string, issues []backend.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, issueText(l, is))
	}
	return out
}

func issueText(l string, is backend.Issue) string {
	var text string
	switch is.Kind {
	case backend.IssueQuota:
		switch {
		case is.CurrentQuota != "" && is.AfterQuota != "":
			text = i18n.Tf(l, "validation.quota", is.CurrentQuota, is.AfterQuota)
		case is.CurrentQuota != "":
			text = i18n.Tf(l, "validation.quota_current", is.CurrentQuota)
		case is.AfterQuota != "":
			text = i18n.Tf(l, "validation.quota_after", is.AfterQuota)
		default:
			text = i18n.T(l, "validation.quota_plain")
		}
	case backend.IssueOverlap:
		if is.ConflictEnd != "" {
			text = i18n.Tf(l, "validation.overlap", mission.FormatDate(is.ConflictEnd))
		} else {
			text = i18n.T(l, "validation.overlap_bare")
		}
	default:
		return is.Message
	}
	if is.Subject != "" {
		text = is.Subject + " : " + text
	}
	return text
}
