package blog

import (
	"context"

	"github.com/spetersoncode/blogsmith/fetch"
	"github.com/spetersoncode/blogsmith/workflow"
)

// StageResearch is the name of the research stage.
const StageResearch = "research"

type researchStage struct {
	fetcher ContentFetcher
	report  *reporter
}

func (st *researchStage) Name() string { return StageResearch }

// Run fetches source_url once. Failure is recorded in the patch, not
// returned: the router ends the run on it.
func (st *researchStage) Run(ctx context.Context, s *workflow.State) (workflow.Patch, error) {
	if st.fetcher == nil {
		return failurePatch(ReasonNetwork, "no content fetcher configured"), nil
	}

	page, err := st.fetcher.Fetch(ctx, s.GetString(FieldSourceURL))
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		reason := reasonFor(err)
		st.report.log.WarnContext(ctx, "source fetch failed",
			"run_id", runIDFrom(ctx), "url", s.GetString(FieldSourceURL), "reason", reason, "error", err)
		return failurePatch(reason, err.Error()), nil
	}
	if page == nil || page.Text == "" {
		return failurePatch(ReasonForbidden, ""), nil
	}

	p := KeyScrapedTitle.Set(nil, page.Title)
	KeyScrapedText.Set(p, page.Text)
	KeyScrapeFailed.Set(p, false)
	return p, nil
}

func failurePatch(reason FailureReason, detail string) workflow.Patch {
	p := KeyScrapedTitle.Set(nil, "")
	KeyScrapedText.Set(p, FailureMarker(reason, detail))
	KeyScrapeFailed.Set(p, true)
	return p
}

func reasonFor(err error) FailureReason {
	switch fetch.ReasonOf(err) {
	case fetch.ReasonForbidden:
		return ReasonForbidden
	case fetch.ReasonUnparseable:
		return ReasonUnparseable
	default:
		return ReasonNetwork
	}
}
