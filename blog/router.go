package blog

import (
	"fmt"

	"github.com/spetersoncode/blogsmith/workflow"
)

// Node is a state of the pipeline machine.
type Node int

const (
	NodeResearch Node = iota
	NodeSEO
	NodeWriting
	NodeScoring
	NodeArt
	NodeTerminatedFailure
	NodeTerminatedSuccess
)

// NodeNone is the Terminal of an Outcome whose run stopped on an error
// before reaching a terminal node.
const NodeNone Node = -1

var nodeNames = map[Node]string{
	NodeResearch:          "research",
	NodeSEO:               "seo",
	NodeWriting:           "writing",
	NodeScoring:           "scoring",
	NodeArt:               "art",
	NodeTerminatedFailure: "terminated_failure",
	NodeTerminatedSuccess: "terminated_success",
	NodeNone:              "none",
}

func (n Node) String() string {
	if name, ok := nodeNames[n]; ok {
		return name
	}
	return fmt.Sprintf("node(%d)", int(n))
}

// MarshalText encodes the node by name.
func (n Node) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Terminal reports whether n ends a run.
func (n Node) Terminal() bool {
	return n == NodeTerminatedFailure || n == NodeTerminatedSuccess
}

// RewriteMode selects who requests a rewrite after a low score.
type RewriteMode string

const (
	// RewriteAuto lets the router request a rewrite for every low score.
	RewriteAuto RewriteMode = "auto"

	// RewriteManual leaves the request to the caller, through
	// Pipeline.ResumeWithRewriteFeedback.
	RewriteManual RewriteMode = "manual"
)

// ParseRewriteMode converts a config string to a RewriteMode.
func ParseRewriteMode(s string) (RewriteMode, bool) {
	switch RewriteMode(s) {
	case RewriteAuto, "":
		return RewriteAuto, true
	case RewriteManual:
		return RewriteManual, true
	}
	return "", false
}

// Rewrite loop defaults.
const (
	DefaultThreshold   = 60
	DefaultMaxRewrites = 2
)

// RouteInput is what the router reads from state.
type RouteInput struct {
	ScrapeFailed     bool
	Score            int
	RewriteCount     int
	RewriteRequested bool
	QualityReport    string
}

// RouteInputFrom reads a RouteInput from state.
func RouteInputFrom(s *workflow.State) RouteInput {
	return RouteInput{
		ScrapeFailed:     scrapeFailed(s),
		Score:            s.GetInt(FieldQualityScore),
		RewriteCount:     s.GetInt(FieldRewriteCount),
		RewriteRequested: s.GetBool(FieldRewriteRequested),
		QualityReport:    s.GetString(FieldQualityReport),
	}
}

// Router is the transition function of the pipeline.
type Router struct {
	Mode        RewriteMode
	Threshold   int
	MaxRewrites int
}

// DefaultRouter returns a router with the default threshold and budget.
func DefaultRouter(mode RewriteMode) Router {
	return Router{Mode: mode, Threshold: DefaultThreshold, MaxRewrites: DefaultMaxRewrites}
}

// Next returns the node after from and the routing patch to merge. It is a
// pure function of its arguments.
func (r Router) Next(from Node, in RouteInput) (Node, workflow.Patch) {
	switch from {
	case NodeResearch:
		if in.ScrapeFailed {
			return NodeTerminatedFailure, nil
		}
		return NodeSEO, nil
	case NodeSEO:
		return NodeWriting, nil
	case NodeWriting:
		return NodeScoring, nil
	case NodeScoring:
		if r.ShouldRewrite(in) {
			p := KeyRewriteRequested.Set(nil, true)
			KeyRewriteFeedback.Set(p, in.QualityReport)
			return NodeWriting, p
		}
		return NodeArt, nil
	case NodeArt:
		return NodeTerminatedSuccess, nil
	}
	return from, nil
}

// ShouldRewrite reports whether a scored draft goes back to writing.
func (r Router) ShouldRewrite(in RouteInput) bool {
	requested := in.RewriteRequested || r.Mode == RewriteAuto
	return requested && in.Score <= r.Threshold && in.RewriteCount < r.MaxRewrites
}
