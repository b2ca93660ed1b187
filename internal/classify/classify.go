// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify flags industry-affiliated authors by matching their
// affiliation text against a company-keyword list. Classification is a
// pure function of the affiliation text: no state, no network.
package classify

import (
	"strings"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// Classifier holds the lowercased keyword list used for matching.
type Classifier struct {
	keywords []string
}

// New returns a Classifier for the given keywords. An empty list falls
// back to DefaultKeywords. Keywords are matched case-insensitively.
func New(keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords()
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &Classifier{keywords: lowered}
}

// Keywords returns the effective keyword list.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Classify returns the verdict for one affiliation text. Empty text is
// VerdictUnknown: not industry-affiliated, but distinguishable from a
// genuine academic match.
func (c *Classifier) Classify(affiliation string) types.Verdict {
	if strings.TrimSpace(affiliation) == "" {
		return types.VerdictUnknown
	}
	lowered := strings.ToLower(affiliation)
	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return types.VerdictIndustry
		}
	}
	return types.VerdictAcademic
}

// Apply annotates a paper with per-author verdicts and aggregates the
// industry-affiliated author names and their company affiliations.
func (c *Classifier) Apply(p types.Paper) types.ClassifiedPaper {
	cp := types.ClassifiedPaper{Paper: p}
	for _, a := range p.Authors {
		v := c.Classify(a.Affiliation)
		cp.Verdicts = append(cp.Verdicts, v)
		if v == types.VerdictIndustry {
			cp.IndustryAuthors = append(cp.IndustryAuthors, a.Name)
			cp.Companies = append(cp.Companies, a.Affiliation)
		}
	}
	return cp
}

// ApplyAll classifies every paper, preserving order.
func (c *Classifier) ApplyAll(papers []types.Paper) []types.ClassifiedPaper {
	out := make([]types.ClassifiedPaper, len(papers))
	for i, p := range papers {
		out[i] = c.Apply(p)
	}
	return out
}
