// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Author holds one author of a paper as returned by PubMed.
type Author struct {
	// Name is the display name ("LastName, ForeName" or the collective name).
	Name string `json:"name" yaml:"name"`

	// Affiliation is the free-text institutional affiliation, empty when
	// PubMed supplies none.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Paper holds the metadata extracted from one PubMed record.
type Paper struct {
	// PMID is the PubMed identifier of the record.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Date is the publication date, best-effort normalized to
	// "YYYY-MM-DD", "YYYY-MM", or "YYYY". Empty when PubMed has no date.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// Authors lists the authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// CorrespondingEmail is an email address harvested from author
	// affiliation text, empty when none was found.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}

// Verdict classifies a single author's affiliation.
type Verdict string

const (
	// VerdictIndustry marks an affiliation matching the company keywords.
	VerdictIndustry Verdict = "industry"

	// VerdictAcademic marks an affiliation matching no company keyword.
	VerdictAcademic Verdict = "academic"

	// VerdictUnknown marks an author with no affiliation text. Treated as
	// not industry-affiliated, but kept distinct for reporting.
	VerdictUnknown Verdict = "unknown"
)

// ClassifiedPaper annotates a Paper with per-author verdicts and the
// aggregated industry-affiliated authors for the whole record.
type ClassifiedPaper struct {
	Paper `yaml:",inline"`

	// Verdicts holds one verdict per author, in author order.
	Verdicts []Verdict `json:"verdicts" yaml:"verdicts"`

	// IndustryAuthors lists the names of industry-affiliated authors.
	IndustryAuthors []string `json:"industry_authors,omitempty" yaml:"industry_authors,omitempty"`

	// Companies lists the affiliation text of each industry-affiliated
	// author, parallel to IndustryAuthors.
	Companies []string `json:"companies,omitempty" yaml:"companies,omitempty"`
}

// HasIndustryAuthors reports whether any author was classified as industry.
func (p ClassifiedPaper) HasIndustryAuthors() bool {
	return len(p.IndustryAuthors) > 0
}
