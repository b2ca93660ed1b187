// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// PubMed efetch XML structures. Shapes follow the NCBI PubmedArticleSet
// schema; only the fields the pipeline extracts are declared.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string        `xml:"PMID"`
	Article pubmedDetails `xml:"Article"`
}

type pubmedDetails struct {
	Title        string        `xml:"ArticleTitle"`
	Journal      pubmedJournal `xml:"Journal"`
	ArticleDates []pubmedDate  `xml:"ArticleDate"`
	AuthorList   struct {
		Authors []pubmedAuthor `xml:"Author"`
	} `xml:"AuthorList"`
}

type pubmedJournal struct {
	Issue struct {
		PubDate pubmedDate `xml:"PubDate"`
	} `xml:"JournalIssue"`
}

type pubmedDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type pubmedAuthor struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
	Affiliations   []struct {
		Affiliation string `xml:"Affiliation"`
	} `xml:"AffiliationInfo"`
}

// emailPattern matches an email address embedded in affiliation text.
var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)

// parseArticleSet decodes an efetch PubmedArticleSet document into papers.
// Articles without a PMID or title are skipped; the fetch layer reports
// them against the requested PMIDs so the batch accounting stays exact.
// An undecodable document is an error for the whole payload.
func parseArticleSet(data []byte) ([]types.Paper, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	var papers []types.Paper
	for _, a := range set.Articles {
		p, ok := buildPaper(a)
		if !ok {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// buildPaper extracts one Paper from a PubmedArticle element. It returns
// ok=false when the element lacks the structurally required PMID or title.
func buildPaper(a pubmedArticle) (types.Paper, bool) {
	pmid := strings.TrimSpace(a.Citation.PMID)
	title := strings.TrimSpace(a.Citation.Article.Title)
	if pmid == "" || title == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		PMID:  pmid,
		Title: title,
		Date:  articleDate(a.Citation.Article),
	}

	for _, pa := range a.Citation.Article.AuthorList.Authors {
		author := types.Author{Name: authorName(pa)}
		if author.Name == "" {
			continue
		}
		if len(pa.Affiliations) > 0 {
			author.Affiliation = strings.TrimSpace(pa.Affiliations[0].Affiliation)
		}
		// Affiliation text often carries the corresponding author's
		// address; the last one found wins.
		if email := extractEmail(author.Affiliation); email != "" {
			p.CorrespondingEmail = email
		}
		p.Authors = append(p.Authors, author)
	}

	return p, true
}

// authorName renders "LastName, ForeName", falling back to the collective
// name for group authors.
func authorName(a pubmedAuthor) string {
	last := strings.TrimSpace(a.LastName)
	fore := strings.TrimSpace(a.ForeName)
	switch {
	case last != "" && fore != "":
		return last + ", " + fore
	case last != "":
		return last
	default:
		return strings.TrimSpace(a.CollectiveName)
	}
}

// articleDate normalizes the publication date, preferring the journal
// issue PubDate and falling back to ArticleDate. Missing components
// shorten the result: "2017-06-12", "2017-06", "2017", or "".
func articleDate(d pubmedDetails) string {
	if s := normalizeDate(d.Journal.Issue.PubDate); s != "" {
		return s
	}
	for _, ad := range d.ArticleDates {
		if s := normalizeDate(ad); s != "" {
			return s
		}
	}
	return ""
}

func normalizeDate(d pubmedDate) string {
	year := strings.TrimSpace(d.Year)
	if year == "" {
		// MedlineDate holds free-form ranges like "2015 Jan-Feb";
		// take the leading year when present.
		md := strings.TrimSpace(d.MedlineDate)
		if len(md) >= 4 {
			if _, err := strconv.Atoi(md[:4]); err == nil {
				return md[:4]
			}
		}
		return ""
	}

	month := monthNumber(d.Month)
	if month == 0 {
		return year
	}

	day, err := strconv.Atoi(strings.TrimSpace(d.Day))
	if err != nil || day < 1 || day > 31 {
		return fmt.Sprintf("%s-%02d", year, month)
	}
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

// monthNames maps the English month abbreviations PubMed uses to numbers.
var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// monthNumber accepts a numeric month ("6", "06") or an English name
// ("Jun", "June") and returns 1-12, or 0 when unrecognized.
func monthNumber(m string) int {
	m = strings.TrimSpace(m)
	if m == "" {
		return 0
	}
	if n, err := strconv.Atoi(m); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	key := strings.ToLower(m)
	if len(key) > 3 {
		key = key[:3]
	}
	return monthNames[key]
}

// extractEmail pulls the first email address out of affiliation text.
// PubMed affiliations usually end the address with a period, which is not
// part of the email.
func extractEmail(affiliation string) string {
	email := emailPattern.FindString(affiliation)
	return strings.TrimRight(email, ".-")
}
