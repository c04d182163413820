package metadata

import (
	"fmt"
	"regexp"
	"strings"
)

// Metadata files are loosely-markdown text: "**Label:** value" lines (bold
// markup optional) plus "## Heading" sections. Authoring is messy and has
// drifted over time, so every field tolerates its historical spelling
// variants and parsing never fails; unmatched fields stay empty.

const sectionLimit = 300 // max runes kept from problem/solution bodies

const maxIndexedCompanies = 5

var (
	titleRe       = regexp.MustCompile(`(?m)^#\s+(.+?)\s*$`)
	titlePrefixRe = regexp.MustCompile(`(?i)^(?:Episode|פרק)\s+\d+:\s*`)

	guestsRe         = labelRe(`Guests?|Key Experts?`)
	sectorRe         = labelRe(`Sectors?|Topic`)
	keywordsRe       = labelRe(`Keywords`)
	guestLinkedInRe  = labelRe(`Guest LinkedIn`)
	companyWebsiteRe = labelRe(`Company Website`)
	companyNameRe    = labelRe(`Company Name`)
	companyLogoRe    = labelRe(`Company Logo`)

	// "Reasercher" is a recurring typo in the corpus, tolerated on purpose
	researcherRe        = labelRe(`Researcher|Reasercher`)
	researcherLinkRe    = labelRe(`(?:Researcher|Reasercher) LinkedIn`)
	researcherScholarRe = labelRe(`(?:Researcher|Reasercher) Google Scholar`)
	researcherSiteRe    = labelRe(`(?:Researcher|Reasercher) Website`)

	problemSectionRe   = sectionRe(`The Problem`)
	solutionSectionRe  = sectionRe(`The Solution`)
	insightSectionRe   = sectionRe(`Entrepreneur Insight`)
	keyPointsSectionRe = sectionRe(`Key (?:Discussion )?Points`)

	// Comma and Arabic comma both appear in Hebrew authoring
	listSplitRe   = regexp.MustCompile(`[,،]`)
	sectorSplitRe = regexp.MustCompile(`\s*[/,]\s*`)

	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	bilingualRe     = regexp.MustCompile(`^(.+?)\s*/\s*(.+?)$`)
	bulletPrefixRe  = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)
)

// labelRe matches a "Label: value" line, with or without bold markup around
// the label. First match wins at every call site.
func labelRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\*{0,2}(?:` + label + `):\*{0,2}\s*(.+?)\s*$`)
}

// sectionRe captures the body between a "## Heading" line and the next
// heading (or end of file).
func sectionRe(heading string) *regexp.Regexp {
	return regexp.MustCompile(`##\s*` + heading + `[^\n]*\n((?s:.*?))(?:\n##|\z)`)
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run extracts structured fields from a metadata file's content. It never
// fails: a file that matches nothing still yields a Meta with the given
// episode number and empty fields.
func (p *Parser) Run(content string, episodeNumber int) Meta {
	meta := Meta{
		Number:   episodeNumber,
		Guests:   []string{},
		Keywords: []Keyword{},
	}

	if m := titleRe.FindStringSubmatch(content); m != nil {
		meta.Title = strings.TrimSpace(titlePrefixRe.ReplaceAllString(m[1], ""))
	}

	if m := guestsRe.FindStringSubmatch(content); m != nil {
		cleaned := parentheticalRe.ReplaceAllString(m[1], "")
		meta.Guests = splitList(cleaned)
	}

	if m := sectorRe.FindStringSubmatch(content); m != nil {
		sectors := sectorSplitRe.Split(m[1], -1)
		meta.Sector = strings.TrimSpace(sectors[0])
	}

	if m := keywordsRe.FindStringSubmatch(content); m != nil {
		meta.Keywords = parseKeywords(m[1])
	}

	meta.Problem = truncate(extractSection(problemSectionRe, content), sectionLimit)
	meta.Solution = truncate(extractSection(solutionSectionRe, content), sectionLimit)
	meta.EntrepreneurInsight = extractSection(insightSectionRe, content)
	meta.KeyPoints = parseKeyPoints(extractSection(keyPointsSectionRe, content))

	if m := guestLinkedInRe.FindStringSubmatch(content); m != nil {
		meta.GuestLinkedIn = splitList(m[1])
	}
	if m := companyWebsiteRe.FindStringSubmatch(content); m != nil {
		meta.CompanyWebsite = m[1]
	}
	if m := companyNameRe.FindStringSubmatch(content); m != nil {
		meta.CompanyName = m[1]
	}
	if m := companyLogoRe.FindStringSubmatch(content); m != nil {
		meta.CompanyLogo = m[1]
	}

	meta.Companies = parseCompanies(content, meta.Guests)
	meta.Researcher = parseResearcher(content)

	return meta
}

func parseKeywords(text string) []Keyword {
	parts := splitList(text)
	keywords := make([]Keyword, 0, len(parts))
	for _, part := range parts {
		if m := bilingualRe.FindStringSubmatch(part); m != nil {
			keywords = append(keywords, BilingualKeyword(strings.TrimSpace(m[1]), strings.TrimSpace(m[2])))
		} else {
			keywords = append(keywords, PlainKeyword(part))
		}
	}
	return keywords
}

// parseCompanies extracts indexed multi-company labels ("Company Name 2:",
// "Company 2 Logo:", ...). A successfully-named index becomes one entry;
// its guest name falls back to the positionally-matching entry of the flat
// guests list when no indexed guest label exists.
func parseCompanies(content string, guests []string) []CompanyInfo {
	var companies []CompanyInfo

	for i := 1; i <= maxIndexedCompanies; i++ {
		name := findIndexedLabel(content, fmt.Sprintf(`Company Name %d`, i))
		if name == "" {
			continue
		}

		company := CompanyInfo{
			Name:          name,
			Logo:          findIndexedLabel(content, fmt.Sprintf(`Company %d Logo`, i)),
			Website:       findIndexedLabel(content, fmt.Sprintf(`Company %d Website`, i)),
			GuestName:     findIndexedLabel(content, fmt.Sprintf(`Company %d Guest`, i)),
			GuestTitle:    findIndexedLabel(content, fmt.Sprintf(`Company %d Guest Title`, i)),
			GuestLinkedIn: findIndexedLabel(content, fmt.Sprintf(`Company %d Guest LinkedIn`, i)),
			Focus:         findIndexedLabel(content, fmt.Sprintf(`Company %d Focus`, i)),
		}

		if company.GuestName == "" && i <= len(guests) {
			company.GuestName = guests[i-1]
		}

		companies = append(companies, company)
	}

	return companies
}

func parseResearcher(content string) *ResearcherInfo {
	m := researcherRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	researcher := &ResearcherInfo{Name: m[1]}
	if lm := researcherLinkRe.FindStringSubmatch(content); lm != nil {
		researcher.LinkedIn = lm[1]
	}
	if sm := researcherScholarRe.FindStringSubmatch(content); sm != nil {
		researcher.GoogleScholar = sm[1]
	}
	if wm := researcherSiteRe.FindStringSubmatch(content); wm != nil {
		researcher.Website = wm[1]
	}
	return researcher
}

func parseKeyPoints(section string) []string {
	if section == "" {
		return nil
	}

	var points []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			points = append(points, line)
		}
	}
	return points
}

func findIndexedLabel(content, label string) string {
	re := regexp.MustCompile(`(?m)^\*{0,2}` + label + `:\*{0,2}\s*(.+?)\s*$`)
	if m := re.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

func extractSection(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func splitList(text string) []string {
	parts := listSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
