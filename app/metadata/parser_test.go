package metadata

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRunBilingualKeywords(t *testing.T) {
	content := `# Episode 7: How do you remove carbon?

**Keywords:** קליימט-טק / Climate Tech, Startups
`

	meta := NewParser().Run(content, 7)

	if len(meta.Keywords) != 2 {
		t.Fatalf("Expected 2 keywords, got: %d", len(meta.Keywords))
	}

	first := meta.Keywords[0]
	if !first.IsBilingual() {
		t.Error("Expected first keyword to be bilingual")
	}
	if first.Hebrew != "קליימט-טק" {
		t.Errorf("Expected Hebrew 'קליימט-טק', got: %s", first.Hebrew)
	}
	if first.English != "Climate Tech" {
		t.Errorf("Expected English 'Climate Tech', got: %s", first.English)
	}

	second := meta.Keywords[1]
	if second.IsBilingual() {
		t.Error("Expected second keyword to be plain")
	}
	if second.Plain != "Startups" {
		t.Errorf("Expected plain keyword 'Startups', got: %s", second.Plain)
	}
}

func TestKeywordJSONRoundTrip(t *testing.T) {
	keywords := []Keyword{
		BilingualKeyword("קליימט-טק", "Climate Tech"),
		PlainKeyword("Startups"),
	}

	data, err := json.Marshal(keywords)
	if err != nil {
		t.Fatalf("Expected no error marshalling, got: %v", err)
	}

	expected := `[{"he":"קליימט-טק","en":"Climate Tech"},"Startups"]`
	if string(data) != expected {
		t.Errorf("Expected %s, got: %s", expected, data)
	}

	var decoded []Keyword
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected no error unmarshalling, got: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("Expected 2 keywords, got: %d", len(decoded))
	}
	if !decoded[0].IsBilingual() || decoded[0].Hebrew != "קליימט-טק" {
		t.Errorf("Bilingual keyword did not survive round trip: %+v", decoded[0])
	}
	if decoded[1].Plain != "Startups" {
		t.Errorf("Plain keyword did not survive round trip: %+v", decoded[1])
	}
}

func TestRunTitleAndGuests(t *testing.T) {
	content := `# Episode 9: What's the problem with pesticides?

**Guests:** איתי דגן (Itai Dagan)، נדב בוצר, דנה לוי
**Sector:** AgriTech / Precision Agriculture
`

	meta := NewParser().Run(content, 9)

	if meta.Title != "What's the problem with pesticides?" {
		t.Errorf("Expected title without episode prefix, got: %s", meta.Title)
	}

	if len(meta.Guests) != 3 {
		t.Fatalf("Expected 3 guests, got: %d (%v)", len(meta.Guests), meta.Guests)
	}
	// Parenthetical English names are removed
	if meta.Guests[0] != "איתי דגן" {
		t.Errorf("Expected guest 'איתי דגן', got: %s", meta.Guests[0])
	}

	// First sector before the slash wins
	if meta.Sector != "AgriTech" {
		t.Errorf("Expected sector 'AgriTech', got: %s", meta.Sector)
	}
}

func TestRunSectorLabelVariants(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"sector", "**Sector:** FoodTech"},
		{"sectors", "**Sectors:** FoodTech, AgriTech"},
		{"topic", "**Topic:** FoodTech"},
		{"plain", "Sector: FoodTech"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := NewParser().Run(tc.content, 1)
			if meta.Sector != "FoodTech" {
				t.Errorf("Expected sector 'FoodTech', got: %s", meta.Sector)
			}
		})
	}
}

func TestRunSections(t *testing.T) {
	content := `# Episode 5: Wildfires

## The Problem

Wildfires destroy ecosystems.

## The Solution

Early detection with acoustic sensors.

## Entrepreneur Insight

Move fast, the climate does not wait.
`

	meta := NewParser().Run(content, 5)

	if meta.Problem != "Wildfires destroy ecosystems." {
		t.Errorf("Expected problem section, got: %q", meta.Problem)
	}
	if meta.Solution != "Early detection with acoustic sensors." {
		t.Errorf("Expected solution section, got: %q", meta.Solution)
	}
	if meta.EntrepreneurInsight != "Move fast, the climate does not wait." {
		t.Errorf("Expected insight section, got: %q", meta.EntrepreneurInsight)
	}
}

func TestRunSectionTruncation(t *testing.T) {
	long := strings.Repeat("א", 400)
	content := "## The Problem\n" + long + "\n"

	meta := NewParser().Run(content, 1)

	if got := len([]rune(meta.Problem)); got != sectionLimit {
		t.Errorf("Expected problem truncated to %d runes, got: %d", sectionLimit, got)
	}
}

func TestRunKeyPoints(t *testing.T) {
	content := `## Key Points
- First point
- Second point
* Third point
`

	meta := NewParser().Run(content, 1)

	if len(meta.KeyPoints) != 3 {
		t.Fatalf("Expected 3 key points, got: %d (%v)", len(meta.KeyPoints), meta.KeyPoints)
	}
	if meta.KeyPoints[0] != "First point" {
		t.Errorf("Expected 'First point', got: %s", meta.KeyPoints[0])
	}
}

func TestRunLegacyCompanyFields(t *testing.T) {
	content := `# Episode 1: Bees

**Guest LinkedIn:** https://linkedin.com/in/one, https://linkedin.com/in/two
**Company Website:** https://tobee.example
**Company Name:** ToBee
**Company Logo:** tobee.png
`

	meta := NewParser().Run(content, 1)

	if len(meta.GuestLinkedIn) != 2 {
		t.Errorf("Expected 2 LinkedIn URLs, got: %d", len(meta.GuestLinkedIn))
	}
	if meta.CompanyWebsite != "https://tobee.example" {
		t.Errorf("Expected company website, got: %s", meta.CompanyWebsite)
	}
	if meta.CompanyName != "ToBee" {
		t.Errorf("Expected company name 'ToBee', got: %s", meta.CompanyName)
	}
	if meta.CompanyLogo != "tobee.png" {
		t.Errorf("Expected company logo 'tobee.png', got: %s", meta.CompanyLogo)
	}
}

func TestRunMultiCompany(t *testing.T) {
	content := `# Episode 12: Algae protein

**Guests:** יונתן גולן, מתן שפירא

**Company Name 1:** Brevel
**Company 1 Logo:** brevel.png
**Company 1 Website:** https://brevel.example
**Company 1 Guest Title:** CEO

**Company Name 2:** AlgaeWorks
**Company 2 Guest:** רון כהן
**Company 2 Focus:** Efficiency Focus
`

	meta := NewParser().Run(content, 12)

	if len(meta.Companies) != 2 {
		t.Fatalf("Expected 2 companies, got: %d", len(meta.Companies))
	}

	first := meta.Companies[0]
	if first.Name != "Brevel" {
		t.Errorf("Expected company 'Brevel', got: %s", first.Name)
	}
	if first.Logo != "brevel.png" {
		t.Errorf("Expected logo 'brevel.png', got: %s", first.Logo)
	}
	// No indexed guest label: falls back to the first flat guest
	if first.GuestName != "יונתן גולן" {
		t.Errorf("Expected guest fallback 'יונתן גולן', got: %s", first.GuestName)
	}
	if first.GuestTitle != "CEO" {
		t.Errorf("Expected guest title 'CEO', got: %s", first.GuestTitle)
	}

	second := meta.Companies[1]
	if second.GuestName != "רון כהן" {
		t.Errorf("Expected indexed guest 'רון כהן', got: %s", second.GuestName)
	}
	if second.Focus != "Efficiency Focus" {
		t.Errorf("Expected focus 'Efficiency Focus', got: %s", second.Focus)
	}
}

func TestRunResearcher(t *testing.T) {
	content := `# Episode 8: Satellites

**Researcher:** Dr. Maya Peled
**Researcher LinkedIn:** https://linkedin.com/in/maya
**Researcher Google Scholar:** https://scholar.example/maya
`

	meta := NewParser().Run(content, 8)

	if meta.Researcher == nil {
		t.Fatal("Expected researcher to be extracted")
	}
	if meta.Researcher.Name != "Dr. Maya Peled" {
		t.Errorf("Expected researcher 'Dr. Maya Peled', got: %s", meta.Researcher.Name)
	}
	if meta.Researcher.LinkedIn != "https://linkedin.com/in/maya" {
		t.Errorf("Expected researcher LinkedIn, got: %s", meta.Researcher.LinkedIn)
	}
	if meta.Researcher.GoogleScholar != "https://scholar.example/maya" {
		t.Errorf("Expected researcher Google Scholar, got: %s", meta.Researcher.GoogleScholar)
	}
}

func TestRunResearcherMisspelling(t *testing.T) {
	content := "**Reasercher:** Prof. Avi Shalev\n"

	meta := NewParser().Run(content, 1)

	if meta.Researcher == nil {
		t.Fatal("Expected misspelled researcher label to be tolerated")
	}
	if meta.Researcher.Name != "Prof. Avi Shalev" {
		t.Errorf("Expected researcher 'Prof. Avi Shalev', got: %s", meta.Researcher.Name)
	}
}

func TestRunEmptyContent(t *testing.T) {
	meta := NewParser().Run("", 3)

	if meta.Number != 3 {
		t.Errorf("Expected episode number 3, got: %d", meta.Number)
	}
	if meta.Title != "" {
		t.Errorf("Expected empty title, got: %s", meta.Title)
	}
	if len(meta.Guests) != 0 {
		t.Errorf("Expected no guests, got: %v", meta.Guests)
	}
	if meta.Researcher != nil {
		t.Error("Expected no researcher for empty content")
	}
}

func TestRunGuestLabelVariants(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"guest", "**Guest:** דנה לוי"},
		{"guests", "**Guests:** דנה לוי"},
		{"key experts", "**Key Experts:** דנה לוי"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := NewParser().Run(tc.content, 1)
			if len(meta.Guests) != 1 || meta.Guests[0] != "דנה לוי" {
				t.Errorf("Expected single guest 'דנה לוי', got: %v", meta.Guests)
			}
		})
	}
}
