package metadata

import (
	"encoding/json"
	"fmt"
)

// Keyword is either a plain tag or a bilingual Hebrew/English pair. The two
// shapes coexist in the same keyword list because older metadata files were
// authored before bilingual tags were introduced.
type Keyword struct {
	Plain   string
	Hebrew  string
	English string
}

func PlainKeyword(text string) Keyword {
	return Keyword{Plain: text}
}

func BilingualKeyword(hebrew, english string) Keyword {
	return Keyword{Hebrew: hebrew, English: english}
}

func (k Keyword) IsBilingual() bool {
	return k.Plain == ""
}

// MarshalJSON preserves the wire shape consumers expect: a bare string for
// plain keywords, a {"he","en"} object for bilingual ones.
func (k Keyword) MarshalJSON() ([]byte, error) {
	if k.IsBilingual() {
		return json.Marshal(struct {
			Hebrew  string `json:"he"`
			English string `json:"en"`
		}{k.Hebrew, k.English})
	}
	return json.Marshal(k.Plain)
}

func (k *Keyword) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*k = Keyword{Plain: plain}
		return nil
	}

	var pair struct {
		Hebrew  string `json:"he"`
		English string `json:"en"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("keyword must be a string or a {he,en} object: %w", err)
	}
	*k = Keyword{Hebrew: pair.Hebrew, English: pair.English}
	return nil
}

// CompanyInfo describes one company featured in an episode.
type CompanyInfo struct {
	Name          string `json:"name"`
	Logo          string `json:"logo,omitempty"`
	Website       string `json:"website,omitempty"`
	GuestName     string `json:"guestName,omitempty"`
	GuestLinkedIn string `json:"guestLinkedIn,omitempty"`
	GuestTitle    string `json:"guestTitle,omitempty"`
	Focus         string `json:"focus,omitempty"`
}

// ResearcherInfo describes an academic or expert guest.
type ResearcherInfo struct {
	Name          string `json:"name"`
	LinkedIn      string `json:"linkedIn,omitempty"`
	GoogleScholar string `json:"googleScholar,omitempty"`
	Website       string `json:"website,omitempty"`
}

// Meta is the structured content of one episode's hand-authored metadata
// file. FolderName is the join key against the feed's episode mapping.
// Transcript stays empty until explicitly loaded for a detail view.
type Meta struct {
	Number              int       `json:"episodeNumber"`
	Title               string    `json:"title"`
	Guests              []string  `json:"guests"`
	Sector              string    `json:"sector"`
	Keywords            []Keyword `json:"keywords"`
	Problem             string    `json:"problem"`
	Solution            string    `json:"solution"`
	KeyPoints           []string  `json:"keyPoints,omitempty"`
	EntrepreneurInsight string    `json:"entrepreneurInsight,omitempty"`
	FolderName          string    `json:"folderName,omitempty"`
	Transcript          string    `json:"transcript,omitempty"`

	Researcher *ResearcherInfo `json:"researcher,omitempty"`
	Companies  []CompanyInfo   `json:"companies,omitempty"`

	// Legacy single-company fields, kept for records not yet migrated to
	// the multi-company shape
	GuestLinkedIn  []string `json:"guestLinkedIn,omitempty"`
	CompanyWebsite string   `json:"companyWebsite,omitempty"`
	CompanyName    string   `json:"companyName,omitempty"`
	CompanyLogo    string   `json:"companyLogo,omitempty"`
}
