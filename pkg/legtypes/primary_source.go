package legtypes

// Bill, Vote, Committee, Politician, Party, Riding, and Hansard are the
// consumer-facing records for the primary-source kinds owned by the
// out-of-scope parliament ingestion adapters (see SourceTypeBill etc.).
// legrag ships no adapter that populates these from a live feed; they
// exist so hydration has a concrete type to render once one is wired in.

// Bill is a parliamentary bill (e.g. "C-46").
type Bill struct {
	ID             string
	Number         string
	Title          string
	TitleFR        string
	Sponsor        string
	Status         string
	IntroducedDate string
}

// Vote is a recorded division vote on a bill or motion.
type Vote struct {
	ID            string
	Number        int
	Description   string
	DescriptionFR string
	Result        string
	Date          string
}

// Committee is a House or Senate standing or special committee.
type Committee struct {
	ID      string
	Name    string
	NameFR  string
	Chamber string
	Mandate string
}

// Politician is a sitting or former member of Parliament or senator.
type Politician struct {
	ID       string
	Name     string
	Party    string
	Riding   string
	Province string
}

// Party is a federal political party.
type Party struct {
	ID        string
	Name      string
	NameFR    string
	ShortName string
}

// Riding is a federal electoral district.
type Riding struct {
	ID       string
	Name     string
	NameFR   string
	Province string
}

// Hansard is an excerpt of the House or Senate debates transcript.
type Hansard struct {
	ID      string
	Date    string
	Chamber string
	Speaker string
	Excerpt string
	Language Language
}
