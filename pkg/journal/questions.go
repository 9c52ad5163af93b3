package journal

// Response keys. They double as JSON field names on the API.
const (
	KeyAttention = "in_attention"
	KeyObsession = "in_obsession"
	KeyAgency    = "in_agency"
	KeyTIL1      = "out_til1"
	KeyTIL2      = "out_til2"
	KeyTIL3      = "out_til3"
	KeyReading   = "reading"
	KeyLinkDumps = "link_dumps"
)

// Mode selects which question set the page shows.
type Mode string

const (
	ModeCheckin  Mode = "checkin"
	ModeCheckout Mode = "checkout"
)

// Question is one collapsible prompt on the page.
type Question struct {
	Key         string
	Title       string
	Placeholder string
	// Multiline answers keep newlines (link dumps are one URL per line).
	Multiline bool
}

var checkinQuestions = []Question{
	{Key: KeyAttention, Title: "Attention", Placeholder: "Where is your attention at today?"},
	{Key: KeyObsession, Title: "Obsession", Placeholder: "Are you obsessed with it?"},
	{Key: KeyAgency, Title: "Agency", Placeholder: "What agency are you taking for it today?"},
}

var checkoutQuestions = []Question{
	{Key: KeyTIL1, Title: "Today I Learned...", Placeholder: "(Be short, so you can remember)"},
	{Key: KeyReading, Title: "Reading?", Placeholder: ""},
	{Key: KeyLinkDumps, Title: "Link Dumps", Placeholder: "one link per line", Multiline: true},
}

// Questions returns a copy of the question set for mode.
func Questions(mode Mode) []Question {
	src := checkinQuestions
	if mode == ModeCheckout {
		src = checkoutQuestions
	}
	out := make([]Question, len(src))
	copy(out, src)
	return out
}
