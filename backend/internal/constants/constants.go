package constants

// Analysis constants
const (
	// DefaultTopN is how many speakers make the "top" group
	DefaultTopN = 5

	// TopLabelsAcrossMultiple is how many labels the ambiguous-speaker
	// inspection reports for "Multiple Speakers" transcripts
	TopLabelsAcrossMultiple = 10

	// DefaultTopWords is the word-cloud size per speaker
	DefaultTopWords = 100

	// OthersLabel groups every non-top politician
	OthersLabel = "Others"

	// MultipleSpeakersLabel is the row label of joint events
	MultipleSpeakersLabel = "Multiple Speakers"
)

// Party labels
const (
	PartyDemocratic = "Democratic"
	PartyRepublican = "Republican"
	// PartyTie marks a state where both parties gave the same number of speeches
	PartyTie = "Tie"
)

// Dataset constants
const (
	// DateLayout is the layout of the CSV date column ("Oct 22, 2020")
	DateLayout = "Jan 2, 2006"

	// WeekLabelLayout formats week starts in tables ("Oct 19")
	WeekLabelLayout = "Jan 02"
)

// Discord constants
const (
	// DiscordMaxMessageLength is the maximum character limit for Discord messages
	DiscordMaxMessageLength = 2000
)

// LLM constants
const (
	// LLMMaxRetries is the number of attempts for one completion
	LLMMaxRetries = 3
)
