package classifier

// Profile carries the per-source parameters of the classifier. The rule
// sequence is identical for every profile; only these values differ.
type Profile struct {
	Name                string
	MinLength           int
	MaxLength           int
	RejectTimestamps    bool
	ExcludePhoneNumbers bool
}

var (
	// ProfileDOM is used for text scraped from a live messaging page.
	// Headers often show a phone number instead of a name.
	ProfileDOM = Profile{
		Name:                "dom",
		MinLength:           1,
		MaxLength:           100,
		RejectTimestamps:    false,
		ExcludePhoneNumbers: true,
	}

	// ProfileScreenshot is used for OCR lines of a conversation list, where
	// time badges ("2h", "10:30") and unread counters ("4+") sit next to names.
	ProfileScreenshot = Profile{
		Name:                "screenshot",
		MinLength:           2,
		MaxLength:           80,
		RejectTimestamps:    true,
		ExcludePhoneNumbers: false,
	}
)
