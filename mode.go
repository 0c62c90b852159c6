package pagelens

import "strings"

// Mode selects which reviews to run.
type Mode string

// Supported modes.
const (
	ModeUI   Mode = "ui"
	ModeUX   Mode = "ux"
	ModeBoth Mode = "both"
)

// ParseMode converts user input into a Mode. It is case-insensitive and
// accepts "all" as an alias for ModeBoth.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ui":
		return ModeUI, nil
	case "ux":
		return ModeUX, nil
	case "both", "all":
		return ModeBoth, nil
	}
	return "", Errorf(EINVALID, "unknown mode %q (want ui, ux or both)", s)
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == ModeUI || m == ModeUX || m == ModeBoth
}

// Modes expands m into the single reviews it stands for.
func (m Mode) Modes() []Mode {
	switch m {
	case ModeUI:
		return []Mode{ModeUI}
	case ModeUX:
		return []Mode{ModeUX}
	case ModeBoth:
		return []Mode{ModeUI, ModeUX}
	}
	return nil
}

// Title returns the heading used when displaying the review.
func (m Mode) Title() string {
	switch m {
	case ModeUI:
		return "UI Analysis"
	case ModeUX:
		return "UX Analysis"
	case ModeBoth:
		return "UI + UX Analysis"
	}
	return string(m)
}

// Prompt returns the system prompt for a single review mode.
// ModeBoth has no prompt of its own and returns "".
func (m Mode) Prompt() string {
	switch m {
	case ModeUI:
		return UIPrompt
	case ModeUX:
		return UXPrompt
	}
	return ""
}

// UIPrompt instructs the model to review page structure and presentation.
const UIPrompt = "You are an experienced UI designer. Analyze the structure and text of the landing page. " +
	"Give 5 concrete recommendations for improving its structure and visual presentation. " +
	"Do not invent content; rely only on the text provided."

// UXPrompt instructs the model to review the user experience. The section
// headers match SectionHeaders so the answer can be formatted into blocks.
const UXPrompt = "You are a UX expert. Analyze the site and present the analysis in the following format:\n\n" +
	"Pros:\n" +
	"- [list the positive aspects]\n\n" +
	"Cons:\n" +
	"- [list the negative aspects]\n\n" +
	"Recommendations:\n" +
	"- [suggest 5 concrete improvements]\n\n" +
	"Rely only on the text provided; do not invent content."
