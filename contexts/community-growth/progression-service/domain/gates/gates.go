// Package gates decides whether a project's community metrics satisfy the
// requirement for its next level. Pure functions only; every caller across
// every trigger path must evaluate through the same Thresholds value so the
// gate cannot drift between code paths.
package gates

import "fmt"

// TerminalLevel is where automatic advancement stops. Levels beyond it are
// driven by collaborators outside this engine.
const TerminalLevel = 4

// Thresholds is the single versioned configuration table for the gates.
type Thresholds struct {
	Level3MinMembers  int
	Level4MinMembers  int
	Level4MinPapers   int
	Level4MinMessages int
}

// DefaultThresholds returns the canonical table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Level3MinMembers:  4,
		Level4MinMembers:  10,
		Level4MinPapers:   25,
		Level4MinMessages: 100,
	}
}

// ExternalFlags are boolean facts supplied by outside collaborators; the
// evaluator treats them as opaque.
type ExternalFlags struct {
	IdeaAssetMinted   bool
	VisionAssetMinted bool
	BotLinked         bool
}

// Counters are the accumulated community metrics the gates read.
type Counters struct {
	MemberCount   int
	MessagesCount int
	PapersShared  int
}

// CanAdvance reports whether the project may move from level to level+1.
// It never looks further than one level ahead.
func (t Thresholds) CanAdvance(level int, counters Counters, flags ExternalFlags) bool {
	switch level {
	case 1:
		return flags.IdeaAssetMinted && flags.VisionAssetMinted
	case 2:
		return flags.BotLinked && counters.MemberCount >= t.Level3MinMembers
	case 3:
		return counters.MemberCount >= t.Level4MinMembers &&
			counters.PapersShared >= t.Level4MinPapers &&
			counters.MessagesCount >= t.Level4MinMessages
	default:
		return false
	}
}

// Describe renders the requirement for reaching the given level, for
// notifications and chat prompts.
func (t Thresholds) Describe(level int) string {
	switch level {
	case 2:
		return "mint both the idea and vision assets"
	case 3:
		return fmt.Sprintf("link the community bot and grow to %d members", t.Level3MinMembers)
	case 4:
		return fmt.Sprintf("reach %d members, %d shared papers and %d contributing messages",
			t.Level4MinMembers, t.Level4MinPapers, t.Level4MinMessages)
	default:
		return "no further automatic requirements"
	}
}
