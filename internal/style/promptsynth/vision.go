package promptsynth

import "strings"

// BackgroundPreference is the background colour or material hinted at by the user.
type BackgroundPreference int

const (
	PreferenceNone BackgroundPreference = iota
	PreferenceWhite
	PreferenceWarm
	PreferenceDark
)

func (p BackgroundPreference) String() string {
	switch p {
	case PreferenceWhite:
		return "white"
	case PreferenceWarm:
		return "warm"
	case PreferenceDark:
		return "dark"
	default:
		return "none"
	}
}

const (
	// NoTextSuffix keeps generated images free of rendered text.
	NoTextSuffix = "no text, no letters, no logo, no watermark, clean composition"

	// MatchReferenceClause pins the render to the reference product.
	MatchReferenceClause = "match reference exactly, same material/color/shape"

	// SignalSeparator joins the pieces of a merged vision prompt.
	SignalSeparator = " | "
)

var (
	whiteHints = []string{"white", "纯白", "白色", "亮白", "浅色"}
	warmHints  = []string{"warm", "暖色", "木", "wood"}
	darkHints  = []string{"dark", "黑色", "深色"}
)

const (
	whiteKitchen = "bright white kitchen background, matte white quartz countertop, built-in gas stove with vivid blue flame, " +
		"chrome knobs, left-side light metal rack with two clear glass spice jars, " +
		"soft daylight from left window, high-key lighting, minimal modern style"
	warmKitchen = "warm natural kitchen background, light oak wooden countertop, built-in gas stove with blue flame, " +
		"left-side black metal rack with two glass spice jars, beige wall, soft side lighting, cozy minimal mood"
	darkKitchen = "modern kitchen background, black marble countertop, built-in gas stove with vivid blue flame, " +
		"left-side black metal rack with two glass spice jars, grey striped wall panel, soft side lighting"
)

// DetectBackgroundPreference matches the hint against the white, warm and dark
// buckets in that precedence order.
func DetectBackgroundPreference(userHint string) BackgroundPreference {
	hint := strings.ToLower(userHint)
	switch {
	case containsAny(hint, whiteHints):
		return PreferenceWhite
	case containsAny(hint, warmHints):
		return PreferenceWarm
	case containsAny(hint, darkHints):
		return PreferenceDark
	default:
		return PreferenceNone
	}
}

// KitchenFragment returns the canned background scene for a preference. Dark
// and no preference share the modern kitchen scene.
func KitchenFragment(pref BackgroundPreference) string {
	switch pref {
	case PreferenceWhite:
		return whiteKitchen
	case PreferenceWarm:
		return warmKitchen
	default:
		return darkKitchen
	}
}

// MergeVisionSignals builds the working prompt for the vision-first flow:
// description, hint, the kitchen fragment picked from the hint, and the
// backend enrichment when there is one.
func MergeVisionSignals(productDescription, userHint, enrichment string) string {
	merged := strings.TrimSpace(strings.TrimSpace(productDescription) + SignalSeparator + strings.TrimSpace(userHint))

	parts := []string{merged, KitchenFragment(DetectBackgroundPreference(userHint))}
	if e := strings.TrimSpace(enrichment); e != "" {
		parts = append(parts, e)
	}
	return strings.Join(parts, SignalSeparator)
}

// AppendNoTextSuffix ends the prompt with NoTextSuffix exactly once.
func AppendNoTextSuffix(prompt string) string {
	return joinClauses(stripClause(prompt, NoTextSuffix), NoTextSuffix)
}

// ApplyVisionSuffix ends the prompt with the reference-matching clause
// followed by NoTextSuffix, each exactly once.
func ApplyVisionSuffix(prompt string) string {
	body := stripClause(stripClause(prompt, NoTextSuffix), MatchReferenceClause)
	return joinClauses(body, MatchReferenceClause, NoTextSuffix)
}

func stripClause(s, clause string) string {
	s = strings.ReplaceAll(s, ", "+clause, "")
	s = strings.ReplaceAll(s, clause, "")
	return strings.Trim(strings.TrimSpace(s), ", ")
}

func joinClauses(body string, clauses ...string) string {
	if body == "" {
		return strings.Join(clauses, ", ")
	}
	return body + ", " + strings.Join(clauses, ", ")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
