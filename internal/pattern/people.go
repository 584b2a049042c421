package pattern

import (
	"regexp"
	"strings"
)

// roleTerms are job titles recognised in free text, longest first so that
// "operations manager" wins over "manager".
var roleTerms = []string{
	"general manager", "operations manager", "office manager", "sales manager",
	"plant manager", "project manager", "production manager", "service manager",
	"account manager", "shop foreman", "lead technician", "head of sales",
	"vice president", "controller", "bookkeeper", "accountant", "estimator",
	"foreman", "supervisor", "superintendent", "engineer", "technician",
	"director", "coo", "cfo", "cto", "vp", "partner", "manager", "lead",
}

var (
	roleRe = regexp.MustCompile(`(?i)\b(` + strings.Join(roleTerms, "|") + `)\b`)

	// placeholderRe matches anonymization tokens such as [EMPLOYEE_1] or
	// {{PERSON_2}} left in place of personal names.
	placeholderRe = regexp.MustCompile(`\[(?:[A-Z]+_)*(?:NAME|PERSON|EMPLOYEE|OWNER|MANAGER|STAFF|PARTNER|CUSTOMER|CLIENT)(?:_[A-Z0-9]+)*\]|\{\{[A-Z_0-9]+\}\}`)

	// capitalizedRe finds capitalised tokens that may be names which
	// survived anonymization.
	capitalizedRe = regexp.MustCompile(`\b[A-Z][a-z]{2,}(?:\s+[A-Z][a-z]{2,})?\b`)

	// personCueRe matches text right after a sentence-initial capitalised
	// word that marks it as a person: a role, "is our", or a typical verb.
	personCueRe = regexp.MustCompile(`(?i)^(?:\s*,?\s*(?:(?:is|was|as)\s+)?(?:(?:our|the|my|a|an)\s+)?(?:` + strings.Join(roleTerms, "|") + `)\b|\s+(?:is|was)\s+(?:our|my)\b|\s+(?:runs|handles|manages|oversees|leads|knows|has been)\b)`)

	honorificRe = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr)\.\s*$`)

	tenureRe = regexp.MustCompile(`(?i)\b(?:for|over|nearly|almost|about)?\s*(\d+|two|three|four|five|six|seven|eight|nine|ten|fifteen|twenty)\+?\s+years?\b`)

	isoRe = regexp.MustCompile(`(?i)\bISO(?:\s?\d{4,5})?\b`)

	certificationRe = regexp.MustCompile(`(?i)\b(ISO\s?\d{4,5}(?::\d{4})?|AS\s?9100[A-D]?|SOC\s?[12](?:\s?type\s?(?:I{1,2}|[12]))?|HIPAA|PCI(?:[- ]DSS)?|ITAR|CMMC(?:\s?level\s?\d)?|FDA[- ]registered|GMP|UL[- ]listed|LEED|OSHA|NADCAP|IATF\s?16949|six sigma|lean certified)\b`)
)

// Role is a job title located in text.
type Role struct {
	Title string
	Start int
	End   int
}

// Roles returns job titles in order of appearance, normalised to lower case.
func Roles(text string) []Role {
	var out []Role
	for _, loc := range roleRe.FindAllStringIndex(text, -1) {
		out = append(out, Role{Title: strings.ToLower(text[loc[0]:loc[1]]), Start: loc[0], End: loc[1]})
	}
	return out
}

// Placeholders returns anonymization tokens with their positions.
func Placeholders(text string) []Match {
	var out []Match
	for _, loc := range placeholderRe.FindAllStringIndex(text, -1) {
		out = append(out, Match{Raw: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return out
}

// nonNameWords are capitalised words that commonly open sentences or name
// things other than people.
var nonNameWords = map[string]bool{
	"The": true, "They": true, "She": true, "His": true, "Her": true, "Our": true,
	"This": true, "That": true, "These": true, "Those": true, "There": true,
	"When": true, "What": true, "Who": true, "Without": true, "With": true,
	"And": true, "But": true, "For": true, "Most": true, "All": true,
	"None": true, "Nobody": true, "Everyone": true, "Everything": true,
	"Some": true, "Only": true, "Also": true, "Both": true, "Each": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"January": true, "February": true, "March": true, "April": true, "June": true,
	"July": true, "August": true, "September": true, "October": true,
	"November": true, "December": true, "ISO": true, "Inc": true, "LLC": true,
	"Manager": true, "Director": true, "Operations": true, "Sales": true,
	"Engineering": true, "Finance": true, "Customer": true, "Customers": true,
	"Not": true, "Yes": true, "Has": true, "Have": true,
	"Had": true, "Can": true, "Could": true, "Would": true, "Should": true,
	"Currently": true, "Right": true, "Maybe": true, "Probably": true,
	"Key": true, "After": true, "Before": true, "Everybody": true, "Somebody": true,
	"Anyone": true, "Anybody": true, "Then": true, "Since": true, "Just": true,
	"Because": true, "Now": true, "Today": true, "Once": true, "Until": true,
	"Unless": true, "Otherwise": true, "However": true, "Well": true,
	"Honestly": true, "Really": true, "Mostly": true, "Usually": true,
	"Sometimes": true, "Many": true, "Few": true, "Several": true,
	"Nothing": true, "Whoever": true,
}

// CapitalizedNames returns capitalised tokens that plausibly name people.
// It is loose and meant for answers that ask about people. A single word
// opening a sentence only counts when a person cue follows it.
func CapitalizedNames(text string) []Match {
	var out []Match
	for _, loc := range capitalizedRe.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		words := strings.Fields(raw)
		if nonNameWords[raw] || nonNameWords[words[0]] {
			continue
		}
		if roleRe.MatchString(raw) && roleRe.FindString(raw) == raw {
			continue
		}
		if len(words) == 1 && sentenceStart(text, loc[0]) && !personCueRe.MatchString(text[loc[1]:]) {
			continue
		}
		out = append(out, Match{Raw: raw, Start: loc[0], End: loc[1]})
	}
	return out
}

// sentenceStart reports whether pos begins a sentence, line, or list item.
func sentenceStart(text string, pos int) bool {
	if honorificRe.MatchString(text[:pos]) {
		return false
	}
	for i := pos - 1; i >= 0; i-- {
		switch text[i] {
		case ' ', '\t', '"', '\'', '(', '-', '*':
			continue
		case '\n', '\r', '.', '!', '?', ':', ';':
			return true
		default:
			return false
		}
	}
	return true
}

// Tenure returns the first "N years" phrase in text.
func Tenure(text string) (string, bool) {
	m := tenureRe.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}

// Certifications returns certification names in order of appearance.
func Certifications(text string) []Match {
	var out []Match
	for _, loc := range certificationRe.FindAllStringIndex(text, -1) {
		out = append(out, Match{Raw: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return out
}

// MentionsISO reports whether text mentions an ISO certification.
func MentionsISO(text string) bool {
	return isoRe.MatchString(text)
}
