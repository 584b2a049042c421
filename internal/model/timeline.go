package model

import "strings"

// Exit timeline answers.
const (
	TimelineInDiscussions = "Already in discussions"
	TimelineWithin6Months = "Within 6 months"
	Timeline6To12Months   = "6-12 months"
	Timeline1To2Years     = "1-2 years"
	Timeline2To3Years     = "2-3 years"
	Timeline3To5Years     = "3-5 years"
	TimelineOver5Years    = "5+ years"
	TimelineNotSure       = "Not sure"
)

// ExitTimelines lists the recognised answers from most to least urgent.
var ExitTimelines = []string{
	TimelineInDiscussions,
	TimelineWithin6Months,
	Timeline6To12Months,
	Timeline1To2Years,
	Timeline2To3Years,
	Timeline3To5Years,
	TimelineOver5Years,
	TimelineNotSure,
}

var timelineAliases = map[string]string{
	"in discussions":       TimelineInDiscussions,
	"already in talks":     TimelineInDiscussions,
	"currently in talks":   TimelineInDiscussions,
	"less than 6 months":   TimelineWithin6Months,
	"0-6 months":           TimelineWithin6Months,
	"6 months - 1 year":    Timeline6To12Months,
	"6 months to 1 year":   Timeline6To12Months,
	"within the next year": Timeline6To12Months,
	"more than 5 years":    TimelineOver5Years,
	"over 5 years":         TimelineOver5Years,
	"5 or more years":      TimelineOver5Years,
	"unsure":               TimelineNotSure,
	"undecided":            TimelineNotSure,
	"no timeline":          TimelineNotSure,
}

// ParseExitTimeline resolves an exit timeline answer to its canonical form.
func ParseExitTimeline(s string) (string, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	key = strings.NewReplacer("–", "-", "—", "-").Replace(key)
	if key == "" {
		return "", false
	}
	for _, t := range ExitTimelines {
		if strings.ToLower(t) == key {
			return t, true
		}
	}
	if t, ok := timelineAliases[key]; ok {
		return t, true
	}
	return "", false
}
