package readiness

import (
	"fmt"
	"strings"
	"time"

	"inspectready/internal/catalog"
	"inspectready/internal/evidence"
)

// fuzzyPrefixLen is how much of the shorter document name must appear in the
// longer one for a fuzzy match.
const fuzzyPrefixLen = 15

type match struct {
	found       bool
	description string
	expiry      *time.Time
}

type strategy func(req catalog.Requirement, snap *evidence.Snapshot) match

var strategies = map[catalog.EvidenceType]strategy{
	catalog.EvidenceDocument:   matchDocument,
	catalog.EvidenceAssessment: matchAssessment,
	catalog.EvidenceTraining:   matchTraining,
	catalog.EvidenceRecord:     matchRecord,
	catalog.EvidenceCompletion: matchCompletion,
	catalog.EvidenceTemplate:   matchTemplate,
}

var recordRules = map[catalog.RecordRule]func(snap *evidence.Snapshot) match{
	catalog.RecordTemperatureLogs:     matchTemperatureLogs,
	catalog.RecordIncidentLog:         matchIncidentLog,
	catalog.RecordRIDDORIncidents:     matchRIDDOR,
	catalog.RecordApplianceTestLabels: matchApplianceLabels,
}

// Evaluate matches one requirement against the snapshot as of now.
//
// COSHH requirements are satisfied by any sheet on file regardless of
// evidence type. Everything else dispatches on the requirement's evidence
// type; an unknown type is reported as missing.
func Evaluate(req catalog.Requirement, snap *evidence.Snapshot, now time.Time) Evaluation {
	var m match
	switch {
	case snap == nil:
	case req.Match.AnyCOSHHSheet:
		m = matchCOSHH(snap)
	default:
		if fn, ok := strategies[req.EvidenceType]; ok {
			m = fn(req, snap)
		}
	}
	return newEvaluation(req, m, now)
}

// EvaluateAll evaluates every requirement, preserving order.
func EvaluateAll(reqs []catalog.Requirement, snap *evidence.Snapshot, now time.Time) []Evaluation {
	out := make([]Evaluation, len(reqs))
	for i, r := range reqs {
		out[i] = Evaluate(r, snap, now)
	}
	return out
}

func newEvaluation(req catalog.Requirement, m match, now time.Time) Evaluation {
	e := Evaluation{
		RequirementID: req.ID,
		Name:          req.Name,
		Category:      req.Category,
		Required:      req.Required,
		EvidenceType:  req.EvidenceType,
		Found:         m.found,
		Status:        DeriveStatus(m.found, m.expiry, now),
	}
	if m.found {
		e.MatchedDescription = m.description
		e.ExpiryDate = m.expiry
	}
	return e
}

func matchDocument(req catalog.Requirement, snap *evidence.Snapshot) match {
	want := normalize(req.Name)
	if want == "" {
		return match{}
	}
	for _, d := range snap.Documents {
		if normalize(d.Name) == want {
			return match{found: true, description: d.Name, expiry: d.ExpiryDate}
		}
	}
	for _, d := range snap.Documents {
		if fuzzyMatch(normalize(d.Name), want) {
			return match{found: true, description: d.Name, expiry: d.ExpiryDate}
		}
	}
	return match{}
}

func matchAssessment(req catalog.Requirement, snap *evidence.Snapshot) match {
	for _, a := range snap.Assessments {
		if tagEquals(req.Match.TagEquals, a.TemplateType) || containsAny(a.Title, req.Match.Keywords) {
			return match{found: true, description: a.Title, expiry: a.NextReviewDate}
		}
	}
	return match{}
}

func matchTraining(req catalog.Requirement, snap *evidence.Snapshot) match {
	for _, t := range snap.Training {
		if t.Status == evidence.TrainingCancelled {
			continue
		}
		if containsAny(t.Course, req.Match.Keywords) {
			return match{found: true, description: t.Course}
		}
	}
	return match{}
}

func matchCompletion(req catalog.Requirement, snap *evidence.Snapshot) match {
	n := 0
	for _, c := range snap.Completions {
		if tagEquals(req.Match.TagEquals, c.Category) || containsAny(c.Name, req.Match.Keywords) {
			n++
		}
	}
	if n == 0 {
		return match{}
	}
	return match{found: true, description: fmt.Sprintf("%s in the last 30 days", plural(n, "completion"))}
}

func matchTemplate(req catalog.Requirement, snap *evidence.Snapshot) match {
	for _, t := range snap.Templates {
		if tagEquals(req.Match.TagEquals, t.Category) || containsAny(t.Name, req.Match.Keywords) {
			return match{found: true, description: t.Name}
		}
	}
	return match{}
}

func matchRecord(req catalog.Requirement, snap *evidence.Snapshot) match {
	if rule, ok := recordRules[req.Match.Record]; ok {
		return rule(snap)
	}
	return match{}
}

func matchTemperatureLogs(snap *evidence.Snapshot) match {
	n := len(snap.TemperatureLogs)
	if n == 0 {
		return match{}
	}
	return match{found: true, description: fmt.Sprintf("%s in the last 30 days", plural(n, "temperature log"))}
}

func matchIncidentLog(snap *evidence.Snapshot) match {
	n := len(snap.Incidents)
	if n == 0 {
		return match{}
	}
	return match{found: true, description: plural(n, "incident") + " recorded"}
}

func matchRIDDOR(snap *evidence.Snapshot) match {
	reportable, reported := 0, 0
	for _, i := range snap.Incidents {
		if !i.RIDDORReportable {
			continue
		}
		reportable++
		if i.ReportedDate != nil {
			reported++
		}
	}
	if reportable == 0 {
		return match{}
	}
	return match{
		found:       true,
		description: fmt.Sprintf("%s, %d reported", plural(reportable, "RIDDOR-reportable incident"), reported),
	}
}

func matchApplianceLabels(snap *evidence.Snapshot) match {
	total := len(snap.Appliances)
	labelled := 0
	for _, a := range snap.Appliances {
		if a.HasCurrentTestLabel {
			labelled++
		}
	}
	if labelled == 0 {
		return match{}
	}
	return match{found: true, description: fmt.Sprintf("%d of %d appliances", labelled, total)}
}

func matchCOSHH(snap *evidence.Snapshot) match {
	n := len(snap.COSHHSheets)
	if n == 0 {
		return match{}
	}
	return match{found: true, description: plural(n, "COSHH sheet") + " on file"}
}

// normalize lowercases s and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// fuzzyMatch reports whether the first fuzzyPrefixLen runes of the shorter
// string occur anywhere in the longer one. Both inputs must be normalized.
func fuzzyMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	shorter, longer := a, b
	if len([]rune(b)) < len([]rune(a)) {
		shorter, longer = b, a
	}
	prefix := []rune(shorter)
	if len(prefix) > fuzzyPrefixLen {
		prefix = prefix[:fuzzyPrefixLen]
	}
	return strings.Contains(longer, string(prefix))
}

func tagEquals(tag, value string) bool {
	tag = strings.TrimSpace(tag)
	return tag != "" && strings.EqualFold(tag, strings.TrimSpace(value))
}

func containsAny(text string, keywords []string) bool {
	text = normalize(text)
	if text == "" {
		return false
	}
	for _, k := range keywords {
		if k = normalize(k); k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
