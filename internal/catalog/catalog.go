package catalog

// Version identifies the revision of the requirement table stamped on reports.
const Version = "2025.1"

var requirements = []Requirement{
	// Food safety
	document("food-safety-management-plan", "Food Safety Management Plan (HACCP)", CategoryFoodSafety, true, "Reviewed annually"),
	document("allergen-information", "Allergen Information Matrix", CategoryFoodSafety, true, "On menu change"),
	entry("temperature-records", "Fridge and Freezer Temperature Records", CategoryFoodSafety, true, EvidenceRecord, "Twice daily",
		MatchSpec{Record: RecordTemperatureLogs}),
	entry("opening-closing-checks", "Opening and Closing Checks", CategoryFoodSafety, true, EvidenceTemplate, "Daily",
		MatchSpec{Keywords: []string{"opening", "closing"}}),
	document("supplier-approval", "Approved Supplier List", CategoryFoodSafety, false, "Reviewed annually"),

	// Health & safety
	document("health-safety-policy", "Health and Safety Policy", CategoryHealthSafety, true, "Reviewed annually"),
	entry("general-risk-assessment", "General Risk Assessment", CategoryHealthSafety, true, EvidenceAssessment, "Reviewed annually",
		MatchSpec{TagEquals: "general"}),
	entry("accident-book", "Accident and Incident Log", CategoryHealthSafety, true, EvidenceRecord, "As incidents occur",
		MatchSpec{Record: RecordIncidentLog}),
	entry("riddor-reports", "RIDDOR Reportable Incidents", CategoryHealthSafety, false, EvidenceRecord, "Within 10 days of incident",
		MatchSpec{Record: RecordRIDDORIncidents}),
	entry("first-aid-kit-checks", "First Aid Kit Checks", CategoryHealthSafety, true, EvidenceCompletion, "Monthly",
		MatchSpec{Keywords: []string{"first aid"}}),

	// Fire safety
	entry("fire-risk-assessment", "Fire Risk Assessment", CategoryFire, true, EvidenceAssessment, "Reviewed annually",
		MatchSpec{Keywords: []string{"fire"}}),
	document("fire-safety-policy", "Fire Safety Policy", CategoryFire, true, "Reviewed annually"),
	entry("fire-alarm-tests", "Weekly Fire Alarm Tests", CategoryFire, true, EvidenceCompletion, "Weekly",
		MatchSpec{Keywords: []string{"fire alarm"}}),
	entry("fire-drills", "Fire Drill Records", CategoryFire, true, EvidenceCompletion, "Every 6 months",
		MatchSpec{Keywords: []string{"fire drill", "evacuation"}}),
	entry("emergency-lighting", "Emergency Lighting Checks", CategoryFire, true, EvidenceCompletion, "Monthly",
		MatchSpec{Keywords: []string{"emergency light"}}),

	// Training
	entry("food-hygiene-training", "Food Hygiene Certificates", CategoryTraining, true, EvidenceTraining, "Renewed every 3 years",
		MatchSpec{Keywords: []string{"food", "hygiene"}}),
	entry("allergen-training", "Allergen Awareness Training", CategoryTraining, true, EvidenceTraining, "Annually",
		MatchSpec{Keywords: []string{"allergen"}}),
	entry("fire-safety-training", "Fire Safety Training", CategoryTraining, true, EvidenceTraining, "Annually",
		MatchSpec{Keywords: []string{"fire"}}),
	entry("first-aid-training", "First Aid Training", CategoryTraining, true, EvidenceTraining, "Renewed every 3 years",
		MatchSpec{Keywords: []string{"first aid"}}),
	entry("manual-handling-training", "Manual Handling Training", CategoryTraining, false, EvidenceTraining, "Every 3 years",
		MatchSpec{Keywords: []string{"manual handling"}}),

	// Cleaning
	entry("cleaning-schedule", "Cleaning Schedule", CategoryCleaning, true, EvidenceTemplate, "Reviewed quarterly",
		MatchSpec{TagEquals: "cleaning"}),
	entry("cleaning-records", "Cleaning Records", CategoryCleaning, true, EvidenceCompletion, "Daily",
		MatchSpec{TagEquals: "cleaning"}),
	entry("coshh-register", "COSHH Register", CategoryCleaning, true, EvidenceDocument, "On product change",
		MatchSpec{AnyCOSHHSheet: true}),
	entry("coshh-data-sheets", "COSHH Safety Data Sheets", CategoryCleaning, true, EvidenceDocument, "On product change",
		MatchSpec{AnyCOSHHSheet: true}),
	document("pest-control", "Pest Control Contract", CategoryCleaning, true, "Renewed annually"),

	// Equipment
	entry("pat-testing", "Portable Appliance Testing", CategoryEquipment, true, EvidenceRecord, "Annually",
		MatchSpec{Record: RecordApplianceTestLabels}),
	document("gas-safety-certificate", "Gas Safety Certificate", CategoryEquipment, true, "Annually"),
	document("electrical-installation", "Electrical Installation Condition Report", CategoryEquipment, true, "Every 5 years"),
	entry("equipment-maintenance", "Equipment Maintenance Checks", CategoryEquipment, false, EvidenceCompletion, "Monthly",
		MatchSpec{TagEquals: "maintenance", Keywords: []string{"maintenance"}}),

	// Legal
	document("premises-licence", "Premises Licence", CategoryLegal, true, "Ongoing"),
	document("food-business-registration", "Food Business Registration", CategoryLegal, true, "Ongoing"),
	document("employers-liability-insurance", "Employers Liability Insurance", CategoryLegal, true, "Renewed annually"),
	document("public-liability-insurance", "Public Liability Insurance", CategoryLegal, true, "Renewed annually"),

	// General compliance
	entry("coshh-assessment", "COSHH Risk Assessment", CategoryCompliance, true, EvidenceAssessment, "Reviewed annually",
		MatchSpec{TagEquals: "coshh"}),
	document("data-protection-policy", "Data Protection Policy", CategoryCompliance, false, "Reviewed annually"),
	entry("due-diligence-checklist", "Due Diligence Checklist", CategoryCompliance, true, EvidenceTemplate, "Weekly",
		MatchSpec{TagEquals: "compliance", Keywords: []string{"due diligence"}}),
}

func document(id, name string, category Category, required bool, frequency string) Requirement {
	return Requirement{
		ID:           id,
		Name:         name,
		Category:     category,
		Required:     required,
		EvidenceType: EvidenceDocument,
		Frequency:    frequency,
	}
}

func entry(id, name string, category Category, required bool, evidenceType EvidenceType, frequency string, match MatchSpec) Requirement {
	r := document(id, name, category, required, frequency)
	r.EvidenceType = evidenceType
	r.Match = match
	return r
}

// Requirements returns the catalog in display order. The slice and its
// MatchSpec keyword slices are copies.
func Requirements() []Requirement {
	out := make([]Requirement, len(requirements))
	for i, r := range requirements {
		r.Match.Keywords = append([]string(nil), r.Match.Keywords...)
		out[i] = r
	}
	return out
}

// ByID returns a single requirement.
func ByID(id string) (Requirement, bool) {
	for _, r := range requirements {
		if r.ID == id {
			r.Match.Keywords = append([]string(nil), r.Match.Keywords...)
			return r, true
		}
	}
	return Requirement{}, false
}

// Categories returns each category that has at least one requirement, in
// catalog order.
func Categories() []Category {
	seen := make(map[Category]struct{})
	var out []Category
	for _, r := range requirements {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
