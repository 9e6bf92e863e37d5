package knowledge

import "github.com/kaira-health/medkb/internal/domain"

// Built-in illustrative reference tables. Not a complete database; callers
// needing broader coverage load an override file via Load.

var defaultInteractions = []domain.DrugInteraction{
	{
		DrugA:      "warfarin",
		DrugB:      "aspirin",
		Severity:   domain.SeveritySevere,
		Mechanism:  "Additive anticoagulant and antiplatelet effect",
		Effect:     "Significantly increased bleeding risk",
		Management: "Avoid combination; if unavoidable, monitor INR closely and watch for bleeding",
	},
	{
		DrugA:      "warfarin",
		DrugB:      "ibuprofen",
		Severity:   domain.SeveritySevere,
		Mechanism:  "NSAID platelet inhibition plus anticoagulation, CYP2C9 competition",
		Effect:     "Increased risk of gastrointestinal bleeding",
		Management: "Prefer acetaminophen for analgesia; monitor INR if NSAID required",
	},
	{
		DrugA:      "sildenafil",
		DrugB:      "nitroglycerin",
		Severity:   domain.SeverityContraindicated,
		Mechanism:  "Combined cGMP-mediated vasodilation",
		Effect:     "Profound, potentially fatal hypotension",
		Management: "Never co-administer; separate by at least 24 hours",
	},
	{
		DrugA:      "methotrexate",
		DrugB:      "trimethoprim",
		Severity:   domain.SeverityContraindicated,
		Mechanism:  "Sequential dihydrofolate reductase blockade",
		Effect:     "Bone marrow suppression, pancytopenia",
		Management: "Avoid combination; use an alternative antibiotic",
	},
	{
		DrugA:      "simvastatin",
		DrugB:      "clarithromycin",
		Severity:   domain.SeveritySevere,
		Mechanism:  "CYP3A4 inhibition raises statin exposure",
		Effect:     "Rhabdomyolysis risk",
		Management: "Suspend statin during the macrolide course",
	},
	{
		DrugA:      "lisinopril",
		DrugB:      "spironolactone",
		Severity:   domain.SeverityModerate,
		Mechanism:  "Dual suppression of renin-angiotensin-aldosterone axis",
		Effect:     "Hyperkalemia",
		Management: "Monitor serum potassium and renal function",
	},
	{
		DrugA:      "metformin",
		DrugB:      "furosemide",
		Severity:   domain.SeverityModerate,
		Mechanism:  "Diuretic-induced renal impairment reduces metformin clearance",
		Effect:     "Raised lactic acidosis risk",
		Management: "Monitor renal function and glycemic control",
	},
	{
		DrugA:      "levothyroxine",
		DrugB:      "calcium",
		Severity:   domain.SeverityMild,
		Mechanism:  "Calcium chelates levothyroxine in the gut",
		Effect:     "Reduced thyroid hormone absorption",
		Management: "Separate administration by at least 4 hours",
	},
	{
		DrugA:      "digoxin",
		DrugB:      "amiodarone",
		Severity:   domain.SeveritySevere,
		Mechanism:  "P-glycoprotein inhibition raises digoxin levels",
		Effect:     "Digoxin toxicity: arrhythmia, nausea, visual disturbance",
		Management: "Halve digoxin dose and monitor serum levels",
	},
	{
		DrugA:      "tramadol",
		DrugB:      "sertraline",
		Severity:   domain.SeverityModerate,
		Mechanism:  "Additive serotonergic activity",
		Effect:     "Serotonin syndrome risk",
		Management: "Use lowest effective doses; educate on early symptoms",
	},
}

var defaultRanges = []domain.LabRange{
	{Parameter: "glucose", Unit: "mg/dL", NormalMin: 70, NormalMax: 100, CriticalMin: 40, CriticalMax: 400, Gender: domain.GenderBoth},
	{Parameter: "hba1c", Unit: "%", NormalMin: 4, NormalMax: 5.6, CriticalMin: 2, CriticalMax: 14, Gender: domain.GenderBoth},
	{Parameter: "hemoglobin", Unit: "g/dL", NormalMin: 13.5, NormalMax: 17.5, CriticalMin: 7, CriticalMax: 20, Gender: domain.GenderMale},
	{Parameter: "hemoglobin", Unit: "g/dL", NormalMin: 12, NormalMax: 15.5, CriticalMin: 7, CriticalMax: 20, Gender: domain.GenderFemale},
	{Parameter: "creatinine", Unit: "mg/dL", NormalMin: 0.74, NormalMax: 1.35, CriticalMin: 0.2, CriticalMax: 10, Gender: domain.GenderMale},
	{Parameter: "creatinine", Unit: "mg/dL", NormalMin: 0.59, NormalMax: 1.04, CriticalMin: 0.2, CriticalMax: 10, Gender: domain.GenderFemale},
	{Parameter: "gfr", Unit: "mL/min/1.73m2", NormalMin: 90, NormalMax: 200, CriticalMin: 15, CriticalMax: 250, Gender: domain.GenderBoth},
	{Parameter: "cholesterol", Unit: "mg/dL", NormalMin: 125, NormalMax: 200, CriticalMin: 50, CriticalMax: 500, Gender: domain.GenderBoth},
	{Parameter: "ldl", Unit: "mg/dL", NormalMin: 0, NormalMax: 100, CriticalMin: 0, CriticalMax: 400, Gender: domain.GenderBoth},
	{Parameter: "hdl", Unit: "mg/dL", NormalMin: 40, NormalMax: 90, CriticalMin: 10, CriticalMax: 150, Gender: domain.GenderMale},
	{Parameter: "hdl", Unit: "mg/dL", NormalMin: 50, NormalMax: 90, CriticalMin: 10, CriticalMax: 150, Gender: domain.GenderFemale},
	{Parameter: "tsh", Unit: "mIU/L", NormalMin: 0.4, NormalMax: 4.0, CriticalMin: 0.01, CriticalMax: 100, Gender: domain.GenderBoth},
	{Parameter: "potassium", Unit: "mmol/L", NormalMin: 3.5, NormalMax: 5.2, CriticalMin: 2.5, CriticalMax: 6.5, Gender: domain.GenderBoth},
	{Parameter: "sodium", Unit: "mmol/L", NormalMin: 135, NormalMax: 145, CriticalMin: 120, CriticalMax: 160, Gender: domain.GenderBoth},
	{Parameter: "systolic_bp", Unit: "mmHg", NormalMin: 90, NormalMax: 120, CriticalMin: 60, CriticalMax: 220, Gender: domain.GenderBoth},
	{Parameter: "diastolic_bp", Unit: "mmHg", NormalMin: 60, NormalMax: 80, CriticalMin: 40, CriticalMax: 130, Gender: domain.GenderBoth},
	{Parameter: "heart_rate", Unit: "bpm", NormalMin: 60, NormalMax: 100, CriticalMin: 30, CriticalMax: 200, Gender: domain.GenderBoth},
	{Parameter: "temperature", Unit: "C", NormalMin: 36.1, NormalMax: 37.2, CriticalMin: 33, CriticalMax: 42, Gender: domain.GenderBoth},
}

var defaultGuidelines = []domain.Guideline{
	{Condition: "hypertension", FirstLine: "ACE inhibitor or ARB; thiazide diuretic as alternative", Notes: "Add lifestyle modification: sodium restriction, exercise"},
	{Condition: "type 2 diabetes", FirstLine: "Metformin", Notes: "Add SGLT2 inhibitor with established cardiovascular disease"},
	{Condition: "hyperlipidemia", FirstLine: "Moderate-intensity statin", Notes: "High-intensity statin for ASCVD or LDL >= 190"},
	{Condition: "hypothyroidism", FirstLine: "Levothyroxine", Notes: "Re-check TSH 6-8 weeks after dose change"},
	{Condition: "asthma", FirstLine: "Low-dose inhaled corticosteroid with as-needed SABA", Notes: ""},
	{Condition: "gerd", FirstLine: "Proton pump inhibitor, 8-week course", Notes: "Step down to lowest effective dose"},
	{Condition: "atrial fibrillation", FirstLine: "Rate control with beta-blocker; anticoagulation per CHA2DS2-VASc", Notes: ""},
	{Condition: "depression", FirstLine: "SSRI", Notes: "Reassess at 4-6 weeks"},
}
