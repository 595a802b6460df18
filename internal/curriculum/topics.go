package curriculum

var suggestedTopics = map[string][]string{
	"Science":           {"Tissues", "Atoms and Molecules", "Life Processes", "Light - Reflection and Refraction", "Chemical Reactions and Equations", "Gravitation"},
	"Social Science":    {"Rise of Nationalism in Europe", "Resources and Development", "Power Sharing", "Sectors of Indian Economy", "Federalism"},
	"Physics":           {"Motion in a Straight Line", "Thermodynamics", "Ray Optics", "Electric Charges & Fields", "Work, Energy & Power"},
	"Chemistry":         {"Chemical Bonding", "Structure of Atom", "Organic Chemistry Basics", "Solutions", "Electrochemistry"},
	"Mathematics":       {"Calculus", "Trigonometry", "Probability", "Matrices", "Complex Numbers", "Real Numbers", "Polynomials"},
	"Biology":           {"Cell Structure", "Genetics", "Human Physiology", "Plant Kingdom", "Biotechnology", "Reproduction"},
	"Economics":         {"Money and Credit", "Globalisation", "Development", "Consumer Rights"},
	"Political Science": {"Gender, Religion and Caste", "Political Parties", "Outcomes of Democracy"},
}

// SuggestedTopics returns revision topics for a subject, or nil when the
// subject has no curated list.
func SuggestedTopics(subject string) []string {
	return suggestedTopics[subject]
}

// SuggestedDiagrams returns diagram topics commonly asked for a class.
func SuggestedDiagrams(c ClassLevel) []string {
	if c.Junior() {
		return []string{"Human Heart", "Neuron", "Electric Motor", "Plant Cell", "Digestive System"}
	}
	return []string{"DNA Structure", "Human Eye", "Galvanic Cell", "Cyclotron", "P-N Junction"}
}

// SuggestedActivities returns lab activities commonly asked for a class.
func SuggestedActivities(c ClassLevel) []string {
	if c.Junior() {
		return []string{"Reaction of Zinc with Acid", "Refraction through Prism", "Saponification", "Photosynthesis (CO2 test)"}
	}
	return []string{"Youngs Double Slit", "Titration of Oxalic Acid", "Verify Ohms Law", "DNA Isolation"}
}

// Subjects lists the subjects with curated topic suggestions.
func Subjects() []string {
	return []string{"Science", "Social Science", "Physics", "Chemistry", "Mathematics", "Biology", "Economics", "Political Science"}
}
