package domain

// Default models offered for agent runs.
const (
	ModelAgentDefault = "gemini-2.5-pro"
	ModelFast         = "gemini-2.5-flash"
)

// DefaultAgents is the built-in agent catalog. Runs may override Prompt and
// Model per invocation without touching these entries.
var DefaultAgents = []Agent{
	{
		ID:          "adverse-events",
		Name:        "Adverse Event Detection",
		Description: "Identifies and categorizes potential adverse events mentioned in the documents.",
		Prompt:      "You are an expert in pharmacovigilance. Analyze the provided text for any mentions of adverse events or side effects related to drugs or medical devices. List each event, the associated product, and provide a brief summary.",
		Model:       ModelAgentDefault,
		Icon:        "event",
	},
	{
		ID:          "drug-interactions",
		Name:        "Drug Interaction Analysis",
		Description: "Scans for mentions of multiple drugs and analyzes potential interactions.",
		Prompt:      "As a clinical pharmacist, review the text for mentions of two or more drugs. Identify potential drug-drug interactions, classify their severity (mild, moderate, severe), and explain the potential consequences.",
		Model:       ModelAgentDefault,
		Icon:        "interaction",
	},
	{
		ID:          "regulatory-compliance",
		Name:        "Regulatory Compliance Check",
		Description: "Checks document content against common FDA regulatory keywords and clauses.",
		Prompt:      "You are a regulatory affairs specialist. Scan the documents for language related to FDA regulations (e.g., 21 CFR Part 11, GCP, GMP). Highlight sections that demonstrate compliance or indicate potential non-compliance, citing specific phrases from the text.",
		Model:       ModelAgentDefault,
		Icon:        "compliance",
	},
}

// FindAgent looks up a catalog agent by ID.
func FindAgent(agents []Agent, id string) (Agent, bool) {
	for _, a := range agents {
		if a.ID == id {
			return a, true
		}
	}
	return Agent{}, false
}
