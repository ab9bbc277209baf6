package analyses

// NotMentioned is written by the model for fields without transcript evidence.
const NotMentioned = "Not Mentioned"

// Result is the seven-field analysis extracted from one transcript.
type Result struct {
	ManagementTone            string   `json:"management_tone"`
	ConfidenceLevel           string   `json:"confidence_level"`
	KeyPositives              []string `json:"key_positives"`
	KeyConcerns               []string `json:"key_concerns"`
	ForwardGuidance           string   `json:"forward_guidance"`
	CapacityUtilizationTrends string   `json:"capacity_utilization_trends"`
	GrowthInitiatives         []string `json:"growth_initiatives"`
}
