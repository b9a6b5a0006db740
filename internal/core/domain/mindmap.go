package domain

type BranchColor string

const (
	ColorPurple BranchColor = "purple"
	ColorOrange BranchColor = "orange"
	ColorBlue   BranchColor = "blue"
)

type MindmapBranch struct {
	Title string      `json:"title"`
	Color BranchColor `json:"color"`
	Items []string    `json:"items"`
}

type MindmapData struct {
	MainTopic string          `json:"mainTopic"`
	Branches  []MindmapBranch `json:"branches"`
}

// PlaceholderMindmap is the deterministic structure substituted when AI
// generation fails. Callers must surface it as a placeholder, never as
// real analysis output.
func PlaceholderMindmap(originalFilename string) MindmapData {
	topic := originalFilename
	if topic == "" {
		topic = "Document analysis"
	}
	return MindmapData{
		MainTopic: topic,
		Branches: []MindmapBranch{
			{
				Title: "Key points",
				Color: ColorPurple,
				Items: []string{"Analyzing document", "Extracting content", "Structuring results"},
			},
			{
				Title: "Details",
				Color: ColorOrange,
				Items: []string{"Further analysis needed", "Organizing content"},
			},
		},
	}
}
