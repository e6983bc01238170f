package domain

// DefaultModelID is the model size used when the user picks nothing.
const DefaultModelID = "base"

// ModelOption describes one selectable whisper model size.
type ModelOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SizeLabel   string `json:"sizeLabel,omitempty"`
	Description string `json:"description,omitempty"`
}

// modelCatalog lists the model sizes the whisper CLI accepts for --model.
var modelCatalog = []ModelOption{
	{
		ID:          "tiny",
		Name:        "Tiny",
		SizeLabel:   "~39 M params",
		Description: "Fastest model, lowest accuracy.",
	},
	{
		ID:          "base",
		Name:        "Base",
		SizeLabel:   "~74 M params",
		Description: "Balanced speed and accuracy.",
	},
	{
		ID:          "small",
		Name:        "Small",
		SizeLabel:   "~244 M params",
		Description: "Higher accuracy, slower.",
	},
	{
		ID:          "medium",
		Name:        "Medium",
		SizeLabel:   "~769 M params",
		Description: "High accuracy, much slower.",
	},
	{
		ID:          "large",
		Name:        "Large",
		SizeLabel:   "~1.5 B params",
		Description: "Best accuracy, slowest.",
	},
}

// ModelCatalog returns the built-in model size presets.
func ModelCatalog() []ModelOption {
	models := make([]ModelOption, len(modelCatalog))
	copy(models, modelCatalog)
	return models
}

// IsValidModel reports whether id names a known model size.
func IsValidModel(id string) bool {
	for _, model := range modelCatalog {
		if model.ID == id {
			return true
		}
	}
	return false
}
