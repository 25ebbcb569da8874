package linear

// labelColors assigns each issue category a fixed hex color so labels
// look consistent across teams.
var labelColors = map[string]string{
	"auth":     "#FF5733",
	"product":  "#33FF57",
	"checkout": "#3357FF",
	"ui":       "#F333FF",
	"api":      "#33FFF3",
	"database": "#FFB533",
	"delivery": "#FF33A8",
	"cms":      "#33A8FF",
	"webhook":  "#A833FF",
}

const defaultLabelColor = "#808080"

// LabelColor returns the color for a category, falling back to gray.
func LabelColor(category string) string {
	if color, ok := labelColors[category]; ok {
		return color
	}
	return defaultLabelColor
}
