package theme

func registerBuiltins() {
	for _, t := range []Theme{defaultTheme(), nordTheme(), tokyoNightTheme()} {
		Register(t)
	}
}

// defaultTheme is a dark neutral palette with a violet accent.
func defaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",

		Border:      "#3e3e3e",
		BorderFocus: "#7C3AED",
		Title:       "#d4d4d4",

		StatusOK:      "#4ec970",
		StatusWarn:    "#e5c07b",
		StatusError:   "#e06c75",
		StatusUnknown: "#6b6b6b",

		GaugeFilled: "#4ec970",
		GaugeEmpty:  "#3e3e3e",
		GaugeWarn:   "#e5c07b",
		GaugeCrit:   "#e06c75",

		SparkLine: "#7C3AED",
		SparkDim:  "#3e3e3e",

		PriorityHigh:   "#e06c75",
		PriorityMedium: "#e5c07b",
		PriorityLow:    "#6b6b6b",

		SearchHighlight: "#f9e2af",
		HelpKey:         "#7C3AED",
		HelpDesc:        "#6b6b6b",
	}
}

func nordTheme() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#d8dee9",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		Border:      "#3b4252",
		BorderFocus: "#88c0d0",
		Title:       "#eceff4",

		StatusOK:      "#a3be8c",
		StatusWarn:    "#ebcb8b",
		StatusError:   "#bf616a",
		StatusUnknown: "#4c566a",

		GaugeFilled: "#a3be8c",
		GaugeEmpty:  "#3b4252",
		GaugeWarn:   "#ebcb8b",
		GaugeCrit:   "#bf616a",

		SparkLine: "#88c0d0",
		SparkDim:  "#3b4252",

		PriorityHigh:   "#bf616a",
		PriorityMedium: "#ebcb8b",
		PriorityLow:    "#4c566a",

		SearchHighlight: "#ebcb8b",
		HelpKey:         "#88c0d0",
		HelpDesc:        "#4c566a",
	}
}

func tokyoNightTheme() Theme {
	return Theme{
		Name:       "tokyo-night",
		Background: "#1a1b26",
		Foreground: "#c0caf5",
		Dim:        "#565f89",
		Accent:     "#7aa2f7",

		Border:      "#292e42",
		BorderFocus: "#7aa2f7",
		Title:       "#c0caf5",

		StatusOK:      "#9ece6a",
		StatusWarn:    "#e0af68",
		StatusError:   "#f7768e",
		StatusUnknown: "#565f89",

		GaugeFilled: "#9ece6a",
		GaugeEmpty:  "#292e42",
		GaugeWarn:   "#e0af68",
		GaugeCrit:   "#f7768e",

		SparkLine: "#7aa2f7",
		SparkDim:  "#292e42",

		PriorityHigh:   "#f7768e",
		PriorityMedium: "#e0af68",
		PriorityLow:    "#565f89",

		SearchHighlight: "#e0af68",
		HelpKey:         "#7aa2f7",
		HelpDesc:        "#565f89",
	}
}
