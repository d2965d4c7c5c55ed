package markdown

import "testing"

func TestPresetsValidate(t *testing.T) {
	for _, preset := range []struct {
		name  string
		theme *Theme
	}{
		{"light", Light()},
		{"dark", Dark()},
	} {
		t.Run(preset.name, func(t *testing.T) {
			if err := preset.theme.Validate(); err != nil {
				t.Errorf("Expected preset to validate, got %v", err)
			}
		})
	}
}

func TestHeadingSizeMonotonic(t *testing.T) {
	for _, theme := range []*Theme{Light(), Dark()} {
		for i := 1; i < len(theme.Heading); i++ {
			if theme.Heading[i].Size > theme.Heading[i-1].Size {
				t.Errorf("Heading %d size %v exceeds heading %d size %v",
					i+1, theme.Heading[i].Size, i, theme.Heading[i-1].Size)
			}
		}
	}
}

func TestPresetsDifferOnlyInColors(t *testing.T) {
	light, dark := Light(), Dark()

	if light.Body != dark.Body || light.Bold != dark.Bold ||
		light.Italic != dark.Italic || light.Code != dark.Code {
		t.Error("Expected presets to share fonts")
	}
	if light.Heading != dark.Heading {
		t.Error("Expected presets to share heading fonts")
	}
	if light.LineSpacing != dark.LineSpacing || light.BlockSpacing != dark.BlockSpacing {
		t.Error("Expected presets to share spacing")
	}
	if light.TextColor == dark.TextColor {
		t.Error("Expected presets to differ in text color")
	}
}

func TestNewFillsDefaults(t *testing.T) {
	custom, err := New(Theme{TextColor: hexColor("#000000")})
	if err != nil {
		t.Fatalf("Expected theme to build, got %v", err)
	}

	def := Dark()
	if custom.TextColor == def.TextColor {
		t.Error("Expected the override to be kept")
	}
	if custom.Body != def.Body {
		t.Errorf("Expected body font default %+v, got %+v", def.Body, custom.Body)
	}
	if custom.LinkColor != def.LinkColor {
		t.Error("Expected link color to fall back to the default")
	}
	if custom.BlockSpacing != def.BlockSpacing {
		t.Error("Expected block spacing to fall back to the default")
	}
}

func TestValidateRejectsIncompleteTheme(t *testing.T) {
	theme := Dark()
	theme.Body = FontDescriptor{}
	if err := theme.Validate(); err == nil {
		t.Error("Expected an error for a missing body font")
	}

	theme = Dark()
	theme.LinkColor = 0
	if err := theme.Validate(); err == nil {
		t.Error("Expected an error for an unset link color")
	}

	theme = Dark()
	theme.Heading[3].Size = theme.Heading[0].Size + 10
	if err := theme.Validate(); err == nil {
		t.Error("Expected an error for non-monotonic heading sizes")
	}
}
