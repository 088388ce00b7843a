package handlers

import "testing"

func TestLoadTemplatesParsedOnce(t *testing.T) {
	first := loadTemplates()
	second := loadTemplates()

	if first != second {
		t.Error("handlers should share one parsed template set")
	}
	if first.Lookup("dashboard.html") == nil {
		t.Error("dashboard.html not parsed")
	}
	for _, partial := range []string{"head", "nav", "footer"} {
		if first.Lookup(partial) == nil {
			t.Errorf("partial %q not parsed", partial)
		}
	}
}
