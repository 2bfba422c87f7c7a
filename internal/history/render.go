package history

import (
	"strings"

	"github.com/runnerr0/findsite/internal/browser"
)

// Section labels for rendered rows.
const (
	SectionRecents    = "Recently visited"
	SectionTopVisited = "Frequently visited"
)

// DateLayout formats last-visit accessories.
const DateLayout = "2006-01-02 15:04"

// ViewModel is one flattened row ready for a printer or the interactive list.
type ViewModel struct {
	Key       string `json:"key"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Icon      string `json:"icon"`
	Accessory string `json:"accessory"`
	URL       string `json:"url"`
}

// RenderResults maps results to view models in order.
func RenderResults(items []browser.Result) []ViewModel {
	views := make([]ViewModel, len(items))
	for i, it := range items {
		views[i] = ViewModel{
			Key:       it.Key,
			Section:   section(it.Key),
			Title:     it.Title,
			Subtitle:  it.Subtitle,
			Icon:      it.Icon.Source,
			Accessory: accessoryText(it.Accessories),
			URL:       it.URL,
		}
	}
	return views
}

func section(key string) string {
	if strings.HasSuffix(key, browser.TopVisitedKeySuffix) {
		return SectionTopVisited
	}
	return SectionRecents
}

func accessoryText(accs []browser.Accessory) string {
	parts := make([]string, 0, len(accs))
	for _, a := range accs {
		switch {
		case a.Date != nil:
			parts = append(parts, a.Date.Local().Format(DateLayout))
		case a.Text != "":
			parts = append(parts, a.Text)
		}
	}
	return strings.Join(parts, " · ")
}
