package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/findsite/internal/browser"
)

func TestRenderResults(t *testing.T) {
	visited := time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)
	items := []browser.Result{
		browser.RecentsAdapter{Family: browser.FamilyFirefox}.Adapt(browser.Record{
			ID: 1, URL: "https://go.dev", Title: "Go", LastVisitTime: visited.UnixMicro(),
		}, 0),
		browser.TopVisitedAdapter{Family: browser.FamilyFirefox}.Adapt(browser.Record{
			ID: 2, URL: "https://pkg.go.dev", Title: "Packages", VisitCount: 12,
		}, 0),
	}

	views := RenderResults(items)
	require.Len(t, views, 2)

	assert.Equal(t, ViewModel{
		Key:       "1-0_r",
		Section:   SectionRecents,
		Title:     "Go",
		Subtitle:  "go.dev",
		Icon:      browser.IconHistory,
		Accessory: visited.Local().Format(DateLayout),
		URL:       "https://go.dev",
	}, views[0])

	assert.Equal(t, SectionTopVisited, views[1].Section)
	assert.Equal(t, browser.IconStar, views[1].Icon)
	assert.Equal(t, "12 visits", views[1].Accessory)
}

func TestRenderResults_Empty(t *testing.T) {
	assert.Empty(t, RenderResults(nil))
}
