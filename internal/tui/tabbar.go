package tui

import (
	"strconv"

	"noticeboard/internal/shell"

	"charm.land/lipgloss/v2"
)

var tabTitles = map[shell.TabKey]string{
	shell.TabHome:        "Home",
	shell.TabBusinesses:  "Businesses",
	shell.TabEvents:      "Events",
	shell.TabPlaces:      "Places",
	shell.TabRestaurants: "Restaurants",
	shell.TabAccount:     "Account",
	shell.TabCreate:      "Create",
	shell.TabWebView:     "Web",
}

func tabTitle(tab shell.TabKey) string {
	if t, ok := tabTitles[tab]; ok {
		return t
	}
	return string(tab)
}

// renderTabBar draws the numbered tab strip. Tabs that do not fit are cut
// from the right.
func renderTabBar(active shell.TabKey, width int) string {
	styles := GetStyles()
	var parts []string
	for i, tab := range shell.Tabs {
		label := strconv.Itoa(i+1) + " " + tabTitle(tab)
		if tab == active {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.TabNormal.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(bar) > width {
		bar = lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}

// neighbourTab returns the tab delta positions away, wrapping around.
func neighbourTab(tab shell.TabKey, delta int) shell.TabKey {
	n := len(shell.Tabs)
	for i, t := range shell.Tabs {
		if t == tab {
			return shell.Tabs[((i+delta)%n+n)%n]
		}
	}
	return shell.TabHome
}
