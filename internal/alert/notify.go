package alert

import (
	"fmt"
	"strings"

	"github.com/gradewatch/gradewatch/internal/grades"
)

// Kind tags a notification variant.
type Kind int

const (
	KindNewMissing Kind = iota
	KindResolved
)

// Fixed embed colors: red for new-missing alerts, green for resolutions.
const (
	ColorAlert   = 0xFF0000
	ColorSuccess = 0x00FF00
)

// Item is one assignment reference inside a notification.
type Item struct {
	Course string
	Name   string
	Date   string
}

// Section groups items under one course heading.
type Section struct {
	Course string
	Items  []Item
}

// Notification is the typed payload handed to the delivery
// collaborator. It is serialized to the webhook wire shape only at the
// delivery boundary.
type Notification struct {
	Kind         Kind
	Title        string
	Sections     []Section // new-missing: grouped by course
	Items        []Item    // resolved: flat list
	Outstanding  int       // previously alerted keys still missing
	DashboardURL string
	Color        int
}

// BuildNewMissing groups the newly missing keys by course, in first-seen
// order. outstanding is appended to the rendered text only when positive.
func BuildNewMissing(student string, newKeys []string, outstanding int, dashboardURL string) Notification {
	var sections []Section
	index := make(map[string]int)
	for _, key := range newKeys {
		course, name, date := grades.SplitKey(key)
		i, seen := index[course]
		if !seen {
			i = len(sections)
			index[course] = i
			sections = append(sections, Section{Course: course})
		}
		sections[i].Items = append(sections[i].Items, Item{Course: course, Name: name, Date: date})
	}

	return Notification{
		Kind:         KindNewMissing,
		Title:        fmt.Sprintf("New Missing Assignments for %s", grades.FirstName(student)),
		Sections:     sections,
		Outstanding:  outstanding,
		DashboardURL: dashboardURL,
		Color:        ColorAlert,
	}
}

// BuildResolved lists the resolved keys flat, in state order.
func BuildResolved(student string, resolvedKeys []string, dashboardURL string) Notification {
	items := make([]Item, 0, len(resolvedKeys))
	for _, key := range resolvedKeys {
		course, name, date := grades.SplitKey(key)
		items = append(items, Item{Course: course, Name: name, Date: date})
	}

	return Notification{
		Kind:         KindResolved,
		Title:        fmt.Sprintf("Assignments Completed for %s", grades.FirstName(student)),
		Items:        items,
		DashboardURL: dashboardURL,
		Color:        ColorSuccess,
	}
}

// Description renders the line-oriented notification body: bold course
// headings with bulleted assignments for new-missing, a flat bullet list
// for resolved, then the optional outstanding count and dashboard link.
func (n Notification) Description() string {
	var lines []string

	switch n.Kind {
	case KindNewMissing:
		for _, s := range n.Sections {
			lines = append(lines, fmt.Sprintf("**%s**", s.Course))
			for _, it := range s.Items {
				lines = append(lines, fmt.Sprintf("- %s (%s)", it.Name, it.Date))
			}
		}
		if n.Outstanding > 0 {
			lines = append(lines, fmt.Sprintf("\n%d other missing", n.Outstanding))
		}
	case KindResolved:
		for _, it := range n.Items {
			lines = append(lines, fmt.Sprintf("- %s (%s, %s)", it.Name, it.Course, it.Date))
		}
	}

	if n.DashboardURL != "" {
		lines = append(lines, fmt.Sprintf("\n[View Dashboard](%s)", n.DashboardURL))
	}

	return strings.Join(lines, "\n")
}
