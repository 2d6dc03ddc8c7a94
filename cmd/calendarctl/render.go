package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	getCalendarUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
)

const cellWidth = 11

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Width(cellWidth).
			Align(lipgloss.Center)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(6)

	openStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	closedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	offDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	overflowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// renderGrid печатает сетку неделями: строки - часы, столбцы - дни
func renderGrid(resp *getCalendarUC.Response) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("org %d  %s  %s  %02d-%02d, max %d per slot",
		resp.OrgID, resp.View, resp.Date,
		resp.Config.StartHour, resp.Config.EndHour, resp.Config.MaxEntriesPerSlot)))
	b.WriteString("\n")

	for start := 0; start < len(resp.Days); start += domain.MaxWeekDays {
		end := start + domain.MaxWeekDays
		if end > len(resp.Days) {
			end = len(resp.Days)
		}
		b.WriteString(renderWeek(resp.Days[start:end]))
		b.WriteString("\n")
	}
	return b.String()
}

func renderWeek(days []getCalendarUC.Day) string {
	header := []string{labelStyle.Render("")}
	for _, d := range days {
		title := fmt.Sprintf("%s %02d.%02d", d.Weekday, d.Date.Day, int(d.Date.Month))
		if !d.ShowThisDay {
			header = append(header, offDayStyle.Width(cellWidth).Align(lipgloss.Center).Render(title))
			continue
		}
		header = append(header, headerStyle.Render(title))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, hour := range weekHours(days) {
		label := ""
		cells := make([]string, 0, len(days))
		for _, d := range days {
			slot, ok := findSlot(d, hour)
			if !ok {
				cells = append(cells, lipgloss.NewStyle().Width(cellWidth).Render(""))
				continue
			}
			if label == "" {
				label = slot.Label
			}
			cells = append(cells, renderCell(d, slot))
		}
		row := append([]string{labelStyle.Render(label)}, cells...)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(day getCalendarUC.Day, slot getCalendarUC.Slot) string {
	text := fmt.Sprintf("%d/%d", slot.Occupancy, slot.Capacity)
	if slot.Status == domain.StatusClosed {
		text += " x"
	}

	style := openStyle
	switch {
	case !day.ShowThisDay:
		style = offDayStyle
	case slot.Overflow:
		style = overflowStyle
	case slot.Status == domain.StatusClosed:
		style = closedStyle
	}
	return style.Width(cellWidth).Align(lipgloss.Center).Render(text)
}

// weekHours объединение часов всех дней: у дней могут быть разные часы вне расписания
func weekHours(days []getCalendarUC.Day) []int {
	seen := make(map[int]bool)
	hours := make([]int, 0)
	for _, d := range days {
		for _, s := range d.Slots {
			if !seen[s.Hour] {
				seen[s.Hour] = true
				hours = append(hours, s.Hour)
			}
		}
	}
	sort.Ints(hours)
	return hours
}

func findSlot(day getCalendarUC.Day, hour int) (getCalendarUC.Slot, bool) {
	for _, s := range day.Slots {
		if s.Hour == hour {
			return s, true
		}
	}
	return getCalendarUC.Slot{}, false
}
