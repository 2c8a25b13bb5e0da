// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav defines the sidebar menu structure. The menu is static; only
// its disclosure and collapse state live in the session.
package nav

import (
	"context"

	"github.com/hrops/hrops-go/internal/session"
)

// Item is one sidebar entry. Items with children render as a disclosure
// section; leaf items link directly.
type Item struct {
	ID       string
	Label    string
	Icon     string
	Path     string
	Children []Item
}

// HasChildren reports whether the item renders as a disclosure section.
func (i Item) HasChildren() bool {
	return len(i.Children) > 0
}

// Menu is the sidebar item list in display order.
var Menu = []Item{
	{ID: "home", Label: "Home", Icon: "home", Path: "/"},
	{ID: "employees", Label: "Employee Management", Icon: "users", Children: []Item{
		{ID: "employees-list", Label: "Employee List", Path: "/employees"},
	}},
	{ID: "roles", Label: "Role Management", Icon: "shield", Path: "/roles"},
	{ID: "departments", Label: "Department Management", Icon: "building", Path: "/departments"},
	{ID: "leaves", Label: "Leave Management", Icon: "calendar", Children: []Item{
		{ID: "leaves-apply", Label: "Apply for Leave", Path: "/leaves/apply"},
		{ID: "leaves-manage", Label: "Manage Leaves", Path: "/leaves"},
		{ID: "leaves-employee", Label: "Employee Leaves", Path: "/leaves/employee"},
	}},
	{ID: "projects", Label: "Project Management", Icon: "briefcase", Path: "/projects"},
	{ID: "timesheets", Label: "Timesheet Management", Icon: "clock", Path: "/timesheets"},
	{ID: "attendance", Label: "Attendance Management", Icon: "check-square", Path: "/attendance"},
	{ID: "payroll", Label: "Payroll Management", Icon: "credit-card", Path: "/payroll"},
	{ID: "documents", Label: "Documents", Icon: "folder", Path: "/documents"},
	{ID: "settings", Label: "Settings", Icon: "settings", Path: "/settings"},
	{ID: "logout", Label: "Logout", Icon: "log-out", Path: "/logout"},
}

// View is the per-request sidebar state handed to templates.
type View struct {
	Items        []Item
	Collapsed    bool
	OpenSections map[string]bool
	ActivePath   string
}

// Build assembles the sidebar view from session state and the current path.
func Build(ctx context.Context, state *session.State, activePath string) View {
	return View{
		Items:        Menu,
		Collapsed:    state.SidebarCollapsed(ctx),
		OpenSections: state.OpenSections(ctx),
		ActivePath:   activePath,
	}
}

// IsOpen reports whether a section's submenu is disclosed. Each section
// tracks its own flag; toggling one never touches the others.
func (v View) IsOpen(sectionID string) bool {
	return v.OpenSections[sectionID]
}

// IsActive reports whether the item matches the rendered page path.
func (v View) IsActive(i Item) bool {
	if i.Path != "" && i.Path == v.ActivePath {
		return true
	}
	for _, child := range i.Children {
		if child.Path == v.ActivePath {
			return true
		}
	}
	return false
}

// SectionIDs returns the ids of items with submenus, in menu order.
func SectionIDs() []string {
	var ids []string
	for _, item := range Menu {
		if item.HasChildren() {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// ValidSection reports whether id names a disclosure section.
func ValidSection(id string) bool {
	for _, item := range Menu {
		if item.ID == id && item.HasChildren() {
			return true
		}
	}
	return false
}
