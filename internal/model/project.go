// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"time"
)

// Project categories used by the public listing filter.
const (
	CategoryWebDevelopment = "Web development"
	CategoryWebDesign      = "Web design"
	CategoryApplications   = "Applications"
)

// Project represents a portfolio entry.
type Project struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	TechStack   []string  `json:"techStack"`
	Screenshots []string  `json:"screenshots"`
	LiveURL     *string   `json:"liveUrl"`
	GithubURL   *string   `json:"githubUrl"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasLiveURL returns true if the project links to a live deployment.
func (p *Project) HasLiveURL() bool {
	return p.LiveURL != nil && *p.LiveURL != ""
}

// HasGithubURL returns true if the project links to its source.
func (p *Project) HasGithubURL() bool {
	return p.GithubURL != nil && *p.GithubURL != ""
}

// Clone returns a deep copy so callers can never alias shared slices.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.TechStack = slices.Clone(p.TechStack)
	c.Screenshots = slices.Clone(p.Screenshots)
	if p.LiveURL != nil {
		v := *p.LiveURL
		c.LiveURL = &v
	}
	if p.GithubURL != nil {
		v := *p.GithubURL
		c.GithubURL = &v
	}
	return &c
}

// Categories returns the distinct categories of projects in first-seen order.
func Categories(projects []Project) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range projects {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// FormCategories are offered as suggestions in the admin project form.
var FormCategories = []string{
	CategoryWebDevelopment,
	CategoryWebDesign,
	CategoryApplications,
	"Full Stack",
	"Frontend",
	"Backend",
	"Mobile",
	"AI/ML",
	"DevOps",
	"Data",
	"Other",
}
