// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route path constants
const (
	RouteRoot      = "/"
	RouteResume    = "/resume"
	RoutePortfolio = "/portfolio"
	RouteBlog      = "/blog"
	RouteContact   = "/contact"
	RouteLogin     = "/login"
	RouteLogout    = "/logout"
	RouteAdmin     = "/admin"
	RouteProjects  = "/projects"
	RouteUploads   = "/uploads"
	RouteHealth    = "/health"
	RouteMetrics   = "/metrics"
	RouteStatic    = "/static"
	RouteRobots    = "/robots.txt"
	RouteSitemap   = "/sitemap.xml"

	RouteSuffixNew    = "/new"
	RouteSuffixDelete = "/delete"
	RouteParamID      = "/{id}"
	RouteParamSlug    = "/{slug}"
)

// Redirect targets
const (
	redirectAdmin         = RouteAdmin
	redirectAdminProjects = RouteAdmin + RouteProjects
	redirectLogin         = RouteLogin
)

// Template names
const (
	tmplHome        = "site/home"
	tmplResume      = "site/resume"
	tmplPortfolio   = "site/portfolio"
	tmplProject     = "site/project"
	tmplBlog        = "site/blog"
	tmplContact     = "site/contact"
	tmplNotFound    = "site/not_found"
	tmplError       = "site/error"
	tmplLogin       = "auth/login"
	tmplDashboard   = "admin/dashboard"
	tmplProjects    = "admin/projects"
	tmplProjectForm = "admin/project_form"
)

// Flash message types
const (
	flashTypeSuccess = "success"
	flashTypeError   = "error"
)

// maxFormBytes caps url-encoded form bodies.
const maxFormBytes = 1 << 20
