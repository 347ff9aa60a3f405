package store

import (
	"time"

	"github.com/olegiv/portfolio-go/internal/model"
)

// staticTimestamp is reported as created/updated time for static projects.
var staticTimestamp = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// seedProjects is the canonical project set. It is what `seed` inserts and
// what reads serve when the store is absent or failing.
var seedProjects = []model.Project{
	{
		Slug:        "finance",
		Title:       "Finance",
		Category:    model.CategoryWebDevelopment,
		Description: "A comprehensive financial dashboard application designed for tracking investments, analyzing market trends, and managing personal portfolios. Built with a focus on real-time data visualization and intuitive user experience, this platform empowers users to make informed financial decisions through clear, actionable insights.",
		Image:       "/images/project-1.jpg",
		TechStack:   []string{"Next.js", "TypeScript", "Tailwind CSS", "Chart.js", "PostgreSQL"},
		Screenshots: []string{"/images/project-1.jpg"},
		LiveURL:     strPtr("https://finance-demo.example.com"),
		GithubURL:   strPtr("https://github.com/example/finance"),
		Year:        2024,
	},
	{
		Slug:        "orizon",
		Title:       "Orizon",
		Category:    model.CategoryWebDevelopment,
		Description: "Orizon is a modern SaaS platform for team collaboration and project management. Features include real-time document editing, task tracking, and integrated communication tools. The clean interface prioritizes productivity while maintaining visual elegance across all device sizes.",
		Image:       "/images/project-2.png",
		TechStack:   []string{"React", "Node.js", "Socket.io", "MongoDB", "AWS"},
		Screenshots: []string{"/images/project-2.png"},
		LiveURL:     strPtr("https://orizon-demo.example.com"),
		Year:        2024,
	},
	{
		Slug:        "fundo",
		Title:       "Fundo",
		Category:    model.CategoryWebDesign,
		Description: "Brand identity and web design for Fundo, a crowdfunding platform connecting creative projects with passionate backers. The design language emphasizes trust, community, and creative expression through bold typography and a vibrant color palette that stands out in the fintech space.",
		Image:       "/images/project-3.jpg",
		TechStack:   []string{"Figma", "Adobe Illustrator", "Framer"},
		Screenshots: []string{"/images/project-3.jpg"},
		Year:        2023,
	},
	{
		Slug:        "brawlhalla",
		Title:       "Brawlhalla",
		Category:    model.CategoryApplications,
		Description: "A companion mobile application for competitive Brawlhalla players. Features include match history tracking, character statistics, combo guides, and tournament brackets. The interface draws inspiration from the game aesthetic while providing serious analytical tools for improvement.",
		Image:       "/images/project-4.png",
		TechStack:   []string{"React Native", "TypeScript", "Firebase", "Redux"},
		Screenshots: []string{"/images/project-4.png"},
		GithubURL:   strPtr("https://github.com/example/brawlhalla-companion"),
		Year:        2023,
	},
	{
		Slug:        "dsm",
		Title:       "DSM.",
		Category:    model.CategoryWebDesign,
		Description: "Design system and component library for a major enterprise client. This comprehensive system includes typography scales, color tokens, spacing guidelines, and over 50 reusable components. Built for scalability and consistency across multiple product teams.",
		Image:       "/images/project-5.png",
		TechStack:   []string{"Figma", "Storybook", "CSS Custom Properties", "Documentation"},
		Screenshots: []string{"/images/project-5.png"},
		Year:        2024,
	},
	{
		Slug:        "metaspark",
		Title:       "MetaSpark",
		Category:    model.CategoryWebDesign,
		Description: "Landing page and brand identity for MetaSpark, an AI-powered content generation startup. The design captures the intersection of creativity and technology through dynamic gradients, geometric patterns, and purposeful micro-interactions that bring the brand story to life.",
		Image:       "/images/project-6.png",
		TechStack:   []string{"Figma", "After Effects", "Webflow"},
		Screenshots: []string{"/images/project-6.png"},
		LiveURL:     strPtr("https://metaspark-demo.example.com"),
		Year:        2024,
	},
	{
		Slug:        "summary",
		Title:       "Summary",
		Category:    model.CategoryWebDevelopment,
		Description: "An AI-powered document summarization tool that transforms lengthy articles, research papers, and reports into concise, digestible summaries. Features include adjustable summary length, key point extraction, and export to multiple formats.",
		Image:       "/images/project-7.png",
		TechStack:   []string{"Next.js", "OpenAI API", "Vercel AI SDK", "Tailwind CSS"},
		Screenshots: []string{"/images/project-7.png"},
		LiveURL:     strPtr("https://summary-demo.example.com"),
		GithubURL:   strPtr("https://github.com/example/summary"),
		Year:        2024,
	},
	{
		Slug:        "task-manager",
		Title:       "Task Manager",
		Category:    model.CategoryApplications,
		Description: "A minimalist task management application focused on reducing cognitive overhead. Features include smart scheduling, natural language input, and seamless sync across devices. The design philosophy centers on getting out of the way so users can focus on what matters.",
		Image:       "/images/project-8.jpg",
		TechStack:   []string{"Flutter", "Dart", "SQLite", "Provider"},
		Screenshots: []string{"/images/project-8.jpg"},
		GithubURL:   strPtr("https://github.com/example/task-manager"),
		Year:        2023,
	},
	{
		Slug:        "arrival",
		Title:       "Arrival",
		Category:    model.CategoryWebDevelopment,
		Description: "E-commerce platform for a premium luggage brand. Features include 3D product visualization, personalization options, and a streamlined checkout experience. The design emphasizes product photography and creates an aspirational shopping experience befitting the brand positioning.",
		Image:       "/images/project-9.png",
		TechStack:   []string{"Next.js", "Three.js", "Stripe", "Sanity CMS", "Vercel"},
		Screenshots: []string{"/images/project-9.png"},
		LiveURL:     strPtr("https://arrival-demo.example.com"),
		Year:        2024,
	},
}

// SeedSize is the number of seed projects.
var SeedSize = len(seedProjects)

// staticProject returns a copy of the seed entry at index i with id i+1.
func staticProject(i int) *model.Project {
	p := seedProjects[i].Clone()
	p.ID = int64(i + 1)
	p.CreatedAt = staticTimestamp
	p.UpdatedAt = staticTimestamp
	return p
}

// StaticProjects returns the fallback dataset in its canonical order. The
// result is a fresh copy on every call.
func StaticProjects() []model.Project {
	out := make([]model.Project, len(seedProjects))
	for i := range seedProjects {
		out[i] = *staticProject(i)
	}
	return out
}

func staticBySlug(slug string) *model.Project {
	for i := range seedProjects {
		if seedProjects[i].Slug == slug {
			return staticProject(i)
		}
	}
	return nil
}

func staticByID(id int64) *model.Project {
	if id < 1 || id > int64(len(seedProjects)) {
		return nil
	}
	return staticProject(int(id - 1))
}

func staticSlugs() []string {
	out := make([]string, len(seedProjects))
	for i := range seedProjects {
		out[i] = seedProjects[i].Slug
	}
	return out
}
