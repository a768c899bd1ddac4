// Package content holds the copy shown on the portfolio pages.
package content

import "strings"

type Profile struct {
	Name    string
	Role    string
	Tagline string
	Email   string
	Socials []Link
}

type Link struct {
	Label string
	URL   string
}

type SkillGroup struct {
	Category string
	Skills   []string
}

type Education struct {
	Degree      string
	Institution string
	StartDate   string
	EndDate     string
	Details     []string
}

type Project struct {
	ID           int
	Title        string
	Description  string
	Image        string
	Categories   []string
	Technologies []string
	DemoLink     string
	GithubLink   string
}

// HasCategory reports whether the project is tagged with c.
func (p Project) HasCategory(c string) bool {
	for _, pc := range p.Categories {
		if pc == c {
			return true
		}
	}
	return false
}

type Category struct {
	ID   string
	Name string
}

// Assets are referenced by path only; they are served from ./static.
const (
	ResumePath    = "/static/resume.pdf"
	AnimationPath = "/static/animations/developer.json"
)

var Me = Profile{
	Name:    "Salvi Parmar",
	Role:    "Full Stack Developer & UI/UX Designer",
	Tagline: "Building scalable web apps with clean code, optimized performance, and great user experience.",
	Email:   "salviparmar@example.com",
	Socials: []Link{
		{Label: "GitHub", URL: "https://github.com/"},
		{Label: "LinkedIn", URL: "https://www.linkedin.com/"},
	},
}

var AboutMe = strings.Join([]string{
	"I enjoy turning rough ideas into fast, friendly interfaces and the services behind them.",
	"Most of my projects start small and grow into a reason to learn a new tool, language or pattern.",
	"Away from the keyboard I sketch layouts, read about design systems, and keep a long list of side projects.",
}, " ")

var Skills = []SkillGroup{
	{Category: "frontend", Skills: []string{"JavaScript", "Wordpress", "HTML/CSS"}},
	{Category: "backend", Skills: []string{"python", "java", "SQL"}},
	{Category: "tools", Skills: []string{"Git", "figma", "canva", "wordpress"}},
	{Category: "softSkills", Skills: []string{"Problem Solving", "Team Work", "Communication", "Time Management", "Adaptability"}},
}

var Schooling = []Education{
	{
		Degree:      "Bachelor of Computer Applications",
		Institution: "Gujarat University",
		StartDate:   "2022",
		EndDate:     "Present",
		Details:     []string{"Coursework in data structures, databases and web development"},
	},
	{
		Degree:      "Higher Secondary",
		Institution: "Gujarat Secondary and Higher Secondary Education Board",
		StartDate:   "2020",
		EndDate:     "2022",
	},
}

var Projects = []Project{
	{
		ID:           1,
		Title:        "E-Commerce Website",
		Description:  "Modern e-commerce site with login, shopping, checkout, and admin panel, fully responsive and user-friendly.",
		Image:        "https://picsum.photos/seed/ecommerce/600/400",
		Categories:   []string{"web", "frontend"},
		Technologies: []string{"HTML/CSS", "JavaScript", "PHP", "MySQL"},
		DemoLink:     "#",
		GithubLink:   "https://github.com/Mihir0336/UniMart-Groceries",
	},
	{
		ID:           2,
		Title:        "Social Media Dashboard",
		Description:  "Interactive dashboard with dark/light mode and data visualization.",
		Image:        "https://picsum.photos/seed/dashboard/600/400",
		Categories:   []string{"web", "frontend"},
		Technologies: []string{"React", "Chart.js", "Tailwind CSS"},
		DemoLink:     "#",
		GithubLink:   "#",
	},
	{
		ID:           3,
		Title:        "Stock Management System",
		Description:  "Stock management for agricultural shops: products, bills and inventory tracking.",
		Image:        "https://picsum.photos/seed/taskmanager/600/400",
		Categories:   []string{"app", "fullstack"},
		Technologies: []string{"HTML/CSS", "JavaScript", "PHP", "MySQL"},
		DemoLink:     "#",
		GithubLink:   "https://github.com/Mihir0336/Stock-Management-System",
	},
	{
		ID:           4,
		Title:        "Portfolio Website",
		Description:  "Personal portfolio with smooth animations and responsive design.",
		Image:        "https://picsum.photos/seed/portfolio/600/400",
		Categories:   []string{"web", "ui"},
		Technologies: []string{"Go", "Gin", "HTMX"},
		DemoLink:     "/",
		GithubLink:   "#",
	},
	{
		ID:           5,
		Title:        "Weather Application",
		Description:  "Real-time weather app with location-based forecasts and animations.",
		Image:        "https://picsum.photos/seed/weather/600/400",
		Categories:   []string{"app", "frontend"},
		Technologies: []string{"React", "OpenWeather API", "CSS Modules"},
		DemoLink:     "#",
		GithubLink:   "#",
	},
	{
		ID:           6,
		Title:        "Blog Platform",
		Description:  "Full-featured blog with CMS and user authentication.",
		Image:        "https://picsum.photos/seed/blog/600/400",
		Categories:   []string{"web", "fullstack"},
		Technologies: []string{"Next.js", "Prisma", "PostgreSQL"},
		DemoLink:     "#",
		GithubLink:   "#",
	},
}

// AllCategory matches every project.
const AllCategory = "all"

var Categories = []Category{
	{ID: AllCategory, Name: "All"},
	{ID: "web", Name: "Web"},
	{ID: "app", Name: "Apps"},
	{ID: "ui", Name: "UI/UX"},
	{ID: "frontend", Name: "Frontend"},
	{ID: "fullstack", Name: "Full Stack"},
}

// FilterProjects returns the projects tagged with category, in page order.
// An empty category or "all" returns every project.
func FilterProjects(projects []Project, category string) []Project {
	if category == "" || category == AllCategory {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.HasCategory(category) {
			out = append(out, p)
		}
	}
	return out
}

// ValidCategory reports whether id is one of the filter tabs.
func ValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
