package content

// Example is one entry on the animation examples page.
type Example struct {
	Slug        string
	Title       string
	Description string
	Code        string
}

// DocSection is one block of the motion library documentation page.
type DocSection struct {
	Slug  string
	Title string
	Body  string
	Code  string
}

var Examples = []Example{
	{
		Slug:        "basic",
		Title:       "Basic Animation",
		Description: "Slide a single element along the x axis and spin it.",
		Code: `<motion.div
  animate={{ x: 250, rotate: 360 }}
  transition={{ duration: 0.8, ease: "easeInOut" }}
/>`,
	},
	{
		Slug:        "staggering",
		Title:       "Staggering Animation",
		Description: "Offset each child's start by a fixed delay.",
		Code: `const container = {
  visible: { transition: { staggerChildren: 0.1 } }
};
<motion.div variants={container} initial="hidden" animate="visible" />`,
	},
	{
		Slug:        "sequential",
		Title:       "Sequential Animation",
		Description: "Run steps one after another, each starting when the last ends.",
		Code: `await controls.start({ x: 250 });
await controls.start({ y: 50 });
await controls.start({ x: 0, y: 0 });`,
	},
	{
		Slug:        "svg",
		Title:       "SVG Animation",
		Description: "Draw an SVG path by animating its path length.",
		Code: `<motion.path
  d="M50,100 C50,55 150,55 150,100 C150,145 50,145 50,100 Z"
  initial={{ pathLength: 0 }}
  animate={{ pathLength: 1 }}
/>`,
	},
}

var Docs = []DocSection{
	{
		Slug:  "getting-started",
		Title: "Getting Started",
		Body:  "Install the package from npm or load it from a CDN script tag.",
		Code:  "npm install framer-motion",
	},
	{
		Slug:  "animation",
		Title: "Animation API",
		Body:  "Targets can be CSS selectors, DOM elements, node lists or plain objects. CSS properties, transforms, DOM and SVG attributes can all be animated.",
		Code:  `<motion.div animate={{ x: 250, rotate: 360, backgroundColor: '#FFF' }} />`,
	},
	{
		Slug:  "timeline",
		Title: "Timeline API",
		Body:  "Animation controls run steps in sequence with await.",
		Code:  "await controls.start({ x: 100 }); await controls.start({ opacity: 0 });",
	},
	{
		Slug:  "stagger",
		Title: "Stagger",
		Body:  "Variants with staggerChildren delay each child by a fixed step.",
		Code:  "transition: { staggerChildren: 0.1, delayChildren: 0.2 }",
	},
	{
		Slug:  "svg",
		Title: "SVG Animation",
		Body:  "pathLength animates stroke drawing from 0 to 1.",
		Code:  `<motion.path initial={{ pathLength: 0 }} animate={{ pathLength: 1 }} />`,
	},
	{
		Slug:  "waapi",
		Title: "Web Animation API Integration",
		Body:  "Hardware-accelerated values such as opacity and transform are handed to the browser's animation engine.",
		Code:  `<motion.div animate={{ opacity: 1 }} transition={{ type: "tween" }} />`,
	},
}

// LookupExample finds an example by slug.
func LookupExample(slug string) (Example, bool) {
	for _, e := range Examples {
		if e.Slug == slug {
			return e, true
		}
	}
	return Example{}, false
}
