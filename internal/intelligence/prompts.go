package intelligence

import (
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/alexanderramin/outings/internal/domain"
)

const activityPromptTemplate = `Today is {{.Today}}. Find 5 family-friendly EVENTS happening on or around "{{.Availability}}" near {{.City}}.

**Important**: Search for SPECIFIC DATED EVENTS, not generic attractions. Look for:
- Local event calendars and "things to do" listings for the specified date
- Special programs, festivals, performances, and seasonal events
- One-time or limited-run activities with specific dates/times
- Community events, holiday activities, and special exhibits

Do NOT recommend generic "always open" attractions unless they have a SPECIFIC special event happening on the requested date.

**Family Details:**
- Kids ages: {{.KidAges}}
- When they're available: {{.Availability}}
- Maximum distance: {{.MaxDistance}} miles
- Preferences: {{.Preferences}}

**Search Strategy:**
1. Search for "{{.City}} events {{.Availability}}"
2. Search for "{{.City}} kids activities {{.Availability}}"
3. Search for "things to do with kids {{.City}}" for the specified date
4. Check local event calendars and community listings

**Response Format:**
Return exactly 5 event recommendations as a JSON array. Each object must have:
- ` + "`emoji`" + `: A single relevant emoji for the activity type
- ` + "`title`" + `: Event name with SPECIFIC date/time matching "{{.Availability}}" (e.g., "Holiday Train Show - Sat Dec 27, 2pm-4pm")
- ` + "`description`" + `: 2-4 sentences explaining the event and why it's great for kids of these ages. Mention what makes this a special/timely event.
- ` + "`location`" + `: Venue or location name
- ` + "`distance`" + `: Approximate distance from {{.City}} center in miles (number)

**Example Response:**
` + "```json" + `
[
  {
    "emoji": "🎄",
    "title": "Winter Wonderland Festival - Sat Dec 27, 11am-4pm",
    "description": "Annual holiday festival featuring live reindeer, Santa meet-and-greet, and kids' craft stations. This special weekend event includes ice sculpting demonstrations and a holiday parade at 2pm. Perfect for kids who love festive activities.",
    "location": "Lincoln Park Zoo",
    "distance": 3.2
  }
]
` + "```" + `

CRITICAL: You MUST return ONLY a valid JSON array with exactly 5 activities. Do NOT include any explanatory text, apologies, or caveats. If you cannot find specific dated events, include ongoing attractions or regularly scheduled activities that would be available on that date. Never respond with anything other than the JSON array.`

const diningPromptTemplate = `Today is {{.Today}}. Find 5 UNIQUE family-friendly {{.Cuisine}} restaurants near {{.City}} for "{{.Availability}}".

{{if .CuisineRequested}}IMPORTANT: The user specifically requested "{{.Cuisine}}" cuisine. ALL 5 restaurants MUST serve {{.Cuisine}} food. Do NOT suggest other cuisine types.{{else}}Find a variety of cuisine types.{{end}}

**Search Criteria:**
- Cuisine type: {{.Cuisine}} (REQUIRED - all results must match this cuisine)
- Must be POPULAR and HIGHLY RATED (4+ stars on Google/Yelp)
- UNIQUE local restaurants - NO national chains (no McDonald's, Chili's, Applebee's, Olive Garden, PF Chang's, etc.)
- Family-friendly atmosphere suitable for kids ages {{.KidAges}}
- Within {{.MaxDistance}} miles

**Search Strategy:**
1. Search for "best {{.Cuisine}} restaurants {{.City}}"
2. Search for "top rated {{.Cuisine}} {{.City}}"
3. Search for "{{.Cuisine}} restaurant near {{.City}}"

**Prioritize UNIQUE EXPERIENCES:**
1. Authentic {{.Cuisine}} restaurants with great reviews
2. Local gems and hidden treasures that locals love
3. Places with character, story, and personality - interesting decor, memorable atmosphere, or interactive elements
4. Restaurants known for specific signature {{.Cuisine}} dishes
5. One-of-a-kind dining experiences the family will remember - think unique themes, tableside preparations, open kitchens, unusual settings, or cultural immersion

**Response Format:**
Return exactly 5 {{.Cuisine}} restaurant recommendations as JSON array:
- ` + "`emoji`" + `: Relevant food emoji for {{.Cuisine}} cuisine
- ` + "`title`" + `: Restaurant name with typical hours (e.g., "Thai Basil - Open 11am-9pm")
- ` + "`description`" + `: 2-3 sentences highlighting what makes this a UNIQUE dining experience (atmosphere, specialty, story), must-try {{.Cuisine}} dishes, and why it's great for families.
- ` + "`location`" + `: Full address or neighborhood
- ` + "`distance`" + `: Miles from {{.City}} center (number)

CRITICAL: Return ONLY a valid JSON array. ALL restaurants MUST serve {{.Cuisine}} food. NO CHAINS. No explanatory text, just the JSON array.`

const (
	noPreferences = "No specific preferences"
	anyCuisine    = "any cuisine"
	todayLayout   = "Monday, January 2, 2006"
)

var (
	activityPrompt = template.Must(template.New("activity").Parse(activityPromptTemplate))
	diningPrompt   = template.Must(template.New("dining").Parse(diningPromptTemplate))
)

type promptData struct {
	Today            string
	City             string
	KidAges          string
	Availability     string
	MaxDistance      string
	Preferences      string
	Cuisine          string
	CuisineRequested bool
}

// BuildPrompt renders the provider prompt for params. Availability must
// already be resolved. A non-empty summary is appended after a blank line.
func BuildPrompt(params domain.SearchParameters, today time.Time, summary string) string {
	data := promptData{
		Today:        today.Format(todayLayout),
		City:         params.City,
		KidAges:      params.KidAges,
		Availability: params.Availability,
		MaxDistance:  formatDistance(params.MaxDistance),
	}

	tmpl := activityPrompt
	if params.IsDining() {
		tmpl = diningPrompt
		data.Cuisine = params.Preferences
		data.CuisineRequested = params.Preferences != ""
		if !data.CuisineRequested {
			data.Cuisine = anyCuisine
		}
	} else {
		data.Preferences = params.Preferences
		if data.Preferences == "" {
			data.Preferences = noPreferences
		}
	}

	var b strings.Builder
	// Both templates are fixed and promptData always matches them.
	if err := tmpl.Execute(&b, data); err != nil {
		panic("intelligence: rendering prompt: " + err.Error())
	}
	if summary != "" {
		b.WriteString("\n\n")
		b.WriteString(summary)
	}
	return b.String()
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
