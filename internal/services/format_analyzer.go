package services

import (
	"regexp"
	"strings"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// FormatAnalyzerService inspects the structure of extracted resume
// text: sections, contact details, formatting stats, spoken languages,
// and an overall 0-100 ATS-friendliness score.
type FormatAnalyzerService interface {
	Analyze(content *PDFContent) *models.FormatReport
	AnalyzeText(text string, pageCount int) *models.FormatReport
}

type formatAnalyzerService struct{}

func NewFormatAnalyzerService() FormatAnalyzerService {
	return &formatAnalyzerService{}
}

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9\-_%]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[A-Za-z0-9\-_.]+`)
	yearPattern     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	bulletPattern   = regexp.MustCompile(`^\s*([•●▪‣*·]|-\s)`)
)

// sectionHeaders maps header spellings seen in resumes to a canonical
// section name.
var sectionHeaders = map[string]string{
	"summary":              "summary",
	"professional summary": "summary",
	"profile":              "summary",
	"objective":            "objective",
	"career objective":     "objective",
	"experience":           "experience",
	"work experience":      "experience",
	"employment":           "experience",
	"employment history":   "experience",
	"work history":         "experience",
	"education":            "education",
	"academic background":  "education",
	"skills":               "skills",
	"technical skills":     "skills",
	"core competencies":    "skills",
	"projects":             "projects",
	"personal projects":    "projects",
	"certifications":       "certifications",
	"certificates":         "certifications",
	"licenses":             "certifications",
	"awards":               "awards",
	"honors":               "awards",
	"publications":         "publications",
	"languages":            "languages",
	"language skills":      "languages",
	"interests":            "interests",
	"hobbies":              "interests",
	"volunteer":            "volunteer",
	"volunteering":         "volunteer",
	"references":           "references",
	"contact":              "contact",
	"contact information":  "contact",
}

var knownLanguages = buildWordSet(
	"english", "spanish", "french", "german", "italian", "portuguese", "dutch",
	"russian", "polish", "swedish", "norwegian", "danish", "finnish", "greek",
	"turkish", "arabic", "hebrew", "hindi", "urdu", "bengali", "punjabi",
	"chinese", "mandarin", "cantonese", "japanese", "korean", "vietnamese",
	"thai", "indonesian", "malay", "tagalog", "swahili",
)

var proficiencyPattern = regexp.MustCompile(`(?i)\b(native|fluent|proficient|advanced|intermediate|basic|beginner|elementary|conversational)\b`)

// Analyze implements FormatAnalyzerService.
func (f *formatAnalyzerService) Analyze(content *PDFContent) *models.FormatReport {
	if content == nil {
		return f.AnalyzeText("", 0)
	}
	return f.AnalyzeText(content.Text, content.PageCount)
}

// AnalyzeText implements FormatAnalyzerService.
func (f *formatAnalyzerService) AnalyzeText(text string, pageCount int) *models.FormatReport {
	report := &models.FormatReport{
		PageCount:  pageCount,
		TextLength: len(text),
		WordCount:  len(strings.Fields(text)),
	}

	lines := strings.Split(text, "\n")

	report.Contact = detectContactInfo(text)
	report.DetectedSections, report.ExtractedSections = detectSections(lines)
	report.SectionCount = len(report.DetectedSections)
	for _, section := range report.DetectedSections {
		if section == "languages" {
			report.HasLanguageSection = true
		}
	}

	var lineLengthTotal, nonEmptyLines int
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyLines++
		lineLengthTotal += len(trimmed)
		if bulletPattern.MatchString(line) {
			report.BulletCount++
		}
	}
	report.HasBullets = report.BulletCount > 0
	if nonEmptyLines > 0 {
		report.AvgLineLength = round2(float64(lineLengthTotal) / float64(nonEmptyLines))
	}

	report.DateCount = len(yearPattern.FindAllString(text, -1))
	report.Languages = detectLanguages(lines, report.ExtractedSections["languages"])

	report.ATSScore = atsScore(report)
	report.ATSRating = models.RatingForScore(report.ATSScore)
	report.Issues = formatIssues(report)

	return report
}

func detectContactInfo(text string) models.ContactInfo {
	return models.ContactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    strings.TrimSpace(phonePattern.FindString(text)),
		LinkedIn: linkedinPattern.FindString(text),
		GitHub:   githubPattern.FindString(text),
	}
}

// detectSections walks the lines looking for short header lines that
// match a known section name, and collects the text between headers.
func detectSections(lines []string) ([]string, map[string]string) {
	var order []string
	seen := make(map[string]bool)
	contents := make(map[string][]string)
	current := ""

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		header := strings.ToLower(strings.TrimRight(trimmed, ":"))
		header = strings.Join(strings.Fields(header), " ")
		if canonical, ok := sectionHeaders[header]; ok && len(trimmed) <= 40 {
			current = canonical
			if !seen[canonical] {
				seen[canonical] = true
				order = append(order, canonical)
			}
			continue
		}

		if current != "" {
			contents[current] = append(contents[current], trimmed)
		}
	}

	extracted := make(map[string]string, len(contents))
	for name, sectionLines := range contents {
		extracted[name] = strings.Join(sectionLines, "\n")
	}
	return order, extracted
}

// detectLanguages scans for known language names, preferring the
// dedicated languages section when one exists. A proficiency word on
// the same line is attached to the language.
func detectLanguages(lines []string, languageSection string) []models.LanguageSkill {
	scan := lines
	if languageSection != "" {
		scan = strings.Split(languageSection, "\n")
	}

	var detected []models.LanguageSkill
	seen := make(map[string]bool)

	for _, line := range scan {
		proficiency := ""
		if m := proficiencyPattern.FindString(line); m != "" {
			proficiency = titleCase(m)
		}
		for _, word := range segmentWords(line) {
			if knownLanguages[word] && !seen[word] {
				seen[word] = true
				detected = append(detected, models.LanguageSkill{
					Language:    titleCase(word),
					Proficiency: proficiency,
				})
			}
		}
	}
	return detected
}

func titleCase(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// atsScore is an additive rubric over the report, capped at 100:
// contact details 30, section structure 25, bullets 15, dated entries
// 10, enough text 10, sane line lengths 10.
func atsScore(report *models.FormatReport) int {
	score := 0

	if report.Contact.HasEmail() {
		score += 15
	}
	if report.Contact.HasPhone() {
		score += 10
	}
	if report.Contact.LinkedIn != "" || report.Contact.GitHub != "" {
		score += 5
	}

	sections := report.SectionCount * 5
	if sections > 25 {
		sections = 25
	}
	score += sections

	if report.HasBullets {
		score += 15
	}
	if report.DateCount >= 2 {
		score += 10
	}
	if report.TextLength >= 300 {
		score += 10
	}
	if report.AvgLineLength > 0 && report.AvgLineLength <= 120 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func formatIssues(report *models.FormatReport) []string {
	var issues []string

	if !report.Contact.HasEmail() {
		issues = append(issues, "Add an email address")
	}
	if !report.Contact.HasPhone() {
		issues = append(issues, "Add a phone number")
	}
	if !report.HasBullets {
		issues = append(issues, "Use bullet points for better readability")
	}
	if report.SectionCount < 3 {
		issues = append(issues, "Add clear section headers (Experience, Education, Skills, etc.)")
	}
	if report.DateCount < 2 {
		issues = append(issues, "Include dates for your experience entries")
	}
	if report.TextLength < 300 {
		issues = append(issues, "Resume text is very short; the PDF may not be readable by ATS parsers")
	}

	return issues
}
