package profile

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

const monthPattern = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`

var (
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	// dateRangeRe matches "Jan 2020 - Present", "2019 – 2021", "03/2018 to 05/2020"
	dateRangeRe = regexp.MustCompile(`(?i)(?:` + monthPattern + `\s*)?(?:\d{1,2}/)?\d{4}\s*(?:-|–|—|to)\s*(?:(?:` + monthPattern + `\s*)?(?:\d{1,2}/)?\d{4}|present|current|now|date|ongoing)`)
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	atRe        = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|@)\s+(.+)$`)
	fromRe      = regexp.MustCompile(`(?i)^(.+?)\s+(?:from|at)\s+(.+)$`)
	pipeRe      = regexp.MustCompile(`^([^|]+)\|([^|]+)(?:\|(.+))?$`)
	commaRe     = regexp.MustCompile(`^([^,]+),\s*([^,]+)$`)
	dashRe      = regexp.MustCompile(`^(.+?)\s+[-–—]\s+(.+)$`)
	parenRe     = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)
	colonRe     = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	byRe        = regexp.MustCompile(`(?i)^(.+?)\s+(?:by|from|issued by)\s+(.+)$`)
	techLineRe  = regexp.MustCompile(`(?i)^(?:tech(?:nologies|nology| stack)?|stack|tools|built with)\s*[:\-]\s*(.+)$`)
	bulletRe    = regexp.MustCompile(`^\s*(?:[•\-*▪◦●]|\d+[.)])\s+`)
	headingRe   = regexp.MustCompile(`^#{1,6}\s+`)

	degreeRe      = regexp.MustCompile(`(?i)\b(?:b\.?\s?tech|m\.?\s?tech|b\.?\s?e\b|m\.?\s?e\b|b\.?\s?sc|m\.?\s?sc|bachelor|master|mba|bba|bca|mca|ph\.?\s?d|diploma|associate|b\.?\s?a\b|m\.?\s?a\b|b\.?\s?com|m\.?\s?com|high school|secondary|hsc|ssc|degree)`)
	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|iit|nit|polytechnic)\b`)
)

// splitRecords splits free text into record chunks on blank lines, on
// markdown-bold header lines, and on header-like lines starting with a capital
// letter once the current chunk already has a header.
func splitRecords(text string, isHeader func(string) bool) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var chunks []string
	for _, block := range blankLineRe.Split(text, -1) {
		var current []string
		hasHeader := false
		for _, line := range strings.Split(block, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			boldStart := strings.HasPrefix(trimmed, "**")
			headerLike := !bulletRe.MatchString(trimmed) && startsUpper(trimmed) && isHeader(cleanLine(trimmed))
			if len(current) > 0 && (boldStart || (hasHeader && headerLike)) {
				chunks = append(chunks, strings.Join(current, "\n"))
				current = nil
				hasHeader = false
			}
			current = append(current, trimmed)
			if boldStart || headerLike {
				hasHeader = true
			}
		}
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
		}
	}
	return chunks
}

func startsUpper(s string) bool {
	s = strings.TrimLeft(s, "*_# ")
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return r >= 'A' && r <= 'Z'
}

// cleanLine strips bullet markers, markdown headings and emphasis pairs.
// A "#" that is part of a word, as in C# or F#, is kept.
func cleanLine(line string) string {
	line = bulletRe.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")
	line = headingRe.ReplaceAllString(strings.TrimSpace(line), "")
	if strings.Trim(line, "#") == "" {
		return ""
	}
	if len(line) > 2 && strings.HasPrefix(line, "_") && strings.HasSuffix(line, "_") {
		line = line[1 : len(line)-1]
	}
	return strings.TrimSpace(line)
}

// extractDuration removes a date range (or lone year when allowYear is set)
// from the line and returns both parts.
func extractDuration(line string, allowYear bool) (rest, duration string) {
	if loc := dateRangeRe.FindStringIndex(line); loc != nil {
		duration = strings.TrimSpace(line[loc[0]:loc[1]])
		rest = line[:loc[0]] + line[loc[1]:]
	} else if allowYear {
		if loc := yearRe.FindStringIndex(line); loc != nil {
			duration = line[loc[0]:loc[1]]
			rest = line[:loc[0]] + line[loc[1]:]
		} else {
			rest = line
		}
	} else {
		rest = line
	}
	return trimSeparators(rest), duration
}

func trimSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "()", "")
	s = strings.Trim(s, " |,;:-–—")
	return strings.TrimSpace(s)
}

// isExperienceHeader reports whether a line names a role or company, as
// opposed to a bare date line or a sentence of description.
func isExperienceHeader(line string) bool {
	if len(line) > 80 || strings.HasSuffix(line, ".") {
		return false
	}
	rest, _ := extractDuration(line, false)
	return rest != "" && (pipeRe.MatchString(rest) || atRe.MatchString(rest))
}

// parseExperienceText recovers experience entries from free text.
func parseExperienceText(text string) []types.Experience {
	out := []types.Experience{}
	for _, chunk := range splitRecords(text, isExperienceHeader) {
		var exp types.Experience
		var desc []string
		for _, raw := range strings.Split(chunk, "\n") {
			isBullet := bulletRe.MatchString(raw)
			line := cleanLine(raw)
			if line == "" {
				continue
			}
			if isBullet || (exp.Role != "" || exp.Company != "") && exp.Duration != "" {
				desc = append(desc, line)
				continue
			}
			rest, duration := extractDuration(line, false)
			if duration != "" && exp.Duration == "" {
				exp.Duration = duration
			}
			if exp.Role != "" || exp.Company != "" {
				if rest != "" {
					desc = append(desc, rest)
				}
				continue
			}
			if rest == "" {
				continue
			}
			role, company, third, ok := splitHeader(rest)
			if !ok {
				desc = append(desc, rest)
				continue
			}
			exp.Role, exp.Company = role, company
			if third != "" && exp.Duration == "" {
				exp.Duration = third
			}
		}
		exp.Description = strings.Join(desc, "\n")
		if exp.Role == "" && exp.Company == "" {
			continue
		}
		out = append(out, exp)
	}
	return out
}

// splitHeader applies the pipe, "X at Y" and comma patterns in order
func splitHeader(line string) (first, second, third string, ok bool) {
	if m := pipeRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3]), true
	}
	if m := atRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), "", true
	}
	if m := commaRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), "", true
	}
	if m := dashRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), "", true
	}
	return "", "", "", false
}

func isEducationHeader(line string) bool {
	return len(line) <= 120 && degreeRe.MatchString(line)
}

// parseEducationText recovers education entries from free text.
func parseEducationText(text string) []types.Education {
	out := []types.Education{}
	for _, chunk := range splitRecords(text, isEducationHeader) {
		var edu types.Education
		for _, raw := range strings.Split(chunk, "\n") {
			line := cleanLine(raw)
			if line == "" {
				continue
			}
			if m := pipeRe.FindStringSubmatch(line); m != nil && edu.Degree == "" {
				edu.Degree = strings.TrimSpace(m[1])
				edu.University = strings.TrimSpace(m[2])
				if third := strings.TrimSpace(m[3]); third != "" {
					assignEducationDate(&edu, third)
				}
				continue
			}
			rest, when := extractDuration(line, true)
			if when != "" {
				assignEducationDate(&edu, when)
			}
			if rest == "" {
				continue
			}
			switch {
			case edu.Degree == "" && degreeRe.MatchString(rest):
				if m := fromRe.FindStringSubmatch(rest); m != nil {
					edu.Degree, edu.University = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
				} else if m := commaRe.FindStringSubmatch(rest); m != nil && institutionRe.MatchString(m[2]) {
					edu.Degree, edu.University = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
				} else {
					edu.Degree = rest
				}
			case edu.University == "" && institutionRe.MatchString(rest):
				edu.University = rest
			case edu.Degree == "":
				edu.Degree = rest
			case edu.University == "":
				edu.University = rest
			}
		}
		if edu.Degree == "" && edu.University == "" {
			continue
		}
		out = append(out, edu)
	}
	return out
}

func assignEducationDate(edu *types.Education, when string) {
	if dateRangeRe.MatchString(when) {
		if edu.Duration == "" {
			edu.Duration = when
		}
		return
	}
	if edu.Year == "" {
		edu.Year = when
	}
}

func isProjectHeader(line string) bool {
	return len(line) <= 80 && !strings.HasSuffix(line, ".") && (pipeRe.MatchString(line) || parenRe.MatchString(line))
}

// parseProjectsText recovers projects from free text.
func parseProjectsText(text string) []types.Project {
	out := []types.Project{}
	for _, chunk := range splitRecords(text, isProjectHeader) {
		var proj types.Project
		var desc []string
		for _, raw := range strings.Split(chunk, "\n") {
			isBullet := bulletRe.MatchString(raw)
			line := cleanLine(raw)
			if line == "" {
				continue
			}
			if m := techLineRe.FindStringSubmatch(line); m != nil && proj.Tech == "" {
				proj.Tech = strings.TrimSpace(m[1])
				continue
			}
			if isBullet || proj.Title != "" {
				desc = append(desc, line)
				continue
			}
			switch {
			case pipeRe.MatchString(line):
				m := pipeRe.FindStringSubmatch(line)
				proj.Title, proj.Tech = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			case parenRe.MatchString(line):
				m := parenRe.FindStringSubmatch(line)
				proj.Title, proj.Tech = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			case dashRe.MatchString(line) && len(line) < 120:
				m := dashRe.FindStringSubmatch(line)
				proj.Title = strings.TrimSpace(m[1])
				desc = append(desc, strings.TrimSpace(m[2]))
			default:
				proj.Title = line
			}
		}
		proj.Description = strings.Join(desc, "\n")
		if proj.Title == "" {
			continue
		}
		out = append(out, proj)
	}
	return out
}

// splitPair splits a single-line record into a title and a qualifier using
// pipe, parenthesis, "by/from", dash, colon and comma conventions in order.
func splitPair(line string) (first, second string) {
	if m := pipeRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := parenRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := byRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := dashRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := colonRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := commaRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return line, ""
}

// textLines returns the cleaned, non-empty lines of a free-text value
func textLines(text string) []string {
	var out []string
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line := cleanLine(raw); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func parseCertificationsText(text string) []types.Certification {
	out := []types.Certification{}
	for _, line := range textLines(text) {
		title, issuer := splitPair(line)
		if title == "" {
			continue
		}
		out = append(out, types.Certification{Title: title, Issuer: issuer})
	}
	return out
}

func parseLanguagesText(text string) []types.Language {
	out := []types.Language{}
	for _, line := range textLines(text) {
		// "English, Hindi, Tamil" lists languages without proficiency
		if strings.Count(line, ",") > 1 && !strings.ContainsAny(line, "(|:") {
			for _, part := range strings.Split(line, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, types.Language{Language: p})
				}
			}
			continue
		}
		lang, level := splitPair(line)
		if lang == "" {
			continue
		}
		out = append(out, types.Language{Language: lang, Proficiency: level})
	}
	return out
}

func parseVolunteerText(text string) []types.VolunteerWork {
	out := []types.VolunteerWork{}
	for _, exp := range parseExperienceText(text) {
		out = append(out, types.VolunteerWork{
			Role:         exp.Role,
			Organization: exp.Company,
			Duration:     exp.Duration,
			Description:  exp.Description,
		})
	}
	return out
}

func parsePublicationsText(text string) []types.Publication {
	out := []types.Publication{}
	for _, line := range textLines(text) {
		rest, date := extractDuration(line, true)
		title, venue := splitPair(rest)
		if title == "" {
			continue
		}
		out = append(out, types.Publication{Title: title, Publication: venue, Date: date})
	}
	return out
}

func parseAwardsText(text string) []types.Award {
	out := []types.Award{}
	for _, line := range textLines(text) {
		rest, date := extractDuration(line, true)
		title, org := splitPair(rest)
		if title == "" {
			continue
		}
		out = append(out, types.Award{Title: title, Organization: org, Date: date})
	}
	return out
}

// splitList splits a delimited string into trimmed, non-empty items
func splitList(text string) []string {
	out := []string{}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '|', '•':
			return true
		}
		return false
	})
	for _, f := range fields {
		if item := cleanLine(f); item != "" {
			out = append(out, item)
		}
	}
	return out
}
