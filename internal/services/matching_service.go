package services

import (
	"strings"
)

// Skill matching for the job filter. Skills are compared case-insensitively
// with surrounding spaces ignored, so "Node " matches "node".

// ParseSkillQuery splits a comma separated skill list, dropping blanks.
func ParseSkillQuery(raw string) []string {
	var skills []string
	for _, part := range strings.Split(raw, ",") {
		if part = normalizeSkill(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// MatchesAnySkill reports whether the job lists at least one wanted skill.
// An empty wanted list matches every job.
func MatchesAnySkill(jobSkills, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(jobSkills))
	for _, skill := range jobSkills {
		have[normalizeSkill(skill)] = struct{}{}
	}
	for _, skill := range wanted {
		if _, ok := have[normalizeSkill(skill)]; ok {
			return true
		}
	}
	return false
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
