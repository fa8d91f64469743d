package capacity

import (
	"sort"

	"github.com/arnavshah/capacity-api-go/pkg/models"
)

// DefaultTopSkills is the number of skills shown in team analytics
const DefaultTopSkills = 5

// SkillCount is the number of engineers listing a skill
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SeniorityCount is the number of engineers at a seniority level
type SeniorityCount struct {
	Seniority models.Seniority `json:"seniority"`
	Count     int              `json:"count"`
}

// SkillDistribution counts skills across engineers, matching skill strings
// exactly. The result is sorted by descending count; equal counts keep the
// order in which the skill was first seen.
func SkillDistribution(engineers []models.Profile) []SkillCount {
	index := make(map[string]int)
	var counts []SkillCount
	for _, e := range engineers {
		if !counted(e) {
			continue
		}
		for _, skill := range e.Skills {
			if i, ok := index[skill]; ok {
				counts[i].Count++
				continue
			}
			index[skill] = len(counts)
			counts = append(counts, SkillCount{Skill: skill, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopSkills returns the n most common skills. n <= 0 means DefaultTopSkills.
func TopSkills(engineers []models.Profile, n int) []SkillCount {
	if n <= 0 {
		n = DefaultTopSkills
	}
	counts := SkillDistribution(engineers)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// UniqueSkills returns the number of distinct skills across engineers
func UniqueSkills(engineers []models.Profile) int {
	return len(SkillDistribution(engineers))
}

// SeniorityDistribution counts engineers per seniority level in first-seen
// order. Engineers without a seniority are counted as junior.
func SeniorityDistribution(engineers []models.Profile) []SeniorityCount {
	index := make(map[models.Seniority]int)
	var counts []SeniorityCount
	for _, e := range engineers {
		if !counted(e) {
			continue
		}
		level := e.EffectiveSeniority()
		if i, ok := index[level]; ok {
			counts[i].Count++
			continue
		}
		index[level] = len(counts)
		counts = append(counts, SeniorityCount{Seniority: level, Count: 1})
	}
	return counts
}
