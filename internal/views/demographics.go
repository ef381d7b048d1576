package views

import (
	"sort"

	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/domain"
)

// RecognizedSexes lists the two sex categories the demographic views
// compare. Rows with any other value are excluded from these views, not
// surfaced as a category of their own.
var RecognizedSexes = []string{domain.SexMale, domain.SexFemale}

// SexRoleRow is the person-role percentage breakdown for one sex. Percent is
// positionally aligned with the result's Roles and sums to 100.
type SexRoleRow struct {
	Sex     string    `json:"sex"`
	Total   int       `json:"total"`
	Percent []float64 `json:"percent"`
}

// SexCount pairs a sex with its count of hospitalized-or-worse records.
type SexCount struct {
	Sex   string `json:"sex"`
	Count int    `json:"count"`
}

// SexRoleResult combines the per-sex role distribution with the severe
// outcome split.
type SexRoleResult struct {
	Empty       bool         `json:"empty"`
	Roles       []string     `json:"roles"`
	Sexes       []SexRoleRow `json:"sexes"`
	SevereBySex []SexCount   `json:"severe_by_sex"`
}

// SexRoleSplit computes, for each recognized sex, the percentage breakdown
// across person roles, and among hospitalized-or-worse records the count per
// sex. Roles are the sorted distinct roles observed among recognized-sex
// records.
func SexRoleSplit(t *dataset.Table) SexRoleResult {
	roleSet := make(map[string]struct{})
	roleCounts := make(map[string]map[string]int, len(RecognizedSexes))
	severe := make(map[string]int, len(RecognizedSexes))
	for _, sex := range RecognizedSexes {
		roleCounts[sex] = make(map[string]int)
	}

	total := 0
	for _, r := range t.Records() {
		byRole, ok := roleCounts[r.Sex]
		if !ok {
			continue
		}
		total++
		if r.PersonRole != "" {
			roleSet[r.PersonRole] = struct{}{}
			byRole[r.PersonRole]++
		}
		if r.Severity.Hospitalized() {
			severe[r.Sex]++
		}
	}
	if total == 0 {
		return SexRoleResult{Empty: true}
	}

	roles := make([]string, 0, len(roleSet))
	for role := range roleSet {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	sexes := make([]SexRoleRow, 0, len(RecognizedSexes))
	severeBySex := make([]SexCount, 0, len(RecognizedSexes))
	for _, sex := range RecognizedSexes {
		byRole := roleCounts[sex]
		sexTotal := 0
		for _, n := range byRole {
			sexTotal += n
		}
		percent := make([]float64, len(roles))
		if sexTotal > 0 {
			for i, role := range roles {
				percent[i] = float64(byRole[role]) * 100 / float64(sexTotal)
			}
		}
		sexes = append(sexes, SexRoleRow{Sex: sex, Total: sexTotal, Percent: percent})
		severeBySex = append(severeBySex, SexCount{Sex: sex, Count: severe[sex]})
	}

	return SexRoleResult{
		Roles:       roles,
		Sexes:       sexes,
		SevereBySex: severeBySex,
	}
}

// AgePyramidResult holds two parallel count series aligned to the identical
// fully-sorted set of observed age brackets. A bracket with no records for a
// sex holds an explicit zero.
type AgePyramidResult struct {
	Empty    bool     `json:"empty"`
	Brackets []string `json:"brackets"`
	Men      []int    `json:"men"`
	Women    []int    `json:"women"`
}

// AgePyramid counts records per age bracket for each recognized sex. The
// bracket axis is the full sorted set observed anywhere in the table, so
// both series always align.
func AgePyramid(t *dataset.Table) AgePyramidResult {
	brackets := t.AgeBrackets()
	if len(brackets) == 0 {
		return AgePyramidResult{Empty: true}
	}
	index := make(map[string]int, len(brackets))
	for i, b := range brackets {
		index[b] = i
	}

	men := make([]int, len(brackets))
	women := make([]int, len(brackets))
	total := 0
	for _, r := range t.Records() {
		i, ok := index[r.AgeBracket]
		if !ok {
			continue
		}
		switch r.Sex {
		case domain.SexMale:
			men[i]++
		case domain.SexFemale:
			women[i]++
		default:
			continue
		}
		total++
	}

	return AgePyramidResult{
		Empty:    total == 0,
		Brackets: brackets,
		Men:      men,
		Women:    women,
	}
}
