package profile

import (
	"sort"
	"strconv"
	"strings"
)

// Talent ranks and branch unlocks share one persisted string column.
// Format tokens, comma separated and sorted lexicographically for stability:
//
//	talentId:rank    rank >= 1
//	branch:branchId  branch flag
//	talentId         legacy, treated as rank 1
//
// Decoding ignores malformed tokens individually.

const branchPrefix = "branch:"

// EncodeTalents serializes the profile's talent ranks and branches
func (p *Profile) EncodeTalents() string {
	if len(p.TalentRanks) == 0 && len(p.UnlockedBranches) == 0 {
		return ""
	}

	out := make([]string, 0, len(p.TalentRanks)+len(p.UnlockedBranches))
	for id, rank := range p.TalentRanks {
		if rank <= 0 {
			continue
		}
		out = append(out, id+":"+strconv.Itoa(rank))
	}
	for id := range p.UnlockedBranches {
		if strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, branchPrefix+id)
	}

	sort.Strings(out)
	return strings.Join(out, ",")
}

// DecodeTalents replaces the profile's talent ranks and branches from a
// persisted string
func (p *Profile) DecodeTalents(encoded string) {
	p.TalentRanks = map[string]int{}
	p.UnlockedBranches = map[string]struct{}{}

	if strings.TrimSpace(encoded) == "" {
		return
	}

	for _, token := range strings.Split(encoded, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if strings.HasPrefix(token, branchPrefix) {
			branchID := strings.TrimSpace(token[len(branchPrefix):])
			if branchID != "" {
				p.UnlockedBranches[branchID] = struct{}{}
			}
			continue
		}

		colon := strings.LastIndex(token, ":")
		if colon <= 0 || colon == len(token)-1 {
			// legacy bare id
			p.TalentRanks[token] = 1
			continue
		}

		talentID := strings.TrimSpace(token[:colon])
		rank, err := strconv.Atoi(strings.TrimSpace(token[colon+1:]))
		if talentID == "" {
			continue
		}
		if err != nil {
			p.TalentRanks[token] = 1
			continue
		}
		if rank > 0 {
			p.TalentRanks[talentID] = rank
		}
	}
}
