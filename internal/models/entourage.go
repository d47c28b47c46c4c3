package models

// RoleCategoryOrder is the display order of entourage groups. Categories not
// listed here are shown afterwards in the order they were first seen.
var RoleCategoryOrder = []string{
	"The Couple",
	"Parents of the Bride",
	"Parents of the Groom",
	"Maid/Matron of Honor",
	"Best Man",
	"Candle Sponsors",
	"Veil Sponsors",
	"Cord Sponsors",
	"Bridesmaids",
	"Groomsmen",
	"Flower Girls",
	"Ring/Coin Bearers",
}

// RoleCategoryOther is used for members without a category.
const RoleCategoryOther = "Other"

// EntourageGroup is one titled block of the entourage section.
type EntourageGroup struct {
	Category string
	Members  []EntourageMember
}

// GroupEntourage groups members by RoleCategory, keeping sheet order inside
// each group.
func GroupEntourage(members []EntourageMember) []EntourageGroup {
	byCategory := make(map[string][]EntourageMember)
	var seen []string
	for _, m := range members {
		category := m.RoleCategory
		if category == "" {
			category = RoleCategoryOther
		}
		if _, ok := byCategory[category]; !ok {
			seen = append(seen, category)
		}
		byCategory[category] = append(byCategory[category], m)
	}

	groups := make([]EntourageGroup, 0, len(byCategory))
	known := make(map[string]bool, len(RoleCategoryOrder))
	for _, category := range RoleCategoryOrder {
		known[category] = true
		if list, ok := byCategory[category]; ok {
			groups = append(groups, EntourageGroup{Category: category, Members: list})
		}
	}
	for _, category := range seen {
		if known[category] {
			continue
		}
		groups = append(groups, EntourageGroup{Category: category, Members: byCategory[category]})
	}
	return groups
}

// SponsorColumns splits sponsor pairs into the two display columns, skipping
// blank names.
func SponsorColumns(sponsors []PrincipalSponsor) (male, female []string) {
	for _, s := range sponsors {
		if s.MalePrincipalSponsor != "" {
			male = append(male, s.MalePrincipalSponsor)
		}
		if s.FemalePrincipalSponsor != "" {
			female = append(female, s.FemalePrincipalSponsor)
		}
	}
	return male, female
}
