package convert

import (
	"fmt"

	"doc2file/internal/model"
)

// ProvisionReport is the outcome of one ProvisionLibraries call.
type ProvisionReport struct {
	GroupsCreated    int
	LibrariesCreated int
	SlugsReused      []string // Slugs whose group/library pair already existed
	MembersAdded     int
	GrantsAdded      int
}

// ProvisionLibraries creates the access group and library pair for each
// tracking record, replicates the snapshot membership into the group, and
// grants the group the library at the record's permission.
//
// Pairs are keyed by the deterministic slug: records sharing a slug collapse
// to one pair, and a slug whose pair already exists is reused rather than
// recreated, so re-running on the same records provisions nothing new.
// Membership and grant inserts likewise ignore rows that already exist.
func (s *ConversionService) ProvisionLibraries(records []*model.TrackingRecord) (*ProvisionReport, error) {
	report := &ProvisionReport{}
	if len(records) == 0 {
		return report, nil
	}

	// Collapse records by slug, preserving first-seen order.
	var slugs []string
	bySlug := make(map[string][]*model.TrackingRecord)
	for _, rec := range records {
		slug := LibrarySlug(rec.FolderDeveloperName)
		if _, seen := bySlug[slug]; !seen {
			slugs = append(slugs, slug)
		}
		bySlug[slug] = append(bySlug[slug], rec)
	}

	existingGroups, err := s.store.FindGroupsBySlugs(slugs)
	if err != nil {
		return nil, fmt.Errorf("looking up existing groups: %w", err)
	}
	existingLibraries, err := s.store.FindLibrariesBySlugs(slugs)
	if err != nil {
		return nil, fmt.Errorf("looking up existing libraries: %w", err)
	}

	groupBySlug := make(map[string]*model.AccessGroup, len(slugs))
	libraryBySlug := make(map[string]*model.Library, len(slugs))
	var newGroups []*model.AccessGroup
	var newLibraries []*model.Library
	reused := make(map[string]bool)

	for _, slug := range slugs {
		display := bySlug[slug][0].FolderName

		if g := existingGroups[slug]; g != nil {
			groupBySlug[slug] = g
			reused[slug] = true
		} else {
			g = &model.AccessGroup{
				ID:            s.idgen.New(),
				DeveloperName: slug,
				Name:          "Library: " + display,
				CreatedAt:     s.clock.Now(),
			}
			groupBySlug[slug] = g
			newGroups = append(newGroups, g)
		}

		if lib := existingLibraries[slug]; lib != nil {
			libraryBySlug[slug] = lib
			reused[slug] = true
		} else {
			lib = &model.Library{
				ID:            s.idgen.New(),
				DeveloperName: slug,
				Name:          display,
				CreatedAt:     s.clock.Now(),
			}
			libraryBySlug[slug] = lib
			newLibraries = append(newLibraries, lib)
		}
	}

	// Groups go first: membership rows need resolved group ids.
	if len(newGroups) > 0 {
		if err := s.store.CreateGroups(newGroups); err != nil {
			return nil, fmt.Errorf("creating access groups: %w", err)
		}
	}
	if len(newLibraries) > 0 {
		if err := s.store.CreateLibraries(newLibraries); err != nil {
			return nil, fmt.Errorf("creating libraries: %w", err)
		}
	}

	var members []*model.GroupMember
	var grants []*model.LibraryGrant
	for _, slug := range slugs {
		group := groupBySlug[slug]
		library := libraryBySlug[slug]
		for _, rec := range bySlug[slug] {
			for _, memberID := range rec.GroupIDs {
				members = append(members, &model.GroupMember{
					GroupID:  group.ID,
					MemberID: memberID,
				})
			}
			grants = append(grants, &model.LibraryGrant{
				LibraryID:    library.ID,
				GroupID:      group.ID,
				PermissionID: rec.PermissionID,
			})
		}
	}

	membersAdded, err := s.store.AddGroupMembers(members)
	if err != nil {
		return nil, fmt.Errorf("creating group memberships: %w", err)
	}
	grantsAdded, err := s.store.AddLibraryGrants(grants)
	if err != nil {
		return nil, fmt.Errorf("creating library grants: %w", err)
	}

	report.GroupsCreated = len(newGroups)
	report.LibrariesCreated = len(newLibraries)
	for _, slug := range slugs {
		if reused[slug] {
			report.SlugsReused = append(report.SlugsReused, slug)
		}
	}
	report.MembersAdded = membersAdded
	report.GrantsAdded = grantsAdded

	s.logger.Info("libraries provisioned",
		"groups_created", report.GroupsCreated,
		"libraries_created", report.LibrariesCreated,
		"members_added", membersAdded,
		"grants_added", grantsAdded)
	return report, nil
}
