package contacts

import "github.com/Ramsey-B/clover/pkg/models"

type fieldMask uint32

const (
	maskNames fieldMask = 1 << iota
	maskOrganization
	maskEmails
	maskPhones
	maskNote
	maskGroups
)

func maskOf(fields []models.Field) fieldMask {
	var mask fieldMask
	for _, field := range fields {
		switch field {
		case models.FieldNames:
			mask |= maskNames
		case models.FieldOrganization:
			mask |= maskOrganization
		case models.FieldEmails:
			mask |= maskEmails
		case models.FieldPhones:
			mask |= maskPhones
		case models.FieldNote:
			mask |= maskNote
		case models.FieldGroups:
			mask |= maskGroups
		}
	}
	return mask
}

// project reduces a full contact to the sections selected by mask. Unmasked
// sections are cleared, not merely omitted; Ref and ModifiedAt are always
// populated. The source item is never mutated.
func project(item models.Item, mask fieldMask) models.Item {
	out := models.Item{
		Ref:        item.Ref,
		ModifiedAt: item.ModifiedAt,
	}

	if mask&maskNames != 0 {
		out.GivenName = item.GivenName
		out.FamilyName = item.FamilyName
		out.MiddleName = item.MiddleName
		out.Nickname = item.Nickname
	}
	if mask&maskOrganization != 0 {
		out.Organization = item.Organization
		out.JobTitle = item.JobTitle
	}
	if mask&maskEmails != 0 {
		out.Emails = append([]models.LabeledValue(nil), item.Emails...)
	}
	if mask&maskPhones != 0 {
		out.Phones = append([]models.LabeledValue(nil), item.Phones...)
	}
	if mask&maskNote != 0 {
		out.Note = item.Note
	}
	if mask&maskGroups != 0 {
		out.GroupIDs = append([]string(nil), item.GroupIDs...)
	}
	return out
}
