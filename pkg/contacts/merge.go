package contacts

import "github.com/Ramsey-B/clover/pkg/models"

// applyChanges computes the new contact state from the current state and a
// sparse patch. Set pointers replace whole fields (lists included, with no
// element-wise merge); nil pointers retain the current value. Group
// membership is a set: adds union in after field changes, then removes win.
// Pure: the input item is never mutated.
func applyChanges(current models.Item, ch models.Changes) models.Item {
	next := current
	next.Emails = append([]models.LabeledValue(nil), current.Emails...)
	next.Phones = append([]models.LabeledValue(nil), current.Phones...)
	next.GroupIDs = append([]string(nil), current.GroupIDs...)

	if ch.GivenName != nil {
		next.GivenName = *ch.GivenName
	}
	if ch.FamilyName != nil {
		next.FamilyName = *ch.FamilyName
	}
	if ch.MiddleName != nil {
		next.MiddleName = *ch.MiddleName
	}
	if ch.Nickname != nil {
		next.Nickname = *ch.Nickname
	}
	if ch.Organization != nil {
		next.Organization = *ch.Organization
	}
	if ch.JobTitle != nil {
		next.JobTitle = *ch.JobTitle
	}
	if ch.Note != nil {
		next.Note = *ch.Note
	}
	if ch.Emails != nil {
		next.Emails = append([]models.LabeledValue(nil), (*ch.Emails)...)
	}
	if ch.Phones != nil {
		next.Phones = append([]models.LabeledValue(nil), (*ch.Phones)...)
	}

	next.GroupIDs = addToSet(next.GroupIDs, ch.AddGroupIDs)
	next.GroupIDs = removeFromSet(next.GroupIDs, ch.RemoveGroupIDs)
	return next
}

// addToSet appends ids not already present, preserving existing order.
// Duplicates collapse; adding a present id is a no-op.
func addToSet(set []string, ids []string) []string {
	for _, id := range ids {
		if id == "" || containsString(set, id) {
			continue
		}
		set = append(set, id)
	}
	return set
}

// removeFromSet drops ids from the set. Removing an absent id is a no-op.
func removeFromSet(set []string, ids []string) []string {
	if len(ids) == 0 {
		return set
	}
	kept := set[:0]
	for _, id := range set {
		if containsString(ids, id) {
			continue
		}
		kept = append(kept, id)
	}
	return kept
}
