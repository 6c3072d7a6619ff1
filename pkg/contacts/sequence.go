package contacts

import "github.com/Ramsey-B/clover/pkg/models"

// applyOps interprets an ordered mutation sequence over one contact. It is a
// small state machine: the contact stays active while field/group ops fold
// into the working copy; a delete op is terminal and every later op is
// skipped as already satisfied, never as an error. An unrecognized op type
// fails the whole sequence for this contact with a validation error.
//
// Pure: the input item is never mutated. The caller performs the single
// resulting write or delete.
func applyOps(current models.Item, ops []models.MutationOp) (next models.Item, deleted bool, dirty bool, err error) {
	next = current
	next.Emails = append([]models.LabeledValue(nil), current.Emails...)
	next.Phones = append([]models.LabeledValue(nil), current.Phones...)
	next.GroupIDs = append([]string(nil), current.GroupIDs...)

	for _, op := range ops {
		switch op.Type {
		case models.MutationSetNote:
			next.Note = op.Value
			dirty = true
		case models.MutationSetOrganization:
			next.Organization = op.Value
			dirty = true
		case models.MutationSetJobTitle:
			next.JobTitle = op.Value
			dirty = true
		case models.MutationSetGivenName:
			next.GivenName = op.Value
			dirty = true
		case models.MutationSetFamilyName:
			next.FamilyName = op.Value
			dirty = true
		case models.MutationAddToGroup:
			next.GroupIDs = addToSet(next.GroupIDs, []string{op.Value})
			dirty = true
		case models.MutationRemoveFromGroup:
			next.GroupIDs = removeFromSet(next.GroupIDs, []string{op.Value})
			dirty = true
		case models.MutationDelete:
			return next, true, dirty, nil
		default:
			return current, false, false, models.NewError(models.ErrorCodeValidation, "unrecognized mutation type %q", op.Type)
		}
	}
	return next, false, dirty, nil
}
