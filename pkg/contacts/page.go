package contacts

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
)

// sortItems orders matched contacts by the requested sort field,
// case-insensitive, with the complementary name field and then Ref.ID
// ascending as tie-breaks so output order is deterministic.
func sortItems(items []models.Item, by models.Sort) {
	desc := by.Order == models.SortOrderDesc

	primary := func(item models.Item) string { return strings.ToLower(item.GivenName) }
	secondary := func(item models.Item) string { return strings.ToLower(item.FamilyName) }
	if by.By == models.SortByFamilyName {
		primary, secondary = secondary, primary
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := primary(items[i]), primary(items[j])
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		a, b = secondary(items[i]), secondary(items[j])
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		return items[i].ID < items[j].ID
	})
}

// paginate slices one page out of the sorted result set. It returns the page
// and the offset of the next page, or -1 when no further page exists. A
// non-positive limit or an offset beyond the result set yields an empty page,
// not an error.
func paginate(items []models.Item, limit, offset int) ([]models.Item, int) {
	if limit <= 0 || offset < 0 || offset >= len(items) {
		return nil, -1
	}

	end := offset + limit
	if end >= len(items) {
		return items[offset:], -1
	}
	return items[offset:end], end
}

// parseCursor decodes the page cursor issued by a previous Find. Cursors are
// decimal offsets; an empty cursor selects the first page.
func parseCursor(cursor string) (int, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0, models.NewError(models.ErrorCodeValidation, "invalid cursor %q", cursor)
	}
	return offset, nil
}

// formatCursor encodes the next page offset, or "" when no page remains.
func formatCursor(nextOffset int) string {
	if nextOffset < 0 {
		return ""
	}
	return strconv.Itoa(nextOffset)
}
