package ranking

import "tableScout/domain"

// paginate slices one page out of the fully-sorted candidate set. A page past
// the end is empty, never an error.
func paginate(candidates []domain.Candidate, page, pageSize int) ([]domain.Candidate, int) {
	total := len(candidates)

	start := (page - 1) * pageSize
	if start >= total {
		return []domain.Candidate{}, total
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return candidates[start:end], total
}

func totalPages(totalCount, pageSize int) int {
	if totalCount == 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}
