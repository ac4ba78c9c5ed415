package schedule

import "timeboxer/internal/model"

// ImportResult pairs the accepted task candidates of one batch with its
// summary. The summary is complete once ImportBatch returns and is never
// updated afterwards.
type ImportResult struct {
	Tasks   []model.Task
	Summary model.ImportRecord
}

// ImportBatch validates every raw row, collecting accepted tasks and
// rejections separately, then deduplicates order IDs within the accepted
// set: scanning in row order, a taken order ID is incremented until a free
// value is found. A failed row never aborts the batch; it is recorded with
// its 1-based row number. Nil or empty input yields an empty result with
// zero counts.
func ImportBatch(rows []Row, sourceName string) ImportResult {
	tasks := []model.Task{}
	var rejections []model.ImportRejection

	for i, row := range rows {
		task, err := ValidateRow(row)
		if err != nil {
			rejections = append(rejections, model.ImportRejection{
				RowNumber: i + 1,
				Reason:    err.Error(),
			})
			continue
		}
		tasks = append(tasks, task)
	}

	used := make(map[int]bool, len(tasks))
	for i := range tasks {
		for used[tasks[i].OrderID] {
			tasks[i].OrderID++
		}
		used[tasks[i].OrderID] = true
	}

	return ImportResult{
		Tasks: tasks,
		Summary: model.ImportRecord{
			SourceName:    sourceName,
			AcceptedCount: len(tasks),
			RejectedCount: len(rejections),
			Rejections:    rejections,
		},
	}
}
