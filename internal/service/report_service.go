package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"timeboxer/internal/model"
	"timeboxer/internal/repository"
)

// ReportService builds human-readable plan summaries for notifications.
type ReportService struct {
	planner *PlannerService
}

func NewReportService(planner *PlannerService) *ReportService {
	return &ReportService{planner: planner}
}

// DayPlan renders the user's full schedule with computed times.
func (s *ReportService) DayPlan(ctx context.Context, user *model.User) (string, error) {
	tasks, start, err := s.planner.Plan(ctx, user)
	if err != nil {
		return "", err
	}
	return FormatPlan(tasks, start), nil
}

// FormatPlan renders an ordered, already-calculated task list as HTML.
func FormatPlan(tasks []model.Task, start string) string {
	var builder strings.Builder
	builder.WriteString("🗓 <b>План на день</b>\n")
	builder.WriteString(fmt.Sprintf("🕘 Старт: <b>%s</b>\n\n", escape(start)))

	if len(tasks) == 0 {
		builder.WriteString("— задач пока нет. Пришли .xlsx файл или набери /add")
		return builder.String()
	}

	total := 0
	wrapped := false
	for i, task := range tasks {
		builder.WriteString(fmt.Sprintf("%d. <b>%s–%s</b> %s",
			i+1, task.StartTime, task.EndTime, escape(task.Name)))
		if task.Notes != "" {
			builder.WriteString(fmt.Sprintf("\n   📝 %s", escape(task.Notes)))
		}
		builder.WriteByte('\n')
		total += task.DurationMinutes
		if task.EndTime < task.StartTime {
			wrapped = true
		}
	}

	builder.WriteString(fmt.Sprintf("\nВсего: <b>%s</b>, конец в <b>%s</b>",
		formatMinutes(total), tasks[len(tasks)-1].EndTime))
	if wrapped || total >= 24*60 {
		builder.WriteString("\n⚠️ План переходит через полночь")
	}
	return strings.TrimSpace(builder.String())
}

// FormatImportSummary renders one batch result, reasons included.
func FormatImportSummary(summary model.ImportRecord) string {
	var builder strings.Builder
	builder.WriteString("📥 <b>Импорт завершён</b>\n")
	builder.WriteString(fmt.Sprintf("📄 Файл: %s\n", escape(summary.SourceName)))
	builder.WriteString(fmt.Sprintf("✅ Принято: %d\n", summary.AcceptedCount))
	builder.WriteString(fmt.Sprintf("❌ Отклонено: %d\n", summary.RejectedCount))
	for _, rejection := range summary.Rejections {
		builder.WriteString(fmt.Sprintf("   • строка %d: %s\n", rejection.RowNumber, escape(rejection.Reason)))
	}
	return strings.TrimSpace(builder.String())
}

// FormatClearResult renders a wipe outcome per storage area.
func FormatClearResult(result repository.ClearResult) string {
	var builder strings.Builder
	if result.Success() {
		builder.WriteString("🧹 <b>Всё очищено</b>\n")
	} else {
		builder.WriteString("⚠️ <b>Очистка прошла частично</b>\n")
	}
	for _, status := range result.Statuses {
		if status.Err != nil {
			builder.WriteString(fmt.Sprintf("   • %s: ошибка — %s\n", areaLabel(status.Area), escape(status.Err.Error())))
		} else {
			builder.WriteString(fmt.Sprintf("   • %s: очищено\n", areaLabel(status.Area)))
		}
	}
	return strings.TrimSpace(builder.String())
}

func areaLabel(area string) string {
	switch area {
	case repository.AreaTasks:
		return "задачи"
	case repository.AreaSchedule:
		return "время старта"
	case repository.AreaHistory:
		return "история импорта"
	default:
		return area
	}
}

func formatMinutes(total int) string {
	hours := total / 60
	minutes := total % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d мин", minutes)
	case minutes == 0:
		return fmt.Sprintf("%d ч", hours)
	default:
		return fmt.Sprintf("%d ч %d мин", hours, minutes)
	}
}

func escape(s string) string {
	return html.EscapeString(s)
}
