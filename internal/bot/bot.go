package bot

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"timeboxer/internal/clock"
	"timeboxer/internal/config"
	"timeboxer/internal/model"
	"timeboxer/internal/repository"
	"timeboxer/internal/schedule"
	"timeboxer/internal/service"
	"timeboxer/internal/xlsx"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageAddName
	stageAddDuration
	stageAddNotes
	stageNoteText
)

const (
	btnSkip         = "⏭️ Пропустить"
	btnConfirm      = "✅ Подтвердить"
	btnCancel       = "↩️ Отмена"
	btnCancelDialog = "⏪ Отменить ввод"
	menuLabelPlan   = "🗓 План"
	menuLabelNow    = "🕘 Начать сейчас"
	menuLabelAdd    = "➕ Задача"
	menuLabelHelp   = "ℹ️ Помощь"
)

type conversationState struct {
	stage     conversationStage
	input     schedule.TaskInput
	noteIndex int
}

// Bot aggregates Telegram API with the planner services.
type Bot struct {
	api           *tgbotapi.BotAPI
	userRepo      *repository.UserRepository
	plannerSvc    *service.PlannerService
	reportSvc     *service.ReportService
	config        *config.Config
	conversations map[int64]*conversationState
	clearPending  map[int64]bool
	mu            sync.Mutex
}

func New(token string, userRepo *repository.UserRepository, plannerSvc *service.PlannerService, reportSvc *service.ReportService, cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		userRepo:      userRepo,
		plannerSvc:    plannerSvc,
		reportSvc:     reportSvc,
		config:        cfg,
		conversations: make(map[int64]*conversationState),
		clearPending:  make(map[int64]bool),
	}, nil
}

// Start begins polling updates until ctx is cancelled. All schedule
// mutations flow through this single loop, which serializes them per the
// engine's ownership contract.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.Document != nil {
		return b.handleDocument(ctx, msg)
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.setClearPending(msg.From.ID, false)
		return b.sendText(msg.Chat.ID, "⏪ Ввод отменён.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if b.isClearPending(msg.From.ID) {
		return b.handleClearResponse(ctx, msg)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "Я пока не понял сообщение. Пришли .xlsx файл с задачами или набери /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "plan":
		return b.handlePlan(ctx, msg)
	case "starttime":
		return b.handleStartTime(ctx, msg)
	case "now":
		return b.handleNow(ctx, msg)
	case "move":
		return b.handleMove(ctx, msg)
	case "add":
		return b.startAddConversation(ctx, msg)
	case "note":
		return b.startNoteConversation(ctx, msg)
	case "remove":
		return b.handleRemove(ctx, msg)
	case "history":
		return b.handleHistory(ctx, msg)
	case "clear":
		return b.handleClear(ctx, msg)
	case "report":
		return b.handlePlan(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		b.setClearPending(msg.From.ID, false)
		return b.sendText(msg.Chat.ID, "⏪ Ввод отменён.")
	default:
		return b.sendText(msg.Chat.ID, "Команда не поддерживается. Загляни в /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "друг"
	}

	text := fmt.Sprintf(
		"👋 Привет, %s!\n<b>Я таймбоксер: разложу твои задачи по времени дня.</b>\n\n"+
			"Пришли .xlsx файл с колонками Order ID, Name, Duration — я импортирую задачи "+
			"и посчитаю время каждой от старта дня.\n\nКоманды — в /help.",
		escape(name),
	)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Подсказки</b>\n" +
		"• пришли <b>.xlsx файл</b> — импортировать задачи\n" +
		"• /plan — показать план с временем\n" +
		"• /starttime ЧЧ:ММ — время старта дня (например, /starttime 09:00)\n" +
		"• /now — начать план с текущего момента\n" +
		"• /move ОТКУДА КУДА — переставить задачу (например, /move 3 1)\n" +
		"• /add — добавить задачу вручную\n" +
		"• /note N — заметка к задаче номер N\n" +
		"• /remove N — удалить задачу номер N\n" +
		"• /history — история импортов\n" +
		"• /clear — очистить всё\n" +
		"• /cancel — отменить текущий ввод"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handlePlan(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reportSvc.DayPlan(ctx, user)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось показать план: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleStartTime(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendText(msg.Chat.ID, "Укажи время старта: /starttime 09:00")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	tasks, err := b.plannerSvc.SetStartTime(ctx, user, args)
	if err != nil {
		if _, ok := err.(*clock.FormatError); ok {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("⛔ %s — нужен формат ЧЧ:ММ, например 09:00. План не изменён.", escape(args)))
		}
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, service.FormatPlan(tasks, args))
}

func (b *Bot) handleNow(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	now := clock.FromTime(time.Now())
	tasks, err := b.plannerSvc.SetToNow(ctx, user, now)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, service.FormatPlan(tasks, now.String()))
}

func (b *Bot) handleMove(ctx context.Context, msg *tgbotapi.Message) error {
	fields := strings.Fields(msg.CommandArguments())
	if len(fields) != 2 {
		return b.sendText(msg.Chat.ID, "Укажи две позиции: /move 3 1 — переставить задачу 3 на место 1.")
	}
	from, err1 := strconv.Atoi(fields[0])
	to, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || from < 1 || to < 1 {
		return b.sendText(msg.Chat.ID, "Позиции должны быть положительными числами.")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	tasks, start, err := b.plannerSvc.Reorder(ctx, user, from-1, to-1)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не получилось переставить: %s", escape(err.Error())))
	}

	log.Printf("[info] reorder user=%d from=%d to=%d", user.ID, from, to)
	return b.sendText(msg.Chat.ID, service.FormatPlan(tasks, start))
}

func (b *Bot) handleRemove(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	index, err := strconv.Atoi(args)
	if err != nil || index < 1 {
		return b.sendText(msg.Chat.ID, "Укажи номер задачи: /remove 2")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	tasks, err := b.plannerSvc.RemoveTask(ctx, user, index-1)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не получилось удалить: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, "✅ Задача удалена. План пуст.")
	}
	start := tasks[0].StartTime
	return b.sendText(msg.Chat.ID, service.FormatPlan(tasks, start))
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	records, err := b.plannerSvc.History(ctx, user)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось получить историю: %s", escape(err.Error())))
	}
	if len(records) == 0 {
		return b.sendText(msg.Chat.ID, "История импортов пуста. Пришли .xlsx файл, чтобы начать.")
	}

	var builder strings.Builder
	builder.WriteString("🗂 <b>История импортов</b>\n")
	for _, record := range records {
		builder.WriteString(fmt.Sprintf("• %s — %s: ✅ %d / ❌ %d\n",
			record.CreatedAt.Format("2006-01-02 15:04"),
			escape(record.SourceName),
			record.AcceptedCount,
			record.RejectedCount))
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(builder.String()))
}

func (b *Bot) handleClear(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	b.setClearPending(msg.From.ID, true)
	return b.sendWithReplyMarkup(msg.Chat.ID,
		"🧹 Удалить <b>все задачи, время старта и историю импортов</b>?", confirmKeyboard())
}

func (b *Bot) handleClearResponse(ctx context.Context, msg *tgbotapi.Message) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.setClearPending(msg.From.ID, false)
		user, err := b.ensureUser(ctx, msg.From)
		if err != nil {
			return err
		}
		result := b.plannerSvc.ClearAll(ctx, user)
		log.Printf("[info] clear all user=%d success=%t", user.ID, result.Success())
		return b.sendText(msg.Chat.ID, service.FormatClearResult(result))
	case isCancelInput(text):
		b.setClearPending(msg.From.ID, false)
		return b.sendText(msg.Chat.ID, "↩️ Очистка отменена.")
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Подтверди или отмени очистку.", confirmKeyboard())
	}
}

func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) error {
	doc := msg.Document
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		return b.sendText(msg.Chat.ID, "Я понимаю только .xlsx файлы.")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось скачать файл: %s", escape(err.Error())))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось скачать файл: %s", escape(err.Error())))
	}
	defer resp.Body.Close()

	rows, err := xlsx.Read(resp.Body)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("⛔ Файл не подошёл: %s", escape(err.Error())))
	}

	outcome, err := b.plannerSvc.Import(ctx, user, rows, doc.FileName)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Ошибка импорта: %s", escape(err.Error())))
	}

	if err := b.sendText(msg.Chat.ID, service.FormatImportSummary(outcome.Summary)); err != nil {
		return err
	}
	return b.sendText(msg.Chat.ID, service.FormatPlan(outcome.Tasks, outcome.StartTime))
}

func (b *Bot) startAddConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	b.setConversation(msg.From.ID, &conversationState{stage: stageAddName})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 Новая задача.\n<b>Шаг 1:</b> как её назвать?", cancelKeyboard())
}

func (b *Bot) startNoteConversation(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	index, err := strconv.Atoi(args)
	if err != nil || index < 1 {
		return b.sendText(msg.Chat.ID, "Укажи номер задачи: /note 2")
	}
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	b.setConversation(msg.From.ID, &conversationState{stage: stageNoteText, noteIndex: index - 1})
	return b.sendWithReplyMarkup(msg.Chat.ID,
		fmt.Sprintf("📝 Какую заметку добавить к задаче №%d? Отправь «Пропустить», чтобы стереть.", index),
		skipKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageAddName:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Название не может быть пустым. Как назвать задачу?", cancelKeyboard())
		}
		state.input.Name = text
		state.stage = stageAddDuration
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"⏱ Сколько времени займёт? Введи минуты (<code>90</code>) или <code>Ч:ММ</code> (<code>1:30</code>).",
			cancelKeyboard())
	case stageAddDuration:
		minutes, ok := parseDurationInput(text)
		if !ok {
			return b.sendWithReplyMarkup(msg.Chat.ID,
				"Не понял длительность. Введи минуты (<code>90</code>) или <code>Ч:ММ</code> (<code>1:30</code>).",
				cancelKeyboard())
		}
		state.input.DurationMinutes = minutes
		state.stage = stageAddNotes
		return b.sendWithReplyMarkup(msg.Chat.ID, "📝 Добавить заметку? (или нажми «Пропустить»)", skipKeyboard())
	case stageAddNotes:
		if !isSkipInput(text) {
			state.input.Notes = text
		}
		err := b.finishAddTask(ctx, msg.From, state.input, msg.Chat.ID)
		b.clearConversation(msg.From.ID)
		return err
	case stageNoteText:
		notes := text
		if isSkipInput(text) {
			notes = ""
		}
		b.clearConversation(msg.From.ID)
		user, err := b.ensureUser(ctx, msg.From)
		if err != nil {
			return err
		}
		task, err := b.plannerSvc.UpdateNotes(ctx, user, state.noteIndex, notes)
		if err != nil {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Не получилось сохранить заметку: %s", escape(err.Error())))
		}
		if task.Notes == "" {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("✅ Заметка задачи «%s» стёрта.", escape(task.Name)))
		}
		return b.sendText(msg.Chat.ID, fmt.Sprintf("✅ Заметка сохранена: «%s».", escape(task.Notes)))
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Диалог сброшен. Попробуй ещё раз через /add.")
	}
}

func (b *Bot) finishAddTask(ctx context.Context, from *tgbotapi.User, input schedule.TaskInput, chatID int64) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	existing, _, err := b.plannerSvc.Plan(ctx, user)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Не удалось сохранить задачу: %s", escape(err.Error())))
	}
	input.OrderID = len(existing) + 1

	tasks, err := b.plannerSvc.AddTask(ctx, user, input)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Не удалось сохранить задачу: %s", escape(err.Error())))
	}

	log.Printf("[info] task added user=%d total=%d", user.ID, len(tasks))
	start := tasks[0].StartTime
	return b.sendText(chatID, service.FormatPlan(tasks, start))
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelPlan):
		return true, b.handlePlan(ctx, msg)
	case strings.ToLower(menuLabelNow):
		return true, b.handleNow(ctx, msg)
	case strings.ToLower(menuLabelAdd):
		return true, b.startAddConversation(ctx, msg)
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

// SendDailyPlans sends the current plan to every known user. Wired to the
// cron job that fires at the configured report time.
func (b *Bot) SendDailyPlans(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		text, err := b.reportSvc.DayPlan(ctx, &user)
		if err != nil {
			log.Printf("build plan for user %d: %v", user.TelegramID, err)
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("send plan to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

// parseDurationInput accepts either plain minutes ("90") or H:MM ("1:30").
func parseDurationInput(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if hours, minutes, ok := strings.Cut(text, ":"); ok {
		h, err1 := strconv.Atoi(hours)
		m, err2 := strconv.Atoi(minutes)
		if err1 != nil || err2 != nil || h < 0 || m < 0 || m > 59 {
			return 0, false
		}
		total := h*60 + m
		return total, total > 0
	}
	minutes, err := strconv.Atoi(text)
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelPlan),
			tgbotapi.NewKeyboardButton(menuLabelNow),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelAdd),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "пропустить" || value == "skip"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "подтвердить" || value == "да"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "отмена"
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "отменить ввод"
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

func (b *Bot) isClearPending(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clearPending[userID]
}

func (b *Bot) setClearPending(userID int64, pending bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if pending {
		b.clearPending[userID] = true
		return
	}
	delete(b.clearPending, userID)
}

func escape(s string) string {
	return html.EscapeString(s)
}
