package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"books_api/internal/models"
	"books_api/internal/service"
	"books_api/internal/storage"
)

// Catalog is the read side of service.Catalog used by the bot.
type Catalog interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id int) (models.Book, error)
	Filter(ctx context.Context, rating, publishedDate *int) ([]models.Book, error)
}

// Bot is a read-only chat front end for the catalog.
type Bot struct {
	api      *tgbotapi.BotAPI
	catalog  Catalog
	logger   *zap.Logger
	pageSize int
}

const (
	defaultPageSize = 5

	helpText = "Команды:\n" +
		"/books [страница] — все книги\n" +
		"/book <id> — книга по id\n" +
		"/rating <1-5> — книги с рейтингом\n" +
		"/year <год> — книги по году издания"
)

func NewBot(token string, catalog Catalog, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = false

	b := newBot(catalog, logger)
	b.api = api
	b.logger.Info("authorized", zap.String("username", api.Self.UserName))
	return b, nil
}

func newBot(catalog Catalog, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		catalog:  catalog,
		logger:   logger.Named("telegram"),
		pageSize: defaultPageSize,
	}
}

// Start is the main update loop. It returns when ctx is cancelled or the update channel closes.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	reply := b.Reply(ctx, msg.Text)
	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		b.logger.Warn("send failed", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
}

// Reply builds the answer to one incoming message.
func (b *Bot) Reply(ctx context.Context, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return helpText
	}

	command := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}
	args := fields[1:]

	switch command {
	case "start", "help":
		return "Привет! Это каталог книг.\n\n" + helpText
	case "books":
		page := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return "⚠️ Номер страницы должен быть числом."
			}
			page = n
		}
		books, err := b.catalog.List(ctx)
		if err != nil {
			return b.failure(err)
		}
		return b.formatPage(books, page)
	case "book":
		id, ok := intArg(args)
		if !ok {
			return "⚠️ Использование: /book <id>"
		}
		book, err := b.catalog.Get(ctx, id)
		if err != nil {
			return b.failure(err)
		}
		return book.String()
	case "rating":
		rating, ok := intArg(args)
		if !ok {
			return "⚠️ Использование: /rating <1-5>"
		}
		books, err := b.catalog.Filter(ctx, &rating, nil)
		if err != nil {
			return b.failure(err)
		}
		return formatList(books)
	case "year":
		year, ok := intArg(args)
		if !ok {
			return "⚠️ Использование: /year <год>"
		}
		books, err := b.catalog.Filter(ctx, nil, &year)
		if err != nil {
			return b.failure(err)
		}
		return formatList(books)
	default:
		return "🤔 Неизвестная команда.\n\n" + helpText
	}
}

func (b *Bot) failure(err error) string {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return "⚠️ " + verr.Error()
	case errors.Is(err, storage.ErrNotFound):
		return "😔 Книга не найдена."
	default:
		b.logger.Error("catalog error", zap.Error(err))
		return "❌ Ошибка каталога, попробуй позже."
	}
}

func (b *Bot) formatPage(books []models.Book, page int) string {
	if len(books) == 0 {
		return "😔 Каталог пуст."
	}

	pages := totalPages(len(books), b.pageSize)
	idx := clampPage(page-1, pages)

	start := idx * b.pageSize
	end := start + b.pageSize
	if end > len(books) {
		end = len(books)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 Книг: %d\nСтраница %d/%d\n\n", len(books), idx+1, pages)
	for _, book := range books[start:end] {
		sb.WriteString(book.String())
	}
	return sb.String()
}

func formatList(books []models.Book) string {
	if len(books) == 0 {
		return "😔 Ничего не найдено."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 Найдено книг: %d\n\n", len(books))
	for _, book := range books {
		sb.WriteString(book.String())
	}
	return sb.String()
}

func intArg(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampPage(page, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page >= totalPages {
		return totalPages - 1
	}
	return page
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
