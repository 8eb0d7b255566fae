package domain

import (
	"github.com/limonericx/community-bot/pkg/util"
)

// Category is one entry of the fixed ticket taxonomy.
type Category struct {
	Value string
	Label string
	Emoji string
}

var ticketCategories = []Category{
	{Value: "bug", Label: "🐛 Баг/Ошибка", Emoji: "🐛"},
	{Value: "economy", Label: "💰 Проблемы с экономикой", Emoji: "💰"},
	{Value: "regions", Label: "🏠 Проблемы с регионами", Emoji: "🏠"},
	{Value: "player_report", Label: "👥 Жалоба на игрока", Emoji: "👥"},
	{Value: "other", Label: "❓ Другое", Emoji: "❓"},
}

// Categories returns the full taxonomy in display order.
func Categories() []Category {
	out := make([]Category, len(ticketCategories))
	copy(out, ticketCategories)
	return out
}

// ClassifyCategory maps a selected value to its taxonomy entry. An unknown
// value cannot happen under correct UI wiring; the NOT_FOUND error is an
// invariant check, not a user-facing condition.
func ClassifyCategory(value string) (Category, error) {
	for _, category := range ticketCategories {
		if category.Value == value {
			return category, nil
		}
	}
	return Category{}, util.NewNotFound("ticket category", map[string]any{"value": value})
}
