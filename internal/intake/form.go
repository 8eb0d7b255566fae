// Package intake validates submitted form fields and produces Request
// records. The form holds no server-side state; every submission is
// independent and resubmission is not throttled.
package intake

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/pkg/util"
)

// Field length bounds shared by all flows.
const (
	DescriptionMaxLen = 1000
	ExtraMaxLen       = 500

	GameHandleMaxLen = 16
	ChatHandleMaxLen = 32
)

// Minimum age per application flow.
const (
	MinecraftAdminMinAge = 16
	DiscordAdminMinAge   = 15
)

// SubmitInput carries the raw field values of one form submission.
type SubmitInput struct {
	Flow      domain.Flow
	Requester domain.Requester
	GuildID   string

	Identifier  string
	Description string
	Extra       string
	Age         string           // application flows only
	Category    *domain.Category // support flow only
}

// Submit validates the raw fields for the given flow and constructs the
// Request. A validation failure produces no Request; the error message is
// shown to the submitter.
func (in SubmitInput) Submit() (*domain.Request, error) {
	identifier := strings.TrimSpace(in.Identifier)
	description := strings.TrimSpace(in.Description)
	extra := strings.TrimSpace(in.Extra)

	maxIdentifier := GameHandleMaxLen
	if in.Flow == domain.FlowDiscordAdmin {
		maxIdentifier = ChatHandleMaxLen
	}

	if identifier == "" {
		return nil, util.NewValidationError("❌ Укажите ваш ник.", nil)
	}
	if len([]rune(identifier)) > maxIdentifier {
		return nil, util.NewValidationError(
			fmt.Sprintf("❌ Ник не должен превышать %d символов.", maxIdentifier), nil)
	}
	if description == "" {
		return nil, util.NewValidationError("❌ Заполните описание.", nil)
	}
	if len([]rune(description)) > DescriptionMaxLen {
		return nil, util.NewValidationError(
			fmt.Sprintf("❌ Описание не должно превышать %d символов.", DescriptionMaxLen), nil)
	}
	if len([]rune(extra)) > ExtraMaxLen {
		return nil, util.NewValidationError(
			fmt.Sprintf("❌ Дополнительная информация не должна превышать %d символов.", ExtraMaxLen), nil)
	}

	request := &domain.Request{
		ID:          generateRequestID(),
		Flow:        in.Flow,
		Requester:   in.Requester,
		Identifier:  identifier,
		Description: description,
		Extra:       extra,
		GuildID:     in.GuildID,
		CreatedAt:   time.Now(),
	}

	switch in.Flow {
	case domain.FlowSupport:
		if in.Category == nil {
			return nil, util.NewValidationError("❌ Выберите категорию проблемы.", nil)
		}
		category := *in.Category
		request.Category = &category
	case domain.FlowMinecraftAdmin, domain.FlowDiscordAdmin:
		age, err := parseAge(in.Age)
		if err != nil {
			return nil, err
		}
		if err := checkAgeThreshold(in.Flow, age); err != nil {
			return nil, err
		}
		request.Age = age
	}

	return request, nil
}

// parseAge rejects anything that is not a non-negative integer, with a
// message distinct from the threshold rejection.
func parseAge(raw string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || age < 0 {
		return 0, util.NewValidationError(
			"❌ Пожалуйста, укажите возраст числом (например: 18).", nil)
	}
	return age, nil
}

func checkAgeThreshold(flow domain.Flow, age int) error {
	switch flow {
	case domain.FlowMinecraftAdmin:
		if age < MinecraftAdminMinAge {
			return util.NewValidationError(
				fmt.Sprintf("❌ Минимальный возраст для подачи заявки в администрацию Minecraft - %d лет.", MinecraftAdminMinAge), nil)
		}
	case domain.FlowDiscordAdmin:
		if age < DiscordAdminMinAge {
			return util.NewValidationError(
				fmt.Sprintf("❌ Минимальный возраст для подачи заявки в администрацию Discord - %d лет.", DiscordAdminMinAge), nil)
		}
	}
	return nil
}

func generateRequestID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
