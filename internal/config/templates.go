package config

// Embed colors.
const (
	ColorWelcome        = 0x00ff00
	ColorGoodbye        = 0xff8c00
	ColorSupport        = 0x0099ff
	ColorMinecraftAdmin = 0x00ff00
	ColorDiscordAdmin   = 0x5865f2
	ColorSuccess        = 0x00ff00
	ColorInProgress     = 0xffaa00
	ColorClosed         = 0x808080
	ColorAccepted       = 0x00ff00
	ColorRejected       = 0xff0000
)

// EmbedField is a static name/value pair rendered into a panel embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Welcome / goodbye copy.
const (
	WelcomeTitle       = "🎉 Добро пожаловать на Limonericx!"
	WelcomeDescription = "Рады видеть тебя в нашем сообществе!"
	GoodbyeTitle       = "👋 Пользователь покинул сервер"
	GoodbyeDescription = "Жаль, что ты ушёл! Надеемся увидеть тебя снова."

	WelcomeButtonLabel = "📖 Информация для новичков"
	WelcomeButtonURL   = "https://discord.com/channels/1375772175373566012/1375772176107700266"
)

var WelcomeFields = []EmbedField{
	{
		Name:   "📚 Для новичков",
		Value:  "У нас есть вся нужная информация — [нажми сюда](" + WelcomeButtonURL + "), чтобы узнать больше!",
		Inline: false,
	},
	{
		Name:   "❓ Нужна помощь?",
		Value:  "Если что-то будет непонятно — не стесняйся задавать вопросы, мы всегда поможем!",
		Inline: false,
	},
}

// Support panel copy.
const (
	SupportTitle       = "🛠️ Техническая поддержка Limonericx"
	SupportDescription = "Нужна помощь с сервером Minecraft? Создайте тикет и мы поможем!"
	SupportButtonLabel = "🎫 Создать тикет"
	SupportFooter      = "Команда поддержки Limonericx • Мы всегда готовы помочь!"

	TicketsCategoryName = "🎫 Тикеты поддержки"
)

var SupportFields = []EmbedField{
	{
		Name:   "📋 Как создать тикет:",
		Value:  "1️⃣ Нажмите кнопку **Создать тикет**\n2️⃣ Укажите ваш ник в Minecraft\n3️⃣ Опишите проблему подробно\n4️⃣ Ожидайте ответа модераторов",
		Inline: false,
	},
	{
		Name:   "⚡ Что указывать:",
		Value:  "• Точный ник на сервере\n• Время когда произошла проблема\n• Подробное описание ситуации\n• Скриншоты (если есть)",
		Inline: true,
	},
	{
		Name:   "⏰ Время ответа:",
		Value:  "• Обычно: 1-6 часов\n• В выходные: до 24 часов\n• Срочные вопросы решаются быстрее",
		Inline: true,
	},
}

// Minecraft admin application panel copy.
const (
	MinecraftAdminTitle       = "🛡️ Заявка в администрацию Minecraft сервера"
	MinecraftAdminDescription = "Хотите стать частью команды администраторов? Заполните заявку!"
	MinecraftAdminButtonLabel = "📝 Подать заявку"
	MinecraftAdminFooter      = "Администрация Limonericx • Присоединяйтесь к нашей команде!"
)

var MinecraftAdminFields = []EmbedField{
	{
		Name:   "📋 Что нужно для заявки:",
		Value:  "1️⃣ Ваш точный игровой ник\n2️⃣ Причина почему вас должны взять\n3️⃣ Ваш возраст\n4️⃣ Опыт администрирования",
		Inline: false,
	},
	{
		Name:   "⚡ Требования:",
		Value:  "• Возраст от 16 лет\n• Опыт игры на сервере\n• Активность в Discord\n• Адекватность и стрессоустойчивость",
		Inline: true,
	},
	{
		Name:   "⏰ Рассмотрение:",
		Value:  "• Обычно: 3-7 дней\n• Собеседование при одобрении\n• Результат сообщат в ЛС",
		Inline: true,
	},
}

// Discord admin application panel copy.
const (
	DiscordAdminTitle       = "🎫 Заявка в администрацию Discord сервера"
	DiscordAdminDescription = "Хотите модерировать наш Discord? Подайте заявку!"
	DiscordAdminButtonLabel = "📝 Подать заявку"
	DiscordAdminFooter      = "Администрация Discord Limonericx • Помогите нам модерировать сервер!"
)

var DiscordAdminFields = []EmbedField{
	{
		Name:   "📋 Что нужно для заявки:",
		Value:  "1️⃣ Ваш ник в Discord\n2️⃣ Причина почему вас должны взять\n3️⃣ Ваш возраст\n4️⃣ Опыт модерирования Discord",
		Inline: false,
	},
	{
		Name:   "⚡ Требования:",
		Value:  "• Возраст от 15 лет\n• Активность в Discord\n• Знание правил сервера\n• Опыт работы с Discord ботами",
		Inline: true,
	},
	{
		Name:   "⏰ Рассмотрение:",
		Value:  "• Обычно: 2-5 дней\n• Тестовое задание при одобрении\n• Результат сообщат в ЛС",
		Inline: true,
	},
}

// Idle-activity prompt set, sent when the monitored channel has been quiet
// for longer than the idle threshold.
var ActivityPrompts = []string{
	"Как дела, народ? 🤗",
	"Кто-нибудь онлайн? Давайте поболтаем!",
	"Что нового происходит? 💬",
	"Как настроение сегодня у всех?",
	"Есть планы на игру? 🎮",
	"Кто во что играет сейчас?",
	"Хорошего всем дня! ☀️",
	"Как проходит день? Делитесь новостями!",
	"Тихо тут стало... Все заняты? 😅",
	"Давайте немного поболтаем! Как дела у всех?",
	"Кто сегодня был в игре? Как успехи?",
	"Что интересного происходит в мире?",
	"Есть желающие пообщаться? 😊",
	"Как проходит ваш день, друзья?",
	"Что планируете на вечер? 🌙",
}

// Canned acknowledgments for the inline responder.
var ActivityReplies = []string{
	"Согласен! 👍",
	"Интересно!",
	"Хорошая мысль!",
	"Да, точно!",
	"Понятно 😊",
	"Круто!",
	"Отлично!",
	"Хм, интересно...",
	"Да, я тоже так думаю",
	"Супер! 🔥",
	"Классно!",
	"Понимаю тебя",
	"Хорошо сказано!",
	"Молодец!",
	"Это здорово!",
}

// Reaction emoji set for the ambient reactor and inline responder.
var ReactionEmojis = []string{
	"👍", "😊", "🔥", "💪", "👌", "❤️", "😄", "🎉", "⭐", "✨", "💯", "👏",
}
