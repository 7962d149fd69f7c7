package console

// Icons (emojis/symbols)
const (
	IconError       = "❌"
	IconSuccess     = "✅"
	IconSearch      = "🔍"
	IconScreen      = "📺"
	IconDownload    = "⬇️"
	IconDone        = "🎉"
	IconProgress    = "⏳"
	IconFile        = "📄"
	IconWarning     = "⚠️"
	DashPlaceholder = "—"
)

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangRussian = "ru"
	LangPortug  = "pt"
)
