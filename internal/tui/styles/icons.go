package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "×"
	InfoIcon    string = "ⓘ"
	LoadingIcon string = "⟳"
	WarnIcon    string = "⚠"
	FreshIcon   string = "●"
)
