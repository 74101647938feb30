package model

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2/data/binding"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/mediator"
	"github.com/shhac/cogview/internal/requests"
)

// supportedLanguages are the document languages offered in the language picker.
var supportedLanguages = []string{
	"en", "es", "fr", "de", "it", "pt", "nl", "ja", "ko", "zh-Hans",
	"da", "fi", "no", "pl", "ru", "sv", "tr",
}

// LanguageOption is a selectable document language.
type LanguageOption struct {
	Tag  string
	Name string
}

// Languages lists the supported document languages with English display names.
func Languages() []LanguageOption {
	namer := display.Tags(language.English)
	opts := make([]LanguageOption, 0, len(supportedLanguages))
	for _, code := range supportedLanguages {
		tag := language.MustParse(code)
		opts = append(opts, LanguageOption{Tag: tag.String(), Name: namer.Name(tag)})
	}
	return opts
}

// NormalizeLanguage canonicalizes a BCP 47 tag ("EN" -> "en", "zh-hans" -> "zh-Hans").
// Tags that fail to parse are returned unchanged.
func NormalizeLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}

// TextAnalysisViewModel holds the Text Analytics form and its results.
type TextAnalysisViewModel struct {
	*viewModel

	Text       binding.String
	Language   binding.String
	APIVersion binding.String

	results map[string]binding.String
	keys    []string
}

// NewTextAnalysisViewModel creates a view model defaulting to English and the stable API.
func NewTextAnalysisViewModel(m *mediator.Mediator, logger *slog.Logger) *TextAnalysisViewModel {
	vm := &TextAnalysisViewModel{
		viewModel:  newViewModel(domain.ServiceText, m, logger),
		Text:       binding.NewString(),
		Language:   binding.NewString(),
		APIVersion: binding.NewString(),
		results:    make(map[string]binding.String),
		keys: []string{
			requests.OpSentiment, requests.OpKeyPhrases, requests.OpEntities,
			requests.OpLanguages, requests.OpPII, requests.OpLinking,
		},
	}
	for _, k := range vm.keys {
		vm.results[k] = binding.NewString()
	}
	_ = vm.Language.Set("en")
	_ = vm.APIVersion.Set(string(requests.VersionStable))
	return vm
}

// Result returns the binding holding the last JSON response for an operation key.
// Unknown keys return nil.
func (vm *TextAnalysisViewModel) Result(key string) binding.String {
	return vm.results[key]
}

// Version returns the selected API version.
func (vm *TextAnalysisViewModel) Version() requests.APIVersion {
	v, _ := vm.APIVersion.Get()
	return requests.APIVersion(v)
}

// Requests rebuilds the request descriptors from the current field values.
func (vm *TextAnalysisViewModel) Requests() []requests.TextOperation {
	text, _ := vm.Text.Get()
	lang, _ := vm.Language.Get()
	return requests.TextAnalysisRequests(vm.Version(), text, lang)
}

// SetText updates the document text.
func (vm *TextAnalysisViewModel) SetText(text string) {
	_ = vm.Text.Set(text)
}

// SetLanguage stores the normalized language tag.
func (vm *TextAnalysisViewModel) SetLanguage(tag string) {
	_ = vm.Language.Set(NormalizeLanguage(tag))
}

// SetAPIVersion switches the API version. Results from the previous version are
// not comparable, so switching clears every result; the error message stays.
func (vm *TextAnalysisViewModel) SetAPIVersion(v requests.APIVersion) {
	if vm.Version() == v {
		return
	}
	_ = vm.APIVersion.Set(string(v))
	vm.clearResults()
}

// ClearResults empties every cached result and the error message.
func (vm *TextAnalysisViewModel) ClearResults() {
	vm.clearResults()
	vm.clearError()
}

func (vm *TextAnalysisViewModel) clearResults() {
	for _, k := range vm.keys {
		_ = vm.results[k].Set("")
	}
}

// Analyze runs every operation available for the selected version, one at a
// time, stopping at the first failure.
func (vm *TextAnalysisViewModel) Analyze(ctx context.Context) {
	done, ok := vm.begin()
	if !ok {
		return
	}
	defer done()

	cfg, ok := vm.config(ctx)
	if !ok {
		return
	}
	for _, op := range vm.Requests() {
		body, ok := vm.execute(ctx, op.Request, cfg)
		if !ok {
			return
		}
		_ = vm.results[op.Key].Set(body)
	}
}

// AnalyzeOne runs a single operation by key. Keys not offered by the selected
// version are ignored.
func (vm *TextAnalysisViewModel) AnalyzeOne(ctx context.Context, key string) {
	var target *requests.TextOperation
	for _, op := range vm.Requests() {
		if op.Key == key {
			target = &op
			break
		}
	}
	if target == nil {
		vm.logger.Debug("operation not available for version",
			slog.String("key", key),
			slog.String("version", string(vm.Version())))
		return
	}

	done, ok := vm.begin()
	if !ok {
		return
	}
	defer done()

	cfg, ok := vm.config(ctx)
	if !ok {
		return
	}
	if body, ok := vm.execute(ctx, target.Request, cfg); ok {
		_ = vm.results[key].Set(body)
	}
}
