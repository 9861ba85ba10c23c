package i18n

import (
	"strings"
	"sync"
)

// Message codes used by the decoders. Data keys are given in brackets.
const (
	KindMismatch   = "kind_mismatch"   // {expected} {got}
	FieldMissing   = "field_missing"   // {key}
	FieldInvalid   = "field_invalid"   // {key} {err}
	ArrayElement   = "array_element"   // {index} {err}
	DictKey        = "dict_key"        // {key} {err}
	IndexMissing   = "index_missing"   // {index}
	IndexInvalid   = "index_invalid"   // {index} {err}
	NoDecoders     = "no_decoders"
	AllFailed      = "all_failed"      // {errs}
	EnumUnknown    = "enum_unknown"    // {got} {enum}
	NotEqual       = "not_equal"       // {want} {got}
	NoMatch        = "no_match"        // {got}
	NoMapping      = "no_mapping"      // {got}
	Overflow       = "overflow"        // {number} {type}
	NotInteger     = "not_integer"     // {number}
	RecursionUnset = "recursion_unset"
	Failed         = "failed"
	InvalidFormat  = "invalid_format"  // {got} {format}
)

// Translator retrieves localized messages for codes. data provides the
// values substituted into the message.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogs = map[string]map[string]string{
	"en": {
		KindMismatch:   "expected {expected}, got {got}",
		FieldMissing:   "field '{key}': missing",
		FieldInvalid:   "field '{key}': {err}",
		ArrayElement:   "array element #{index}: {err}",
		DictKey:        "dict key '{key}': {err}",
		IndexMissing:   "at index {index}: missing",
		IndexInvalid:   "at index {index}: {err}",
		NoDecoders:     "no decoders given",
		AllFailed:      "Attempted multiple decoders, all failed:{errs}",
		EnumUnknown:    "cannot parse {got} into a value of enum {enum}",
		NotEqual:       "expected value: '{want}', got '{got}'",
		NoMatch:        "the value '{got}' doesn't match the predicate",
		NoMapping:      "Cannot find mapping for {got}",
		Overflow:       "number {number} overflows {type}",
		NotInteger:     "number {number} is not an integer",
		RecursionUnset: "This decoder was defined recursively, but the reference was never set",
		Failed:         "decode failed",
		InvalidFormat:  "{got} is not a valid {format}",
	},
	"ja": {
		KindMismatch:   "{expected} を期待しましたが {got} でした",
		FieldMissing:   "フィールド '{key}': 必須プロパティが不足しています",
		FieldInvalid:   "フィールド '{key}': {err}",
		ArrayElement:   "配列要素 #{index}: {err}",
		DictKey:        "辞書キー '{key}': {err}",
		IndexMissing:   "インデックス {index}: 存在しません",
		IndexInvalid:   "インデックス {index}: {err}",
		NoDecoders:     "デコーダが指定されていません",
		AllFailed:      "すべてのデコーダが失敗しました:{errs}",
		EnumUnknown:    "{got} は列挙型 {enum} の値ではありません",
		NotEqual:       "'{want}' を期待しましたが '{got}' でした",
		NoMatch:        "値 '{got}' は条件を満たしません",
		NoMapping:      "{got} に対応する値がありません",
		Overflow:       "数値 {number} は {type} の範囲外です",
		NotInteger:     "数値 {number} は整数ではありません",
		RecursionUnset: "再帰的に定義されたデコーダの参照が設定されていません",
		Failed:         "デコードに失敗しました",
		InvalidFormat:  "{got} は有効な {format} ではありません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][code]
	if !ok {
		if tmpl, ok = catalogs["en"][code]; !ok {
			return code
		}
	}
	return expand(tmpl, data)
}

// expand substitutes {name} placeholders in a single pass, so substituted
// values are never themselves expanded.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	var sb strings.Builder
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			break
		}
		name := tmpl[open+1 : open+end]
		v, ok := data[name]
		if !ok {
			sb.WriteString(tmpl[:open+end+1])
			tmpl = tmpl[open+end+1:]
			continue
		}
		sb.WriteString(tmpl[:open])
		sb.WriteString(v)
		tmpl = tmpl[open+end+1:]
	}
	sb.WriteString(tmpl)
	return sb.String()
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
