package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Supported locales.
const (
	LocaleEN = "en"
	LocaleRU = "ru"

	// DefaultLocale is used when the client states no supported language.
	DefaultLocale = LocaleEN
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator maps message keys to text per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in catalogs.
func NewTranslator() *Translator {
	return &Translator{messages: catalogs}
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, then in DefaultLocale,
// then key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the supported locale the client prefers most from
// Accept-Language, honouring q-values. Region subtags are ignored.
func GetLocale(c *gin.Context) string {
	return ParseAcceptLanguage(c.GetHeader(AcceptLanguageHeader))
}

// ParseAcceptLanguage is GetLocale for a raw header value.
func ParseAcceptLanguage(header string) string {
	if header == "" {
		return DefaultLocale
	}

	type candidate struct {
		lang string
		q    float64
	}
	var candidates []candidate
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		lang := strings.ToLower(strings.TrimSpace(fields[0]))
		if idx := strings.IndexByte(lang, '-'); idx > 0 {
			lang = lang[:idx]
		}
		q := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if v, ok := strings.CutPrefix(param, "q="); ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}
		}
		if q <= 0 || !GetTranslator().Supports(lang) {
			continue
		}
		candidates = append(candidates, candidate{lang, q})
	}
	if len(candidates) == 0 {
		return DefaultLocale
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].q > candidates[j].q
	})
	return candidates[0].lang
}

var catalogs = map[string]map[string]string{
	LocaleEN: {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyUnauthorized:        "Unauthorized",
		ErrKeyInvalidCredentials:  "Invalid operator or password",
		ErrKeyAPIKeyRequired:      "API key is required",
		ErrKeyInvalidAPIKey:       "Invalid API key",
		ErrKeyForbidden:           "Forbidden",
		ErrKeyNotFound:            "Not found",
		ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
		ErrKeyConflict:            "Conflict",
		ErrKeyInvalidToken:        "Invalid or expired token",
		ErrKeyTokenRequired:       "Authentication token is required",
		ErrKeyTimeout:             "Request timed out",
		ErrKeyInvalidShipment:     "Invalid shipment",
		ErrKeyDivisionByZero:      "Box count must be greater than zero",
		ErrKeyOutOfRange:          "No tariff matches the shipment",
		ErrKeyNoExchangeRate:      "No exchange rate is available",
		ErrKeyTariffsNotLoaded:    "Tariff tables are not loaded",
		ErrKeyGatewayUnavailable:  "Rate tables are temporarily unavailable",
		ErrKeyInvalidTariffTable:  "Invalid tariff table",
		ErrKeyReadOnly:            "The rate table store is read-only",
		ErrKeyInvalidRate:         "Exchange rate must be greater than zero",
		ErrKeyIdempotencyMismatch: "Idempotency-Key was already used with a different request body",
	},
	LocaleRU: {
		ErrKeyInvalidRequest:      "Некорректный запрос",
		ErrKeyInvalidRequestBody:  "Некорректное тело запроса",
		ErrKeyInternalError:       "Произошла непредвиденная ошибка",
		ErrKeyUnauthorized:        "Требуется авторизация",
		ErrKeyInvalidCredentials:  "Неверный оператор или пароль",
		ErrKeyAPIKeyRequired:      "Требуется API-ключ",
		ErrKeyInvalidAPIKey:       "Неверный API-ключ",
		ErrKeyForbidden:           "Доступ запрещён",
		ErrKeyNotFound:            "Не найдено",
		ErrKeyRateLimitExceeded:   "Слишком много запросов, попробуйте позже",
		ErrKeyConflict:            "Конфликт",
		ErrKeyInvalidToken:        "Недействительный или просроченный токен",
		ErrKeyTokenRequired:       "Требуется токен авторизации",
		ErrKeyTimeout:             "Превышено время ожидания запроса",
		ErrKeyInvalidShipment:     "Некорректные данные груза",
		ErrKeyDivisionByZero:      "Количество коробок должно быть больше нуля",
		ErrKeyOutOfRange:          "Нет подходящего тарифа для груза",
		ErrKeyNoExchangeRate:      "Курс валюты недоступен",
		ErrKeyTariffsNotLoaded:    "Тарифные таблицы не загружены",
		ErrKeyGatewayUnavailable:  "Тарифные таблицы временно недоступны",
		ErrKeyInvalidTariffTable:  "Некорректная тарифная таблица",
		ErrKeyReadOnly:            "Хранилище тарифов доступно только для чтения",
		ErrKeyInvalidRate:         "Курс должен быть больше нуля",
		ErrKeyIdempotencyMismatch: "Idempotency-Key уже использован с другим телом запроса",
	},
}
